package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Scan       ScanConfig       `yaml:"scan"`
	Stats      StatsConfig      `yaml:"stats"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push warning notifications.
type PushConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// ScanConfig holds the card-scan pipeline configuration.
type ScanConfig struct {
	CooldownSeconds int           `yaml:"cooldown_seconds"`
	Cooldown        time.Duration `yaml:"-"` // Ignored by YAML parser
	IdleFlushMillis int           `yaml:"idle_flush_millis"`
	IdleFlush       time.Duration `yaml:"-"`
	DevicePath      string        `yaml:"device_path"` // empty disables the reader loop
}

// StatsConfig holds the statistics and warning configuration.
type StatsConfig struct {
	Timezone         string `yaml:"timezone"`
	ExcludedWeekday  string `yaml:"excluded_weekday"`
	WarningThreshold int    `yaml:"warning_threshold_percent"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Scan.CooldownSeconds <= 0 {
		cfg.Scan.CooldownSeconds = 30
	}
	cfg.Scan.Cooldown = time.Duration(cfg.Scan.CooldownSeconds) * time.Second

	if cfg.Scan.IdleFlushMillis <= 0 {
		cfg.Scan.IdleFlushMillis = 200
	}
	cfg.Scan.IdleFlush = time.Duration(cfg.Scan.IdleFlushMillis) * time.Millisecond

	if cfg.Stats.Timezone == "" {
		cfg.Stats.Timezone = "Local"
	}
	if cfg.Stats.ExcludedWeekday == "" {
		cfg.Stats.ExcludedWeekday = "Sunday"
	}
	if cfg.Stats.WarningThreshold <= 0 {
		cfg.Stats.WarningThreshold = 75
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
