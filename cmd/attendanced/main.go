package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"attendance-portal-backend/config"
	"attendance-portal-backend/internal/api"
	"attendance-portal-backend/internal/attend"
	"attendance-portal-backend/internal/db"
	"attendance-portal-backend/internal/notification"
	"attendance-portal-backend/internal/reader"
	"attendance-portal-backend/internal/schedule"
	"attendance-portal-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "attendance-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	loc, err := time.LoadLocation(cfg.Stats.Timezone)
	if err != nil {
		logger.Fatalf("invalid timezone %q: %v", cfg.Stats.Timezone, err)
	}

	excluded, err := excludedWeekday(cfg.Stats.ExcludedWeekday)
	if err != nil {
		logger.Fatalf("invalid excluded weekday: %v", err)
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Warning notifications are optional; without VAPID keys the portal
	// still records attendance.
	var pool *notification.WorkerPool
	var webpushOptions *webpush.Options
	if cfg.Push.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			logger.Fatalf("push is enabled but VAPID keys are not configured")
		}
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		logger.Println("notification worker pool started")
	}

	var alerter attend.Alerter
	if pool != nil {
		alerter = pool
	}
	attendSvc := attend.NewService(appStore, cfg.Scan.Cooldown, loc, alerter)

	// Run the card reader loop in the background when a device is configured.
	readerSvc := reader.NewService(cfg, attendSvc)
	go readerSvc.Run(ctx)

	// Initialize router
	handler := api.NewHandler(appStore, attendSvc, pool, webpushOptions, loc, excluded, cfg.Stats.WarningThreshold)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

// excludedWeekday resolves the configured weekday name through the same
// token table the schedule editor uses.
func excludedWeekday(raw string) (time.Weekday, error) {
	set := schedule.ParseDays(raw)
	days := set.Weekdays()
	if len(days) != 1 {
		return time.Sunday, fmt.Errorf("%q does not name exactly one weekday", raw)
	}
	return days[0], nil
}
