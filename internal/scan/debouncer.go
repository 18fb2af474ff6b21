package scan

import (
	"strings"
	"sync"
	"time"
)

// RejectReason explains why the debouncer refused a code.
type RejectReason string

const (
	ReasonEmpty    RejectReason = "empty"
	ReasonCooldown RejectReason = "cooldown"
)

// Result is the outcome of a single Accept call.
type Result struct {
	Accepted bool
	Reason   RejectReason // set only when Accepted is false
}

// Debouncer rejects repeat scans of the same card code within a cooldown
// window. It keeps no record of students or events; it only remembers when
// each code was last accepted.
type Debouncer struct {
	mu       sync.Mutex
	cooldown time.Duration
	seen     map[string]time.Time
	sweptAt  time.Time
}

// NewDebouncer creates a debouncer with the given cooldown window.
func NewDebouncer(cooldown time.Duration) *Debouncer {
	return &Debouncer{
		cooldown: cooldown,
		seen:     make(map[string]time.Time),
	}
}

// Accept records the code at the given time unless it is blank or was
// already accepted within the cooldown window.
func (d *Debouncer) Accept(code string, now time.Time) Result {
	if strings.TrimSpace(code) == "" {
		return Result{Accepted: false, Reason: ReasonEmpty}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.sweep(now)

	if last, ok := d.seen[code]; ok && now.Sub(last) < d.cooldown {
		return Result{Accepted: false, Reason: ReasonCooldown}
	}

	d.seen[code] = now
	return Result{Accepted: true}
}

// sweep evicts entries older than a few cooldown windows so the map does not
// grow with every card ever scanned. Runs at most once per cooldown interval.
func (d *Debouncer) sweep(now time.Time) {
	if now.Sub(d.sweptAt) < d.cooldown {
		return
	}
	d.sweptAt = now
	cutoff := now.Add(-4 * d.cooldown)
	for code, last := range d.seen {
		if last.Before(cutoff) {
			delete(d.seen, code)
		}
	}
}
