package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"attendance-portal-backend/internal/attend"
	"attendance-portal-backend/internal/notification"
	"attendance-portal-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store         store.Store
	attend        *attend.Service
	pool          *notification.WorkerPool // may be nil when push is disabled
	webpush       *webpush.Options
	loc           *time.Location
	excluded      time.Weekday
	warnThreshold int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, attendSvc *attend.Service, pool *notification.WorkerPool, webpushOptions *webpush.Options, loc *time.Location, excluded time.Weekday, warnThreshold int) *Handler {
	return &Handler{
		store:         s,
		attend:        attendSvc,
		pool:          pool,
		webpush:       webpushOptions,
		loc:           loc,
		excluded:      excluded,
		warnThreshold: warnThreshold,
	}
}

// now returns the current time in the portal's configured zone.
func (h *Handler) now() time.Time {
	return time.Now().In(h.loc)
}
