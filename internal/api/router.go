package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"attendance-portal-backend/config"
	"attendance-portal-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// Statistics pages are re-requested constantly while forms are edited;
	// a short response cache keeps them cheap without visible staleness.
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// POST /api/scans
		api.POST("/scans", h.PostScan)

		// GET /api/students/{student_id}/statistics
		api.GET("/students/:student_id/statistics", caching, h.GetStudentStatistics)

		// GET /api/classes/{class_id}/...
		api.GET("/classes/:class_id/statistics", caching, h.GetClassStatistics)
		api.GET("/classes/:class_id/report", h.GetClassReport)
		api.GET("/classes/:class_id/warnings", h.GetClassWarnings)
		api.GET("/classes/:class_id/schedules", h.GetClassSchedules)
		api.PUT("/classes/:class_id/schedules", h.PutClassSchedule)
		api.GET("/classes/:class_id/schedules/match", h.GetScheduleMatch)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
