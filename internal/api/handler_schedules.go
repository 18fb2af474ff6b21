package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-portal-backend/internal/model"
	"attendance-portal-backend/internal/schedule"
)

// scheduleResponse pairs the raw day specification with its canonical
// parsed form so the UI can show both.
type scheduleResponse struct {
	ID        int64    `json:"id"`
	ClassID   int64    `json:"class_id"`
	Days      string   `json:"days"`
	Weekdays  []string `json:"weekdays"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

func toScheduleResponse(s model.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        s.ID,
		ClassID:   s.ClassID,
		Days:      s.Days,
		Weekdays:  schedule.ParseDays(s.Days).Names(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// GetClassSchedules handles GET /api/classes/{class_id}/schedules.
func (h *Handler) GetClassSchedules(c *gin.Context) {
	classID, ok := pathID(c, "class_id")
	if !ok {
		return
	}

	schedules, err := h.store.ListSchedules(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load schedules"})
		return
	}

	out := make([]scheduleResponse, len(schedules))
	for i, s := range schedules {
		out[i] = toScheduleResponse(s)
	}
	c.JSON(http.StatusOK, out)
}

type putScheduleRequest struct {
	ID        int64  `json:"id"`
	Days      string `json:"days" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// PutClassSchedule handles PUT /api/classes/{class_id}/schedules. Unknown
// day tokens are accepted and ignored by the parser, so a partially-typed
// specification saves cleanly; the response's weekdays field shows what
// actually parsed.
func (h *Handler) PutClassSchedule(c *gin.Context) {
	classID, ok := pathID(c, "class_id")
	if !ok {
		return
	}

	var req putScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, field := range []string{req.StartTime, req.EndTime} {
		if _, err := time.Parse("15:04", field); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time and end_time must be HH:MM"})
			return
		}
	}

	sched := model.Schedule{
		ID:        req.ID,
		ClassID:   classID,
		Days:      req.Days,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.store.SaveSchedule(c.Request.Context(), &sched); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save schedule"})
		return
	}

	c.JSON(http.StatusOK, toScheduleResponse(sched))
}

// GetScheduleMatch handles GET /api/classes/{class_id}/schedules/match?date=.
// A date matches when any of the class's schedules is held on its weekday.
// A class with no schedules, or schedules whose day text did not parse,
// falls back to matching every date.
func (h *Handler) GetScheduleMatch(c *gin.Context) {
	classID, ok := pathID(c, "class_id")
	if !ok {
		return
	}

	date, err := time.ParseInLocation(dateLayout, c.Query("date"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	schedules, err := h.store.ListSchedules(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load schedules"})
		return
	}

	scheduled := len(schedules) == 0
	for _, s := range schedules {
		if schedule.ParseDays(s.Days).Matches(date) {
			scheduled = true
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      c.Query("date"),
		"weekday":   date.Weekday().String(),
		"scheduled": scheduled,
	})
}
