package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-portal-backend/internal/stats"
	"attendance-portal-backend/internal/store"
)

const dateLayout = "2006-01-02"

// parsePeriod reads the from/to query parameters. Both are required; an
// inverted range is accepted here and degrades to zero eligible days in the
// calculator, so a half-filled report form never errors.
func (h *Handler) parsePeriod(c *gin.Context) (stats.Period, bool) {
	from, err := time.ParseInLocation(dateLayout, c.Query("from"), h.loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return stats.Period{}, false
	}
	to, err := time.ParseInLocation(dateLayout, c.Query("to"), h.loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return stats.Period{}, false
	}
	return stats.NewPeriod(from, to, h.loc), true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// GetStudentStatistics handles GET /api/students/{student_id}/statistics.
func (h *Handler) GetStudentStatistics(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	student, err := h.store.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	events, err := h.store.ListEvents(ctx, student.ID, period.Start, period.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	st := stats.Compute(events, period, h.excluded, h.now())
	c.JSON(http.StatusOK, gin.H{
		"student_id": student.ID,
		"statistics": st,
	})
}

// classStatistics loads a class's students and computes per-student plus
// aggregate statistics for the period.
func (h *Handler) classStatistics(c *gin.Context, classID int64, period stats.Period) (map[int64]stats.Statistics, stats.Statistics, bool) {
	ctx := c.Request.Context()

	students, err := h.store.ListStudents(ctx, classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load students"})
		return nil, stats.Statistics{}, false
	}

	ids := make([]int64, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}

	events, err := h.store.ListEventsForStudents(ctx, ids, period.Start, period.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return nil, stats.Statistics{}, false
	}

	subjects := make([]stats.SubjectEvents, len(students))
	for i, s := range students {
		subjects[i] = stats.SubjectEvents{StudentID: s.ID}
	}
	byID := make(map[int64]int, len(students))
	for i, s := range students {
		byID[s.ID] = i
	}
	for _, ev := range events {
		if i, ok := byID[ev.StudentID]; ok {
			subjects[i].Events = append(subjects[i].Events, ev)
		}
	}

	perStudent, aggregate := stats.ComputeMany(subjects, period, h.excluded, h.now())
	return perStudent, aggregate, true
}

// GetClassStatistics handles GET /api/classes/{class_id}/statistics.
func (h *Handler) GetClassStatistics(c *gin.Context) {
	classID, ok := pathID(c, "class_id")
	if !ok {
		return
	}
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	perStudent, aggregate, ok := h.classStatistics(c, classID, period)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"class_id":    classID,
		"per_student": perStudent,
		"aggregate":   aggregate,
	})
}
