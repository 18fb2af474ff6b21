package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendance-portal-backend/internal/notification"
	"attendance-portal-backend/internal/stats"
)

type warningEntry struct {
	StudentID  int64            `json:"student_id"`
	Statistics stats.Statistics `json:"statistics"`
}

// GetClassWarnings handles GET /api/classes/{class_id}/warnings: students
// whose attendance percentage is below the configured threshold over the
// period. With ?notify=1 each warning is also pushed to the student's
// subscribers.
func (h *Handler) GetClassWarnings(c *gin.Context) {
	classID, ok := pathID(c, "class_id")
	if !ok {
		return
	}
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	perStudent, _, ok := h.classStatistics(c, classID, period)
	if !ok {
		return
	}

	notify := c.Query("notify") == "1" && h.pool != nil

	warnings := make([]warningEntry, 0)
	for studentID, st := range perStudent {
		if st.EligibleDays == 0 || st.Percentage >= h.warnThreshold {
			continue
		}
		warnings = append(warnings, warningEntry{StudentID: studentID, Statistics: st})
		if notify {
			h.pool.Dispatch(notification.Job{
				StudentID:  studentID,
				Kind:       notification.KindAbsence,
				Percentage: st.Percentage,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"class_id":  classID,
		"threshold": h.warnThreshold,
		"warnings":  warnings,
	})
}
