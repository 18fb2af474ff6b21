package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendance-portal-backend/internal/report"
)

// GetClassReport handles GET /api/classes/{class_id}/report: one row per
// student per attended day, ordered for tabular export. Statistics are not
// repeated here; export collaborators combine rows with the statistics
// endpoints as needed.
func (h *Handler) GetClassReport(c *gin.Context) {
	classID, ok := pathID(c, "class_id")
	if !ok {
		return
	}
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	students, err := h.store.ListStudents(ctx, classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load students"})
		return
	}

	ids := make([]int64, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	events, err := h.store.ListEventsForStudents(ctx, ids, period.Start, period.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"class_id": classID,
		"rows":     report.BuildRows(students, events, period),
	})
}
