package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendance-portal-backend/internal/scan"
	"attendance-portal-backend/internal/store"
)

type postScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// scanStudent is the student subset exposed on scan responses.
type scanStudent struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	ClassID   int64  `json:"class_id"`
}

// PostScan handles POST /api/scans: one card code in, one decision out.
func (h *Handler) PostScan(c *gin.Context) {
	var req postScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	res, err := h.attend.ProcessScan(c.Request.Context(), req.Code, h.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no student matches this card"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if res.Rejected {
		status := http.StatusBadRequest
		if res.Reason == scan.ReasonCooldown {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, gin.H{"rejected": string(res.Reason)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"decision": string(res.Decision),
		"student": scanStudent{
			ID:        res.Student.ID,
			FirstName: res.Student.FirstName,
			Surname:   res.Student.Surname,
			ClassID:   res.Student.ClassID,
		},
	})
}
