package handlers

import (
	"net/http"
	"time"

	"image-ingest-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: dto.FormatTime(time.Now()),
	})
}

// Ready additionally checks that the catalog answers.
func (h *Handler) Ready(c *gin.Context) {
	if err := h.imageSvc.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API is running. Access /api/images to get images.")
}
