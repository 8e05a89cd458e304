package handlers

import (
	"image-ingest-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the per-file byte limits
const multipartOverhead = 1 << 20

type Handler struct {
	ingestSvc *services.IngestService
	imageSvc  *services.ImageService
	limits    services.Limits
}

func New(ingestSvc *services.IngestService, imageSvc *services.ImageService, limits services.Limits) *Handler {
	return &Handler{
		ingestSvc: ingestSvc,
		imageSvc:  imageSvc,
		limits:    limits,
	}
}

// RegisterRoutes mounts the API under r (normally the "/api" group).
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)

	// Images
	r.GET("/images", h.ListImages)
	r.GET("/images/:id", h.GetImage)
	r.POST("/images/upload", h.UploadImages)
	r.DELETE("/images/:id", h.DeleteImage)
}

func (h *Handler) maxBodyBytes() int64 {
	// One file more than allowed still parses, so the count check can
	// answer with the proper message instead of a size error.
	return int64(h.limits.MaxFiles+1)*h.limits.MaxFileSize + multipartOverhead
}
