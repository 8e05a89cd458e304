package handlers

import (
	"errors"
	"net/http"

	"image-ingest-service/internal/adapters/primary/http/dto"
	"image-ingest-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const (
	msgServerError     = "Server Error"
	msgUploadError     = "Server Error during image processing"
	msgImageNotFound   = "Image not found"
	msgImageDeleted    = "Image deleted successfully"
	msgImagesProcessed = "Images uploaded and processed successfully"
)

// mapDomainError writes the response for err. fallback is the message used
// for unclassified failures; internal detail never reaches the client.
func mapDomainError(c *gin.Context, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: verr.Message})

	case errors.Is(err, domain.ErrImageNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Message: msgImageNotFound})

	default:
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: fallback})
	}
}
