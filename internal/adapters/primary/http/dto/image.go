package dto

import (
	"time"

	"github.com/google/uuid"

	"image-ingest-service/internal/core/domain"
)

// Millisecond ISO-8601 in UTC, the shape browser clients already parse.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

type ImageResponse struct {
	ID           uuid.UUID `json:"_id"`
	OriginalName string    `json:"originalName"`
	Original     string    `json:"original"`
	Small        string    `json:"small"`
	Medium       string    `json:"medium"`
	Large        string    `json:"large"`
	CreatedAt    string    `json:"createdAt"`
}

type UploadResponse struct {
	Message string          `json:"message"`
	Images  []ImageResponse `json:"images"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func ToImageResponse(img *domain.Image) ImageResponse {
	return ImageResponse{
		ID:           img.ID,
		OriginalName: img.OriginalName,
		Original:     img.Original,
		Small:        img.Small,
		Medium:       img.Medium,
		Large:        img.Large,
		CreatedAt:    FormatTime(img.CreatedAt),
	}
}

func ToImageResponses(images []*domain.Image) []ImageResponse {
	items := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		items = append(items, ToImageResponse(img))
	}
	return items
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
