package ports

import (
	"context"

	"image-ingest-service/internal/core/domain"
)

// Renderer derives resized renditions from raw image bytes.
type Renderer interface {
	// Render returns one rendition per spec, in spec order. Undecodable
	// input fails with domain.ErrDecode.
	Render(ctx context.Context, data []byte, specs []domain.TierSpec) ([]domain.Rendition, error)
}
