package ports

import (
	"context"

	"github.com/google/uuid"

	"image-ingest-service/internal/core/domain"
)

// CatalogRepository stores image records. There is no update: records are
// created once and deleted once.
type CatalogRepository interface {
	// Create assigns ID and CreatedAt on image and persists it.
	Create(ctx context.Context, image *domain.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	// List returns every record, newest first. Records with equal timestamps
	// come back in reverse insertion order.
	List(ctx context.Context) ([]*domain.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
