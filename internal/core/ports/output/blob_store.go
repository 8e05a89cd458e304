package ports

import (
	"context"

	"image-ingest-service/internal/core/domain"
)

// BlobStore persists artifacts under a tier and hands back a forward-slash
// locator (for example "uploads/small/<token>.jpg").
type BlobStore interface {
	// Put writes data atomically: either the whole blob is stored under the
	// returned locator or nothing is.
	Put(ctx context.Context, tier domain.Tier, name string, data []byte) (string, error)
	// Delete removes the blob at locator. A blob that is already absent is
	// not an error.
	Delete(ctx context.Context, locator string) error
}
