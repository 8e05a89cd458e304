package services

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

type ImageService struct {
	catalog ports.CatalogRepository
	store   ports.BlobStore
	metrics ports.IngestMetrics
}

func NewImageService(catalog ports.CatalogRepository, store ports.BlobStore, metrics ports.IngestMetrics) *ImageService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ImageService{catalog: catalog, store: store, metrics: metrics}
}

func (s *ImageService) List(ctx context.Context) ([]*domain.Image, error) {
	return s.catalog.List(ctx)
}

func (s *ImageService) Get(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	return s.catalog.GetByID(ctx, id)
}

// Delete removes the artifacts of an image and then its catalog record.
// Artifact failures are logged and skipped; the record is removed regardless,
// so the image disappears from listings even if a file lingers.
func (s *ImageService) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, loc := range img.Locators() {
		if loc == "" {
			continue
		}
		if err := s.store.Delete(ctx, loc); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"image_id": id,
				"locator":  loc,
			}).Error("could not delete artifact")
			s.metrics.ObserveArtifactDelete(ports.OutcomeFailed)
			continue
		}
		s.metrics.ObserveArtifactDelete(ports.OutcomeSuccess)
	}

	return s.catalog.Delete(ctx, id)
}

// Ready reports whether the catalog is reachable.
func (s *ImageService) Ready(ctx context.Context) error {
	return s.catalog.Ping(ctx)
}
