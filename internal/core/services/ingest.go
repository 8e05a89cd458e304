package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

// IngestService turns an upload batch into stored renditions and catalog
// records.
//
// Each image is committed on its own: a failure on a later file aborts the
// request but leaves the images already created in place. A failing image
// never leaves a catalog record, and its written artifacts are removed on a
// best-effort basis.
type IngestService struct {
	validator *Validator
	renderer  ports.Renderer
	store     ports.BlobStore
	catalog   ports.CatalogRepository
	metrics   ports.IngestMetrics
	workers   int
	newToken  func() string
}

// NewIngestService wires the pipeline. workers <= 1 processes files strictly
// one after another; larger values render and store up to that many files
// at once while still creating catalog records in submission order.
func NewIngestService(
	validator *Validator,
	renderer ports.Renderer,
	store ports.BlobStore,
	catalog ports.CatalogRepository,
	metrics ports.IngestMetrics,
	workers int,
) *IngestService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if workers < 1 {
		workers = 1
	}
	return &IngestService{
		validator: validator,
		renderer:  renderer,
		store:     store,
		catalog:   catalog,
		metrics:   metrics,
		workers:   workers,
		newToken:  uuid.NewString,
	}
}

// Ingest validates the batch and runs every file through render, store and
// catalog create. Images are returned in submission order.
func (s *IngestService) Ingest(ctx context.Context, files []UploadFile) ([]*domain.Image, error) {
	if err := s.validator.ValidateBatch(files); err != nil {
		s.metrics.ObserveUpload(ports.OutcomeRejected, len(files))
		return nil, err
	}

	var (
		images []*domain.Image
		err    error
	)
	if s.workers == 1 || len(files) == 1 {
		images, err = s.ingestSequential(ctx, files)
	} else {
		images, err = s.ingestConcurrent(ctx, files)
	}
	if err != nil {
		s.metrics.ObserveUpload(ports.OutcomeFailed, len(files))
		return nil, err
	}

	s.metrics.ObserveUpload(ports.OutcomeSuccess, len(files))
	return images, nil
}

func (s *IngestService) ingestSequential(ctx context.Context, files []UploadFile) ([]*domain.Image, error) {
	images := make([]*domain.Image, 0, len(files))
	for _, f := range files {
		img, err := s.stage(ctx, f)
		if err != nil {
			return images, err
		}
		if err := s.commit(ctx, img); err != nil {
			return images, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *IngestService) ingestConcurrent(ctx context.Context, files []UploadFile) ([]*domain.Image, error) {
	staged := make([]*domain.Image, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, f := range files {
		g.Go(func() error {
			img, err := s.stage(gctx, f)
			if err != nil {
				return err
			}
			staged[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, img := range staged {
			if img != nil {
				s.discard(ctx, img)
			}
		}
		return nil, err
	}

	images := make([]*domain.Image, 0, len(files))
	for i, img := range staged {
		if err := s.commit(ctx, img); err != nil {
			for _, rest := range staged[i+1:] {
				s.discard(ctx, rest)
			}
			return images, err
		}
		images = append(images, img)
	}
	return images, nil
}

// stage reads, renders and stores one file. On success every tier has a
// locator; on failure nothing written for this file remains.
func (s *IngestService) stage(ctx context.Context, f UploadFile) (*domain.Image, error) {
	data, err := s.read(f)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", f.Name, err)
	}

	renditions, err := s.renderer.Render(ctx, data, domain.RenditionSpecs)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", f.Name, err)
	}

	// One token per image, shared by every tier.
	name := s.newToken() + f.Extension()
	img := &domain.Image{OriginalName: f.Name}

	artifacts := make([]domain.Rendition, 0, len(renditions)+1)
	artifacts = append(artifacts, domain.Rendition{Tier: domain.TierOriginal, Data: data})
	artifacts = append(artifacts, renditions...)

	for _, a := range artifacts {
		locator, err := s.store.Put(ctx, a.Tier, name, a.Data)
		if err != nil {
			s.discard(ctx, img)
			return nil, fmt.Errorf("store %s of %q: %w", a.Tier, f.Name, err)
		}
		img.SetLocator(a.Tier, locator)
	}

	if !img.Complete() {
		s.discard(ctx, img)
		return nil, fmt.Errorf("stage %q: %w", f.Name, domain.ErrIncompleteImage)
	}
	return img, nil
}

func (s *IngestService) commit(ctx context.Context, img *domain.Image) error {
	if err := s.catalog.Create(ctx, img); err != nil {
		s.discard(ctx, img)
		return fmt.Errorf("catalog %q: %w", img.OriginalName, err)
	}
	log.WithFields(log.Fields{
		"image_id":      img.ID,
		"original_name": img.OriginalName,
	}).Info("image ingested")
	return nil
}

// discard removes whatever artifacts img already points at. It runs even
// when ctx is cancelled so an aborted request does not strand files.
func (s *IngestService) discard(ctx context.Context, img *domain.Image) {
	ctx = context.WithoutCancel(ctx)
	for _, loc := range img.Locators() {
		if loc == "" {
			continue
		}
		if err := s.store.Delete(ctx, loc); err != nil {
			log.WithError(err).WithField("locator", loc).Error("cleanup of uncommitted artifact failed")
		}
	}
}

func (s *IngestService) read(f UploadFile) ([]byte, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("no content for %q", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	limit := s.validator.Limits().MaxFileSize
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	// The declared size can lie; the bytes cannot.
	if int64(len(data)) > limit {
		return nil, &domain.ValidationError{
			Err:     domain.ErrPayloadTooLarge,
			File:    f.Name,
			Message: fmt.Sprintf("File is too large. Maximum size is %s.", formatSize(limit)),
		}
	}
	return data, nil
}
