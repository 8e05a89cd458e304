package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"image-ingest-service/internal/core/domain"
	"image-ingest-service/internal/testutil"
)

func storedImage(id uuid.UUID) *domain.Image {
	return &domain.Image{
		ID:           id,
		OriginalName: "cat.png",
		Original:     "uploads/original/tok.png",
		Small:        "uploads/small/tok.png",
		Medium:       "uploads/medium/tok.png",
		Large:        "uploads/large/tok.png",
		CreatedAt:    time.Now(),
	}
}

func TestImageService_List(t *testing.T) {
	catalog := new(testutil.MockCatalogRepo)
	store := new(testutil.MockBlobStore)
	svc := NewImageService(catalog, store, nil)

	images := []*domain.Image{storedImage(uuid.New()), storedImage(uuid.New())}
	catalog.On("List", mock.Anything).Return(images, nil)

	result, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, images, result)
}

func TestImageService_Get(t *testing.T) {
	catalog := new(testutil.MockCatalogRepo)
	svc := NewImageService(catalog, new(testutil.MockBlobStore), nil)

	id := uuid.New()
	catalog.On("GetByID", mock.Anything, id).Return(storedImage(id), nil)

	result, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, result.ID)
}

func TestImageService_DeleteRemovesArtifactsThenRecord(t *testing.T) {
	catalog := new(testutil.MockCatalogRepo)
	store := new(testutil.MockBlobStore)
	svc := NewImageService(catalog, store, nil)

	id := uuid.New()
	img := storedImage(id)
	catalog.On("GetByID", mock.Anything, id).Return(img, nil)
	for _, loc := range img.Locators() {
		store.On("Delete", mock.Anything, loc).Return(nil).Once()
	}
	catalog.On("Delete", mock.Anything, id).Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), id))
	store.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestImageService_DeleteToleratesArtifactFailures(t *testing.T) {
	catalog := new(testutil.MockCatalogRepo)
	store := new(testutil.MockBlobStore)
	svc := NewImageService(catalog, store, nil)

	id := uuid.New()
	img := storedImage(id)
	catalog.On("GetByID", mock.Anything, id).Return(img, nil)
	store.On("Delete", mock.Anything, img.Original).Return(nil)
	store.On("Delete", mock.Anything, img.Small).Return(errors.New("permission denied"))
	store.On("Delete", mock.Anything, img.Medium).Return(nil)
	store.On("Delete", mock.Anything, img.Large).Return(domain.ErrStorageDelete)
	catalog.On("Delete", mock.Anything, id).Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), id))
	store.AssertNumberOfCalls(t, "Delete", 4)
	catalog.AssertExpectations(t)
}

func TestImageService_DeleteNotFoundHasNoSideEffects(t *testing.T) {
	catalog := new(testutil.MockCatalogRepo)
	store := new(testutil.MockBlobStore)
	svc := NewImageService(catalog, store, nil)

	id := uuid.New()
	catalog.On("GetByID", mock.Anything, id).Return(nil, domain.ErrImageNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
