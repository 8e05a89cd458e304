package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"image-ingest-service/internal/core/domain"
)

// MockCatalogRepo is a mock of CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Create(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockCatalogRepo) List(ctx context.Context) ([]*domain.Image, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Image), args.Error(1)
}

func (m *MockCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBlobStore is a mock of BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, tier domain.Tier, name string, data []byte) (string, error) {
	args := m.Called(ctx, tier, name, data)
	if fn, ok := args.Get(0).(func(context.Context, domain.Tier, string, []byte) string); ok {
		return fn(ctx, tier, name, data), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, locator string) error {
	args := m.Called(ctx, locator)
	return args.Error(0)
}

// MockRenderer is a mock of Renderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, data []byte, specs []domain.TierSpec) ([]domain.Rendition, error) {
	args := m.Called(ctx, data, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rendition), args.Error(1)
}
