// Package memory is an in-process catalog for development and tests.
// Records are lost when the process exits.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

type entry struct {
	image domain.Image
	seq   uint64
}

type catalog struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
	seq     uint64
	now     func() time.Time
}

func NewCatalog() ports.CatalogRepository {
	return NewCatalogWithClock(time.Now)
}

// NewCatalogWithClock is NewCatalog with a custom time source.
func NewCatalogWithClock(now func() time.Time) ports.CatalogRepository {
	return &catalog{entries: make(map[uuid.UUID]entry), now: now}
}

func (c *catalog) Create(_ context.Context, image *domain.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	image.ID = uuid.New()
	image.CreatedAt = c.now().UTC()
	c.seq++
	c.entries[image.ID] = entry{image: *image, seq: c.seq}
	return nil
}

func (c *catalog) GetByID(_ context.Context, id uuid.UUID) (*domain.Image, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	img := e.image
	return &img, nil
}

func (c *catalog) List(_ context.Context) ([]*domain.Image, error) {
	c.mu.RLock()
	all := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		all = append(all, e)
	}
	c.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].image.CreatedAt.Equal(all[j].image.CreatedAt) {
			return all[i].image.CreatedAt.After(all[j].image.CreatedAt)
		}
		return all[i].seq > all[j].seq
	})

	images := make([]*domain.Image, 0, len(all))
	for i := range all {
		img := all[i].image
		images = append(images, &img)
	}
	return images, nil
}

func (c *catalog) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(c.entries, id)
	return nil
}

func (c *catalog) Ping(context.Context) error { return nil }
