package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-ingest-service/internal/core/domain"
)

func newImage(name string) *domain.Image {
	return &domain.Image{
		OriginalName: name,
		Original:     "uploads/original/" + name,
		Small:        "uploads/small/" + name,
		Medium:       "uploads/medium/" + name,
		Large:        "uploads/large/" + name,
	}
}

func TestCatalog_CreateAssignsIdentity(t *testing.T) {
	c := NewCatalog()
	img := newImage("a.jpg")

	require.NoError(t, c.Create(context.Background(), img))
	assert.NotEqual(t, uuid.Nil, img.ID)
	assert.False(t, img.CreatedAt.IsZero())

	got, err := c.GetByID(context.Background(), img.ID)
	require.NoError(t, err)
	assert.Equal(t, *img, *got)
}

func TestCatalog_ListNewestFirst(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	a, b, cc := newImage("a.jpg"), newImage("b.jpg"), newImage("c.jpg")
	require.NoError(t, c.Create(ctx, a))
	require.NoError(t, c.Create(ctx, b))
	require.NoError(t, c.Create(ctx, cc))

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{cc.ID, b.ID, a.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
}

func TestCatalog_ListEqualTimestampsReverseInsertion(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewCatalogWithClock(func() time.Time { return frozen })
	ctx := context.Background()

	first, second := newImage("1.png"), newImage("2.png")
	require.NoError(t, c.Create(ctx, first))
	require.NoError(t, c.Create(ctx, second))

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCatalog_ListOrdersByTimestamp(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 5, 1, 12, 0, 2, 0, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC),
	}
	i := 0
	c := NewCatalogWithClock(func() time.Time { ts := times[i]; i++; return ts })
	ctx := context.Background()

	later, earlier := newImage("later.png"), newImage("earlier.png")
	require.NoError(t, c.Create(ctx, later))
	require.NoError(t, c.Create(ctx, earlier))

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, later.ID, list[0].ID)
}

func TestCatalog_DeleteAndNotFound(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()
	img := newImage("a.gif")
	require.NoError(t, c.Create(ctx, img))

	require.NoError(t, c.Delete(ctx, img.ID))

	_, err := c.GetByID(ctx, img.ID)
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
	assert.ErrorIs(t, c.Delete(ctx, img.ID), domain.ErrImageNotFound)

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
