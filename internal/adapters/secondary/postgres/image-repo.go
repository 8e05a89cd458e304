package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

// querier is the subset of *pgxpool.Pool the repository runs on.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type imageRepo struct {
	pool querier
}

func NewImageRepository(pool *pgxpool.Pool) ports.CatalogRepository {
	return &imageRepo{pool: pool}
}

func (r *imageRepo) Create(ctx context.Context, image *domain.Image) error {
	query := `
		INSERT INTO images (id, original_name, original, small, medium, large)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	id := uuid.New()
	err := r.pool.QueryRow(ctx, query,
		id, image.OriginalName,
		image.Original, image.Small, image.Medium, image.Large,
	).Scan(&image.CreatedAt)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	image.ID = id
	return nil
}

func (r *imageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	query := `
		SELECT id, original_name, original, small, medium, large, created_at
		FROM images
		WHERE id = $1
	`
	img, err := scanImage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("get image by id: %w", err)
	}
	return img, nil
}

func (r *imageRepo) List(ctx context.Context) ([]*domain.Image, error) {
	query := `
		SELECT id, original_name, original, small, medium, large, created_at
		FROM images
		ORDER BY created_at DESC, seq DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := []*domain.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}
	return images, nil
}

func (r *imageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *imageRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanImage(row pgx.Row) (*domain.Image, error) {
	var img domain.Image
	err := row.Scan(
		&img.ID, &img.OriginalName,
		&img.Original, &img.Small, &img.Medium, &img.Large,
		&img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}
