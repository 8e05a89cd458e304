// Package objectstore stores artifacts in an S3-compatible bucket, one key prefix
// per tier. Any S3-compatible provider works; only the endpoint and
// credentials change.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"image-ingest-service/internal/config"
	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

// objectAPI is the part of *minio.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
}

type store struct {
	client objectAPI
	bucket string
	prefix string
}

func newStore(client objectAPI, bucket, prefix string) *store {
	return &store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// NewStore connects to the endpoint and makes sure the bucket exists.
// Locators are "<prefix>/<tier>/<name>"; the object key drops the prefix.
func NewStore(ctx context.Context, cfg config.MinioConfig, prefix string) (ports.BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		log.WithField("bucket", cfg.Bucket).Info("created storage bucket")
	}

	return newStore(client, cfg.Bucket, prefix), nil
}

func (s *store) Put(ctx context.Context, tier domain.Tier, name string, data []byte) (string, error) {
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: bad name %q", domain.ErrStorageWrite, name)
	}

	key := path.Join(string(tier), name)
	// A single PutObject either lands the whole object or nothing.
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimetype.Detect(data).String(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object %q: %v", domain.ErrStorageWrite, key, err)
	}
	return path.Join(s.prefix, key), nil
}

func (s *store) Delete(ctx context.Context, locator string) error {
	key, err := s.keyFor(locator)
	if err != nil {
		return err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			log.WithField("locator", locator).Warn("artifact already absent")
			return nil
		}
		return fmt.Errorf("%w: stat object %q: %v", domain.ErrStorageDelete, key, err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove object %q: %v", domain.ErrStorageDelete, key, err)
	}
	return nil
}

func (s *store) keyFor(locator string) (string, error) {
	return KeyFor(s.prefix, locator)
}

// KeyFor maps a locator to its object key.
func KeyFor(prefix, locator string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+locator), "/")
	if prefix != "" {
		if !strings.HasPrefix(rel, prefix+"/") {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocator, locator)
		}
		rel = strings.TrimPrefix(rel, prefix+"/")
	}

	tier, name, ok := strings.Cut(rel, "/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocator, locator)
	}
	for _, t := range domain.Tiers {
		if string(t) == tier {
			return rel, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocator, locator)
}
