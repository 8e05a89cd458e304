// Package filesystem stores artifacts in one local directory per tier.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

type store struct {
	root   string
	prefix string
}

// NewStore creates the tier directories under root and returns a BlobStore
// whose locators are "<prefix>/<tier>/<name>".
func NewStore(root, prefix string) (ports.BlobStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	for _, tier := range domain.Tiers {
		if err := os.MkdirAll(filepath.Join(abs, string(tier)), 0o755); err != nil {
			return nil, fmt.Errorf("create %s directory: %w", tier, err)
		}
	}
	return &store{root: abs, prefix: strings.Trim(prefix, "/")}, nil
}

func (s *store) Put(ctx context.Context, tier domain.Tier, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: bad name %q", domain.ErrStorageWrite, name)
	}

	dir := filepath.Join(s.root, string(tier))
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	tmpName := tmp.Name()

	// Write to a temp file in the same directory and rename so readers never
	// observe a partially written artifact.
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	return path.Join(s.prefix, string(tier), name), nil
}

func (s *store) Delete(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(locator)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("locator", locator).Warn("artifact already absent")
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageDelete, err)
	}
	return nil
}

// resolve maps a locator back to a path and refuses anything outside a tier
// directory.
func (s *store) resolve(locator string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+locator), "/")
	if s.prefix != "" {
		if !strings.HasPrefix(rel, s.prefix+"/") {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocator, locator)
		}
		rel = strings.TrimPrefix(rel, s.prefix+"/")
	}

	tier, name, ok := strings.Cut(rel, "/")
	if !ok || name == "" || strings.Contains(name, "/") || !knownTier(tier) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocator, locator)
	}
	return filepath.Join(s.root, tier, name), nil
}

func knownTier(t string) bool {
	for _, tier := range domain.Tiers {
		if string(tier) == t {
			return true
		}
	}
	return false
}
