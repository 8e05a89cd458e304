package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, CatalogDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, StorageDriverFilesystem, cfg.Storage.Driver)
	assert.Equal(t, "uploads", cfg.Storage.PublicPrefix)
	assert.Equal(t, "images", cfg.Upload.Field)
	assert.Equal(t, 10, cfg.Upload.MaxFiles)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxFileSize)
	assert.Equal(t, 1, cfg.Upload.Workers)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_DRIVER", "MEMORY")
	t.Setenv("STORAGE_PUBLIC_PREFIX", "/media/")
	t.Setenv("INGEST_WORKERS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CatalogDriverMemory, cfg.Database.Driver)
	assert.Equal(t, "media", cfg.Storage.PublicPrefix)
	assert.Equal(t, 4, cfg.Upload.Workers)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnusablePublicPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"root", "/"},
		{"api route", "api"},
		{"nested under healthz", "healthz/files"},
		{"metrics route", "/metrics/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE_PUBLIC_PREFIX", tt.prefix)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "STORAGE_PUBLIC_PREFIX")
		})
	}
}

func TestLoad_MinioPrefixMustMatchBucket(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("MINIO_BUCKET", "images")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MINIO_BUCKET")

	t.Setenv("STORAGE_PUBLIC_PREFIX", "images")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "images", cfg.Storage.PublicPrefix)
}
