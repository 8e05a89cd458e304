package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-ingest-service/internal/core/domain"
)

func defaultLimits() Limits {
	return Limits{Field: "images", MaxFiles: 10, MaxFileSize: 10 << 20}
}

func upload(name, contentType string, size int64) UploadFile {
	return UploadFile{Field: "images", Name: name, ContentType: contentType, Size: size}
}

func TestValidator_AcceptsAllowedTypes(t *testing.T) {
	v := NewValidator(defaultLimits())

	for _, f := range []UploadFile{
		upload("a.jpg", "image/jpeg", 100),
		upload("b.JPEG", "image/jpeg", 100),
		upload("c.png", "image/png", 100),
		upload("d.gif", "image/gif", 100),
		upload("e.webp", "image/webp", 100),
		upload("f.jpg", "image/jpeg; charset=binary", 100),
	} {
		assert.NoError(t, v.ValidateFile(f), f.Name)
	}
}

func TestValidator_RejectsMismatchedTypes(t *testing.T) {
	v := NewValidator(defaultLimits())

	for _, f := range []UploadFile{
		upload("doc.pdf", "application/pdf", 100),
		upload("doc.pdf", "image/png", 100),
		upload("image.png", "text/plain", 100),
		upload("noext", "image/png", 100),
		upload("x.jpg", "", 100),
		upload("x.svg", "image/svg+xml", 100),
	} {
		err := v.ValidateFile(f)
		assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType, f.Name)
	}
}

func TestValidator_RejectsOversize(t *testing.T) {
	v := NewValidator(defaultLimits())

	assert.NoError(t, v.ValidateFile(upload("edge.png", "image/png", 10<<20)))

	err := v.ValidateFile(upload("big.png", "image/png", 10<<20+1))
	require.ErrorIs(t, err, domain.ErrPayloadTooLarge)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "File is too large. Maximum size is 10 MB.", verr.Message)
	assert.Equal(t, "big.png", verr.File)
}

func TestValidator_RejectsUnexpectedField(t *testing.T) {
	v := NewValidator(defaultLimits())

	f := upload("a.png", "image/png", 1)
	f.Field = "avatar"
	assert.ErrorIs(t, v.ValidateFile(f), domain.ErrUnexpectedField)
}

func TestValidator_BatchCount(t *testing.T) {
	v := NewValidator(defaultLimits())

	assert.ErrorIs(t, v.ValidateBatch(nil), domain.ErrNoFiles)

	files := make([]UploadFile, 11)
	for i := range files {
		files[i] = upload("a.png", "image/png", 1)
	}
	err := v.ValidateBatch(files)
	require.ErrorIs(t, err, domain.ErrTooManyFiles)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Too many files. Maximum is 10 files per upload.", verr.Message)

	assert.NoError(t, v.ValidateBatch(files[:10]))
}

func TestValidator_BatchStopsOnFirstBadFile(t *testing.T) {
	v := NewValidator(defaultLimits())

	err := v.ValidateBatch([]UploadFile{
		upload("ok.png", "image/png", 1),
		upload("bad.exe", "application/octet-stream", 1),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
}
