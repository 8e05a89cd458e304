package services

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"image-ingest-service/internal/core/domain"
)

// UploadFile is one file of an upload batch as declared by the client.
type UploadFile struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Extension returns the lower-cased filename extension including the dot.
func (f UploadFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

type Limits struct {
	Field       string
	MaxFiles    int
	MaxFileSize int64
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const unsupportedTypeMessage = "Only image files (jpeg, jpg, png, gif, webp) are allowed"

// Validator enforces batch and per-file limits before any processing starts.
type Validator struct {
	limits Limits
}

func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

func (v *Validator) Limits() Limits {
	return v.limits
}

// ValidateBatch checks the file count first, then every file. The first
// failure rejects the whole batch.
func (v *Validator) ValidateBatch(files []UploadFile) error {
	if len(files) == 0 {
		return &domain.ValidationError{Err: domain.ErrNoFiles, Message: "No files uploaded"}
	}
	if len(files) > v.limits.MaxFiles {
		return &domain.ValidationError{
			Err:     domain.ErrTooManyFiles,
			Message: fmt.Sprintf("Too many files. Maximum is %d files per upload.", v.limits.MaxFiles),
		}
	}
	for _, f := range files {
		if err := v.ValidateFile(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFile checks one file's field, declared media type, extension and size.
func (v *Validator) ValidateFile(f UploadFile) error {
	if v.limits.Field != "" && f.Field != v.limits.Field {
		return &domain.ValidationError{Err: domain.ErrUnexpectedField, File: f.Name, Message: "Unexpected file field."}
	}

	// Both the declared type and the extension must be on the allow-list.
	if !allowedExtensions[f.Extension()] || !allowedMediaTypes[mediaType(f.ContentType)] {
		return &domain.ValidationError{Err: domain.ErrUnsupportedMediaType, File: f.Name, Message: unsupportedTypeMessage}
	}

	if f.Size > v.limits.MaxFileSize {
		return &domain.ValidationError{
			Err:     domain.ErrPayloadTooLarge,
			File:    f.Name,
			Message: fmt.Sprintf("File is too large. Maximum size is %s.", formatSize(v.limits.MaxFileSize)),
		}
	}
	return nil
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func formatSize(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
