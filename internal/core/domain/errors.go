package domain

import "errors"

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrNoFiles              = errors.New("no files uploaded")
	ErrTooManyFiles         = errors.New("too many files")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("file is too large")
	ErrUnexpectedField      = errors.New("unexpected file field")
)

// ValidationError is a client-caused rejection. Message is safe to return to
// the caller; Err is one of the validation sentinels above.
type ValidationError struct {
	Err     error
	File    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.File == "" {
		return e.Err.Error() + ": " + e.Message
	}
	return e.Err.Error() + ": " + e.File + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ============================================================================
// Processing Errors
// ============================================================================

var (
	ErrDecode          = errors.New("image could not be decoded")
	ErrStorageWrite    = errors.New("storage write failed")
	ErrStorageDelete   = errors.New("storage delete failed")
	ErrInvalidLocator  = errors.New("invalid storage locator")
	ErrIncompleteImage = errors.New("image record is missing artifact locators")
)

// ============================================================================
// Catalog Errors
// ============================================================================

var (
	ErrImageNotFound = errors.New("image not found")
)
