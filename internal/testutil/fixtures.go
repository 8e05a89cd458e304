package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"image-ingest-service/internal/core/domain"
)

// PNG returns an encoded w x h PNG.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(w, h)))
	return buf.Bytes()
}

// JPEG returns an encoded w x h JPEG.
func JPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, gradient(w, h), nil))
	return buf.Bytes()
}

// Renditions returns one small rendition per spec with the given payload.
func Renditions(payload string) []domain.Rendition {
	out := make([]domain.Rendition, 0, len(domain.RenditionSpecs))
	for _, spec := range domain.RenditionSpecs {
		out = append(out, domain.Rendition{
			Tier:   spec.Tier,
			Data:   []byte(payload + "-" + string(spec.Tier)),
			Width:  1,
			Height: 1,
		})
	}
	return out
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 3), B: 90, A: 255})
		}
	}
	return img
}
