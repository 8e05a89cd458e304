// Package imaging renders resized image tiers. Renditions keep the source's
// encoding: JPEG stays JPEG, PNG stays PNG, GIF stays GIF and WebP stays WebP.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"image-ingest-service/internal/core/domain"
	ports "image-ingest-service/internal/core/ports/output"
)

const (
	defaultJPEGQuality = 85

	// DefaultMaxPixels caps width*height of a source before it is decoded.
	DefaultMaxPixels int64 = 0x3FFF * 0x3FFF
)

type renderer struct {
	jpegQuality int
	maxPixels   int64
	metrics     ports.IngestMetrics
}

// NewRenderer returns a Renderer. maxPixels <= 0 uses DefaultMaxPixels and a
// nil metrics discards render timings.
func NewRenderer(jpegQuality int, maxPixels int64, metrics ports.IngestMetrics) ports.Renderer {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = defaultJPEGQuality
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &renderer{jpegQuality: jpegQuality, maxPixels: maxPixels, metrics: metrics}
}

func (r *renderer) Render(ctx context.Context, data []byte, specs []domain.TierSpec) ([]domain.Rendition, error) {
	// Headers are cheap to read; a tiny compressed file can still declare a
	// frame that takes gigabytes to decode.
	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if px := int64(hdr.Width) * int64(hdr.Height); px > r.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", domain.ErrDecode, hdr.Width, hdr.Height, r.maxPixels)
	}

	// image.Decode picks the format by magic bytes, so a file whose extension
	// lies about its content still decodes if it is a supported image.
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	bounds := src.Bounds()
	out := make([]domain.Rendition, 0, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		w, h := domain.FitInside(bounds.Dx(), bounds.Dy(), spec.MaxWidth, spec.MaxHeight)

		var dst image.Image = src
		if w != bounds.Dx() || h != bounds.Dy() {
			dst = imaging.Resize(src, w, h, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := r.encode(&buf, dst, format); err != nil {
			return nil, fmt.Errorf("encode %s rendition: %w", spec.Tier, err)
		}
		r.metrics.ObserveRender(string(spec.Tier), time.Since(start))

		out = append(out, domain.Rendition{
			Tier:   spec.Tier,
			Data:   buf.Bytes(),
			Width:  w,
			Height: h,
		})
	}
	return out, nil
}

func (r *renderer) encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(r.jpegQuality))
	case "png":
		return imaging.Encode(w, img, imaging.PNG)
	case "gif":
		return imaging.Encode(w, img, imaging.GIF)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: unsupported format %q", domain.ErrDecode, format)
	}
}
