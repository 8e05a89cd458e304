package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitInside(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"smaller than box", 80, 60, 150, 150, 80, 60},
		{"equal to box", 500, 500, 500, 500, 500, 500},
		{"landscape", 3000, 2000, 500, 500, 500, 333},
		{"portrait", 2000, 3000, 500, 500, 333, 500},
		{"square", 1200, 1200, 150, 150, 150, 150},
		{"one edge over", 1200, 100, 1000, 1000, 1000, 83},
		{"extreme strip", 10000, 1, 150, 150, 150, 1},
		{"invalid source", 0, 100, 150, 150, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitInside(tt.srcW, tt.srcH, tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestImage_Locators(t *testing.T) {
	img := &Image{}
	for _, tier := range Tiers {
		img.SetLocator(tier, "uploads/"+string(tier)+"/x.png")
	}

	assert.True(t, img.Complete())
	assert.Equal(t, []string{
		"uploads/original/x.png",
		"uploads/small/x.png",
		"uploads/medium/x.png",
		"uploads/large/x.png",
	}, img.Locators())
}

func TestValidationError_Unwrap(t *testing.T) {
	err := &ValidationError{Err: ErrPayloadTooLarge, File: "a.png", Message: "too big"}

	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, "file is too large: a.png: too big", err.Error())
}
