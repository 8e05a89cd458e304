package domain

// Tier names one storage bucket; each tier maps to its own directory.
type Tier string

const (
	TierOriginal Tier = "original"
	TierSmall    Tier = "small"
	TierMedium   Tier = "medium"
	TierLarge    Tier = "large"
)

// Tiers lists every tier in the order artifacts are written.
var Tiers = []Tier{TierOriginal, TierSmall, TierMedium, TierLarge}

// TierSpec is a fit-inside target box for one resized tier.
type TierSpec struct {
	Tier      Tier
	MaxWidth  int
	MaxHeight int
}

// RenditionSpecs are the resized tiers derived from every upload.
var RenditionSpecs = []TierSpec{
	{Tier: TierSmall, MaxWidth: 150, MaxHeight: 150},
	{Tier: TierMedium, MaxWidth: 500, MaxHeight: 500},
	{Tier: TierLarge, MaxWidth: 1000, MaxHeight: 1000},
}

// Rendition is one encoded artifact ready to be stored.
type Rendition struct {
	Tier   Tier
	Data   []byte
	Width  int
	Height int
}

// FitInside scales (srcW, srcH) down to fit within (maxW, maxH) preserving the
// aspect ratio. Sources already inside the box are returned unchanged.
func FitInside(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}

	// Compare srcW/srcH with maxW/maxH without floats.
	if srcW*maxH >= srcH*maxW {
		h := (srcH*maxW + srcW/2) / srcW
		return maxW, max(h, 1)
	}
	w := (srcW*maxH + srcH/2) / srcH
	return max(w, 1), maxH
}
