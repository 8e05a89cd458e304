package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image is the catalog record linking one upload to its four stored artifacts.
// Records are immutable once created; the only transition is deletion.
type Image struct {
	ID           uuid.UUID
	OriginalName string
	Original     string
	Small        string
	Medium       string
	Large        string
	CreatedAt    time.Time
}

// Locators returns the artifact locators in tier order.
func (i *Image) Locators() []string {
	return []string{i.Original, i.Small, i.Medium, i.Large}
}

// SetLocator assigns the locator for the given tier.
func (i *Image) SetLocator(tier Tier, locator string) {
	switch tier {
	case TierOriginal:
		i.Original = locator
	case TierSmall:
		i.Small = locator
	case TierMedium:
		i.Medium = locator
	case TierLarge:
		i.Large = locator
	}
}

// Complete reports whether every tier has a locator.
func (i *Image) Complete() bool {
	return i.Original != "" && i.Small != "" && i.Medium != "" && i.Large != ""
}
