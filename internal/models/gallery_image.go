// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryImage is a photo in the facility gallery. Images are presented in
// ascending display order; reordering swaps the order values of adjacent
// records, so values are expected to be distinct but this is not enforced.
type GalleryImage struct {
	ID           uuid.UUID `json:"id"`
	ImageURL     string    `json:"image_url"`
	AltText      *string   `json:"alt_text,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Alt returns the alt text for rendering, with a generic fallback.
func (g GalleryImage) Alt() string {
	if g.AltText != nil && *g.AltText != "" {
		return *g.AltText
	}
	return "Willow Haven gallery photo"
}
