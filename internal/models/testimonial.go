// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a family quote shown in the homepage carousel and on the
// testimonials page. Only active testimonials are visible to visitors;
// display order is ascending and does not need to be contiguous.
type Testimonial struct {
	ID           uuid.UUID `json:"id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	ImageURL     *string   `json:"image_url,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
