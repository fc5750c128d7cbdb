// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"willowhaven/internal/models"
)

// GalleryImageStore handles all gallery image database operations.
type GalleryImageStore struct {
	db *sql.DB
}

// NewGalleryImageStore creates a new GalleryImageStore with the given database connection.
func NewGalleryImageStore(db *sql.DB) *GalleryImageStore {
	return &GalleryImageStore{db: db}
}

// List returns all gallery images in ascending display order.
func (s *GalleryImageStore) List() ([]models.GalleryImage, error) {
	rows, err := s.db.Query(`
		SELECT id, image_url, alt_text, display_order, created_at
		FROM gallery_images
		ORDER BY display_order ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	var items []models.GalleryImage
	for rows.Next() {
		var g models.GalleryImage
		if err := rows.Scan(&g.ID, &g.ImageURL, &g.AltText, &g.DisplayOrder, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// FindByID retrieves a gallery image by its UUID. Returns nil if not found.
func (s *GalleryImageStore) FindByID(id uuid.UUID) (*models.GalleryImage, error) {
	g := &models.GalleryImage{}
	err := s.db.QueryRow(`
		SELECT id, image_url, alt_text, display_order, created_at
		FROM gallery_images WHERE id = $1
	`, id).Scan(&g.ID, &g.ImageURL, &g.AltText, &g.DisplayOrder, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find gallery image by id: %w", err)
	}
	return g, nil
}

// Create inserts a new gallery image and returns it with the generated ID.
func (s *GalleryImageStore) Create(g *models.GalleryImage) (*models.GalleryImage, error) {
	result := &models.GalleryImage{}
	err := s.db.QueryRow(`
		INSERT INTO gallery_images (image_url, alt_text, display_order)
		VALUES ($1, $2, $3)
		RETURNING id, image_url, alt_text, display_order, created_at
	`, g.ImageURL, g.AltText, g.DisplayOrder).Scan(
		&result.ID, &result.ImageURL, &result.AltText, &result.DisplayOrder, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	return result, nil
}

// MaxDisplayOrder returns the highest display_order value, or -1 when the
// gallery is empty, so new uploads can be appended at max+1.
func (s *GalleryImageStore) MaxDisplayOrder() (int, error) {
	var max int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(display_order), -1) FROM gallery_images`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max display order: %w", err)
	}
	return max, nil
}

// SetDisplayOrder updates a single image's display_order value.
func (s *GalleryImageStore) SetDisplayOrder(id uuid.UUID, order int) error {
	_, err := s.db.Exec(`
		UPDATE gallery_images SET display_order = $1 WHERE id = $2
	`, order, id)
	if err != nil {
		return fmt.Errorf("set display order: %w", err)
	}
	return nil
}

// SwapOrder exchanges the display_order values of two images via two
// sequential updates. This is intentionally not transactional: if the
// second update fails the two records can be left holding the same order
// value until a later reorder corrects it. That matches the editing
// model's accepted risk and keeps the store free of multi-row transactions.
func (s *GalleryImageStore) SwapOrder(a, b *models.GalleryImage) error {
	if err := s.SetDisplayOrder(a.ID, b.DisplayOrder); err != nil {
		return err
	}
	return s.SetDisplayOrder(b.ID, a.DisplayOrder)
}

// Delete removes a gallery image by ID.
func (s *GalleryImageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	return nil
}

// Count returns the number of gallery images.
func (s *GalleryImageStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM gallery_images`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count gallery images: %w", err)
	}
	return count, nil
}
