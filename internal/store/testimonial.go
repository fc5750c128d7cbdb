// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"willowhaven/internal/models"
)

// TestimonialStore handles all testimonial database operations.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore creates a new TestimonialStore with the given database connection.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

// List returns all testimonials in ascending display order, ties broken by
// arrival order. Used by the admin surface, which shows inactive records too.
func (s *TestimonialStore) List() ([]models.Testimonial, error) {
	rows, err := s.db.Query(`
		SELECT id, author, content, image_url, video_url, is_active, display_order, created_at, updated_at
		FROM testimonials
		ORDER BY display_order ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var items []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(
			&t.ID, &t.Author, &t.Content, &t.ImageURL, &t.VideoURL,
			&t.IsActive, &t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// ListActive returns only active testimonials in display order. This is the
// public projection; visitors never see inactive records.
func (s *TestimonialStore) ListActive() ([]models.Testimonial, error) {
	rows, err := s.db.Query(`
		SELECT id, author, content, image_url, video_url, is_active, display_order, created_at, updated_at
		FROM testimonials
		WHERE is_active = TRUE
		ORDER BY display_order ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list active testimonials: %w", err)
	}
	defer rows.Close()

	var items []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(
			&t.ID, &t.Author, &t.Content, &t.ImageURL, &t.VideoURL,
			&t.IsActive, &t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindByID retrieves a testimonial by its UUID. Returns nil if not found.
func (s *TestimonialStore) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	t := &models.Testimonial{}
	err := s.db.QueryRow(`
		SELECT id, author, content, image_url, video_url, is_active, display_order, created_at, updated_at
		FROM testimonials WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Author, &t.Content, &t.ImageURL, &t.VideoURL,
		&t.IsActive, &t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find testimonial by id: %w", err)
	}
	return t, nil
}

// Create inserts a new testimonial and returns it with the generated ID.
func (s *TestimonialStore) Create(t *models.Testimonial) (*models.Testimonial, error) {
	result := &models.Testimonial{}
	err := s.db.QueryRow(`
		INSERT INTO testimonials (author, content, image_url, video_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, author, content, image_url, video_url, is_active, display_order, created_at, updated_at
	`, t.Author, t.Content, t.ImageURL, t.VideoURL, t.IsActive, t.DisplayOrder).Scan(
		&result.ID, &result.Author, &result.Content, &result.ImageURL, &result.VideoURL,
		&result.IsActive, &result.DisplayOrder, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return result, nil
}

// Update modifies an existing testimonial.
func (s *TestimonialStore) Update(t *models.Testimonial) error {
	_, err := s.db.Exec(`
		UPDATE testimonials SET
			author = $1, content = $2, image_url = $3, video_url = $4,
			is_active = $5, display_order = $6, updated_at = NOW()
		WHERE id = $7
	`, t.Author, t.Content, t.ImageURL, t.VideoURL, t.IsActive, t.DisplayOrder, t.ID)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return nil
}

// Delete removes a testimonial by ID.
func (s *TestimonialStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}

// Count returns the number of testimonials.
func (s *TestimonialStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM testimonials`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count testimonials: %w", err)
	}
	return count, nil
}
