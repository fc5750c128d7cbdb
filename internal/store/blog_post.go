// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"willowhaven/internal/models"
)

// BlogPostStore handles all blog post database operations.
type BlogPostStore struct {
	db *sql.DB
}

// NewBlogPostStore creates a new BlogPostStore with the given database connection.
func NewBlogPostStore(db *sql.DB) *BlogPostStore {
	return &BlogPostStore{db: db}
}

// List returns all blog posts ordered by published date descending.
// Used by the admin surface, which shows drafts too.
func (s *BlogPostStore) List() ([]models.BlogPost, error) {
	rows, err := s.db.Query(`
		SELECT id, title, content, excerpt, image_url, external_link, external_link_text,
		       published_date, is_published, created_at, updated_at
		FROM blog_posts
		ORDER BY published_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.ImageURL,
			&p.ExternalLink, &p.ExternalLinkText, &p.PublishedDate,
			&p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// ListPublished returns published posts newest-first. A limit of 0 means no
// cap; the homepage teaser passes 3. This is the public projection.
func (s *BlogPostStore) ListPublished(limit int) ([]models.BlogPost, error) {
	query := `
		SELECT id, title, content, excerpt, image_url, external_link, external_link_text,
		       published_date, is_published, created_at, updated_at
		FROM blog_posts
		WHERE is_published = TRUE
		ORDER BY published_date DESC, created_at DESC
	`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list published blog posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.ImageURL,
			&p.ExternalLink, &p.ExternalLinkText, &p.PublishedDate,
			&p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// FindByID retrieves a blog post by its UUID. Returns nil if not found.
func (s *BlogPostStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := s.db.QueryRow(`
		SELECT id, title, content, excerpt, image_url, external_link, external_link_text,
		       published_date, is_published, created_at, updated_at
		FROM blog_posts WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.ImageURL,
		&p.ExternalLink, &p.ExternalLinkText, &p.PublishedDate,
		&p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by id: %w", err)
	}
	return p, nil
}

// FindPublishedByID retrieves a published post for the public detail page.
// Returns nil for drafts so unpublished work never leaks to visitors.
func (s *BlogPostStore) FindPublishedByID(id uuid.UUID) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := s.db.QueryRow(`
		SELECT id, title, content, excerpt, image_url, external_link, external_link_text,
		       published_date, is_published, created_at, updated_at
		FROM blog_posts WHERE id = $1 AND is_published = TRUE
	`, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.ImageURL,
		&p.ExternalLink, &p.ExternalLinkText, &p.PublishedDate,
		&p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published blog post: %w", err)
	}
	return p, nil
}

// Create inserts a new blog post and returns it with the generated ID.
func (s *BlogPostStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	result := &models.BlogPost{}
	err := s.db.QueryRow(`
		INSERT INTO blog_posts (title, content, excerpt, image_url, external_link,
		                        external_link_text, published_date, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, content, excerpt, image_url, external_link, external_link_text,
		          published_date, is_published, created_at, updated_at
	`, p.Title, p.Content, p.Excerpt, p.ImageURL, p.ExternalLink,
		p.ExternalLinkText, p.PublishedDate, p.IsPublished,
	).Scan(
		&result.ID, &result.Title, &result.Content, &result.Excerpt, &result.ImageURL,
		&result.ExternalLink, &result.ExternalLinkText, &result.PublishedDate,
		&result.IsPublished, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return result, nil
}

// Update modifies an existing blog post.
func (s *BlogPostStore) Update(p *models.BlogPost) error {
	_, err := s.db.Exec(`
		UPDATE blog_posts SET
			title = $1, content = $2, excerpt = $3, image_url = $4,
			external_link = $5, external_link_text = $6,
			published_date = $7, is_published = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Content, p.Excerpt, p.ImageURL, p.ExternalLink,
		p.ExternalLinkText, p.PublishedDate, p.IsPublished, p.ID)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	return nil
}

// Delete removes a blog post by ID.
func (s *BlogPostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	return nil
}

// Count returns the number of blog posts.
func (s *BlogPostStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return count, nil
}
