// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user plus a handful of testimonials and blog posts so the public
// site has something to show. The admin will be prompted to set up 2FA on
// first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@willowhavencare.com", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedTestimonials(db); err != nil {
		return err
	}
	if err := seedBlogPosts(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@willowhavencare.com",
		"password", "admin",
	)

	return nil
}

func seedTestimonials(db *sql.DB) error {
	testimonials := []struct {
		author  string
		content string
		order   int
	}{
		{
			author:  "Margaret H., daughter of a resident",
			content: "Mom has been at Willow Haven for two years now. The staff know her by name, her room always smells of fresh flowers, and she tells me she finally feels at home again.",
			order:   0,
		},
		{
			author:  "Robert & Anne Castillo",
			content: "After touring five facilities we chose Willow Haven for my father. The small size makes all the difference: it feels like a family house, not an institution.",
			order:   1,
		},
		{
			author:  "Dorothy P., resident",
			content: "I was nervous about leaving my home of forty years. The garden here won me over before the staff did, and that's saying something.",
			order:   2,
		},
	}

	for _, tm := range testimonials {
		_, err := db.Exec(`
			INSERT INTO testimonials (author, content, is_active, display_order)
			VALUES ($1, $2, TRUE, $3)
		`, tm.author, tm.content, tm.order)
		if err != nil {
			return fmt.Errorf("seed insert testimonial: %w", err)
		}
	}
	return nil
}

func seedBlogPosts(db *sql.DB) error {
	posts := []struct {
		title   string
		content string
	}{
		{
			title: "Welcome to the Willow Haven Blog",
			content: "We're starting this blog to keep families connected with daily life at " +
				"Willow Haven. Expect photos from our activities, updates from the kitchen, " +
				"and practical advice on navigating senior care decisions.",
		},
		{
			title: "Five Questions to Ask When Touring a Care Home",
			content: "Choosing a residential care home is one of the hardest decisions a family " +
				"makes. Ask about staffing ratios at night, how medications are managed, what " +
				"happens when care needs change, how meals accommodate dietary restrictions, " +
				"and whether residents help shape the activity calendar.",
		},
	}

	for _, p := range posts {
		_, err := db.Exec(`
			INSERT INTO blog_posts (title, content, is_published)
			VALUES ($1, $2, TRUE)
		`, p.title, p.content)
		if err != nil {
			return fmt.Errorf("seed insert blog post: %w", err)
		}
	}
	return nil
}
