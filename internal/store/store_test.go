// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

// Shared helpers for the store integration tests. The tests talk to a
// real PostgreSQL instance and skip themselves when none is reachable.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"willowhaven/internal/database"
)

// testDSN builds the connection string from POSTGRES_* environment
// variables, with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "willowhaven")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "willowhaven")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens the test database, migrates it to the current schema and
// registers a close on test cleanup. Unreachable database skips the test.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	// Migrate points goose's global FS at the embedded migrations; undo
	// that so repeated calls across packages stay independent.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// deleteWhere removes rows matching a single-column equality. Errors are
// ignored; cleanup must not fail a test that already passed.
func deleteWhere(db *sql.DB, table, column string, values ...string) {
	for _, v := range values {
		db.Exec("DELETE FROM "+table+" WHERE "+column+" = $1", v)
	}
}

func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	deleteWhere(db, "users", "email", emails...)
}

func cleanTestimonials(t *testing.T, db *sql.DB, authors ...string) {
	t.Helper()
	deleteWhere(db, "testimonials", "author", authors...)
}

func cleanBlogPosts(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	deleteWhere(db, "blog_posts", "title", titles...)
}

func cleanGalleryImages(t *testing.T, db *sql.DB, urls ...string) {
	t.Helper()
	deleteWhere(db, "gallery_images", "image_url", urls...)
}
