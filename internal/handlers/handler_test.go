// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"willowhaven/internal/cache"
	"willowhaven/internal/database"
	"willowhaven/internal/media"
	"willowhaven/internal/middleware"
	"willowhaven/internal/render"
	"willowhaven/internal/session"
	"willowhaven/internal/store"
)

// testFileHost mirrors the public URL scheme of the object store stub.
const testFileHost = "files.willowhavencare.com"

// stubObjectStore implements media.ObjectStore and records every call so
// tests can assert on storage side effects without S3.
type stubObjectStore struct {
	mu       sync.Mutex
	uploads  []string
	deletes  []string
	onDelete func(bucket, key string)
}

func (s *stubObjectStore) Upload(_ context.Context, bucket, key, _ string, body io.Reader, _ int64) error {
	io.Copy(io.Discard, body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, bucket+"/"+key)
	return nil
}

func (s *stubObjectStore) Delete(_ context.Context, bucket, key string) error {
	if s.onDelete != nil {
		s.onDelete(bucket, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, bucket+"/"+key)
	return nil
}

func (s *stubObjectStore) FileURL(bucket, key string) string {
	return "https://" + testFileHost + "/" + bucket + "/" + key
}

func (s *stubObjectStore) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

func (s *stubObjectStore) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

// stubExtractKey matches the stub's FileURL scheme, mirroring how the S3
// client recognizes its own URLs.
func stubExtractKey(rawURL string) (bucket, key string, ok bool) {
	prefix := "https://" + testFileHost + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(rawURL, prefix)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "willowhaven")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "willowhaven")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Renderer     *render.Renderer
	Sessions     *session.Store
	Testimonials *store.TestimonialStore
	Posts        *store.BlogPostStore
	Gallery      *store.GalleryImageStore
	Users        *store.UserStore
	PageCache    *cache.PageCache
	Storage      *stubObjectStore
	Admin        *Admin
	Auth         *Auth
	Public       *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies, backed by the object store stub instead of S3.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	testimonials := store.NewTestimonialStore(db)
	posts := store.NewBlogPostStore(db)
	gallery := store.NewGalleryImageStore(db)
	users := store.NewUserStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	stub := &stubObjectStore{}
	resolver := media.NewResolver(testFileHost)
	galleryUpload := media.NewUploader(stub, "gallery-images", "")
	blogUpload := media.NewUploader(stub, "blog-images", "uploads/")
	cleaner := media.NewCleaner(stub, "blog-images", stubExtractKey, nil)

	admin := NewAdmin(renderer, testimonials, posts, gallery, users,
		galleryUpload, blogUpload, cleaner, resolver, pageCache)
	auth := NewAuth(renderer, sessions, users)
	public := NewPublic(renderer, testimonials, posts, gallery, resolver, pageCache)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Renderer:     renderer,
		Sessions:     sessions,
		Testimonials: testimonials,
		Posts:        posts,
		Gallery:      gallery,
		Users:        users,
		PageCache:    pageCache,
		Storage:      stub,
		Admin:        admin,
		Auth:         auth,
		Public:       public,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both chi URL param and session to a request.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// cleanTestimonials removes test testimonials by author.
func cleanTestimonials(t *testing.T, db *sql.DB, authors ...string) {
	t.Helper()
	for _, a := range authors {
		db.Exec("DELETE FROM testimonials WHERE author = $1", a)
	}
}

// cleanPosts removes test posts by title.
func cleanPosts(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM blog_posts WHERE title = $1", title)
	}
}

// cleanGallery removes test gallery rows by URL.
func cleanGallery(t *testing.T, db *sql.DB, urls ...string) {
	t.Helper()
	for _, u := range urls {
		db.Exec("DELETE FROM gallery_images WHERE image_url = $1", u)
	}
}
