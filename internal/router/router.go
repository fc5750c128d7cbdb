// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Willow Haven site. Routes are organized into public and admin groups
// with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"willowhaven/internal/handlers"
	"willowhaven/internal/middleware"
	"willowhaven/internal/session"
	"willowhaven/web"
)

// Login attempts are rate limited per client IP.
const (
	loginRateLimit  = 10
	loginRateWindow = 1 * time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets (compiled CSS and vendored JS).
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		// Auth pages — accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Dashboard
			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)

			// Testimonials
			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", admin.TestimonialsList)
				r.Get("/new", admin.TestimonialNew)
				r.Post("/", admin.TestimonialCreate)
				r.Get("/{id}", admin.TestimonialEdit)
				r.Post("/{id}", admin.TestimonialUpdate)
				r.Post("/{id}/delete", admin.TestimonialDelete)
			})

			// Blog posts
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Get("/new", admin.PostNew)
				r.Post("/", admin.PostCreate)
				r.Get("/{id}", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Post("/{id}/delete", admin.PostDelete)
			})

			// Photo gallery
			r.Route("/gallery", func(r chi.Router) {
				r.Get("/", admin.GalleryPage)
				r.Post("/upload", admin.GalleryUpload)
				r.Post("/{id}/move", admin.GalleryMove)
				r.Post("/{id}/delete", admin.GalleryDelete)
			})

			// Staff account management, admin role only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.UsersList)
				r.Post("/{id}/reset-2fa", admin.UserResetTwoFA)
			})

			// Blog editor image uploads
			r.Post("/media/upload", admin.MediaUpload)
		})
	})

	// Public pages — rendered once, then served from the page cache.
	r.Get("/", public.Home)
	r.Get("/blog", public.Blog)
	r.Get("/blog/{id}", public.BlogPost)
	r.Get("/gallery", public.Gallery)
	r.Get("/testimonials", public.Testimonials)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
