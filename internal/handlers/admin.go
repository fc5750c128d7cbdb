// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Willow Haven site.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"net/http"

	"willowhaven/internal/cache"
	"willowhaven/internal/media"
	"willowhaven/internal/render"
	"willowhaven/internal/store"
)

// Admin groups the content manager HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	testimonials  *store.TestimonialStore
	posts         *store.BlogPostStore
	gallery       *store.GalleryImageStore
	userStore     *store.UserStore
	galleryUpload *media.Uploader
	blogUpload    *media.Uploader
	cleaner       *media.Cleaner
	resolver      *media.Resolver
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// The uploaders and cleaner may be nil if S3 is not configured; upload
// endpoints then report storage as unavailable.
func NewAdmin(renderer *render.Renderer, testimonials *store.TestimonialStore, posts *store.BlogPostStore, gallery *store.GalleryImageStore, userStore *store.UserStore, galleryUpload, blogUpload *media.Uploader, cleaner *media.Cleaner, resolver *media.Resolver, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:      renderer,
		testimonials:  testimonials,
		posts:         posts,
		gallery:       gallery,
		userStore:     userStore,
		galleryUpload: galleryUpload,
		blogUpload:    blogUpload,
		cleaner:       cleaner,
		resolver:      resolver,
		pageCache:     pageCache,
	}
}

// Dashboard renders the admin dashboard page with content counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	testimonialCount, _ := a.testimonials.Count()
	postCount, _ := a.posts.Count()
	galleryCount, _ := a.gallery.Count()

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"TestimonialCount": testimonialCount,
			"PostCount":        postCount,
			"GalleryCount":     galleryCount,
		},
	})
}

// invalidatePages drops every cached public page. The homepage embeds
// testimonials and blog teasers, so any content change can affect it.
func (a *Admin) invalidatePages(r *http.Request) {
	a.pageCache.InvalidateAll(r.Context())
}

// optionalStr returns a pointer to s, or nil when s is empty. Optional
// columns store NULL rather than the empty string.
func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
