// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"willowhaven/internal/cache"
	"willowhaven/internal/markdown"
	"willowhaven/internal/media"
	"willowhaven/internal/models"
	"willowhaven/internal/render"
	"willowhaven/internal/store"
)

// homePostCount is how many recent posts appear in the homepage teaser.
const homePostCount = 3

// Public groups the visitor-facing page handlers. Pages are rendered to
// bytes, cached in Valkey, and served from cache until the next content
// change. Store errors degrade to empty sections rather than failing the
// whole page.
type Public struct {
	renderer     *render.Renderer
	testimonials *store.TestimonialStore
	posts        *store.BlogPostStore
	gallery      *store.GalleryImageStore
	resolver     *media.Resolver
	pageCache    *cache.PageCache
}

// NewPublic creates the public handler group.
func NewPublic(renderer *render.Renderer, testimonials *store.TestimonialStore, posts *store.BlogPostStore, gallery *store.GalleryImageStore, resolver *media.Resolver, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:     renderer,
		testimonials: testimonials,
		posts:        posts,
		gallery:      gallery,
		resolver:     resolver,
		pageCache:    pageCache,
	}
}

// Home renders the homepage with the testimonial carousel and the three
// most recent published posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.HomeKey()) {
		return
	}

	testimonials, err := p.testimonials.ListActive()
	if err != nil {
		slog.Error("homepage testimonials failed", "error", err)
	}
	posts, err := p.posts.ListPublished(homePostCount)
	if err != nil {
		slog.Error("homepage posts failed", "error", err)
	}

	thumbs := make(map[uuid.UUID]string)
	p.addPostThumbnails(thumbs, posts)

	p.servePage(w, r, cache.HomeKey(), "home", &render.SiteData{
		Title:       "Willow Haven Senior Living",
		Description: "A warm residential senior care community offering assisted living, memory care, and respite stays.",
		Active:      "home",
		Data: map[string]any{
			"Testimonials": testimonials,
			"Posts":        posts,
			"Thumbnails":   thumbs,
		},
	})
}

// Blog renders the news listing page with all published posts.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.BlogIndexKey()) {
		return
	}

	posts, err := p.posts.ListPublished(0)
	if err != nil {
		slog.Error("blog listing failed", "error", err)
	}

	thumbs := make(map[uuid.UUID]string)
	p.addPostThumbnails(thumbs, posts)

	p.servePage(w, r, cache.BlogIndexKey(), "blog", &render.SiteData{
		Title:       "News & Updates - Willow Haven Senior Living",
		Description: "News, events, and updates from the Willow Haven community.",
		Active:      "blog",
		Data: map[string]any{
			"Posts":      posts,
			"Thumbnails": thumbs,
		},
	})
}

// BlogPost renders a single published post. Drafts and unknown IDs both
// return 404 so draft URLs reveal nothing.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	key := cache.PostKey(id.String())
	if p.serveCached(w, r, key) {
		return
	}

	post, err := p.posts.FindPublishedByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	contentHTML, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("post markup render failed", "error", err, "id", id)
		contentHTML = post.Content
	}

	var fullImage string
	if post.ImageURL != nil {
		fullImage = p.resolver.FullSize(*post.ImageURL)
	}

	p.servePage(w, r, key, "blog_post", &render.SiteData{
		Title:       post.Title + " - Willow Haven Senior Living",
		Description: post.TeaserExcerpt(),
		Active:      "blog",
		Data: map[string]any{
			"Post":        post,
			"FullImage":   fullImage,
			"ContentHTML": contentHTML,
		},
	})
}

// Gallery renders the photo gallery page.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.GalleryKey()) {
		return
	}

	images, err := p.gallery.List()
	if err != nil {
		slog.Error("gallery listing failed", "error", err)
	}

	thumbs := make(map[uuid.UUID]string, len(images))
	for _, g := range images {
		thumbs[g.ID] = p.resolver.Thumbnail(g.ImageURL)
	}

	p.servePage(w, r, cache.GalleryKey(), "gallery", &render.SiteData{
		Title:       "Photo Gallery - Willow Haven Senior Living",
		Description: "Photos of life at Willow Haven: our home, gardens, and community events.",
		Active:      "gallery",
		Data: map[string]any{
			"Images":     images,
			"Thumbnails": thumbs,
		},
	})
}

// Testimonials renders the family testimonials page.
func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.TestimonialsKey()) {
		return
	}

	testimonials, err := p.testimonials.ListActive()
	if err != nil {
		slog.Error("testimonials listing failed", "error", err)
	}

	thumbs := make(map[uuid.UUID]string)
	for _, t := range testimonials {
		if t.ImageURL != nil && *t.ImageURL != "" {
			thumbs[t.ID] = p.resolver.Thumbnail(*t.ImageURL)
		}
	}

	p.servePage(w, r, cache.TestimonialsKey(), "testimonials", &render.SiteData{
		Title:       "Testimonials - Willow Haven Senior Living",
		Description: "What families say about life and care at Willow Haven.",
		Active:      "testimonials",
		Data: map[string]any{
			"Testimonials": testimonials,
			"Thumbnails":   thumbs,
		},
	})
}

// serveCached writes the cached copy of a page when one exists.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	html, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
	return true
}

// servePage renders a site template, caches the result, and writes it.
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, key, name string, data *render.SiteData) {
	html, err := p.renderer.SitePage(name, data)
	if err != nil {
		slog.Error("page render failed", "error", err, "page", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(r.Context(), key, html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (p *Public) addPostThumbnails(thumbs map[uuid.UUID]string, posts []models.BlogPost) {
	for _, post := range posts {
		if post.ImageURL != nil && *post.ImageURL != "" {
			thumbs[post.ID] = p.resolver.Thumbnail(*post.ImageURL)
		}
	}
}
