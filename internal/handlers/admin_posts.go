// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"willowhaven/internal/models"
	"willowhaven/internal/render"
)

// publishedDateLayout is the format of the date input on the post form.
const publishedDateLayout = "2006-01-02"

// PostsList renders the blog post management page.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.posts.List()
	if err != nil {
		slog.Error("posts list failed", "error", err)
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Blog Posts",
		Section: "posts",
		Data:    map[string]any{"Posts": items},
	})
}

// PostNew renders the empty blog post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New Post",
		Section: "posts",
		Data: map[string]any{
			"Post":   (*models.BlogPost)(nil),
			"Action": "/admin/posts",
		},
	})
}

// PostCreate handles the new post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	content := r.FormValue("content")
	excerpt := r.FormValue("excerpt")
	imageURL := a.resolver.Resolve(r.FormValue("image_url"))
	externalLink := r.FormValue("external_link")
	linkText := r.FormValue("link_text")

	if msg := validateBlogPost(title, content, excerpt, imageURL, externalLink, linkText); msg != "" {
		a.renderPostForm(w, r, "New Post", nil, "/admin/posts", msg)
		return
	}

	p := &models.BlogPost{
		Title:            title,
		Content:          content,
		Excerpt:          optionalStr(excerpt),
		ImageURL:         optionalStr(imageURL),
		ExternalLink:     optionalStr(externalLink),
		ExternalLinkText: optionalStr(linkText),
		PublishedDate:    parsePublishedDate(r.FormValue("published_date")),
		IsPublished:      r.FormValue("is_published") == "1",
	}

	if _, err := a.posts.Create(p); err != nil {
		slog.Error("post create failed", "error", err)
		a.renderPostForm(w, r, "New Post", nil, "/admin/posts", "Could not save the post. Please try again.")
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the edit form for a blog post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findPost(w, r)
	if !ok {
		return
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "Edit Post",
		Section: "posts",
		Data: map[string]any{
			"Post":   p,
			"Action": "/admin/posts/" + p.ID.String(),
		},
	})
}

// PostUpdate handles the edit form submission. A replaced header image is
// removed from storage once the new URL is saved.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findPost(w, r)
	if !ok {
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	excerpt := r.FormValue("excerpt")
	imageURL := a.resolver.Resolve(r.FormValue("image_url"))
	externalLink := r.FormValue("external_link")
	linkText := r.FormValue("link_text")
	action := "/admin/posts/" + p.ID.String()

	if msg := validateBlogPost(title, content, excerpt, imageURL, externalLink, linkText); msg != "" {
		a.renderPostForm(w, r, "Edit Post", p, action, msg)
		return
	}

	oldImage := p.ImageURL
	p.Title = title
	p.Content = content
	p.Excerpt = optionalStr(excerpt)
	p.ImageURL = optionalStr(imageURL)
	p.ExternalLink = optionalStr(externalLink)
	p.ExternalLinkText = optionalStr(linkText)
	p.PublishedDate = parsePublishedDate(r.FormValue("published_date"))
	p.IsPublished = r.FormValue("is_published") == "1"

	if err := a.posts.Update(p); err != nil {
		slog.Error("post update failed", "error", err, "id", p.ID)
		a.renderPostForm(w, r, "Edit Post", p, action, "Could not save the post. Please try again.")
		return
	}

	a.cleaner.CleanupOnChange(r.Context(), oldImage, p.ImageURL)
	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete removes a blog post and its uploaded header image.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findPost(w, r)
	if !ok {
		return
	}

	// Stored image first, then the record.
	if p.ImageURL != nil {
		a.cleaner.Cleanup(r.Context(), *p.ImageURL)
	}

	if err := a.posts.Delete(p.ID); err != nil {
		slog.Error("post delete failed", "error", err, "id", p.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

func (a *Admin) findPost(w http.ResponseWriter, r *http.Request) (*models.BlogPost, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	p, err := a.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if p == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

func (a *Admin) renderPostForm(w http.ResponseWriter, r *http.Request, title string, p *models.BlogPost, action, errMsg string) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Flashes: []render.Flash{{Type: "error", Message: errMsg}},
		Data: map[string]any{
			"Post":   p,
			"Action": action,
		},
	})
}

// parsePublishedDate parses the date input value, defaulting to today when
// the field is empty or malformed.
func parsePublishedDate(v string) time.Time {
	if v != "" {
		if d, err := time.Parse(publishedDateLayout, v); err == nil {
			return d
		}
	}
	return time.Now().Truncate(24 * time.Hour)
}
