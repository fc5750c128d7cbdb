// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"willowhaven/internal/models"
	"willowhaven/internal/render"
)

// TestimonialsList renders the testimonials management page.
func (a *Admin) TestimonialsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.testimonials.List()
	if err != nil {
		slog.Error("testimonials list failed", "error", err)
	}

	a.renderer.Page(w, r, "testimonials_list", &render.PageData{
		Title:   "Testimonials",
		Section: "testimonials",
		Data:    map[string]any{"Testimonials": items},
	})
}

// TestimonialNew renders the empty testimonial form.
func (a *Admin) TestimonialNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "testimonial_form", &render.PageData{
		Title:   "Add Testimonial",
		Section: "testimonials",
		Data: map[string]any{
			"Testimonial": (*models.Testimonial)(nil),
			"Action":      "/admin/testimonials",
		},
	})
}

// TestimonialCreate handles the new testimonial form submission.
func (a *Admin) TestimonialCreate(w http.ResponseWriter, r *http.Request) {
	author := r.FormValue("author")
	content := r.FormValue("content")
	imageURL := a.resolver.Resolve(r.FormValue("image_url"))
	videoURL := a.resolver.Resolve(r.FormValue("video_url"))

	if msg := validateTestimonial(author, content, imageURL, videoURL); msg != "" {
		a.renderTestimonialForm(w, r, "Add Testimonial", nil, "/admin/testimonials", msg)
		return
	}

	// New testimonials go to the end of the carousel.
	count, _ := a.testimonials.Count()
	t := &models.Testimonial{
		Author:       author,
		Content:      content,
		ImageURL:     optionalStr(imageURL),
		VideoURL:     optionalStr(videoURL),
		IsActive:     r.FormValue("is_active") == "1",
		DisplayOrder: count,
	}

	if _, err := a.testimonials.Create(t); err != nil {
		slog.Error("testimonial create failed", "error", err)
		a.renderTestimonialForm(w, r, "Add Testimonial", nil, "/admin/testimonials", "Could not save the testimonial. Please try again.")
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
}

// TestimonialEdit renders the edit form for a testimonial.
func (a *Admin) TestimonialEdit(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTestimonial(w, r)
	if !ok {
		return
	}

	a.renderer.Page(w, r, "testimonial_form", &render.PageData{
		Title:   "Edit Testimonial",
		Section: "testimonials",
		Data: map[string]any{
			"Testimonial": t,
			"Action":      "/admin/testimonials/" + t.ID.String(),
		},
	})
}

// TestimonialUpdate handles the edit form submission. When the photo URL
// changes, the previously uploaded file is removed from storage.
func (a *Admin) TestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTestimonial(w, r)
	if !ok {
		return
	}

	author := r.FormValue("author")
	content := r.FormValue("content")
	imageURL := a.resolver.Resolve(r.FormValue("image_url"))
	videoURL := a.resolver.Resolve(r.FormValue("video_url"))
	action := "/admin/testimonials/" + t.ID.String()

	if msg := validateTestimonial(author, content, imageURL, videoURL); msg != "" {
		a.renderTestimonialForm(w, r, "Edit Testimonial", t, action, msg)
		return
	}

	oldImage := t.ImageURL
	t.Author = author
	t.Content = content
	t.ImageURL = optionalStr(imageURL)
	t.VideoURL = optionalStr(videoURL)
	t.IsActive = r.FormValue("is_active") == "1"

	if err := a.testimonials.Update(t); err != nil {
		slog.Error("testimonial update failed", "error", err, "id", t.ID)
		a.renderTestimonialForm(w, r, "Edit Testimonial", t, action, "Could not save the testimonial. Please try again.")
		return
	}

	a.cleaner.CleanupOnChange(r.Context(), oldImage, t.ImageURL)
	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
}

// TestimonialDelete removes a testimonial and its uploaded photo.
func (a *Admin) TestimonialDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTestimonial(w, r)
	if !ok {
		return
	}

	// Stored photo first, then the record.
	if t.ImageURL != nil {
		a.cleaner.Cleanup(r.Context(), *t.ImageURL)
	}

	if err := a.testimonials.Delete(t.ID); err != nil {
		slog.Error("testimonial delete failed", "error", err, "id", t.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/testimonials", http.StatusSeeOther)
}

// findTestimonial loads the testimonial named by the id route parameter,
// writing a 400 or 404 response when it cannot.
func (a *Admin) findTestimonial(w http.ResponseWriter, r *http.Request) (*models.Testimonial, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	t, err := a.testimonials.FindByID(id)
	if err != nil {
		slog.Error("testimonial lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if t == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return t, true
}

func (a *Admin) renderTestimonialForm(w http.ResponseWriter, r *http.Request, title string, t *models.Testimonial, action, errMsg string) {
	a.renderer.Page(w, r, "testimonial_form", &render.PageData{
		Title:   title,
		Section: "testimonials",
		Flashes: []render.Flash{{Type: "error", Message: errMsg}},
		Data: map[string]any{
			"Testimonial": t,
			"Action":      action,
		},
	})
}
