// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"willowhaven/internal/media"
	"willowhaven/internal/models"
	"willowhaven/internal/render"
)

// GalleryPage renders the photo gallery management page.
func (a *Admin) GalleryPage(w http.ResponseWriter, r *http.Request) {
	a.renderGallery(w, r, "")
}

// GalleryUpload handles a multipart photo upload. The file is validated
// and stored before a record is created; a new photo lands at the end of
// the gallery.
func (a *Admin) GalleryUpload(w http.ResponseWriter, r *http.Request) {
	if a.galleryUpload == nil {
		a.renderGallery(w, r, "Object storage is not configured.")
		return
	}

	file, header, contentType, errMsg := openUploadedFile(w, r)
	if errMsg != "" {
		a.renderGallery(w, r, errMsg)
		return
	}
	defer file.Close()

	alt := r.FormValue("alt_text")
	if msg := validateAltText(alt); msg != "" {
		a.renderGallery(w, r, msg)
		return
	}

	url, err := a.galleryUpload.Upload(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		var ve *media.ValidationError
		if errors.As(err, &ve) {
			a.renderGallery(w, r, ve.Reason)
			return
		}
		slog.Error("gallery upload failed", "error", err, "filename", header.Filename)
		a.renderGallery(w, r, "Upload failed. Please try again.")
		return
	}

	maxOrder, err := a.gallery.MaxDisplayOrder()
	if err != nil {
		slog.Error("gallery max order failed", "error", err)
	}

	g := &models.GalleryImage{
		ImageURL:     url,
		AltText:      optionalStr(alt),
		DisplayOrder: maxOrder + 1,
	}
	if _, err := a.gallery.Create(g); err != nil {
		slog.Error("gallery create failed", "error", err)
		// The object is already in storage; remove it so it cannot leak.
		a.cleaner.Cleanup(r.Context(), url)
		a.renderGallery(w, r, "Could not save the photo. Please try again.")
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

// GalleryMove swaps a photo with its neighbor in the given direction.
// Moving the first photo up or the last photo down is a no-op.
func (a *Admin) GalleryMove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	direction := r.FormValue("direction")
	if direction != "up" && direction != "down" {
		http.Error(w, "Invalid direction", http.StatusBadRequest)
		return
	}

	images, err := a.gallery.List()
	if err != nil {
		slog.Error("gallery list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	idx := -1
	for i := range images {
		if images[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	other := idx - 1
	if direction == "down" {
		other = idx + 1
	}
	if other < 0 || other >= len(images) {
		http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
		return
	}

	if err := a.gallery.SwapOrder(&images[idx], &images[other]); err != nil {
		slog.Error("gallery reorder failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

// GalleryDelete removes a photo record and its stored file.
func (a *Admin) GalleryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	g, err := a.gallery.FindByID(id)
	if err != nil {
		slog.Error("gallery lookup failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if g == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	// Stored photo first, then the record.
	a.cleaner.Cleanup(r.Context(), g.ImageURL)

	if err := a.gallery.Delete(g.ID); err != nil {
		slog.Error("gallery delete failed", "error", err, "id", g.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidatePages(r)
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

func (a *Admin) renderGallery(w http.ResponseWriter, r *http.Request, errMsg string) {
	images, err := a.gallery.List()
	if err != nil {
		slog.Error("gallery list failed", "error", err)
	}

	var flashes []render.Flash
	if errMsg != "" {
		flashes = []render.Flash{{Type: "error", Message: errMsg}}
	}

	a.renderer.Page(w, r, "gallery", &render.PageData{
		Title:   "Photo Gallery",
		Section: "gallery",
		Flashes: flashes,
		Data: map[string]any{
			"Images":    images,
			"LastIndex": len(images) - 1,
		},
	})
}

// openUploadedFile extracts the uploaded file from a multipart form and
// sniffs its content type. The reader is positioned at the start of the
// file on return. A non-empty errMsg is suitable for display.
func openUploadedFile(w http.ResponseWriter, r *http.Request) (file io.ReadSeekCloser, header *multipartHeader, contentType, errMsg string) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+4096)
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		return nil, nil, "", "File is too large. Maximum size is 5 MB."
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		return nil, nil, "", "No file provided."
	}

	sniff := make([]byte, 512)
	n, err := f.Read(sniff)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, nil, "", "Failed to read the file."
	}
	contentType = http.DetectContentType(sniff[:n])

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, "", "Failed to process the file."
	}

	return f, &multipartHeader{Filename: fh.Filename, Size: fh.Size}, contentType, ""
}

// multipartHeader carries the upload metadata handlers care about.
type multipartHeader struct {
	Filename string
	Size     int64
}
