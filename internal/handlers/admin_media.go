// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"willowhaven/internal/media"
)

// MediaUpload handles an image upload from the blog post editor. The file
// goes to the blog bucket under uploads/ and the response carries the
// public URL for the image_url field.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.blogUpload == nil {
		writeMediaError(w, "Object storage is not configured.", http.StatusServiceUnavailable)
		return
	}
	if a.blogUpload.Busy() {
		writeMediaError(w, "Another upload is already in progress.", http.StatusConflict)
		return
	}

	file, header, contentType, errMsg := openUploadedFile(w, r)
	if errMsg != "" {
		writeMediaError(w, errMsg, http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := a.blogUpload.Upload(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		var ve *media.ValidationError
		if errors.As(err, &ve) {
			writeMediaError(w, ve.Reason, http.StatusBadRequest)
			return
		}
		slog.Error("blog image upload failed", "error", err, "filename", header.Filename)
		writeMediaError(w, "Failed to upload the file.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"url": url})
}

// writeMediaError sends a JSON error response for media endpoints.
func writeMediaError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
