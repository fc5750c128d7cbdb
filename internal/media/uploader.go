// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is the slice of the storage client the media package needs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, bucket, key string) error
	FileURL(bucket, key string) string
}

// MaxUploadBytes caps upload size at 5 MiB.
const MaxUploadBytes = 5_242_880

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidationError reports an upload rejected before reaching storage, so
// handlers can answer with a 4xx instead of a 5xx.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Uploader stores validated image files under a bucket, optionally below a
// fixed key prefix. It tracks whether an upload is in flight so the admin
// UI can disable its submit controls.
type Uploader struct {
	store  ObjectStore
	bucket string
	prefix string

	busy atomic.Bool
}

// NewUploader creates an Uploader writing into bucket. prefix, when not
// empty, is prepended to every generated key and should end with a slash.
func NewUploader(store ObjectStore, bucket, prefix string) *Uploader {
	return &Uploader{store: store, bucket: bucket, prefix: prefix}
}

// Busy reports whether an upload is currently in flight.
func (u *Uploader) Busy() bool {
	return u.busy.Load()
}

// Upload validates the file and writes it to storage under a generated key,
// returning the public URL of the stored object. Validation failures are
// returned as *ValidationError and never touch storage.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	u.busy.Store(true)
	defer u.busy.Store(false)

	if !allowedImageTypes[contentType] {
		return "", &ValidationError{Reason: "only JPEG, PNG, WebP and GIF images are allowed"}
	}
	if size > MaxUploadBytes {
		return "", &ValidationError{Reason: "image must be 5MB or smaller"}
	}

	key := u.prefix + newObjectName(filename)
	if err := u.store.Upload(ctx, u.bucket, key, contentType, body, size); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return u.store.FileURL(u.bucket, key), nil
}

// newObjectName builds a collision-free object name from a random token,
// the current time in milliseconds and the original file extension.
func newObjectName(filename string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s-%d%s", token, time.Now().UnixMilli(), ext)
}
