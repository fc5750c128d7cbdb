// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package media

import (
	"context"
	"log/slog"
	"strings"
)

// ownedMarker identifies editor uploads this system owns. Only URLs
// containing it (or URLs our storage client recognizes as its own) are
// eligible for deletion; everything else is treated as external.
const ownedMarker = "blog-images/uploads/"

// Cleaner removes storage objects whose database references went away.
// Deletion is best effort: the record change has already been committed, so
// a failed delete only leaves an orphaned file behind and is logged rather
// than surfaced.
// A nil *Cleaner is valid and skips all cleanup, for deployments
// without object storage.
type Cleaner struct {
	store      ObjectStore
	blogBucket string
	extract    func(rawURL string) (bucket, key string, ok bool)
	logger     *slog.Logger
}

// NewCleaner creates a Cleaner. extract maps a public URL back to the
// bucket and key it was served from and may be nil, in which case only
// editor uploads carrying the owned marker are cleaned up.
func NewCleaner(store ObjectStore, blogBucket string, extract func(string) (string, string, bool), logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{store: store, blogBucket: blogBucket, extract: extract, logger: logger}
}

// CleanupOnChange deletes the object behind oldURL when an update replaced
// or cleared it. It is a no-op when the reference did not change.
func (c *Cleaner) CleanupOnChange(ctx context.Context, oldURL, newURL *string) {
	if c == nil {
		return
	}
	old := deref(oldURL)
	if old == "" || old == deref(newURL) {
		return
	}
	c.Cleanup(ctx, old)
}

// Cleanup deletes the object behind url if this system owns it. External
// URLs and unrecognized hosts are left alone.
func (c *Cleaner) Cleanup(ctx context.Context, url string) {
	if c == nil || url == "" {
		return
	}

	if idx := strings.Index(url, ownedMarker); idx >= 0 {
		key := "uploads/" + url[idx+len(ownedMarker):]
		c.delete(ctx, c.blogBucket, key)
		return
	}

	if c.extract != nil {
		if bucket, key, ok := c.extract(url); ok {
			c.delete(ctx, bucket, key)
		}
	}
}

func (c *Cleaner) delete(ctx context.Context, bucket, key string) {
	if err := c.store.Delete(ctx, bucket, key); err != nil {
		c.logger.Warn("orphan cleanup failed", "bucket", bucket, "key", key, "error", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
