// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

// Package media implements the image lifecycle behind the content manager:
// reference resolution for display, validated uploads into object storage,
// and best-effort cleanup of orphaned objects when references change.
package media

import (
	"fmt"
	"regexp"
	"strings"
)

// Google Drive share links cannot be used directly as image sources; the
// embedded file ID has to be rewritten into the direct-content form.
// Two formats appear in practice: the path-style /file/d/<id> link and the
// query-style open?id=<id> link.
var drivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`drive\.google\.com/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`drive\.google\.com/open\?id=([a-zA-Z0-9_-]+)`),
}

// Display-time transformation presets. The storage host is asked to resize
// and recompress on the fly via query parameters; hosts that don't support
// transformation ignore them and serve the original, so nothing breaks.
const (
	thumbWidth   = 600
	thumbQuality = 70
	fullWidth    = 1200
	fullQuality  = 80
	imageFormat  = "webp"
)

// Resolver normalizes externally supplied image references and decorates
// our own storage URLs with display-time transformation parameters.
type Resolver struct {
	storageHost string
}

// NewResolver creates a Resolver. storageHost is the base URL our public
// file URLs are built on; URLs containing it get transformation parameters.
// An empty storageHost disables transformation (share-link rewriting still
// works).
func NewResolver(storageHost string) *Resolver {
	return &Resolver{storageHost: storageHost}
}

// Resolve rewrites a shareable link into its direct-content URL. The first
// matching pattern wins; anything that isn't a recognized share link is
// returned unchanged. Empty input stays empty.
func (r *Resolver) Resolve(raw string) string {
	if raw == "" {
		return raw
	}
	for _, p := range drivePatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return "https://drive.google.com/uc?export=view&id=" + m[1]
		}
	}
	return raw
}

// Thumbnail returns a display URL sized for cards and teasers.
func (r *Resolver) Thumbnail(raw string) string {
	return r.transform(raw, thumbWidth, thumbQuality)
}

// FullSize returns a display URL sized for detail pages.
func (r *Resolver) FullSize(raw string) string {
	return r.transform(raw, fullWidth, fullQuality)
}

// transform appends width/quality/format query parameters when the URL
// belongs to our storage host. External URLs pass through untouched.
func (r *Resolver) transform(raw string, width, quality int) string {
	if raw == "" {
		return raw
	}
	if r.storageHost == "" || !strings.Contains(raw, r.storageHost) {
		return raw
	}

	separator := "?"
	if strings.Contains(raw, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%swidth=%d&quality=%d&format=%s", raw, separator, width, quality, imageFormat)
}
