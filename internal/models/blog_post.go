// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// teaserExcerptLen is the number of characters of tag-stripped content
// shown on blog cards when a post has no explicit excerpt.
const teaserExcerptLen = 100

// tagPattern matches HTML tags for excerpt derivation. The blog editor
// stores markup, so a plain-text teaser has to strip it first.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// BlogPost is a news or update article written by staff. Content is stored
// as markup (Markdown with raw HTML passthrough) and rendered at display
// time. Posts are listed newest-first by published date.
type BlogPost struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Excerpt          *string   `json:"excerpt,omitempty"`
	ImageURL         *string   `json:"image_url,omitempty"`
	ExternalLink     *string   `json:"external_link,omitempty"`
	ExternalLinkText *string   `json:"external_link_text,omitempty"`
	PublishedDate    time.Time `json:"published_date"`
	IsPublished      bool      `json:"is_published"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TeaserExcerpt returns the excerpt shown on blog cards. When the post has
// an explicit excerpt it is used verbatim; otherwise the content is
// tag-stripped and truncated to 100 characters with an ellipsis marker.
func (p BlogPost) TeaserExcerpt() string {
	if p.Excerpt != nil && *p.Excerpt != "" {
		return *p.Excerpt
	}
	plain := tagPattern.ReplaceAllString(p.Content, "")
	runes := []rune(plain)
	if len(runes) > teaserExcerptLen {
		plain = string(runes[:teaserExcerptLen])
	}
	return plain + "..."
}

// LinkLabel returns the label for the optional external link, falling back
// to a generic label when no link text was provided.
func (p BlogPost) LinkLabel() string {
	if p.ExternalLinkText != nil && *p.ExternalLinkText != "" {
		return *p.ExternalLinkText
	}
	return "Learn More"
}

// HasVideoLink reports whether the external link points at an embeddable
// video (YouTube embed URLs pasted by staff).
func (p BlogPost) HasVideoLink() bool {
	return p.ExternalLink != nil && strings.Contains(*p.ExternalLink, "youtube.com/embed/")
}
