// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Field limits mirror the column sizes in the schema. Validation happens
// before any write so oversized input never reaches PostgreSQL.
const (
	maxAuthorLen      = 100
	maxTestimonialLen = 500
	maxURLLen         = 2048
	maxTitleLen       = 200
	maxPostContentLen = 50000
	maxExcerptLen     = 300
	maxLinkTextLen    = 100
	maxAltTextLen     = 255
)

// validateTestimonial checks testimonial form input and returns an error
// message for display, or "" if the input is valid.
func validateTestimonial(author, content, imageURL, videoURL string) string {
	if strings.TrimSpace(author) == "" {
		return "Author is required."
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return "Author must be 100 characters or fewer."
	}
	if strings.TrimSpace(content) == "" {
		return "Testimonial text is required."
	}
	if utf8.RuneCountInString(content) > maxTestimonialLen {
		return "Testimonial text must be 500 characters or fewer."
	}
	if msg := validateURL(imageURL, "Photo URL"); msg != "" {
		return msg
	}
	if msg := validateURL(videoURL, "Video URL"); msg != "" {
		return msg
	}
	return ""
}

// validateBlogPost checks blog post form input and returns an error message
// for display, or "" if the input is valid.
func validateBlogPost(title, content, excerpt, imageURL, externalLink, linkText string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title must be 200 characters or fewer."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxPostContentLen {
		return "Content is too long."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt must be 300 characters or fewer."
	}
	if msg := validateURL(imageURL, "Image URL"); msg != "" {
		return msg
	}
	if msg := validateURL(externalLink, "External link"); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(linkText) > maxLinkTextLen {
		return "Link text must be 100 characters or fewer."
	}
	return ""
}

// validateAltText bounds gallery alt text, returning "" when valid.
func validateAltText(alt string) string {
	if utf8.RuneCountInString(alt) > maxAltTextLen {
		return "Alt text must be 255 characters or fewer."
	}
	return ""
}

func validateURL(raw, label string) string {
	if utf8.RuneCountInString(raw) > maxURLLen {
		return label + " is too long."
	}
	return ""
}
