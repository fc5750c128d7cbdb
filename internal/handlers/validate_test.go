// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidateTestimonial(t *testing.T) {
	longURL := "https://example.com/" + strings.Repeat("x", maxURLLen)

	tests := []struct {
		name    string
		author  string
		content string
		image   string
		video   string
		wantOK  bool
	}{
		{"valid", "Margaret H.", "Wonderful care for my mother.", "", "", true},
		{"valid with urls", "Tom B.", "Lovely staff.", "https://example.com/a.jpg", "https://youtube.com/embed/abc", true},
		{"missing author", "", "Great place.", "", "", false},
		{"whitespace author", "   ", "Great place.", "", "", false},
		{"author too long", strings.Repeat("a", maxAuthorLen+1), "Great place.", "", "", false},
		{"author at limit", strings.Repeat("a", maxAuthorLen), "Great place.", "", "", true},
		{"missing content", "Margaret H.", "", "", "", false},
		{"content too long", "Margaret H.", strings.Repeat("b", maxTestimonialLen+1), "", "", false},
		{"content at limit", "Margaret H.", strings.Repeat("b", maxTestimonialLen), "", "", true},
		{"image url too long", "Margaret H.", "Great place.", longURL, "", false},
		{"video url too long", "Margaret H.", "Great place.", "", longURL, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateTestimonial(tt.author, tt.content, tt.image, tt.video)
			if tt.wantOK && msg != "" {
				t.Errorf("expected valid, got %q", msg)
			}
			if !tt.wantOK && msg == "" {
				t.Error("expected validation error, got none")
			}
		})
	}
}

func TestValidateBlogPost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		excerpt string
		link    string
		wantOK  bool
	}{
		{"valid", "Summer Garden Party", "We had a lovely afternoon.", "", "", true},
		{"missing title", "", "Content here.", "", "", false},
		{"title too long", strings.Repeat("t", maxTitleLen+1), "Content.", "", "", false},
		{"title at limit", strings.Repeat("t", maxTitleLen), "Content.", "", "", true},
		{"missing content", "Title", "", "", "", false},
		{"content too long", "Title", strings.Repeat("c", maxPostContentLen+1), "", "", false},
		{"excerpt too long", "Title", "Content.", strings.Repeat("e", maxExcerptLen+1), "", false},
		{"excerpt at limit", "Title", "Content.", strings.Repeat("e", maxExcerptLen), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateBlogPost(tt.title, tt.content, tt.excerpt, "", tt.link, "")
			if tt.wantOK && msg != "" {
				t.Errorf("expected valid, got %q", msg)
			}
			if !tt.wantOK && msg == "" {
				t.Error("expected validation error, got none")
			}
		})
	}

	t.Run("link text too long", func(t *testing.T) {
		if msg := validateBlogPost("Title", "Content.", "", "", "", strings.Repeat("l", maxLinkTextLen+1)); msg == "" {
			t.Error("expected validation error, got none")
		}
	})
}

func TestValidateAltText(t *testing.T) {
	if msg := validateAltText(strings.Repeat("a", maxAltTextLen)); msg != "" {
		t.Errorf("expected valid at limit, got %q", msg)
	}
	if msg := validateAltText(strings.Repeat("a", maxAltTextLen+1)); msg == "" {
		t.Error("expected validation error over limit")
	}
}
