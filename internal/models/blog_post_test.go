// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"testing"
)

func TestBlogPostTeaserExcerpt(t *testing.T) {
	t.Run("explicit excerpt wins", func(t *testing.T) {
		excerpt := "A short summary."
		p := &BlogPost{Content: "<p>Long content here</p>", Excerpt: &excerpt}
		if got := p.TeaserExcerpt(); got != "A short summary." {
			t.Errorf("TeaserExcerpt() = %q, want explicit excerpt", got)
		}
	})

	t.Run("derives from tag-stripped content", func(t *testing.T) {
		long := "<p>" + strings.Repeat("a", 150) + "</p>"
		p := &BlogPost{Content: long}
		got := p.TeaserExcerpt()
		want := strings.Repeat("a", 100) + "..."
		if got != want {
			t.Errorf("TeaserExcerpt() = %q, want %q", got, want)
		}
	})

	t.Run("short content keeps ellipsis marker", func(t *testing.T) {
		p := &BlogPost{Content: "<p>Hello world</p>"}
		if got := p.TeaserExcerpt(); got != "Hello world..." {
			t.Errorf("TeaserExcerpt() = %q, want %q", got, "Hello world...")
		}
	})

	t.Run("empty excerpt falls back to content", func(t *testing.T) {
		empty := ""
		p := &BlogPost{Content: "<p>Body</p>", Excerpt: &empty}
		if got := p.TeaserExcerpt(); got != "Body..." {
			t.Errorf("TeaserExcerpt() = %q, want %q", got, "Body...")
		}
	})

	t.Run("strips nested markup", func(t *testing.T) {
		p := &BlogPost{Content: `<p>Visit <a href="https://example.com">our page</a> today</p>`}
		if got := p.TeaserExcerpt(); got != "Visit our page today..." {
			t.Errorf("TeaserExcerpt() = %q", got)
		}
	})
}

func TestBlogPostLinkLabel(t *testing.T) {
	link := "https://youtube.com/embed/abc"
	label := "Watch the Tour"

	p := &BlogPost{ExternalLink: &link, ExternalLinkText: &label}
	if got := p.LinkLabel(); got != "Watch the Tour" {
		t.Errorf("LinkLabel() = %q, want custom label", got)
	}

	p = &BlogPost{ExternalLink: &link}
	if got := p.LinkLabel(); got != "Learn More" {
		t.Errorf("LinkLabel() = %q, want fallback", got)
	}
}

func TestBlogPostHasVideoLink(t *testing.T) {
	embed := "https://youtube.com/embed/abc123"
	site := "https://example.com/article"

	p := &BlogPost{ExternalLink: &embed}
	if !p.HasVideoLink() {
		t.Error("expected embed URL to be detected as video")
	}

	p = &BlogPost{ExternalLink: &site}
	if p.HasVideoLink() {
		t.Error("plain link should not be detected as video")
	}

	p = &BlogPost{}
	if p.HasVideoLink() {
		t.Error("nil link should not be detected as video")
	}
}
