// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package storage

import "testing"

// testClient builds a client with known endpoints without touching the
// network; URL and key helpers are pure string operations.
func testClient(publicURL string) *Client {
	return &Client{
		galleryBucket: "gallery-images",
		blogBucket:    "blog-images",
		endpoint:      "https://s3.example.com",
		publicURL:     publicURL,
	}
}

func TestFileURL(t *testing.T) {
	c := testClient("")
	got := c.FileURL("blog-images", "uploads/abc.jpg")
	want := "https://s3.example.com/blog-images/uploads/abc.jpg"
	if got != want {
		t.Errorf("FileURL() = %q, want %q", got, want)
	}

	c = testClient("https://cdn.willowhavencare.com")
	got = c.FileURL("gallery-images", "xyz.png")
	want = "https://cdn.willowhavencare.com/gallery-images/xyz.png"
	if got != want {
		t.Errorf("FileURL() with publicURL = %q, want %q", got, want)
	}
}

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name       string
		publicURL  string
		rawURL     string
		wantBucket string
		wantKey    string
		wantOK     bool
	}{
		{
			name:       "path-style blog upload",
			rawURL:     "https://s3.example.com/blog-images/uploads/tok-123.jpg",
			wantBucket: "blog-images",
			wantKey:    "uploads/tok-123.jpg",
			wantOK:     true,
		},
		{
			name:       "path-style gallery key",
			rawURL:     "https://s3.example.com/gallery-images/photo.webp",
			wantBucket: "gallery-images",
			wantKey:    "photo.webp",
			wantOK:     true,
		},
		{
			name:       "cdn URL",
			publicURL:  "https://cdn.willowhavencare.com",
			rawURL:     "https://cdn.willowhavencare.com/blog-images/uploads/a.png",
			wantBucket: "blog-images",
			wantKey:    "uploads/a.png",
			wantOK:     true,
		},
		{
			name:   "external URL",
			rawURL: "https://drive.google.com/uc?export=view&id=ABC",
			wantOK: false,
		},
		{
			name:   "unknown bucket on our host",
			rawURL: "https://s3.example.com/other-bucket/key.jpg",
			wantOK: false,
		},
		{
			name:   "empty",
			rawURL: "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(tt.publicURL)
			bucket, key, ok := c.ExtractKey(tt.rawURL)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if bucket != tt.wantBucket || key != tt.wantKey {
				t.Errorf("got (%q, %q), want (%q, %q)", bucket, key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func TestNewReturnsNilWithoutCredentials(t *testing.T) {
	c, err := New("", "us-east-1", "", "", "gallery-images", "blog-images", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("expected nil client when storage is not configured")
	}
}
