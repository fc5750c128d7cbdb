// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// uploading, deleting, and serving media files. It wraps the AWS SDK v2
// and is configured for path-style access.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client wraps an S3 client for media operations on the two public buckets:
// the gallery bucket (keys at the bucket root) and the blog-images bucket
// (editor uploads live under the uploads/ prefix). Existing stored media
// references depend on this layout, so it must not change.
type Client struct {
	s3            *s3.Client
	galleryBucket string
	blogBucket    string
	endpoint      string
	publicURL     string // optional CDN/direct URL for public files
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to
// start without storage (media management is disabled in that case).
func New(endpoint, region, accessKey, secretKey, galleryBucket, blogBucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	// Build S3 client with static credentials and path-style access.
	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:            s3Client,
		galleryBucket: galleryBucket,
		blogBucket:    blogBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores an object in the specified bucket with public-read ACL so
// it can be served directly to site visitors.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=3600"),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Delete removes an object from the specified bucket.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for an object in the given bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(bucket, key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + bucket + "/" + key
	}
	return c.endpoint + "/" + bucket + "/" + key
}

// GalleryBucket returns the name of the gallery images bucket.
func (c *Client) GalleryBucket() string {
	return c.galleryBucket
}

// BlogBucket returns the name of the blog images bucket.
func (c *Client) BlogBucket() string {
	return c.blogBucket
}

// Host returns the base URL that public file URLs are built on. The media
// resolver uses it to recognize our own storage URLs.
func (c *Client) Host() string {
	if c.publicURL != "" {
		return c.publicURL
	}
	return c.endpoint
}

// ExtractKey extracts the bucket and object key from a public file URL.
// Returns ("", "", false) if the URL doesn't belong to this storage.
func (c *Client) ExtractKey(rawURL string) (bucket, key string, ok bool) {
	for _, b := range []string{c.galleryBucket, c.blogBucket} {
		// Try publicURL prefix first (CDN or custom domain), then the
		// path-style endpoint URL.
		if c.publicURL != "" {
			prefix := c.publicURL + "/" + b + "/"
			if strings.HasPrefix(rawURL, prefix) {
				return b, rawURL[len(prefix):], true
			}
		}
		prefix := c.endpoint + "/" + b + "/"
		if strings.HasPrefix(rawURL, prefix) {
			return b, rawURL[len(prefix):], true
		}
	}
	return "", "", false
}
