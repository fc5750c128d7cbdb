// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// clientWindow holds the recent request times for one client IP.
type clientWindow struct {
	mu    sync.Mutex
	times []time.Time
}

// prune drops entries older than cutoff and reports how many remain.
func (cw *clientWindow) prune(cutoff time.Time) int {
	kept := cw.times[:0]
	for _, ts := range cw.times {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cw.times = kept
	return len(kept)
}

// RateLimiter caps requests per client IP over a sliding window. Used on
// the login endpoint to slow down password guessing.
type RateLimiter struct {
	mu     sync.RWMutex
	byIP   map[string]*clientWindow
	limit  int
	window time.Duration
	done   chan struct{}
}

// NewRateLimiter creates a limiter allowing limit requests per window and
// starts a background goroutine that evicts idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		byIP:   make(map[string]*clientWindow),
		limit:  limit,
		window: window,
		done:   make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.done:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background eviction goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// allow records a request for key and reports whether it stays within the
// limit.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.RLock()
	cw := rl.byIP[key]
	rl.mu.RUnlock()

	if cw == nil {
		rl.mu.Lock()
		cw = rl.byIP[key]
		if cw == nil {
			cw = &clientWindow{}
			rl.byIP[key] = cw
		}
		rl.mu.Unlock()
	}

	now := time.Now()

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.prune(now.Add(-rl.window)) >= rl.limit {
		return false
	}
	cw.times = append(cw.times, now)
	return true
}

// cleanup evicts clients with no requests inside the current window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.byIP {
		cw.mu.Lock()
		remaining := cw.prune(cutoff)
		cw.mu.Unlock()
		if remaining == 0 {
			delete(rl.byIP, key)
		}
	}
}

// Middleware rejects over-limit requests with 429 Too Many Requests.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, preferring proxy headers so the
// limiter keys on the real client rather than the reverse proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the originating client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
