// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

// Package iconcache is an explicit TTL cache for app catalog icons. The
// dashboard previously kept these in an ambient global map with no
// eviction; this service gives the cache defined ownership, a TTL, and a
// size bound.
package iconcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

const maxIconBytes = 1 << 20 // 1 MiB per icon

type entry struct {
	data      []byte
	fetchedAt time.Time
}

// Cache fetches icons over HTTP and caches them for a TTL. Expired or
// evicted entries are re-fetched on the next Get.
type Cache struct {
	ttl        time.Duration
	maxEntries int
	httpc      *http.Client
	log        logr.Logger
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a cache holding at most maxEntries icons for ttl each.
func New(ttl time.Duration, maxEntries int, log logr.Logger) *Cache {
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		httpc:      &http.Client{Timeout: 15 * time.Second},
		log:        log.WithName("iconcache"),
		now:        time.Now,
		entries:    make(map[string]entry),
	}
}

// Get returns the icon at url, fetching it on a miss or after expiry.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	if e, ok := c.entries[url]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e.data, nil
	}
	c.mu.Unlock()

	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[url] = entry{data: data, fetchedAt: c.now()}
	return data, nil
}

// Len returns the number of cached icons.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every cached icon.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build icon request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch icon %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch icon %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return nil, fmt.Errorf("read icon %s: %w", url, err)
	}
	c.log.V(1).Info("Icon fetched", "url", url, "bytes", len(data))
	return data, nil
}

// evictOldestLocked removes the entry with the oldest fetch time.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.fetchedAt.Before(oldest) {
			oldestKey = key
			oldest = e.fetchedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
