// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"bannerkit/internal/models"
)

const (
	// renderKeyPrefix is the Valkey key prefix for rendered banners.
	renderKeyPrefix = "render:"

	// DefaultRenderTTL is how long a rendered banner stays cached.
	DefaultRenderTTL = 10 * time.Minute
)

// RenderCache stores rendered banner bodies keyed by a hash of the output
// kind and the effective options. Equal options always render equal
// bytes, so entries never need invalidation; they simply expire.
//
// A nil *RenderCache is valid and behaves as an always-missing cache.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRenderCache creates a render cache backed by the given Valkey client.
// A nil client yields a nil cache.
func NewRenderCache(client *redis.Client, ttl time.Duration) *RenderCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultRenderTTL
	}
	return &RenderCache{client: client, ttl: ttl}
}

// Key returns the cache key for a render of opts as kind. Options are
// encoded with encoding/json, whose struct field order is fixed, so equal
// option sets produce equal keys.
func Key(kind string, opts models.BannerOptions) (string, error) {
	raw, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return renderKeyPrefix + kind + ":" + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

// Get returns the cached body for kind and opts.
func (rc *RenderCache) Get(ctx context.Context, kind string, opts models.BannerOptions) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	key, err := Key(kind, opts)
	if err != nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("render cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("render cache hit", "key", key)
	return val, true
}

// Set stores a rendered body for kind and opts with the configured TTL.
// Errors are logged; a failed write only costs a future re-render.
func (rc *RenderCache) Set(ctx context.Context, kind string, opts models.BannerOptions, body []byte) {
	if rc == nil {
		return
	}
	key, err := Key(kind, opts)
	if err != nil {
		slog.Warn("render cache key error", "error", err)
		return
	}
	if err := rc.client.Set(ctx, key, body, rc.ttl).Err(); err != nil {
		slog.Warn("render cache set error", "key", key, "error", err)
	}
}
