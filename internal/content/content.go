// Package content holds what the entity services share: the file store, the
// public listing cache and the clock.
package content

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"cajj-backend/internal/cache"
	"cajj-backend/internal/upload"
)

type Deps struct {
	Files    upload.FileStore
	Rules    upload.Rules
	Cache    cache.Cache
	CacheTTL time.Duration
	Location *time.Location
	Log      *slog.Logger
}

func (d Deps) Now() time.Time {
	if d.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(d.Location)
}

// CachedJSON serves key from the cache, building and storing it on a miss.
// Cache failures fall back to building the payload.
func (d Deps) CachedJSON(ctx context.Context, key string, build func(ctx context.Context) (interface{}, error)) ([]byte, error) {
	if d.Cache == nil {
		payload, err := build(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(payload)
	}
	raw, _, err := cache.JSON(ctx, d.Cache, key, d.CacheTTL, build)
	return raw, err
}

// Invalidate drops cached public listings after a write. Failures are logged.
func (d Deps) Invalidate(ctx context.Context, keys ...string) {
	if d.Cache == nil {
		return
	}
	for _, key := range keys {
		if err := cache.Invalidate(ctx, d.Cache, key); err != nil {
			d.Log.Warn("cache invalidate: failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}

// RemoveFiles deletes stored files, skipping empty URLs.
func (d Deps) RemoveFiles(ctx context.Context, urls ...string) {
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			d.Files.Remove(ctx, u)
		}
	}
}

// Visible defaults an absent flag to true.
func Visible(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func Text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// TextOr returns the trimmed value, or fallback when it is absent or blank.
func TextOr(s *string, fallback string) string {
	if t := Text(s); t != "" {
		return t
	}
	return fallback
}
