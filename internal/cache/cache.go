package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// Keys of the cached public listings.
const (
	KeyAbout          = "public:about"
	KeyActions        = "public:actions"
	KeyPublications   = "public:publications"
	KeyNews           = "public:news"
	KeyGallery        = "public:gallery"
	KeyDocumentations = "public:documentations"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Incr atomically increments the integer counter at key, starting from 0.
	Incr(ctx context.Context, key string) (int64, error)
}

type NoopCache struct{}

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) Incr(ctx context.Context, key string) (int64, error) {
	return 0, nil
}

// MemoryCache is a process-local cache without expiry, used in tests.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemory() *MemoryCache {
	return &MemoryCache{items: make(map[string][]byte)}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryCache) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(string(m.items[key]), 10, 64)
	n++
	m.items[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

// Payloads live under "<key>@<generation>". Invalidate bumps the generation,
// so a payload built from data read before a write lands under a generation
// no reader asks for anymore and simply expires.
func generationKey(key string) string {
	return key + ":gen"
}

func generation(ctx context.Context, c Cache, key string) (int64, error) {
	raw, ok, err := c.Get(ctx, generationKey(key))
	if err != nil || !ok {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func versionedKey(key string, gen int64) string {
	return key + "@" + strconv.FormatInt(gen, 10)
}

// Invalidate retires every payload cached for key.
func Invalidate(ctx context.Context, c Cache, key string) error {
	_, err := c.Incr(ctx, generationKey(key))
	return err
}

// JSON returns the cached payload for key, or builds, encodes and stores it.
// The bool result reports a cache hit. Cache errors never fail the call; when
// the generation cannot be read the payload is built and not stored.
func JSON(ctx context.Context, c Cache, key string, ttl time.Duration, build func(ctx context.Context) (interface{}, error)) ([]byte, bool, error) {
	store := ""
	if c != nil {
		if gen, err := generation(ctx, c, key); err == nil {
			store = versionedKey(key, gen)
			if cached, ok, err := c.Get(ctx, store); err == nil && ok {
				return cached, true, nil
			}
		}
	}

	value, err := build(ctx)
	if err != nil {
		return nil, false, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, false, err
	}

	if store != "" {
		_ = c.Set(ctx, store, payload, ttl)
	}
	return payload, false, nil
}
