// Package contenttest provides doubles for entity service and handler tests.
package contenttest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"cajj-backend/internal/cache"
	"cajj-backend/internal/content"
	"cajj-backend/internal/logging"
	"cajj-backend/internal/storage"
	"cajj-backend/internal/upload"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	PDF = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	MP4 = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom\x00\x00\x00\x08free")
)

func File(name string, data []byte) *upload.File {
	return &upload.File{Reader: bytes.NewReader(data), Name: name, Size: int64(len(data))}
}

// Env is a content.Deps backed by a real uploader writing to a temp dir.
type Env struct {
	Deps  content.Deps
	Root  string
	Cache *cache.MemoryCache
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	root := t.TempDir()
	log := logging.Discard()
	backend, err := storage.NewLocal(root, log)
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	mem := cache.NewMemory()
	return &Env{
		Deps: content.Deps{
			Files:    upload.New(backend, "/storage", log, nil),
			Rules:    upload.NewRules(50<<20, 100<<20),
			Cache:    mem,
			CacheTTL: time.Minute,
			Location: time.UTC,
			Log:      log,
		},
		Root:  root,
		Cache: mem,
	}
}

// Exists reports whether the file behind a /storage URL is on disk.
func (e *Env) Exists(publicURL string) bool {
	key := strings.TrimPrefix(publicURL, "/storage/")
	_, err := os.Stat(filepath.Join(e.Root, filepath.FromSlash(key)))
	return err == nil
}

// Count returns the number of files stored under subdir.
func (e *Env) Count(subdir string) int {
	entries, err := os.ReadDir(filepath.Join(e.Root, subdir))
	if err != nil {
		return 0
	}
	return len(entries)
}

// FailingStore rejects nothing and stores nothing.
type FailingStore struct {
	Err     error
	Removed []string
}

func (f *FailingStore) Store(ctx context.Context, file *upload.File, rule upload.Rule) (upload.Stored, error) {
	if file != nil {
		_, _ = io.Copy(io.Discard, file.Reader)
	}
	return upload.Stored{}, &upload.Error{Subdir: rule.Subdir, Cause: f.Err}
}

func (f *FailingStore) Remove(ctx context.Context, publicURL string) {
	f.Removed = append(f.Removed, publicURL)
}

var ErrInjected = errors.New("injected failure")

// MemRepo is an in-memory document collection keyed by id.
type MemRepo[T any] struct {
	mu      sync.Mutex
	items   map[string]T
	id      func(T) string
	visible func(T) bool
	less    func(a, b T) bool

	// FailWrites makes Create, Update and Delete return ErrInjected.
	FailWrites bool
}

func NewMemRepo[T any](id func(T) string, visible func(T) bool, less func(a, b T) bool) *MemRepo[T] {
	return &MemRepo[T]{
		items:   make(map[string]T),
		id:      id,
		visible: visible,
		less:    less,
	}
}

func (r *MemRepo[T]) Create(ctx context.Context, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrInjected
	}
	r.items[r.id(item)] = item
	return nil
}

func (r *MemRepo[T]) Get(ctx context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		var zero T
		return zero, mongo.ErrNoDocuments
	}
	return item, nil
}

func (r *MemRepo[T]) Update(ctx context.Context, id string, set bson.M) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.FailWrites {
		return zero, ErrInjected
	}
	item, ok := r.items[id]
	if !ok {
		return zero, mongo.ErrNoDocuments
	}
	updated, err := ApplySet(item, set)
	if err != nil {
		return zero, err
	}
	r.items[id] = updated
	return updated, nil
}

func (r *MemRepo[T]) Delete(ctx context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.FailWrites {
		return zero, ErrInjected
	}
	item, ok := r.items[id]
	if !ok {
		return zero, mongo.ErrNoDocuments
	}
	delete(r.items, id)
	return item, nil
}

func (r *MemRepo[T]) List(ctx context.Context, visibleOnly bool) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.items))
	for _, item := range r.items {
		if visibleOnly && !r.visible(item) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return r.less(out[i], out[j]) })
	return out, nil
}

func (r *MemRepo[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// ApplySet decodes a $set document over item, leaving other fields untouched.
func ApplySet[T any](item T, set bson.M) (T, error) {
	raw, err := bson.Marshal(set)
	if err != nil {
		return item, err
	}
	updated := item
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return item, err
	}
	return updated, nil
}

// GatedCache is a MemoryCache whose first Set waits for Release. Blocked is
// closed once that Set has started.
type GatedCache struct {
	*cache.MemoryCache
	once    sync.Once
	Blocked chan struct{}
	release chan struct{}
}

func NewGatedCache() *GatedCache {
	return &GatedCache{
		MemoryCache: cache.NewMemory(),
		Blocked:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *GatedCache) Release() {
	close(g.release)
}

func (g *GatedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.Blocked)
		<-g.release
	}
	return g.MemoryCache.Set(ctx, key, value, ttl)
}
