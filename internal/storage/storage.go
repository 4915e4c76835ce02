package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("object not found")
	ErrForbidden = errors.New("object not readable")
	ErrBadKey    = errors.New("invalid object key")
)

// Object is an opened stored file. Body must be closed by the caller.
type Object struct {
	Body        io.ReadSeekCloser
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Backend persists uploaded files under slash separated keys such as "photos/123-abc.jpg".
type Backend interface {
	Put(ctx context.Context, key string, src io.ReadSeeker, size int64, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// CleanKey strips traversal segments, backslashes and leading slashes from a
// user supplied path. The result is empty when nothing usable remains.
func CleanKey(raw string) string {
	s := strings.ReplaceAll(raw, "\\", "/")
	s = strings.ReplaceAll(s, "..", "")
	s = path.Clean("/" + s)
	s = strings.TrimLeft(s, "/")
	if s == "." {
		return ""
	}
	return s
}
