package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cajj-backend/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrMissingFile     = errors.New("file is required")
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("file type not allowed")
)

// Error reports a file that passed validation but could not be written.
type Error struct {
	Subdir string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload to %s failed: %v", e.Subdir, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRejected reports whether err is a validation failure of the file itself.
func IsRejected(err error) bool {
	return errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrUnsupportedType)
}

// Reason names the rule a rejected file failed, for field level error details.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingFile):
		return "required"
	case errors.Is(err, ErrEmptyFile):
		return "file"
	case errors.Is(err, ErrTooLarge):
		return "max"
	case errors.Is(err, ErrUnsupportedType):
		return "mimes"
	}
	return ""
}

// File is one uploaded file as received from the client.
type File struct {
	Reader io.ReadSeeker
	Name   string
	Size   int64
}

type Stored struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	Subdir      string `json:"subdir"`
	ContentType string `json:"content_type"`
	MediaType   string `json:"media_type"`
	Size        int64  `json:"size"`
}

// FileStore is what content services need from the upload layer.
type FileStore interface {
	Store(ctx context.Context, f *File, rule Rule) (Stored, error)
	Remove(ctx context.Context, publicURL string)
}

type Observer interface {
	ObserveUpload(subdir, result string, size int64)
}

type Uploader struct {
	backend  storage.Backend
	prefix   string
	log      *slog.Logger
	observer Observer
	now      func() time.Time
	token    func() string
}

// DefaultPrefix is the public path files are served under.
const DefaultPrefix = "/storage"

// New returns an Uploader publishing files under prefix (e.g. "/storage").
// An empty or root prefix falls back to DefaultPrefix. observer may be nil.
func New(backend storage.Backend, prefix string, log *slog.Logger, observer Observer) *Uploader {
	prefix = strings.Trim(prefix, "/ ")
	if prefix == "" {
		prefix = DefaultPrefix
	} else {
		prefix = "/" + prefix
	}
	return &Uploader{
		backend:  backend,
		prefix:   prefix,
		log:      log,
		observer: observer,
		now:      time.Now,
		token:    randomToken,
	}
}

// Store validates f against rule, writes it under a collision resistant name and
// returns its public URL. Validation failures wrap the Err* sentinels; write
// failures are returned as *Error.
func (u *Uploader) Store(ctx context.Context, f *File, rule Rule) (Stored, error) {
	contentType, err := u.check(f, rule)
	if err != nil {
		u.observe(rule.Subdir, "rejected", 0)
		return Stored{}, err
	}

	kind := mediaKind(contentType)
	subdir := rule.Subdir
	if subdir == "" {
		subdir = subdirFor(kind)
	}

	filename := fmt.Sprintf("%d-%s%s", u.now().Unix(), u.token(), extension(f.Name, contentType))
	key := subdir + "/" + filename

	log := u.log.With(slog.String("subdir", subdir), slog.String("filename", filename))
	log.Info("upload: storing file",
		slog.String("original_name", f.Name),
		slog.Int64("size", f.Size),
		slog.String("mime", contentType),
	)

	if err := u.backend.Put(ctx, key, f.Reader, f.Size, contentType); err != nil {
		log.Error("upload: file not saved", slog.String("error", err.Error()))
		u.observe(subdir, "failed", 0)
		return Stored{}, &Error{Subdir: subdir, Cause: err}
	}

	u.observe(subdir, "ok", f.Size)
	return Stored{
		URL:         u.prefix + "/" + key,
		Key:         key,
		Filename:    filename,
		Subdir:      subdir,
		ContentType: contentType,
		MediaType:   kind,
		Size:        f.Size,
	}, nil
}

// Remove deletes the file behind a public URL produced by Store. External URLs
// are ignored and failures are only logged.
func (u *Uploader) Remove(ctx context.Context, publicURL string) {
	key, ok := u.KeyFromURL(publicURL)
	if !ok {
		return
	}
	if err := u.backend.Delete(ctx, key); err != nil {
		u.log.Warn("upload: file delete failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	u.log.Info("upload: file deleted", slog.String("key", key))
}

// KeyFromURL maps a public URL ("/storage/photos/x.jpg", "/uploads/photos/x.jpg",
// or an absolute URL with such a path) to its storage key.
func (u *Uploader) KeyFromURL(publicURL string) (string, bool) {
	raw := strings.TrimSpace(publicURL)
	if raw == "" {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	p := parsed.Path
	for _, prefix := range []string{u.prefix + "/", "/storage/", "/uploads/", "/api/storage/"} {
		if idx := strings.Index(p, prefix); idx >= 0 && (idx == 0 || parsed.Host != "") {
			key := storage.CleanKey(p[idx+len(prefix):])
			return key, key != ""
		}
	}
	return "", false
}

func (u *Uploader) check(f *File, rule Rule) (string, error) {
	if f == nil || f.Reader == nil {
		return "", ErrMissingFile
	}
	if f.Size <= 0 {
		return "", ErrEmptyFile
	}
	if rule.MaxBytes > 0 && f.Size > rule.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrTooLarge, f.Size, rule.MaxBytes)
	}

	contentType, err := detect(f)
	if err != nil {
		return "", err
	}
	if !rule.allows(contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return contentType, nil
}

func (u *Uploader) observe(subdir, result string, size int64) {
	if u.observer != nil {
		u.observer.ObserveUpload(subdir, result, size)
	}
}

func detect(f *File) (string, error) {
	if _, err := f.Reader.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	mt, err := mimetype.DetectReader(f.Reader)
	if err != nil {
		return "", fmt.Errorf("detect mime type: %w", err)
	}
	if _, err := f.Reader.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	contentType := storage.BaseType(mt.String())
	if contentType == storage.DefaultContentType {
		if byName := storage.ContentTypeByName(f.Name); byName != "" {
			contentType = byName
		}
	}
	return contentType, nil
}

func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo
	case contentType == "application/pdf":
		return MediaPDF
	}
	return ""
}

func subdirFor(kind string) string {
	switch kind {
	case MediaImage:
		return SubdirPhotos
	case MediaVideo:
		return SubdirVideos
	case MediaPDF:
		return SubdirPDFs
	}
	return "files"
}

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

func extension(name, contentType string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if safeExt.MatchString(ext) {
		return ext
	}
	return storage.ExtByContentType(contentType)
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}
