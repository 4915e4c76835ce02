package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type writeStrategy struct {
	name  string
	write func(dir, full string, src io.Reader) (int64, error)
}

// Local stores objects on disk below root.
type Local struct {
	root       string
	log        *slog.Logger
	strategies []writeStrategy
}

func NewLocal(root string, log *slog.Logger) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &Local{
		root: abs,
		log:  log,
		strategies: []writeStrategy{
			{name: "temp_rename", write: writeViaTemp},
			{name: "direct", write: writeDirect},
		},
	}, nil
}

func (l *Local) Root() string {
	return l.root
}

func (l *Local) path(key string) (string, error) {
	clean := CleanKey(key)
	if clean == "" {
		return "", ErrBadKey
	}
	full := filepath.Join(l.root, filepath.FromSlash(clean))
	if full != l.root && !strings.HasPrefix(full, l.root+string(os.PathSeparator)) {
		return "", ErrBadKey
	}
	return full, nil
}

// Put writes src to key, trying each write strategy in order until one produces a
// non-empty file of the expected size.
func (l *Local) Put(ctx context.Context, key string, src io.ReadSeeker, size int64, contentType string) error {
	full, err := l.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	var errs []error
	for _, s := range l.strategies {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			errs = append(errs, fmt.Errorf("rewind source: %w", err))
			break
		}

		written, err := s.write(dir, full, src)
		if err == nil {
			err = verify(full, written, size)
		}
		if err == nil {
			return nil
		}

		l.log.Warn("local storage: write strategy failed",
			slog.String("strategy", s.name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
	}
	return fmt.Errorf("local storage: file not saved after %d attempts: %w", len(errs), errors.Join(errs...))
}

func (l *Local) Open(ctx context.Context, key string) (*Object, error) {
	full, err := l.path(key)
	if err != nil {
		return nil, ErrNotFound
	}

	f, err := os.Open(full)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, ErrNotFound
		case errors.Is(err, fs.ErrPermission):
			return nil, ErrForbidden
		}
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	contentType := DefaultContentType
	if mt, err := mimetype.DetectReader(f); err == nil {
		contentType = mt.String()
	}
	if BaseType(contentType) == DefaultContentType {
		if byName := ContentTypeByName(full); byName != "" {
			contentType = byName
		}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	return &Object{
		Body:        f,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: contentType,
	}, nil
}

// Delete removes key; a missing file is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	full, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func writeViaTemp(dir, full string, src io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, src)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpName, full)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}
	return written, nil
}

func writeDirect(dir, full string, src io.Reader) (int64, error) {
	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	written, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return 0, err
	}
	return written, nil
}

func verify(full string, written, expected int64) error {
	info, err := os.Stat(full)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("verify: file is empty")
	}
	if info.Size() != written || (expected > 0 && written != expected) {
		return fmt.Errorf("verify: size mismatch (on disk %d, written %d, expected %d)", info.Size(), written, expected)
	}
	return nil
}
