package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"cajj-backend/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(t.TempDir(), logging.Discard())
	require.NoError(t, err)
	return l
}

func TestCleanKey(t *testing.T) {
	cases := map[string]string{
		"photos/a.jpg":            "photos/a.jpg",
		"/photos/a.jpg":           "photos/a.jpg",
		"../../etc/passwd":        "etc/passwd",
		"photos/../../secret.pdf": "photos/secret.pdf",
		"pdfs\\..\\x.pdf":         "pdfs/x.pdf",
		"..":                      "",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanKey(in), "input %q", in)
	}
}

func TestLocalPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)

	require.NoError(t, l.Put(ctx, "photos/1-abc.png", bytes.NewReader(pngHeader), int64(len(pngHeader)), "image/png"))

	obj, err := l.Open(ctx, "photos/1-abc.png")
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, pngHeader, body)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(pngHeader)), obj.Size)

	require.NoError(t, l.Delete(ctx, "photos/1-abc.png"))
	_, err = l.Open(ctx, "photos/1-abc.png")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, l.Delete(ctx, "photos/1-abc.png"))
}

func TestLocalOpenFallsBackToExtension(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	require.NoError(t, l.Put(ctx, "videos/clip.wmv", bytes.NewReader(data), int64(len(data)), ""))

	obj, err := l.Open(ctx, "videos/clip.wmv")
	require.NoError(t, err)
	defer obj.Body.Close()
	assert.Equal(t, "video/x-ms-wmv", obj.ContentType)
}

func TestLocalPutFallsBackToSecondStrategy(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)
	l.strategies[0].write = func(dir, full string, src io.Reader) (int64, error) {
		_, _ = io.Copy(io.Discard, src)
		return 0, errors.New("rename not permitted")
	}

	require.NoError(t, l.Put(ctx, "pdfs/doc.pdf", bytes.NewReader([]byte("%PDF-1.4\n")), 9, "application/pdf"))

	data, err := os.ReadFile(filepath.Join(l.Root(), "pdfs", "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", string(data))
}

func TestLocalPutFailsAfterAllStrategies(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)
	for i := range l.strategies {
		l.strategies[i].write = func(dir, full string, src io.Reader) (int64, error) {
			return 0, errors.New("disk full")
		}
	}

	err := l.Put(ctx, "pdfs/doc.pdf", bytes.NewReader([]byte("%PDF-1.4\n")), 9, "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temp_rename")
	assert.Contains(t, err.Error(), "direct")
	assert.Contains(t, err.Error(), "disk full")
}

func TestLocalPutRejectsEmptyWrite(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)
	err := l.Put(ctx, "photos/empty.png", bytes.NewReader(nil), 0, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestContentTypeHelpers(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeByName("Rapport.PDF"))
	assert.Equal(t, "", ContentTypeByName("notes.txt"))
	assert.Equal(t, ".mov", ExtByContentType("video/quicktime"))
	assert.Equal(t, "text/plain", BaseType("text/plain; charset=utf-8"))
}
