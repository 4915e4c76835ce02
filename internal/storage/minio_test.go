package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"cajj-backend/internal/logging"

	mclient "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putCall struct {
	size      int64
	multipart bool
}

// fakeObjects keeps uploaded bodies in memory; failPuts makes the first n
// PutObject calls fail.
type fakeObjects struct {
	objects  map[string][]byte
	calls    []putCall
	failPuts int
	truncate bool
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts mclient.PutObjectOptions) (mclient.UploadInfo, error) {
	f.calls = append(f.calls, putCall{size: size, multipart: !opts.DisableMultipart})
	if len(f.calls) <= f.failPuts {
		return mclient.UploadInfo{}, errors.New("connection reset by peer")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return mclient.UploadInfo{}, err
	}
	if f.truncate && len(f.calls) == 1 {
		body = body[:len(body)/2]
	}
	f.objects[key] = body
	return mclient.UploadInfo{Key: key, Size: int64(len(body))}, nil
}

func (f *fakeObjects) StatObject(ctx context.Context, bucket, key string, opts mclient.StatObjectOptions) (mclient.ObjectInfo, error) {
	body, ok := f.objects[key]
	if !ok {
		return mclient.ObjectInfo{}, mclient.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	}
	return mclient.ObjectInfo{Key: key, Size: int64(len(body))}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, bucket, key string, opts mclient.GetObjectOptions) (*mclient.Object, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeObjects) RemoveObject(ctx context.Context, bucket, key string, opts mclient.RemoveObjectOptions) error {
	delete(f.objects, key)
	return nil
}

func TestS3PutUsesSizedUploadFirst(t *testing.T) {
	api := newFakeObjects()
	s3 := newS3(api, "cajj", logging.Discard())

	require.NoError(t, s3.Put(context.Background(), "photos/a.png", bytes.NewReader(pngHeader), int64(len(pngHeader)), "image/png"))

	require.Len(t, api.calls, 1)
	assert.Equal(t, putCall{size: int64(len(pngHeader)), multipart: false}, api.calls[0])
	assert.Equal(t, pngHeader, api.objects["photos/a.png"])
}

func TestS3PutFallsBackToStreamedUpload(t *testing.T) {
	api := newFakeObjects()
	api.failPuts = 1
	s3 := newS3(api, "cajj", logging.Discard())

	require.NoError(t, s3.Put(context.Background(), "photos/a.png", bytes.NewReader(pngHeader), int64(len(pngHeader)), "image/png"))

	require.Len(t, api.calls, 2)
	assert.Equal(t, putCall{size: -1, multipart: true}, api.calls[1])
	assert.Equal(t, pngHeader, api.objects["photos/a.png"])
}

func TestS3PutRetriesWhenStoredSizeDiffers(t *testing.T) {
	api := newFakeObjects()
	api.truncate = true
	s3 := newS3(api, "cajj", logging.Discard())

	require.NoError(t, s3.Put(context.Background(), "pdfs/n.pdf", bytes.NewReader(pngHeader), int64(len(pngHeader)), "application/pdf"))

	require.Len(t, api.calls, 2)
	assert.Equal(t, pngHeader, api.objects["pdfs/n.pdf"])
}

func TestS3PutReportsEveryFailedStrategy(t *testing.T) {
	api := newFakeObjects()
	api.failPuts = 2
	s3 := newS3(api, "cajj", logging.Discard())

	err := s3.Put(context.Background(), "photos/a.png", bytes.NewReader(pngHeader), int64(len(pngHeader)), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sized_put")
	assert.Contains(t, err.Error(), "streamed_multipart")
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestS3PutRejectsBadKey(t *testing.T) {
	s3 := newS3(newFakeObjects(), "cajj", logging.Discard())
	err := s3.Put(context.Background(), "..", bytes.NewReader(pngHeader), 1, "image/png")
	require.ErrorIs(t, err, ErrBadKey)
}
