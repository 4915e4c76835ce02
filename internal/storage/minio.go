package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectAPI is the part of *minio.Client the backend uses.
type objectAPI interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts mclient.PutObjectOptions) (mclient.UploadInfo, error)
	StatObject(ctx context.Context, bucket, key string, opts mclient.StatObjectOptions) (mclient.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts mclient.GetObjectOptions) (*mclient.Object, error)
	RemoveObject(ctx context.Context, bucket, key string, opts mclient.RemoveObjectOptions) error
}

// streamPartSize is the multipart chunk used when the size is not trusted.
const streamPartSize = 16 << 20

type s3Strategy struct {
	name string
	put  func(ctx context.Context, api objectAPI, bucket, key string, src io.Reader, size int64, contentType string) error
}

// putSized sends the object in one request with a declared length.
func putSized(ctx context.Context, api objectAPI, bucket, key string, src io.Reader, size int64, contentType string) error {
	_, err := api.PutObject(ctx, bucket, key, src, size, mclient.PutObjectOptions{
		ContentType:      contentType,
		DisableMultipart: true,
	})
	return err
}

// putStreamed ignores the declared length and uploads in multipart chunks.
func putStreamed(ctx context.Context, api objectAPI, bucket, key string, src io.Reader, size int64, contentType string) error {
	_, err := api.PutObject(ctx, bucket, key, src, -1, mclient.PutObjectOptions{
		ContentType: contentType,
		PartSize:    streamPartSize,
	})
	return err
}

// S3 stores objects in a MinIO/S3 bucket.
type S3 struct {
	client     objectAPI
	bucket     string
	log        *slog.Logger
	strategies []s3Strategy
}

func newS3(api objectAPI, bucket string, log *slog.Logger) *S3 {
	return &S3{
		client: api,
		bucket: bucket,
		log:    log,
		strategies: []s3Strategy{
			{name: "sized_put", put: putSized},
			{name: "streamed_multipart", put: putStreamed},
		},
	}
}

// NewS3 connects to endpoint (scheme optional, https implies TLS) and checks
// that bucket exists.
func NewS3(ctx context.Context, endpoint, accessKey, secretKey, bucket string, log *slog.Logger) (*S3, error) {
	const op = "storage/NewS3"

	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, bucket)
	}

	return newS3(client, bucket, log), nil
}

// Put uploads src to key, falling back to the next strategy when an upload
// fails or the stored object does not match the expected size.
func (s *S3) Put(ctx context.Context, key string, src io.ReadSeeker, size int64, contentType string) error {
	const op = "storage/S3.Put"

	key = CleanKey(key)
	if key == "" {
		return ErrBadKey
	}

	var errs []error
	for _, st := range s.strategies {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			errs = append(errs, fmt.Errorf("rewind source: %w", err))
			break
		}

		err := st.put(ctx, s.client, s.bucket, key, src, size, contentType)
		if err == nil {
			err = s.verify(ctx, key, size)
		}
		if err == nil {
			return nil
		}

		s.log.Warn("s3 storage: write strategy failed",
			slog.String("strategy", st.name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		errs = append(errs, fmt.Errorf("%s: %w", st.name, err))
	}
	return fmt.Errorf("%s: object not saved after %d attempts: %w", op, len(errs), errors.Join(errs...))
}

func (s *S3) verify(ctx context.Context, key string, expected int64) error {
	info, err := s.client.StatObject(ctx, s.bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if info.Size <= 0 {
		return fmt.Errorf("verify: object %q is empty", key)
	}
	if expected > 0 && info.Size != expected {
		return fmt.Errorf("verify: object %q has %d bytes, want %d", key, info.Size, expected)
	}
	return nil
}

func (s *S3) Open(ctx context.Context, key string) (*Object, error) {
	key = CleanKey(key)
	if key == "" {
		return nil, ErrNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, mclient.GetObjectOptions{})
	if err != nil {
		return nil, translateS3Error(err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, translateS3Error(err)
	}

	contentType := info.ContentType
	if contentType == "" || BaseType(contentType) == DefaultContentType {
		if byName := ContentTypeByName(key); byName != "" {
			contentType = byName
		}
	}

	return &Object{
		Body:        obj,
		Size:        info.Size,
		ModTime:     info.LastModified,
		ContentType: contentType,
	}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	key = CleanKey(key)
	if key == "" {
		return ErrBadKey
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		if errors.Is(translateS3Error(err), ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func translateS3Error(err error) error {
	resp := mclient.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.Code == "AccessDenied" || resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	}
	return err
}
