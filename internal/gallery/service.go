package gallery

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"cajj-backend/internal/cache"
	"cajj-backend/internal/content"
	"cajj-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrVideoNotFound = errors.New("video not found")
)

type Service struct {
	photos PhotoRepository
	videos VideoRepository
	deps   content.Deps
}

func NewService(photos PhotoRepository, videos VideoRepository, deps content.Deps) *Service {
	return &Service{
		photos: photos,
		videos: videos,
		deps:   deps,
	}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return err
}

func (s *Service) ListPhotos(ctx context.Context) ([]Photo, error) {
	return s.photos.List(ctx, false)
}

func (s *Service) ListVideos(ctx context.Context) ([]Video, error) {
	return s.videos.List(ctx, false)
}

// PublicJSON returns the visible photos and videos as cached JSON.
func (s *Service) PublicJSON(ctx context.Context) ([]byte, error) {
	return s.deps.CachedJSON(ctx, cache.KeyGallery, func(ctx context.Context) (interface{}, error) {
		photos, err := s.photos.List(ctx, true)
		if err != nil {
			return nil, err
		}
		videos, err := s.videos.List(ctx, true)
		if err != nil {
			return nil, err
		}
		return Gallery{Photos: photos, Videos: videos}, nil
	})
}

func (s *Service) CreatePhoto(ctx context.Context, req PhotoCreateRequest) (Photo, error) {
	att, err := s.deps.Store(ctx, "file", req.File, s.deps.Rules.Photo)
	if err != nil {
		return Photo{}, err
	}
	if !att.Changed {
		return Photo{}, validation.Field("file", "required")
	}

	now := s.deps.Now()
	item := Photo{
		ID:          primitive.NewObjectID().Hex(),
		Title:       content.TextOr(req.Title, req.File.Name),
		Description: content.Text(req.Description),
		URL:         att.URL,
		Filename:    filepath.Base(att.URL),
		Visible:     content.Visible(req.Visible),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.photos.Create(ctx, item); err != nil {
		s.deps.Abandon("photo create", err, att)
		return Photo{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyGallery)
	return item, nil
}

func (s *Service) UpdatePhoto(ctx context.Context, id string, req UpdateRequest) (Photo, error) {
	if req.URL != nil {
		return Photo{}, validation.Field("url", "prohibited")
	}
	set := bson.M{"updated_at": s.deps.Now()}
	applyText(set, req)

	updated, err := s.photos.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		return Photo{}, notFound(err, ErrPhotoNotFound)
	}
	s.deps.Invalidate(ctx, cache.KeyGallery)
	return updated, nil
}

func (s *Service) SetPhotoVisibility(ctx context.Context, id string, visible bool) (Photo, error) {
	return s.UpdatePhoto(ctx, id, UpdateRequest{Visible: &visible})
}

func (s *Service) DeletePhoto(ctx context.Context, id string) error {
	deleted, err := s.photos.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return notFound(err, ErrPhotoNotFound)
	}
	s.deps.RemoveFiles(ctx, deleted.URL)
	s.deps.Invalidate(ctx, cache.KeyGallery)
	return nil
}

// CreateVideo stores an uploaded file, or records an external URL when no
// file is sent. A file takes precedence over a URL.
func (s *Service) CreateVideo(ctx context.Context, req VideoCreateRequest) (Video, error) {
	url := content.Text(req.URL)
	if req.File == nil && url == "" {
		return Video{}, validation.Errors{"file": "required_without", "url": "required_without"}
	}

	att, err := s.deps.Store(ctx, "file", req.File, s.deps.Rules.Video)
	if err != nil {
		return Video{}, err
	}

	now := s.deps.Now()
	item := Video{
		ID:          primitive.NewObjectID().Hex(),
		Title:       content.TextOr(req.Title, DefaultVideoTitle),
		Description: content.Text(req.Description),
		URL:         url,
		Visible:     content.Visible(req.Visible),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if att.Changed {
		item.URL = att.URL
		item.Filename = filepath.Base(att.URL)
		item.Title = content.TextOr(req.Title, req.File.Name)
	}

	if err := s.videos.Create(ctx, item); err != nil {
		s.deps.Abandon("video create", err, att)
		return Video{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyGallery)
	return item, nil
}

// UpdateVideo changes text fields and visibility. The URL of an uploaded
// video follows its file and cannot be edited.
func (s *Service) UpdateVideo(ctx context.Context, id string, req UpdateRequest) (Video, error) {
	id = strings.TrimSpace(id)
	set := bson.M{"updated_at": s.deps.Now()}
	applyText(set, req)

	if req.URL != nil {
		current, err := s.videos.Get(ctx, id)
		if err != nil {
			return Video{}, notFound(err, ErrVideoNotFound)
		}
		if !current.External() {
			return Video{}, validation.Field("url", "prohibited")
		}
		set["url"] = content.Text(req.URL)
	}

	updated, err := s.videos.Update(ctx, id, set)
	if err != nil {
		return Video{}, notFound(err, ErrVideoNotFound)
	}
	s.deps.Invalidate(ctx, cache.KeyGallery)
	return updated, nil
}

func (s *Service) SetVideoVisibility(ctx context.Context, id string, visible bool) (Video, error) {
	return s.UpdateVideo(ctx, id, UpdateRequest{Visible: &visible})
}

func (s *Service) DeleteVideo(ctx context.Context, id string) error {
	deleted, err := s.videos.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return notFound(err, ErrVideoNotFound)
	}
	if !deleted.External() {
		s.deps.RemoveFiles(ctx, deleted.URL)
	}
	s.deps.Invalidate(ctx, cache.KeyGallery)
	return nil
}

func applyText(set bson.M, req UpdateRequest) {
	if req.Title != nil {
		set["title"] = content.Text(req.Title)
	}
	if req.Description != nil {
		set["description"] = content.Text(req.Description)
	}
	if req.Visible != nil {
		set["visible"] = *req.Visible
	}
}
