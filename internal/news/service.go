package news

import (
	"context"
	"errors"
	"strings"

	"cajj-backend/internal/cache"
	"cajj-backend/internal/content"
	"cajj-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("news not found")

type Service struct {
	repo Repository
	deps content.Deps
}

func NewService(repo Repository, deps content.Deps) *Service {
	return &Service{
		repo: repo,
		deps: deps,
	}
}

func (s *Service) ListAdmin(ctx context.Context) ([]News, error) {
	return s.repo.List(ctx, false)
}

// PublicJSON returns the visible news, newest first, as cached JSON.
func (s *Service) PublicJSON(ctx context.Context) ([]byte, error) {
	return s.deps.CachedJSON(ctx, cache.KeyNews, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx, true)
	})
}

func (s *Service) Get(ctx context.Context, id string) (News, error) {
	item, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return News{}, ErrNotFound
		}
		return News{}, err
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (News, error) {
	now := s.deps.Now()
	date := now
	if req.Date != nil {
		parsed, err := validation.ParseDate(*req.Date, now.Location())
		if err != nil {
			return News{}, validation.Field("date", "date")
		}
		date = parsed
	}

	media, err := s.deps.Store(ctx, "media", req.Media, s.deps.Rules.Media)
	if err != nil {
		return News{}, err
	}
	pdf, err := s.deps.Store(ctx, "pdf", req.PDF, s.deps.Rules.PDF)
	if err != nil {
		s.deps.Abandon("news create", err, media)
		return News{}, err
	}

	item := News{
		ID:        primitive.NewObjectID().Hex(),
		Title:     content.Text(req.Title),
		Content:   content.Text(req.Content),
		Author:    content.TextOr(req.Author, DefaultAuthor),
		Date:      date,
		MediaURL:  media.URL,
		MediaType: media.MediaType,
		PDFURL:    pdf.URL,
		Visible:   content.Visible(req.Visible),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.deps.Abandon("news create", err, media, pdf)
		return News{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyNews)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (News, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return News{}, err
	}

	set := bson.M{"updated_at": s.deps.Now()}
	if req.Title != nil {
		set["title"] = content.Text(req.Title)
	}
	if req.Content != nil {
		set["content"] = content.Text(req.Content)
	}
	if req.Author != nil {
		set["author"] = content.TextOr(req.Author, DefaultAuthor)
	}
	if req.Date != nil {
		parsed, err := validation.ParseDate(*req.Date, s.deps.Now().Location())
		if err != nil {
			return News{}, validation.Field("date", "date")
		}
		set["date"] = parsed
	}
	if req.Visible != nil {
		set["visible"] = *req.Visible
	}

	media, err := s.deps.Replace(ctx, "media", current.MediaURL, current.MediaType, req.RemoveMedia, req.Media, s.deps.Rules.Media)
	if err != nil {
		return News{}, err
	}
	pdf, err := s.deps.Replace(ctx, "pdf", current.PDFURL, "", req.RemovePDF, req.PDF, s.deps.Rules.PDF)
	if err != nil {
		s.deps.Abandon("news update", err, media)
		return News{}, err
	}
	if media.Changed {
		set["media_url"] = media.URL
		set["media_type"] = media.MediaType
	}
	if pdf.Changed {
		set["pdf_url"] = pdf.URL
	}

	updated, err := s.repo.Update(ctx, current.ID, set)
	if err != nil {
		s.deps.Abandon("news update", err, media, pdf)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return News{}, ErrNotFound
		}
		return News{}, err
	}

	s.deps.Commit(ctx, media, pdf)
	s.deps.Invalidate(ctx, cache.KeyNews)
	return updated, nil
}

func (s *Service) SetVisibility(ctx context.Context, id string, visible bool) (News, error) {
	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), bson.M{
		"visible":    visible,
		"updated_at": s.deps.Now(),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return News{}, ErrNotFound
		}
		return News{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyNews)
	return updated, nil
}

// Delete removes the entry, then its media and PDF. File removal is best effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	s.deps.RemoveFiles(ctx, deleted.MediaURL, deleted.PDFURL)
	s.deps.Invalidate(ctx, cache.KeyNews)
	return nil
}
