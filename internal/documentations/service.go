package documentations

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

var ErrNotFound = errors.New("documentation not found")

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

func (s *Service) ListAdmin(ctx context.Context) ([]Documentation, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) PublicJSON(ctx context.Context) ([]byte, error) {
	return s.deps.CachedJSON(ctx, cache.KeyDocumentations, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx, true)
	})
}

func (s *Service) Get(ctx context.Context, id string) (Documentation, error) {
	item, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Documentation{}, ErrNotFound
		}
		return Documentation{}, err
	}
	return item, nil
}

// Create requires a PDF; the document is nothing without it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Documentation, error) {
	if content.Text(req.Title) == "" {
		return Documentation{}, validation.Field("title", "required")
	}
	if req.PDF == nil {
		return Documentation{}, validation.Field("pdf", "required")
	}
	pdf, err := s.deps.Store(ctx, "pdf", req.PDF, s.deps.Rules.PDF)
	if err != nil {
		return Documentation{}, err
	}

	now := s.deps.Now()
	item := Documentation{
		ID:          primitive.NewObjectID().Hex(),
		Title:       content.Text(req.Title),
		Description: content.Text(req.Description),
		PDFURL:      pdf.URL,
		Visible:     content.Visible(req.Visible),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.deps.Abandon("documentation create", err, pdf)
		return Documentation{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyDocumentations)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Documentation, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Documentation{}, err
	}

	set := bson.M{"updated_at": s.deps.Now()}
	if req.Title != nil {
		if content.Text(req.Title) == "" {
			return Documentation{}, validation.Field("title", "notblank")
		}
		set["title"] = content.Text(req.Title)
	}
	if req.Description != nil {
		set["description"] = content.Text(req.Description)
	}
	if req.Visible != nil {
		set["visible"] = *req.Visible
	}

	pdf, err := s.deps.Replace(ctx, "pdf", current.PDFURL, "", false, req.PDF, s.deps.Rules.PDF)
	if err != nil {
		return Documentation{}, err
	}
	if pdf.Changed {
		set["pdf_url"] = pdf.URL
	}

	updated, err := s.repo.Update(ctx, current.ID, set)
	if err != nil {
		s.deps.Abandon("documentation update", err, pdf)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Documentation{}, ErrNotFound
		}
		return Documentation{}, err
	}

	s.deps.Commit(ctx, pdf)
	s.deps.Invalidate(ctx, cache.KeyDocumentations)
	return updated, nil
}

func (s *Service) SetVisibility(ctx context.Context, id string, visible bool) (Documentation, error) {
	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), bson.M{
		"visible":    visible,
		"updated_at": s.deps.Now(),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Documentation{}, ErrNotFound
		}
		return Documentation{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyDocumentations)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	s.deps.RemoveFiles(ctx, deleted.PDFURL)
	s.deps.Invalidate(ctx, cache.KeyDocumentations)
	return nil
}
