package publications

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

var (
	ErrNotFound    = errors.New("publication not found")
	ErrInvalidType = errors.New("invalid publication type")
)

// ParseType accepts "cajj" or "partners", case insensitively.
func ParseType(raw string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(raw)); t {
	case TypeCAJJ, TypePartners:
		return t, nil
	}
	return "", ErrInvalidType
}

// labelField is the field that names a publication of type t.
func labelField(t string) string {
	if t == TypePartners {
		return "name"
	}
	return "title"
}

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

func group(items []Publication) Grouped {
	out := Grouped{CAJJ: make([]Publication, 0), Partners: make([]Publication, 0)}
	for _, it := range items {
		switch it.Type {
		case TypeCAJJ:
			out.CAJJ = append(out.CAJJ, it)
		case TypePartners:
			out.Partners = append(out.Partners, it)
		}
	}
	return out
}

func (s *Service) ListAdmin(ctx context.Context) (Grouped, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return Grouped{}, err
	}
	return group(items), nil
}

func (s *Service) ListByType(ctx context.Context, pubType string) ([]Publication, error) {
	all, err := s.ListAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if pubType == TypePartners {
		return all.Partners, nil
	}
	return all.CAJJ, nil
}

func (s *Service) PublicJSON(ctx context.Context) ([]byte, error) {
	return s.deps.CachedJSON(ctx, cache.KeyPublications, func(ctx context.Context) (interface{}, error) {
		items, err := s.repo.List(ctx, true)
		if err != nil {
			return nil, err
		}
		return group(items), nil
	})
}

// Get looks a publication up by type and id together.
func (s *Service) Get(ctx context.Context, pubType, id string) (Publication, error) {
	item, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}
	if item.Type != pubType {
		return Publication{}, ErrNotFound
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, pubType string, req CreateRequest) (Publication, error) {
	label := req.Title
	if pubType == TypePartners {
		label = req.Name
	}
	if content.Text(label) == "" {
		return Publication{}, validation.Field(labelField(pubType), "required")
	}

	media, err := s.deps.Store(ctx, "media", req.Media, s.deps.Rules.Media)
	if err != nil {
		return Publication{}, err
	}
	pdf, err := s.deps.Store(ctx, "pdf", req.PDF, s.deps.Rules.PDF)
	if err != nil {
		s.deps.Abandon("publication create", err, media)
		return Publication{}, err
	}

	now := s.deps.Now()
	item := Publication{
		ID:          primitive.NewObjectID().Hex(),
		Type:        pubType,
		Description: content.Text(req.Description),
		URL:         content.Text(req.URL),
		MediaURL:    media.URL,
		MediaType:   media.MediaType,
		PDFURL:      pdf.URL,
		Visible:     content.Visible(req.Visible),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if pubType == TypePartners {
		item.Name = content.Text(req.Name)
	} else {
		item.Title = content.Text(req.Title)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.deps.Abandon("publication create", err, media, pdf)
		return Publication{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyPublications)
	return item, nil
}

func (s *Service) Update(ctx context.Context, pubType, id string, req UpdateRequest) (Publication, error) {
	current, err := s.Get(ctx, pubType, id)
	if err != nil {
		return Publication{}, err
	}

	set := bson.M{"updated_at": s.deps.Now()}
	label := req.Title
	if pubType == TypePartners {
		label = req.Name
	}
	if label != nil {
		if content.Text(label) == "" {
			return Publication{}, validation.Field(labelField(pubType), "notblank")
		}
		set[labelField(pubType)] = content.Text(label)
	}
	if req.Description != nil {
		set["description"] = content.Text(req.Description)
	}
	if req.URL != nil {
		set["url"] = content.Text(req.URL)
	}
	if req.Visible != nil {
		set["visible"] = *req.Visible
	}

	media, err := s.deps.Replace(ctx, "media", current.MediaURL, current.MediaType, req.RemoveMedia, req.Media, s.deps.Rules.Media)
	if err != nil {
		return Publication{}, err
	}
	pdf, err := s.deps.Replace(ctx, "pdf", current.PDFURL, "", req.RemovePDF, req.PDF, s.deps.Rules.PDF)
	if err != nil {
		s.deps.Abandon("publication update", err, media)
		return Publication{}, err
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
		s.deps.Abandon("publication update", err, media, pdf)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}

	s.deps.Commit(ctx, media, pdf)
	s.deps.Invalidate(ctx, cache.KeyPublications)
	return updated, nil
}

func (s *Service) SetVisibility(ctx context.Context, pubType, id string, visible bool) (Publication, error) {
	current, err := s.Get(ctx, pubType, id)
	if err != nil {
		return Publication{}, err
	}
	updated, err := s.repo.Update(ctx, current.ID, bson.M{
		"visible":    visible,
		"updated_at": s.deps.Now(),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyPublications)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, pubType, id string) error {
	current, err := s.Get(ctx, pubType, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, current.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	s.deps.RemoveFiles(ctx, deleted.MediaURL, deleted.PDFURL)
	s.deps.Invalidate(ctx, cache.KeyPublications)
	return nil
}
