package about

import (
	"context"
	"errors"

	"cajj-backend/internal/cache"
	"cajj-backend/internal/content"
	"cajj-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("about section not found")

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

func (s *Service) List(ctx context.Context) ([]Section, error) {
	return s.repo.List(ctx)
}

func (s *Service) PublicJSON(ctx context.Context) ([]byte, error) {
	return s.deps.CachedJSON(ctx, cache.KeyAbout, func(ctx context.Context) (interface{}, error) {
		sections, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		page := Page{Sections: make([]PublicSection, 0, len(sections))}
		for _, sec := range sections {
			page.Sections = append(page.Sections, PublicSection{
				ID:      sec.SectionID,
				Title:   sec.Title,
				Content: sec.Content,
			})
		}
		return page, nil
	})
}

// Update edits the section identified by slug. The slug is normalized, so
// "Qui Sommes Nous" addresses qui-sommes-nous.
func (s *Service) Update(ctx context.Context, slug string, req UpdateRequest) (Section, error) {
	sectionID := utils.Slugify(slug)
	if sectionID == "" {
		return Section{}, ErrNotFound
	}

	set := bson.M{"updated_at": s.deps.Now()}
	if req.Title != nil {
		set["title"] = content.Text(req.Title)
	}
	if req.Content != nil {
		set["content"] = content.Text(req.Content)
	}

	updated, err := s.repo.Update(ctx, sectionID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Section{}, ErrNotFound
		}
		return Section{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyAbout)
	return updated, nil
}

// Seed inserts the missing default sections and reports how many were created.
// Sections already present keep their edited content.
func (s *Service) Seed(ctx context.Context, sections []Section) (int, error) {
	created := 0
	now := s.deps.Now()
	for i, sec := range sections {
		sec.Position = i
		sec.CreatedAt = now
		sec.UpdatedAt = now
		ok, err := s.repo.Seed(ctx, sec)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.deps.Invalidate(ctx, cache.KeyAbout)
	}
	return created, nil
}
