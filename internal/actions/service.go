package actions

import (
	"context"
	"errors"
	"fmt"

	"cajj-backend/internal/cache"
	"cajj-backend/internal/content"
	"cajj-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("action not found")

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

func (s *Service) List(ctx context.Context) ([]Action, error) {
	return s.repo.List(ctx)
}

func (s *Service) PublicJSON(ctx context.Context) ([]byte, error) {
	return s.deps.CachedJSON(ctx, cache.KeyActions, func(ctx context.Context) (interface{}, error) {
		items, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]PublicAction, 0, len(items))
		for _, a := range items {
			out = append(out, PublicAction{ID: a.ActionID, Title: a.Title, Description: a.Description})
		}
		return out, nil
	})
}

func (s *Service) Update(ctx context.Context, slug string, req UpdateRequest) (Action, error) {
	actionID := utils.Slugify(slug)
	if actionID == "" {
		return Action{}, ErrNotFound
	}

	set := bson.M{"updated_at": s.deps.Now()}
	if req.Title != nil {
		set["title"] = content.Text(req.Title)
	}
	if req.Description != nil {
		set["description"] = content.Text(req.Description)
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	updated, err := s.repo.Update(ctx, actionID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Action{}, ErrNotFound
		}
		return Action{}, err
	}
	s.deps.Invalidate(ctx, cache.KeyActions)
	return updated, nil
}

// Reorder moves the listed actions to the front, in the order given. The
// others follow in their current order. Every slug must exist; otherwise
// nothing is written.
func (s *Service) Reorder(ctx context.Context, ids []string) ([]Action, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, a := range existing {
		known[a.ActionID] = true
	}

	orders := make(map[string]int, len(existing))
	for i, raw := range ids {
		actionID := utils.Slugify(raw)
		if !known[actionID] {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, raw)
		}
		orders[actionID] = i
	}
	next := len(orders)
	for _, a := range existing {
		if _, listed := orders[a.ActionID]; !listed {
			orders[a.ActionID] = next
			next++
		}
	}

	if err := s.repo.SetOrder(ctx, orders, s.deps.Now()); err != nil {
		return nil, err
	}
	s.deps.Invalidate(ctx, cache.KeyActions)
	return s.repo.List(ctx)
}

// Seed inserts the missing default actions and reports how many were created.
func (s *Service) Seed(ctx context.Context, items []Action) (int, error) {
	created := 0
	now := s.deps.Now()
	for _, a := range items {
		a.CreatedAt = now
		a.UpdatedAt = now
		ok, err := s.repo.Seed(ctx, a)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.deps.Invalidate(ctx, cache.KeyActions)
	}
	return created, nil
}
