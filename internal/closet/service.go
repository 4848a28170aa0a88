package closet

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	List(ctx context.Context, userID uuid.UUID, category string) ([]Item, error)
	Create(ctx context.Context, userID uuid.UUID, in ItemInput) (*Item, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, category string) ([]Item, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.store.List(ctx, userID, category)
}

func (s *Service) Add(ctx context.Context, userID uuid.UUID, in ItemInput) (*Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if !ValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}

	in.Seasons = lowerAll(in.Seasons)
	in.Occasions = lowerAll(in.Occasions)

	return s.store.Create(ctx, userID, in)
}

func (s *Service) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.store.Delete(ctx, userID, itemID)
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
