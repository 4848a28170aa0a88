package onboarding

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
)

// Store is the persistence the service needs; Repository implements it
type Store interface {
	GetStatus(ctx context.Context, userID uuid.UUID) (bool, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Complete(ctx context.Context, userID uuid.UUID, in ProfileInput) (*Profile, error)
}

// Service implements gate.StatusSource and the onboarding endpoints
type Service struct {
	store Store
	cache gate.CompletionCache
}

func NewService(store Store, cache gate.CompletionCache) *Service {
	return &Service{store: store, cache: cache}
}

// OnboardingStatus reads the authoritative completion flag
func (s *Service) OnboardingStatus(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.store.GetStatus(ctx, userID)
}

// Profile returns the user's profile, or nil if onboarding never started
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if p.Completed {
		s.cache.MarkCompleted(ctx, userID)
	}
	return p, nil
}

// Complete persists the profile and records completion in the cache, so the
// next gate evaluation lets the user through without a lookup
func (s *Service) Complete(ctx context.Context, userID uuid.UUID, in ProfileInput) (*Profile, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Complete(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	s.cache.MarkCompleted(ctx, userID)
	logging.GetLoggerFromContext(ctx).Info("onboarding completed", "user_id", userID)

	return p, nil
}

func normalize(in ProfileInput) (ProfileInput, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.DisplayName == "" {
		return in, ErrDisplayNameRequired
	}
	if utf8.RuneCountInString(in.DisplayName) > maxDisplayNameLen {
		return in, ErrDisplayNameTooLong
	}

	in.StylePreferences = cleanList(in.StylePreferences)
	in.FavoriteColors = cleanList(in.FavoriteColors)
	return in, nil
}

// cleanList trims, lowercases and dedupes, keeping first-seen order
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
