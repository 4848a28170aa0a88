package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/redmonkez12/wardrobe-api/internal/logging"
)

// ErrStatusNotFound is returned by a StatusSource that has no record for the user
var ErrStatusNotFound = errors.New("onboarding status not found")

const defaultLookupTimeout = 5 * time.Second

// StatusSource is the authoritative onboarding store
type StatusSource interface {
	OnboardingStatus(ctx context.Context, userID uuid.UUID) (completed bool, err error)
}

// FailurePolicy decides what a failed onboarding lookup means
type FailurePolicy int

const (
	// FailToIncomplete treats a failed lookup as "not completed" and
	// sends the user back to onboarding
	FailToIncomplete FailurePolicy = iota
	// FailToLoading withholds any redirect until a lookup succeeds
	FailToLoading
)

// ParseFailurePolicy maps the configuration form of a policy to its value
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "incomplete", "":
		return FailToIncomplete, nil
	case "loading":
		return FailToLoading, nil
	default:
		return 0, fmt.Errorf("unknown failure policy %q", s)
	}
}

// Sequencer resolves onboarding state for Evaluate, consulting the cache
// before the StatusSource and coalescing concurrent lookups per user
type Sequencer struct {
	source        StatusSource
	cache         CompletionCache
	policy        FailurePolicy
	lookupTimeout time.Duration
	lookups       singleflight.Group
}

type Option func(*Sequencer)

func WithFailurePolicy(p FailurePolicy) Option {
	return func(s *Sequencer) { s.policy = p }
}

// WithLookupTimeout bounds a shared lookup independently of any one caller.
// Non-positive durations keep the default.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

func NewSequencer(source StatusSource, cache CompletionCache, opts ...Option) *Sequencer {
	s := &Sequencer{
		source:        source,
		cache:         cache,
		policy:        FailToIncomplete,
		lookupTimeout: defaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve evaluates the gate for one navigation. It blocks on the onboarding
// lookup only when the decision depends on it. If ctx ends first the lookup
// result is dropped, the cache is left untouched and the decision is Loading.
func (s *Sequencer) Resolve(ctx context.Context, level Level, session Session, path string) Decision {
	if !needsOnboarding(level, session) {
		return Evaluate(level, session, OnboardingUnresolved, path)
	}

	return Evaluate(level, session, s.onboarding(ctx, session.UserID), path)
}

func (s *Sequencer) onboarding(ctx context.Context, userID uuid.UUID) Onboarding {
	if s.cache.Completed(ctx, userID) {
		return OnboardingCompleted
	}

	logger := logging.GetLoggerFromContext(ctx)

	// The shared lookup must outlive any single caller that gives up.
	results := s.lookups.DoChan(userID.String(), func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.lookupTimeout)
		defer cancel()
		return s.source.OnboardingStatus(lookupCtx, userID)
	})

	select {
	case <-ctx.Done():
		logger.Debug("onboarding lookup abandoned", "user_id", userID, "error", ctx.Err())
		return OnboardingUnresolved
	case res := <-results:
		if res.Err != nil {
			if errors.Is(res.Err, ErrStatusNotFound) {
				return OnboardingIncomplete
			}
			logger.Warn("onboarding lookup failed", "user_id", userID, "error", res.Err)
			if s.policy == FailToLoading {
				return OnboardingUnresolved
			}
			return OnboardingIncomplete
		}

		if completed, _ := res.Val.(bool); completed {
			s.cache.MarkCompleted(ctx, userID)
			return OnboardingCompleted
		}
		return OnboardingIncomplete
	}
}
