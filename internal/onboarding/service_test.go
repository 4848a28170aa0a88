package onboarding

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
)

type memoryStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*Profile
	err      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{profiles: map[uuid.UUID]*Profile{}}
}

func (m *memoryStore) GetStatus(_ context.Context, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return false, gate.ErrStatusNotFound
	}
	return p.Completed, nil
}

func (m *memoryStore) GetProfile(_ context.Context, userID uuid.UUID) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryStore) Complete(_ context.Context, userID uuid.UUID, in ProfileInput) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	now := time.Now()
	p := &Profile{
		UserID:           userID,
		DisplayName:      in.DisplayName,
		StylePreferences: in.StylePreferences,
		FavoriteColors:   in.FavoriteColors,
		Completed:        true,
		CompletedAt:      &now,
	}
	m.profiles[userID] = p
	cp := *p
	return &cp, nil
}

func TestCompleteMarksCache(t *testing.T) {
	store := newMemoryStore()
	cache := gate.NewMemoryCache()
	svc := NewService(store, cache)
	userID := uuid.New()

	_, err := svc.OnboardingStatus(context.Background(), userID)
	assert.ErrorIs(t, err, gate.ErrStatusNotFound)
	assert.False(t, cache.Completed(context.Background(), userID))

	p, err := svc.Complete(context.Background(), userID, ProfileInput{
		DisplayName:      "  Ana  ",
		StylePreferences: []string{"Minimal", "minimal ", "", "Streetwear"},
		FavoriteColors:   []string{"Black"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.DisplayName)
	assert.Equal(t, []string{"minimal", "streetwear"}, p.StylePreferences)
	assert.Equal(t, []string{"black"}, p.FavoriteColors)
	assert.True(t, cache.Completed(context.Background(), userID))

	completed, err := svc.OnboardingStatus(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestCompleteValidation(t *testing.T) {
	svc := NewService(newMemoryStore(), gate.NewMemoryCache())

	_, err := svc.Complete(context.Background(), uuid.New(), ProfileInput{DisplayName: "   "})
	assert.ErrorIs(t, err, ErrDisplayNameRequired)

	_, err = svc.Complete(context.Background(), uuid.New(), ProfileInput{DisplayName: strings.Repeat("é", 51)})
	assert.ErrorIs(t, err, ErrDisplayNameTooLong)
}

func TestCompleteStoreFailureLeavesCache(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection reset")
	cache := gate.NewMemoryCache()
	userID := uuid.New()

	_, err := NewService(store, cache).Complete(context.Background(), userID, ProfileInput{DisplayName: "Ana"})
	require.Error(t, err)
	assert.False(t, cache.Completed(context.Background(), userID))
}

func TestProfileWithoutRowIsNil(t *testing.T) {
	svc := NewService(newMemoryStore(), gate.NewMemoryCache())

	p, err := svc.Profile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSequencerUsesServiceAsSource(t *testing.T) {
	store := newMemoryStore()
	cache := gate.NewMemoryCache()
	svc := NewService(store, cache)
	seq := gate.NewSequencer(svc, cache)

	verified := time.Now()
	session := gate.Session{UserID: uuid.New(), EmailVerifiedAt: &verified}

	d := seq.Resolve(context.Background(), gate.RequireOnboarded, session, "/closet")
	assert.Equal(t, gate.Redirect(gate.PathOnboarding), d)

	_, err := svc.Complete(context.Background(), session.UserID, ProfileInput{DisplayName: "Ana"})
	require.NoError(t, err)

	d = seq.Resolve(context.Background(), gate.RequireOnboarded, session, gate.PathOnboarding)
	assert.Equal(t, gate.Redirect(gate.PathHome), d)
}
