package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

type usersByEmail map[string]*user.User

func (u usersByEmail) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if found, ok := u[email]; ok {
		return found, nil
	}
	return nil, user.ErrNotFound
}

type brokenUsers struct{}

func (brokenUsers) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, errors.New("connection refused")
}

func TestSessionForEmail(t *testing.T) {
	verified := time.Now()
	ana := &user.User{ID: uuid.New(), Email: "ana@example.com", EmailVerifiedAt: &verified}
	users := usersByEmail{ana.Email: ana}

	s, err := sessionForEmail(context.Background(), users, ana.Email)
	require.NoError(t, err)
	assert.Equal(t, gate.Session{UserID: ana.ID, EmailVerifiedAt: &verified}, s)

	s, err = sessionForEmail(context.Background(), users, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, s.UserPresent())
	assert.Equal(t, gate.Redirect(gate.PathAuth).Path, gate.Evaluate(gate.RequireSession, s, gate.OnboardingUnresolved, "/home").Path)

	_, err = sessionForEmail(context.Background(), brokenUsers{}, ana.Email)
	assert.Error(t, err)
}

func TestRenderDecisionKeepsText(t *testing.T) {
	assert.Contains(t, renderDecision(gate.Redirect(gate.PathOnboarding)), "redirect:/onboarding")
	assert.Contains(t, renderDecision(gate.Allow()), "allow")
	assert.Contains(t, renderDecision(gate.Loading()), "loading")
}
