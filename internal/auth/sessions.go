package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

type userLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Sessions resolves gate sessions from the authenticated request context.
// The user is reloaded on every request so a fresh verification is seen
// immediately. Requests must pass through OptionalAuth first.
type Sessions struct {
	users userLookup
}

func NewSessions(users userLookup) *Sessions {
	return &Sessions{users: users}
}

func (s *Sessions) CurrentSession(r *http.Request) gate.Session {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		return gate.Session{}
	}

	u, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return gate.Session{}
		}
		// Unknown state: hold off any redirect rather than guess.
		logging.GetLoggerFromContext(r.Context()).Warn("session lookup failed", "user_id", userID, "error", err)
		return gate.Session{Pending: true}
	}

	return gate.Session{UserID: u.ID, EmailVerifiedAt: u.EmailVerifiedAt}
}
