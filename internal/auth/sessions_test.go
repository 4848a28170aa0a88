package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

type lookupFunc func(ctx context.Context, id uuid.UUID) (*user.User, error)

func (f lookupFunc) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f(ctx, id)
}

func TestSessionsCurrentSession(t *testing.T) {
	userID := uuid.New()
	verifiedAt := time.Now()

	tests := []struct {
		name     string
		signedIn bool
		lookup   lookupFunc
		want     gate.Session
	}{
		{
			name:     "anonymous",
			signedIn: false,
			want:     gate.Session{},
		},
		{
			name:     "verified user",
			signedIn: true,
			lookup: func(context.Context, uuid.UUID) (*user.User, error) {
				return &user.User{ID: userID, EmailVerifiedAt: &verifiedAt}, nil
			},
			want: gate.Session{UserID: userID, EmailVerifiedAt: &verifiedAt},
		},
		{
			name:     "deleted user",
			signedIn: true,
			lookup: func(context.Context, uuid.UUID) (*user.User, error) {
				return nil, user.ErrNotFound
			},
			want: gate.Session{},
		},
		{
			name:     "store unavailable",
			signedIn: true,
			lookup: func(context.Context, uuid.UUID) (*user.User, error) {
				return nil, errors.New("connection refused")
			},
			want: gate.Session{Pending: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.signedIn {
				req = req.WithContext(withUser(req.Context(), userID, "ana@example.com"))
			}

			got := NewSessions(tt.lookup).CurrentSession(req)
			assert.Equal(t, tt.want, got)
		})
	}
}
