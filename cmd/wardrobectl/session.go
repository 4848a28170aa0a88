package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

// sessionForEmail builds the session the API would resolve for a signed-in
// user. An unknown email is an anonymous session.
func sessionForEmail(ctx context.Context, users userFinder, email string) (gate.Session, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return gate.Session{}, nil
		}
		return gate.Session{}, fmt.Errorf("find user %q: %w", email, err)
	}
	return gate.Session{UserID: u.ID, EmailVerifiedAt: u.EmailVerifiedAt}, nil
}
