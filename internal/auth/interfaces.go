package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/wardrobe-api/internal/user"
)

// TokenService creates and validates access tokens.
// Implementations are PasetoService (v4.local) and JWTService (HS256).
type TokenService interface {
	CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the subset of user.Repository the auth flow needs
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, verificationToken string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*user.User, error)
	MarkEmailAsVerified(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateVerificationToken(ctx context.Context, userID uuid.UUID, token string) error
}

// RefreshTokenRepository stores refresh tokens by hash
type RefreshTokenRepository interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// EmailService sends the transactional emails of the auth flow
type EmailService interface {
	SendVerificationEmail(ctx context.Context, toEmail, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, token string) error
}
