package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken               = errors.New("invalid token")
	ErrExpiredToken               = errors.New("token has expired")
	ErrRefreshTokenNotFound       = errors.New("refresh token not found")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenExpired        = errors.New("refresh token has expired")
	ErrPasswordResetTokenNotFound = errors.New("password reset token not found or expired")
)

// TokenClaims are the claims carried by an access token
type TokenClaims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// RefreshToken is a stored refresh token; only its hash is kept
type RefreshToken struct {
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

func (t *RefreshToken) IsRevoked() bool { return t.RevokedAt != nil }

func (t *RefreshToken) IsExpired() bool { return time.Now().After(t.ExpiresAt) }

func (t *RefreshToken) IsValid() bool { return !t.IsRevoked() && !t.IsExpired() }

// AuthTokens is returned to non-browser clients on login and refresh
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// hashToken returns the hex SHA-256 of an opaque token for storage keys
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
