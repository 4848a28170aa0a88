package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/wardrobe-api/internal/httputil"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserIDContextKey    ContextKey = "user_id"
	UserEmailContextKey ContextKey = "user_email"
)

var (
	errMissingAuth       = errors.New("missing authentication")
	errInvalidAuthHeader = errors.New("invalid authorization header format")
	errInvalidSubject    = errors.New("invalid user ID in token")
)

// Middleware authenticates requests from a bearer token or the access cookie
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// authenticate prefers the Authorization header and falls back to the cookie
func (m *Middleware) authenticate(r *http.Request) (uuid.UUID, *TokenClaims, error) {
	var token string

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, value, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || value == "" {
			return uuid.Nil, nil, errInvalidAuthHeader
		}
		token = value
	} else {
		cookieToken, err := GetAccessTokenFromCookie(r)
		if err != nil {
			return uuid.Nil, nil, errMissingAuth
		}
		token = cookieToken
	}

	claims, err := m.tokenService.VerifyToken(token)
	if err != nil {
		return uuid.Nil, nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, errInvalidSubject
	}

	return userID, claims, nil
}

func withUser(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, userID)
	return context.WithValue(ctx, UserEmailContextKey, email)
}

// RequireAuth rejects requests without a valid access token
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, claims, err := m.authenticate(r)
		if err != nil {
			respondAuthError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID, claims.Email)))
	})
}

// OptionalAuth attaches the user when a valid token is present and
// otherwise lets the request through anonymously
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, claims, err := m.authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID, claims.Email)))
	})
}

func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errInvalidAuthHeader):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
	case errors.Is(err, errMissingAuth):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMissingAuth, http.StatusUnauthorized)
	case errors.Is(err, ErrExpiredToken):
		httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
	case errors.Is(err, errInvalidSubject):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidTokenUserID, http.StatusUnauthorized)
	default:
		httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
	}
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return userID, ok
}

func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailContextKey).(string)
	return email, ok
}
