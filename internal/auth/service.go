package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrEmailRequired            = errors.New("email is required")
	ErrPasswordRequired         = errors.New("password is required")
	ErrPasswordTooShort         = errors.New("password must be at least 8 characters")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrTokenExpired             = errors.New("verification token has expired")
	ErrInvalidEmailFormat       = errors.New("invalid email format")
)

const (
	minPasswordLen          = 8
	maxEmailLen             = 254
	verificationTokenMaxAge = 24 * time.Hour
)

// Service handles authentication business logic
type Service struct {
	users                UserStore
	refreshTokens        RefreshTokenRepository
	passwordResets       *PasswordResetRepository
	tokens               TokenService
	email                EmailService
	logger               *logging.Logger
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewService(
	users UserStore,
	refreshTokens RefreshTokenRepository,
	passwordResets *PasswordResetRepository,
	tokens TokenService,
	email EmailService,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) *Service {
	return &Service{
		users:                users,
		refreshTokens:        refreshTokens,
		passwordResets:       passwordResets,
		tokens:               tokens,
		email:                email,
		logger:               logger,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > maxEmailLen {
		return ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmailFormat
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// Register creates an unverified account and sends the verification email
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	newUser, err := s.users.Create(ctx, email, passwordHash, verificationToken)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendAsync(ctx, "verification", email, func(ctx context.Context) error {
		return s.email.SendVerificationEmail(ctx, email, verificationToken)
	})

	return newUser, nil
}

// Login authenticates a user and returns tokens. Unverified users are let
// in; the route gate sends them to /verify-email.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !verifyPassword(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(ctx, existingUser.ID, existingUser.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return tokens, nil
}

// RefreshAccessToken rotates a refresh token into a new token pair
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	rt, err := s.refreshTokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if rt.IsRevoked() {
		return nil, ErrRefreshTokenRevoked
	}
	if rt.IsExpired() {
		return nil, ErrRefreshTokenExpired
	}

	// Revoke before issuing so the old token cannot be replayed.
	if err := s.refreshTokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	existingUser, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.generateTokens(ctx, existingUser.ID, existingUser.Email)
}

func (s *Service) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.refreshTokens.RevokeRefreshToken(ctx, refreshToken)
}

// RevokeAllSessions invalidates every refresh token the user holds
func (s *Service) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	if err := s.refreshTokens.RevokeAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// VerifyEmail stamps the user's email as verified if the token is current
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	existingUser, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidVerificationToken
		}
		return fmt.Errorf("failed to find user by token: %w", err)
	}

	sentAt := existingUser.EmailVerificationSentAt
	if sentAt == nil || time.Since(*sentAt) > verificationTokenMaxAge {
		return ErrTokenExpired
	}

	if err := s.users.MarkEmailAsVerified(ctx, existingUser.ID); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

// CurrentUser loads the user behind a verified access token
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) generateTokens(ctx context.Context, userID uuid.UUID, email string) (*AuthTokens, error) {
	accessToken, err := s.tokens.CreateToken(userID, email, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.refreshTokenDuration)
	if err := s.refreshTokens.StoreRefreshToken(ctx, userID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenDuration.Seconds()),
	}, nil
}

// RequestPasswordReset always returns nil so callers cannot probe for accounts
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			s.logger.Warn("failed to get user for password reset", "error", err)
		}
		return nil
	}

	token, err := generateRandomToken()
	if err != nil {
		s.logger.Warn("failed to generate password reset token", "error", err)
		return nil
	}

	if err := s.passwordResets.StorePasswordResetToken(ctx, existingUser.ID, token); err != nil {
		s.logger.Warn("failed to store password reset token", "error", err)
		return nil
	}

	s.sendAsync(ctx, "password reset", email, func(ctx context.Context) error {
		return s.email.SendPasswordResetEmail(ctx, email, token)
	})

	return nil
}

// ResetPassword sets a new password and revokes every refresh token of the user
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	userID, err := s.passwordResets.GetPasswordResetToken(ctx, token)
	if err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.passwordResets.DeletePasswordResetToken(ctx, token); err != nil {
		s.logger.Warn("failed to delete password reset token", "error", err)
	}

	if err := s.refreshTokens.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke user tokens after password reset", "error", err)
	}

	return nil
}

// ResendVerificationEmail always returns nil so callers cannot probe for accounts
func (s *Service) ResendVerificationEmail(ctx context.Context, email string) error {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			s.logger.Warn("failed to get user for resend verification", "error", err)
		}
		return nil
	}

	if existingUser.EmailVerified() {
		return nil
	}

	token, err := generateRandomToken()
	if err != nil {
		s.logger.Warn("failed to generate verification token", "error", err)
		return nil
	}

	if err := s.users.UpdateVerificationToken(ctx, existingUser.ID, token); err != nil {
		s.logger.Warn("failed to update verification token", "error", err)
		return nil
	}

	s.sendAsync(ctx, "verification", email, func(ctx context.Context) error {
		return s.email.SendVerificationEmail(ctx, email, token)
	})

	return nil
}

// sendAsync sends an email off the request path; failures are only logged
func (s *Service) sendAsync(ctx context.Context, kind, email string, send func(context.Context) error) {
	emailCtx := context.WithoutCancel(ctx)
	go func() {
		if err := send(emailCtx); err != nil {
			s.logger.Warn("failed to send email", "kind", kind, "email", email, "error", err)
		}
	}()
}
