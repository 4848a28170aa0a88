package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/wardrobe-api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new, unverified user
func (r *Repository) Create(ctx context.Context, email, passwordHash, verificationToken string) (*User, error) {
	now := time.Now()
	dbUser := &database.User{
		Email:                   email,
		PasswordHash:            passwordHash,
		EmailVerificationToken:  &verificationToken,
		EmailVerificationSentAt: &now,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toModel(dbUser), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "by email", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("email = ?", email)
	})
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getOne(ctx, "by id", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

// GetByVerificationToken only matches users whose email is still unverified
func (r *Repository) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	return r.getOne(ctx, "by verification token", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("email_verification_token = ?", token).Where("email_verified_at IS NULL")
	})
}

func (r *Repository) getOne(ctx context.Context, what string, filter func(*bun.SelectQuery) *bun.SelectQuery) (*User, error) {
	dbUser := new(database.User)
	if err := filter(r.db.NewSelect().Model(dbUser)).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", what, err)
	}

	return toModel(dbUser), nil
}

// MarkEmailAsVerified stamps email_verified_at and clears the verification token
func (r *Repository) MarkEmailAsVerified(ctx context.Context, userID uuid.UUID) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("email_verified_at = NOW()").
		Set("email_verification_token = NULL").
		Set("email_verification_sent_at = NULL").
		Set("updated_at = NOW()").
		Where("id = ?", userID).
		Where("email_verified_at IS NULL")

	return execOne(ctx, q, "mark email as verified")
}

func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = NOW()").
		Where("id = ?", userID)

	return execOne(ctx, q, "update password")
}

// UpdateVerificationToken rotates the token of an unverified user for a resend
func (r *Repository) UpdateVerificationToken(ctx context.Context, userID uuid.UUID, token string) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("email_verification_token = ?", token).
		Set("email_verification_sent_at = ?", time.Now()).
		Set("updated_at = NOW()").
		Where("id = ?", userID).
		Where("email_verified_at IS NULL")

	return execOne(ctx, q, "update verification token")
}

// execOne runs an update and maps zero affected rows to ErrNotFound
func execOne(ctx context.Context, q *bun.UpdateQuery, what string) error {
	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func toModel(dbu *database.User) *User {
	return &User{
		ID:                      dbu.ID,
		Email:                   dbu.Email,
		PasswordHash:            dbu.PasswordHash,
		EmailVerifiedAt:         dbu.EmailVerifiedAt,
		EmailVerificationToken:  dbu.EmailVerificationToken,
		EmailVerificationSentAt: dbu.EmailVerificationSentAt,
		CreatedAt:               dbu.CreatedAt,
		UpdatedAt:               dbu.UpdatedAt,
	}
}
