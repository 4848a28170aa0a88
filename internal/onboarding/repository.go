package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/wardrobe-api/internal/database"
	"github.com/redmonkez12/wardrobe-api/internal/gate"
)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetStatus reads only the completion flag. A user without a profile row
// yields gate.ErrStatusNotFound.
func (r *Repository) GetStatus(ctx context.Context, userID uuid.UUID) (bool, error) {
	var completed bool
	err := r.db.NewSelect().
		Model((*database.Profile)(nil)).
		Column("onboarding_completed").
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, gate.ErrStatusNotFound
		}
		return false, fmt.Errorf("failed to get onboarding status: %w", err)
	}
	return completed, nil
}

func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	dbp := new(database.Profile)
	err := r.db.NewSelect().
		Model(dbp).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return toModel(dbp), nil
}

// Complete upserts the profile and sets the completion flag. The first
// completion time is preserved on later edits.
func (r *Repository) Complete(ctx context.Context, userID uuid.UUID, in ProfileInput) (*Profile, error) {
	now := time.Now()
	dbp := &database.Profile{
		UserID:              userID,
		DisplayName:         in.DisplayName,
		StylePreferences:    in.StylePreferences,
		FavoriteColors:      in.FavoriteColors,
		OnboardingCompleted: true,
		CompletedAt:         &now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	_, err := r.db.NewInsert().
		Model(dbp).
		On("CONFLICT (user_id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("style_preferences = EXCLUDED.style_preferences").
		Set("favorite_colors = EXCLUDED.favorite_colors").
		Set("onboarding_completed = TRUE").
		Set("completed_at = COALESCE(p.completed_at, EXCLUDED.completed_at)").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	return toModel(dbp), nil
}

func toModel(dbp *database.Profile) *Profile {
	return &Profile{
		UserID:           dbp.UserID,
		DisplayName:      dbp.DisplayName,
		StylePreferences: nonNil(dbp.StylePreferences),
		FavoriteColors:   nonNil(dbp.FavoriteColors),
		Completed:        dbp.OnboardingCompleted,
		CompletedAt:      dbp.CompletedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
