package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                      uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email                   string     `bun:"email,notnull,unique"`
	PasswordHash            string     `bun:"password_hash,notnull"`
	EmailVerifiedAt         *time.Time `bun:"email_verified_at"`
	EmailVerificationToken  *string    `bun:"email_verification_token"`
	EmailVerificationSentAt *time.Time `bun:"email_verification_sent_at"`
	CreatedAt               time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt               time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// Profile holds what the user entered during onboarding
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	UserID              uuid.UUID  `bun:"user_id,pk,type:uuid"`
	DisplayName         string     `bun:"display_name,notnull"`
	StylePreferences    []string   `bun:"style_preferences,array"`
	FavoriteColors      []string   `bun:"favorite_colors,array"`
	OnboardingCompleted bool       `bun:"onboarding_completed,notnull"`
	CompletedAt         *time.Time `bun:"completed_at"`
	CreatedAt           time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt           time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

type ClosetItem struct {
	bun.BaseModel `bun:"table:closet_items,alias:ci"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    uuid.UUID `bun:"user_id,type:uuid,notnull"`
	Name      string    `bun:"name,notnull"`
	Category  string    `bun:"category,notnull"`
	Color     string    `bun:"color"`
	Brand     string    `bun:"brand"`
	Pattern   string    `bun:"pattern"`
	Style     string    `bun:"style"`
	Seasons   []string  `bun:"seasons,array"`
	Occasions []string  `bun:"occasions,array"`
	ImageURL  string    `bun:"image_url"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
