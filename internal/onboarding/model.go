// Package onboarding stores the profile a user fills in after verifying
// their email, and is the authoritative source of the completion flag.
package onboarding

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrDisplayNameTooLong  = errors.New("display name must be at most 50 characters")
)

const maxDisplayNameLen = 50

type Profile struct {
	UserID           uuid.UUID  `json:"user_id"`
	DisplayName      string     `json:"display_name"`
	StylePreferences []string   `json:"style_preferences"`
	FavoriteColors   []string   `json:"favorite_colors"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// ProfileInput is what the onboarding form submits
type ProfileInput struct {
	DisplayName      string   `json:"display_name"`
	StylePreferences []string `json:"style_preferences"`
	FavoriteColors   []string `json:"favorite_colors"`
}
