package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id"`
	Email                   string     `json:"email"`
	PasswordHash            string     `json:"-"`
	EmailVerifiedAt         *time.Time `json:"email_verified_at"`
	EmailVerificationToken  *string    `json:"-"`
	EmailVerificationSentAt *time.Time `json:"-"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// EmailVerified reports whether the user has confirmed their address
func (u *User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
