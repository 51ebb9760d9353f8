package models

import (
	"time"

	"github.com/google/uuid"
)

// User types a profile can assume.
const (
	UserTypeMentor = "mentor"
	UserTypeMentee = "mentee"
)

// Profile is the identity-linked record every signed-up user owns.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Account holds local credentials for the built-in identity provider.
type Account struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidUserType reports whether t is mentor or mentee.
func ValidUserType(t string) bool {
	return t == UserTypeMentor || t == UserTypeMentee
}
