package dto

import "github.com/anuragmoyde/mentor4all-sub000/internal/models"

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// SessionResponse mirrors getCurrentSession(): who is calling and their profile row.
type SessionResponse struct {
	UserID  string          `json:"user_id"`
	Email   string          `json:"email,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
}
