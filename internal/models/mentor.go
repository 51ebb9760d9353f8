package models

import (
	"time"

	"github.com/google/uuid"
)

// Mentor extends a Profile whose user_type is mentor.
type Mentor struct {
	ID              uuid.UUID `json:"id"`
	HourlyRate      float64   `json:"hourly_rate"`
	YearsExperience int       `json:"years_experience"`
	Industry        string    `json:"industry"`
	Expertise       []string  `json:"expertise"`
	Company         string    `json:"company"`
	JobTitle        string    `json:"job_title"`
	AverageRating   float64   `json:"average_rating"`
	ReviewCount     int       `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`

	Profile *Profile `json:"profile,omitempty"`
}

// MentorFilter narrows catalogue listings. Empty fields match everything.
type MentorFilter struct {
	Industry  string
	Expertise string
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	MentorID  uuid.UUID `json:"mentor_id"`
	MenteeID  uuid.UUID `json:"mentee_id"`
	SessionID uuid.UUID `json:"session_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type GroupSession struct {
	ID              uuid.UUID `json:"id"`
	MentorID        uuid.UUID `json:"mentor_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"date_time"`
	Duration        int       `json:"duration"`
	MaxParticipants int       `json:"max_participants"`
	Price           float64   `json:"price"`
}
