package models

import (
	"time"

	"github.com/google/uuid"
)

// Session statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses. Only pending is written today; payment processing lives elsewhere.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// AvailabilitySlot is a mentor-declared open window. Day is YYYY-MM-DD and
// the times are HH:MM wall-clock values without a time zone.
type AvailabilitySlot struct {
	ID        uuid.UUID `json:"id"`
	MentorID  uuid.UUID `json:"mentor_id"`
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a confirmed booking. Duration is in whole minutes.
type Session struct {
	ID            uuid.UUID  `json:"id"`
	MentorID      uuid.UUID  `json:"mentor_id"`
	MenteeID      uuid.UUID  `json:"mentee_id"`
	SlotID        *uuid.UUID `json:"slot_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DateTime      time.Time  `json:"date_time"`
	Duration      int        `json:"duration"`
	Price         float64    `json:"price"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SessionReminder is a scheduled session joined with the names needed to address a reminder.
type SessionReminder struct {
	Session
	MentorName string `json:"mentor_name"`
	MenteeName string `json:"mentee_name"`
}

// ValidSessionStatus reports whether s is a known session status.
func ValidSessionStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
