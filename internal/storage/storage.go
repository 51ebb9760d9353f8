package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrSlotUnavailable indicates the slot was already booked, is in the past, or is gone.
var ErrSlotUnavailable = errors.New("slot is no longer available")

// ErrStatusChanged indicates the session left the expected status before the update landed.
var ErrStatusChanged = errors.New("session status changed concurrently")

// ErrSlotOverlap indicates persisted slots of one mentor would overlap.
var ErrSlotOverlap = errors.New("slots overlap")

// ErrBookedSlot indicates a booked slot would be removed without cancelling its session.
var ErrBookedSlot = errors.New("slot is booked")

// ProfileStore persists profiles and local credentials.
type ProfileStore interface {
	CreateAccount(ctx context.Context, account models.Account, profile models.Profile) (models.Profile, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
}

// MentorStore persists mentor extensions and the read-only catalogue tables.
type MentorStore interface {
	// EnsureMentor creates the mentor row if missing; created reports whether it did.
	EnsureMentor(ctx context.Context, profileID uuid.UUID) (mentor models.Mentor, created bool, err error)
	GetMentor(ctx context.Context, id uuid.UUID) (models.Mentor, error)
	ListMentors(ctx context.Context, filter models.MentorFilter) ([]models.Mentor, error)
	UpdateMentor(ctx context.Context, mentor models.Mentor) (models.Mentor, error)
	ListReviews(ctx context.Context, mentorID uuid.UUID) ([]models.Review, error)
	ListGroupSessions(ctx context.Context, from time.Time) ([]models.GroupSession, error)
}

// SlotFilter narrows availability listings.
type SlotFilter struct {
	FromDay  string // YYYY-MM-DD, inclusive; empty means no lower bound
	OnlyOpen bool
}

// SlotChanges is an explicit availability delta applied atomically.
type SlotChanges struct {
	Add    []models.AvailabilitySlot
	Remove []uuid.UUID
	// CancelBooked allows removing booked slots; their scheduled sessions are cancelled.
	CancelBooked bool
}

// Empty reports whether applying c would change nothing.
func (c SlotChanges) Empty() bool {
	return len(c.Add) == 0 && len(c.Remove) == 0
}

// AvailabilityStore persists mentor availability.
type AvailabilityStore interface {
	ListSlots(ctx context.Context, mentorID uuid.UUID, filter SlotFilter) ([]models.AvailabilitySlot, error)
	GetSlot(ctx context.Context, id uuid.UUID) (models.AvailabilitySlot, error)
	// ApplySlotChanges applies all of changes or none of them and returns the resulting slot set.
	ApplySlotChanges(ctx context.Context, mentorID uuid.UUID, changes SlotChanges) ([]models.AvailabilitySlot, error)
}

// SessionDraft builds the session row for a slot that has just been claimed.
type SessionDraft func(slot models.AvailabilitySlot, mentor models.Mentor) (models.Session, error)

// SessionFilter narrows session listings. Exactly one of MentorID and MenteeID is normally set.
type SessionFilter struct {
	MentorID     uuid.UUID
	MenteeID     uuid.UUID
	StartsFrom   *time.Time // date_time >= StartsFrom
	StartsBefore *time.Time // date_time < StartsBefore
	Status       string
}

// SessionStore persists bookings.
type SessionStore interface {
	// BookSlot claims the slot only if it is unbooked and on or after today, then
	// inserts the drafted session. Both happen in one transaction.
	BookSlot(ctx context.Context, slotID uuid.UUID, today string, draft SessionDraft) (models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (models.Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]models.Session, error)
	// UpdateSessionStatus moves the session from one status to another only if it is
	// still in from; otherwise it returns ErrStatusChanged. releaseSlot frees the
	// linked slot in the same transaction.
	UpdateSessionStatus(ctx context.Context, id uuid.UUID, from, to string, releaseSlot bool) (models.Session, error)
	ScheduledBetween(ctx context.Context, from, to time.Time) ([]models.SessionReminder, error)
}

// Store is the full persistence surface used by the server.
type Store interface {
	ProfileStore
	MentorStore
	AvailabilityStore
	SessionStore
	Ping(ctx context.Context) error
	Close()
}
