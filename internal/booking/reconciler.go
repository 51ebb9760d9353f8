// Package booking turns a free availability slot into exactly one session.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/auth"
	"github.com/anuragmoyde/mentor4all-sub000/internal/availability"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrNoSlotSelected    = errors.New("no slot selected")
	ErrTitleRequired     = errors.New("session title is required")
	ErrSelfBooking       = errors.New("mentors cannot book their own slots")
	ErrNotParticipant    = errors.New("not a participant of this session")
	ErrInvalidTransition = errors.New("session status change not allowed")
)

// DaySlots groups the open slots of one calendar day.
type DaySlots struct {
	Day   string                    `json:"day"`
	Slots []models.AvailabilitySlot `json:"slots"`
}

// Reconciler books slots and moves sessions through their statuses.
type Reconciler struct {
	sessions storage.SessionStore
	slots    storage.AvailabilityStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewReconciler constructs a Reconciler.
func NewReconciler(sessions storage.SessionStore, slots storage.AvailabilityStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{sessions: sessions, slots: slots, logger: logger, now: time.Now}
}

func (r *Reconciler) today() string {
	return r.now().UTC().Format("2006-01-02")
}

// OpenSlots lists the mentor's unbooked slots from today on, grouped by day.
func (r *Reconciler) OpenSlots(ctx context.Context, mentorID uuid.UUID) ([]DaySlots, error) {
	slots, err := r.slots.ListSlots(ctx, mentorID, storage.SlotFilter{FromDay: r.today(), OnlyOpen: true})
	if err != nil {
		return nil, fmt.Errorf("open slots: %w", err)
	}
	days := []DaySlots{}
	for _, slot := range slots {
		if n := len(days); n > 0 && days[n-1].Day == slot.Day {
			days[n-1].Slots = append(days[n-1].Slots, slot)
			continue
		}
		days = append(days, DaySlots{Day: slot.Day, Slots: []models.AvailabilitySlot{slot}})
	}
	return days, nil
}

// Book claims req.SlotID for the caller. Validation failures return before any
// store call; the claim and the session insert commit together or not at all.
func (r *Reconciler) Book(ctx context.Context, id auth.Identity, req Request) (models.Session, error) {
	if !id.Authenticated() {
		return models.Session{}, ErrAuthRequired
	}
	if req.SlotID == uuid.Nil {
		return models.Session{}, ErrNoSlotSelected
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Session{}, ErrTitleRequired
	}

	session, err := r.sessions.BookSlot(ctx, req.SlotID, r.today(), func(slot models.AvailabilitySlot, mentor models.Mentor) (models.Session, error) {
		if slot.MentorID == id.UserID {
			return models.Session{}, ErrSelfBooking
		}
		w, err := availability.ParseWindow(slot.Day, slot.StartTime, slot.EndTime)
		if err != nil {
			return models.Session{}, err
		}
		minutes := DurationMinutes(w)
		slotID := slot.ID
		return models.Session{
			ID:            uuid.New(),
			MentorID:      slot.MentorID,
			MenteeID:      id.UserID,
			SlotID:        &slotID,
			Title:         title,
			Description:   strings.TrimSpace(req.Description),
			DateTime:      w.StartsAt(),
			Duration:      minutes,
			Price:         Price(mentor.HourlyRate, minutes),
			Status:        models.StatusScheduled,
			PaymentStatus: models.PaymentPending,
		}, nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrSlotUnavailable) || errors.Is(err, ErrSelfBooking) {
			return models.Session{}, err
		}
		return models.Session{}, fmt.Errorf("book slot %s: %w", req.SlotID, err)
	}

	r.logger.Info("session booked",
		zap.String("session_id", session.ID.String()),
		zap.String("slot_id", req.SlotID.String()),
		zap.String("mentor_id", session.MentorID.String()),
		zap.String("mentee_id", session.MenteeID.String()),
		zap.Int("duration", session.Duration),
		zap.Float64("price", session.Price),
	)
	return session, nil
}

// UpdateStatus cancels or completes a scheduled session. Either participant may
// cancel, which frees the slot; only the mentor may mark it completed.
func (r *Reconciler) UpdateStatus(ctx context.Context, id auth.Identity, sessionID uuid.UUID, status string) (models.Session, error) {
	if !id.Authenticated() {
		return models.Session{}, ErrAuthRequired
	}
	session, err := r.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	isMentor := session.MentorID == id.UserID
	if !isMentor && session.MenteeID != id.UserID {
		return models.Session{}, ErrNotParticipant
	}
	if session.Status != models.StatusScheduled {
		return models.Session{}, fmt.Errorf("%w: session is %s", ErrInvalidTransition, session.Status)
	}

	switch status {
	case models.StatusCancelled:
	case models.StatusCompleted:
		if !isMentor {
			return models.Session{}, fmt.Errorf("%w: only the mentor can complete a session", ErrInvalidTransition)
		}
	default:
		return models.Session{}, fmt.Errorf("%w: cannot move to %q", ErrInvalidTransition, status)
	}

	updated, err := r.sessions.UpdateSessionStatus(ctx, sessionID, models.StatusScheduled, status, status == models.StatusCancelled)
	if err != nil {
		if errors.Is(err, storage.ErrStatusChanged) {
			return models.Session{}, fmt.Errorf("%w: session is no longer scheduled", ErrInvalidTransition)
		}
		return models.Session{}, fmt.Errorf("update session %s: %w", sessionID, err)
	}
	r.logger.Info("session status changed",
		zap.String("session_id", sessionID.String()),
		zap.String("status", status),
		zap.String("by", id.UserID.String()),
	)
	return updated, nil
}
