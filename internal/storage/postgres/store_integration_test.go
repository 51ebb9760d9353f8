package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}
	store, err := NewStore(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func createUser(t *testing.T, s *Store, userType string) models.Profile {
	t.Helper()
	p := models.Profile{ID: uuid.New(), FirstName: "Store", LastName: userType, UserType: userType}
	email := fmt.Sprintf("store_%s@example.com", p.ID)
	created, err := s.CreateAccount(context.Background(), models.Account{Email: email, PasswordHash: "x"}, p)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return created
}

func TestEnsureMentorIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createUser(t, s, models.UserTypeMentor)

	_, created, err := s.EnsureMentor(ctx, p.ID)
	if err != nil || !created {
		t.Fatalf("first ensure: created=%v err=%v", created, err)
	}
	_, created, err = s.EnsureMentor(ctx, p.ID)
	if err != nil || created {
		t.Fatalf("second ensure: created=%v err=%v", created, err)
	}
	if _, _, err := s.EnsureMentor(ctx, uuid.New()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown profile: err=%v", err)
	}
}

func TestBookSlotAtMostOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mentor := createUser(t, s, models.UserTypeMentor)
	if _, _, err := s.EnsureMentor(ctx, mentor.ID); err != nil {
		t.Fatal(err)
	}

	day := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	slots, err := s.ApplySlotChanges(ctx, mentor.ID, storage.SlotChanges{Add: []models.AvailabilitySlot{
		{Day: day, StartTime: "09:00", EndTime: "10:00"},
	}})
	if err != nil || len(slots) != 1 {
		t.Fatalf("add slot: %v %+v", err, slots)
	}
	slot := slots[0]
	today := time.Now().UTC().Format("2006-01-02")

	const contenders = 8
	mentees := make([]models.Profile, contenders)
	for i := range mentees {
		mentees[i] = createUser(t, s, models.UserTypeMentee)
	}

	var wg sync.WaitGroup
	errs := make(chan error, contenders)
	for _, mentee := range mentees {
		wg.Add(1)
		go func(menteeID uuid.UUID) {
			defer wg.Done()
			_, err := s.BookSlot(ctx, slot.ID, today, func(sl models.AvailabilitySlot, m models.Mentor) (models.Session, error) {
				slotID := sl.ID
				return models.Session{
					ID: uuid.New(), MentorID: sl.MentorID, MenteeID: menteeID, SlotID: &slotID,
					Title: "Race", DateTime: time.Now().Add(72 * time.Hour), Duration: 60,
					Status: models.StatusScheduled, PaymentStatus: models.PaymentPending,
				}, nil
			})
			errs <- err
		}(mentee.ID)
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, storage.ErrSlotUnavailable):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("successful bookings = %d, want 1", ok)
	}

	sessions, err := s.ListSessions(ctx, storage.SessionFilter{MentorID: mentor.ID})
	if err != nil || len(sessions) != 1 {
		t.Fatalf("sessions = %d (%v)", len(sessions), err)
	}

	// Removing the booked slot needs explicit cancellation.
	if _, err := s.ApplySlotChanges(ctx, mentor.ID, storage.SlotChanges{Remove: []uuid.UUID{slot.ID}}); !errors.Is(err, storage.ErrBookedSlot) {
		t.Fatalf("remove booked slot: err=%v", err)
	}
	if _, err := s.ApplySlotChanges(ctx, mentor.ID, storage.SlotChanges{Remove: []uuid.UUID{slot.ID}, CancelBooked: true}); err != nil {
		t.Fatalf("remove with cancel: %v", err)
	}
	cancelled, err := s.GetSession(ctx, sessions[0].ID)
	if err != nil || cancelled.Status != models.StatusCancelled {
		t.Fatalf("session after slot removal = %+v (%v)", cancelled, err)
	}
}

func TestApplySlotChangesSerialisesOverlappingEdits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mentor := createUser(t, s, models.UserTypeMentor)
	if _, _, err := s.EnsureMentor(ctx, mentor.ID); err != nil {
		t.Fatal(err)
	}
	day := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")

	// Each edit is valid on its own; together they overlap.
	edits := []models.AvailabilitySlot{
		{Day: day, StartTime: "09:00", EndTime: "10:00"},
		{Day: day, StartTime: "09:30", EndTime: "10:30"},
	}
	var wg sync.WaitGroup
	errs := make(chan error, len(edits))
	for _, slot := range edits {
		wg.Add(1)
		go func(slot models.AvailabilitySlot) {
			defer wg.Done()
			_, err := s.ApplySlotChanges(ctx, mentor.ID, storage.SlotChanges{Add: []models.AvailabilitySlot{slot}})
			errs <- err
		}(slot)
	}
	wg.Wait()
	close(errs)

	var ok, overlap int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, storage.ErrSlotOverlap):
			overlap++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || overlap != 1 {
		t.Fatalf("successes = %d, overlaps = %d; want one of each", ok, overlap)
	}
	slots, err := s.ListSlots(ctx, mentor.ID, storage.SlotFilter{})
	if err != nil || len(slots) != 1 {
		t.Fatalf("persisted slots = %+v (%v)", slots, err)
	}

	// Touching windows do not overlap.
	if _, err := s.ApplySlotChanges(ctx, mentor.ID, storage.SlotChanges{Add: []models.AvailabilitySlot{
		{Day: day, StartTime: slots[0].EndTime, EndTime: "11:30"},
	}}); err != nil {
		t.Fatalf("adjacent slot: %v", err)
	}
}

func TestUpdateSessionStatusIsConditional(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mentor := createUser(t, s, models.UserTypeMentor)
	mentee := createUser(t, s, models.UserTypeMentee)
	if _, _, err := s.EnsureMentor(ctx, mentor.ID); err != nil {
		t.Fatal(err)
	}
	day := time.Now().UTC().AddDate(0, 0, 4).Format("2006-01-02")
	slots, err := s.ApplySlotChanges(ctx, mentor.ID, storage.SlotChanges{Add: []models.AvailabilitySlot{
		{Day: day, StartTime: "14:00", EndTime: "15:00"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	session, err := s.BookSlot(ctx, slots[0].ID, time.Now().UTC().Format("2006-01-02"), func(sl models.AvailabilitySlot, m models.Mentor) (models.Session, error) {
		slotID := sl.ID
		return models.Session{
			ID: uuid.New(), MentorID: sl.MentorID, MenteeID: mentee.ID, SlotID: &slotID,
			Title: "Status", DateTime: time.Now().Add(96 * time.Hour), Duration: 60,
			Status: models.StatusScheduled, PaymentStatus: models.PaymentPending,
		}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.UpdateSessionStatus(ctx, session.ID, models.StatusScheduled, models.StatusCompleted, false); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := s.UpdateSessionStatus(ctx, session.ID, models.StatusScheduled, models.StatusCancelled, true); !errors.Is(err, storage.ErrStatusChanged) {
		t.Fatalf("cancel after complete: err=%v, want ErrStatusChanged", err)
	}
	if _, err := s.UpdateSessionStatus(ctx, uuid.New(), models.StatusScheduled, models.StatusCancelled, true); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown session: err=%v, want ErrNotFound", err)
	}
	slot, err := s.GetSlot(ctx, slots[0].ID)
	if err != nil || !slot.IsBooked {
		t.Fatalf("slot of a completed session must stay booked: %+v (%v)", slot, err)
	}
}
