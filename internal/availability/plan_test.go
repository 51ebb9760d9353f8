package availability

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
)

func TestPlanAddSlot(t *testing.T) {
	p := NewPlan()
	if _, err := p.AddSlot("2025-04-15", "09:00", "10:00"); err != nil {
		t.Fatalf("first slot: %v", err)
	}
	if _, err := p.AddSlot("2025-04-15", "09:30", "10:30"); !errors.Is(err, ErrOverlap) {
		t.Fatalf("overlapping slot error = %v, want ErrOverlap", err)
	}
	if _, err := p.AddSlot("2025-04-15", "10:00", "11:00"); err != nil {
		t.Fatalf("adjacent slot rejected: %v", err)
	}
	if _, err := p.AddSlot("2025-04-16", "09:30", "10:30"); err != nil {
		t.Fatalf("other day rejected: %v", err)
	}
	if _, err := p.AddSlot("2025-04-15", "12:00", "12:00"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("empty range error = %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Len = %d, want 3", p.Len())
	}
}

func TestPlanRemoveSlot(t *testing.T) {
	p := NewPlan()
	_, _ = p.AddSlot("2025-04-15", "09:00", "10:00")
	_, _ = p.AddSlot("2025-04-15", "11:00", "12:00")

	removed, err := p.RemoveSlot(0)
	if err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	if removed.Window.StartString() != "09:00" {
		t.Errorf("removed %s", removed.Window.StartString())
	}
	if _, err := p.RemoveSlot(5); !errors.Is(err, ErrNoSuchSlot) {
		t.Errorf("out of range error = %v", err)
	}
	// The freed window can be staged again.
	if _, err := p.AddSlot("2025-04-15", "09:30", "10:30"); err != nil {
		t.Errorf("re-adding after removal: %v", err)
	}
}

func TestDiff(t *testing.T) {
	keepID, dropID, movedID := uuid.New(), uuid.New(), uuid.New()
	persisted := []models.AvailabilitySlot{
		{ID: keepID, Day: "2025-04-15", StartTime: "09:00", EndTime: "10:00"},
		{ID: dropID, Day: "2025-04-15", StartTime: "11:00", EndTime: "12:00", IsBooked: true},
		{ID: movedID, Day: "2025-04-16", StartTime: "09:00", EndTime: "10:00"},
	}

	p := NewPlan()
	// Matched by day and times even without an id.
	if _, err := p.AddSlot("2025-04-15", "09:00", "10:00"); err != nil {
		t.Fatal(err)
	}
	// Same id, new times: remove and re-add.
	if _, err := p.stage(movedID, "2025-04-16", "13:00", "14:00"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddSlot("2025-04-17", "08:00", "09:00"); err != nil {
		t.Fatal(err)
	}

	changes, err := Diff(persisted, p.Slots())
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(changes.Add) != 2 {
		t.Fatalf("adds = %+v", changes.Add)
	}
	removed := map[uuid.UUID]bool{}
	for _, id := range changes.Remove {
		removed[id] = true
	}
	if len(removed) != 2 || !removed[dropID] || !removed[movedID] || removed[keepID] {
		t.Fatalf("removes = %v", changes.Remove)
	}
}

func TestDiffNoChanges(t *testing.T) {
	persisted := []models.AvailabilitySlot{
		{ID: uuid.New(), Day: "2025-04-15", StartTime: "09:00", EndTime: "10:00"},
	}
	p, err := PlanFrom(persisted)
	if err != nil {
		t.Fatal(err)
	}
	changes, err := Diff(persisted, p.Slots())
	if err != nil {
		t.Fatal(err)
	}
	if !changes.Empty() {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}
