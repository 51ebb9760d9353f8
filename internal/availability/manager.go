package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// Input is a window as submitted by a mentor. ID is optional.
type Input struct {
	ID    uuid.UUID
	Day   string
	Start string
	End   string
}

// Manager applies availability edits for a mentor as explicit deltas.
type Manager struct {
	store  storage.AvailabilityStore
	logger *zap.Logger
}

// NewManager constructs a Manager.
func NewManager(store storage.AvailabilityStore, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// List returns every persisted slot of the mentor.
func (m *Manager) List(ctx context.Context, mentorID uuid.UUID) ([]models.AvailabilitySlot, error) {
	return m.store.ListSlots(ctx, mentorID, storage.SlotFilter{})
}

// SaveAll makes the persisted set equal to staged. Validation runs over the
// whole staged set before anything is written; only the diff is applied.
func (m *Manager) SaveAll(ctx context.Context, mentorID uuid.UUID, staged []Input, cancelBooked bool) ([]models.AvailabilitySlot, error) {
	plan := NewPlan()
	for _, in := range staged {
		if _, err := plan.stage(in.ID, in.Day, in.Start, in.End); err != nil {
			return nil, err
		}
	}

	persisted, err := m.store.ListSlots(ctx, mentorID, storage.SlotFilter{})
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	return m.apply(ctx, mentorID, persisted, plan, cancelBooked)
}

// AddSlot stages one window against the persisted set and stores it.
func (m *Manager) AddSlot(ctx context.Context, mentorID uuid.UUID, in Input) ([]models.AvailabilitySlot, error) {
	persisted, plan, err := m.load(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if _, err := plan.AddSlot(in.Day, in.Start, in.End); err != nil {
		return nil, err
	}
	return m.apply(ctx, mentorID, persisted, plan, false)
}

// RemoveSlot deletes one persisted slot. A booked slot needs cancelBooked.
func (m *Manager) RemoveSlot(ctx context.Context, mentorID, slotID uuid.UUID, cancelBooked bool) ([]models.AvailabilitySlot, error) {
	persisted, plan, err := m.load(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	idx := plan.IndexOf(slotID)
	if idx < 0 {
		return nil, ErrNoSuchSlot
	}
	if _, err := plan.RemoveSlot(idx); err != nil {
		return nil, err
	}
	return m.apply(ctx, mentorID, persisted, plan, cancelBooked)
}

func (m *Manager) load(ctx context.Context, mentorID uuid.UUID) ([]models.AvailabilitySlot, *Plan, error) {
	persisted, err := m.store.ListSlots(ctx, mentorID, storage.SlotFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("load availability: %w", err)
	}
	plan, err := PlanFrom(persisted)
	if err != nil {
		return nil, nil, err
	}
	return persisted, plan, nil
}

func (m *Manager) apply(ctx context.Context, mentorID uuid.UUID, persisted []models.AvailabilitySlot, plan *Plan, cancelBooked bool) ([]models.AvailabilitySlot, error) {
	changes, err := Diff(persisted, plan.Slots())
	if err != nil {
		return nil, err
	}
	changes.CancelBooked = cancelBooked
	if changes.Empty() {
		return persisted, nil
	}

	if !cancelBooked {
		booked := make(map[uuid.UUID]bool)
		for _, row := range persisted {
			booked[row.ID] = row.IsBooked
		}
		for _, id := range changes.Remove {
			if booked[id] {
				return nil, fmt.Errorf("remove slot %s: %w", id, storage.ErrBookedSlot)
			}
		}
	}

	slots, err := m.store.ApplySlotChanges(ctx, mentorID, changes)
	if err != nil {
		return nil, fmt.Errorf("save availability: %w", err)
	}
	m.logger.Info("availability updated",
		zap.String("mentor_id", mentorID.String()),
		zap.Int("added", len(changes.Add)),
		zap.Int("removed", len(changes.Remove)),
		zap.Bool("cancel_booked", cancelBooked),
	)
	return slots, nil
}
