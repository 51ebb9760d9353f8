package availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// Slot is one staged window. ID is uuid.Nil until the slot has been persisted.
type Slot struct {
	ID     uuid.UUID
	Window Window
	Booked bool
}

// Plan is a staged availability set with no persistence side effects.
type Plan struct {
	slots []Slot
}

// NewPlan returns an empty staged set.
func NewPlan() *Plan {
	return &Plan{}
}

// PlanFrom stages the persisted slots as they are, without re-validating overlaps.
func PlanFrom(persisted []models.AvailabilitySlot) (*Plan, error) {
	p := &Plan{slots: make([]Slot, 0, len(persisted))}
	for _, row := range persisted {
		w, err := ParseWindow(row.Day, row.StartTime, row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", row.ID, err)
		}
		p.slots = append(p.slots, Slot{ID: row.ID, Window: w, Booked: row.IsBooked})
	}
	return p, nil
}

// AddSlot validates the range, rejects any overlap with a staged slot on the
// same day and appends the new window.
func (p *Plan) AddSlot(day, start, end string) (Slot, error) {
	return p.stage(uuid.Nil, day, start, end)
}

func (p *Plan) stage(id uuid.UUID, day, start, end string) (Slot, error) {
	w, err := ParseWindow(day, start, end)
	if err != nil {
		return Slot{}, err
	}
	for _, existing := range p.slots {
		if existing.Window.Overlaps(w) {
			return Slot{}, fmt.Errorf("%w: %s %s-%s conflicts with %s-%s", ErrOverlap,
				w.DayString(), w.StartString(), w.EndString(), existing.Window.StartString(), existing.Window.EndString())
		}
	}
	slot := Slot{ID: id, Window: w}
	p.slots = append(p.slots, slot)
	return slot, nil
}

// RemoveSlot drops the staged slot at index.
func (p *Plan) RemoveSlot(index int) (Slot, error) {
	if index < 0 || index >= len(p.slots) {
		return Slot{}, ErrNoSuchSlot
	}
	removed := p.slots[index]
	p.slots = append(p.slots[:index], p.slots[index+1:]...)
	return removed, nil
}

// IndexOf returns the position of the slot with id, or -1.
func (p *Plan) IndexOf(id uuid.UUID) int {
	for i, s := range p.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Len is the number of staged slots.
func (p *Plan) Len() int {
	return len(p.slots)
}

// Slots returns a copy of the staged set.
func (p *Plan) Slots() []Slot {
	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	return out
}

// Diff computes the deltas that turn persisted into staged. A staged slot
// matches a persisted one by id when the window is unchanged, or else by
// identical day and times. Everything unmatched on either side becomes an
// add or a remove.
func Diff(persisted []models.AvailabilitySlot, staged []Slot) (storage.SlotChanges, error) {
	byID := make(map[uuid.UUID]string, len(persisted))
	byKey := make(map[string]uuid.UUID, len(persisted))
	for _, row := range persisted {
		w, err := ParseWindow(row.Day, row.StartTime, row.EndTime)
		if err != nil {
			return storage.SlotChanges{}, fmt.Errorf("slot %s: %w", row.ID, err)
		}
		byID[row.ID] = w.key()
		byKey[w.key()] = row.ID
	}

	var changes storage.SlotChanges
	kept := make(map[uuid.UUID]bool, len(persisted))
	for _, s := range staged {
		key := s.Window.key()
		if s.ID != uuid.Nil && byID[s.ID] == key && !kept[s.ID] {
			kept[s.ID] = true
			continue
		}
		if id, ok := byKey[key]; ok && !kept[id] {
			kept[id] = true
			continue
		}
		changes.Add = append(changes.Add, models.AvailabilitySlot{
			Day:       s.Window.DayString(),
			StartTime: s.Window.StartString(),
			EndTime:   s.Window.EndString(),
		})
	}
	for _, row := range persisted {
		if !kept[row.ID] {
			changes.Remove = append(changes.Remove, row.ID)
		}
	}
	return changes, nil
}
