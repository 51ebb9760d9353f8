package booking

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Step is a booking wizard state.
type Step int

const (
	StepSlotSelection Step = iota
	StepDetailsEntry
	StepBooked
)

func (s Step) String() string {
	switch s {
	case StepSlotSelection:
		return "slot_selection"
	case StepDetailsEntry:
		return "details_entry"
	case StepBooked:
		return "booked"
	default:
		return "unknown"
	}
}

// ErrWrongStep is returned when a transition is not allowed from the current step.
var ErrWrongStep = errors.New("action not allowed at this booking step")

// Request is what the wizard hands to the reconciler on confirm.
type Request struct {
	SlotID      uuid.UUID
	Title       string
	Description string
}

// Wizard walks SlotSelection -> DetailsEntry -> Booked. Going back from
// DetailsEntry keeps the entered details.
type Wizard struct {
	step        Step
	slotID      uuid.UUID
	title       string
	description string
}

// NewWizard starts at slot selection.
func NewWizard() *Wizard {
	return &Wizard{step: StepSlotSelection}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// SelectSlot picks a slot and advances to details entry.
func (w *Wizard) SelectSlot(id uuid.UUID) error {
	if w.step != StepSlotSelection {
		return ErrWrongStep
	}
	if id == uuid.Nil {
		return ErrNoSlotSelected
	}
	w.slotID = id
	w.step = StepDetailsEntry
	return nil
}

// Back returns to slot selection without losing details.
func (w *Wizard) Back() error {
	if w.step != StepDetailsEntry {
		return ErrWrongStep
	}
	w.step = StepSlotSelection
	return nil
}

// EnterDetails records the session title and optional description.
func (w *Wizard) EnterDetails(title, description string) error {
	if w.step != StepDetailsEntry {
		return ErrWrongStep
	}
	w.title = strings.TrimSpace(title)
	w.description = strings.TrimSpace(description)
	return nil
}

// Details returns the title and description entered so far.
func (w *Wizard) Details() (string, string) {
	return w.title, w.description
}

// Confirm validates the collected input and returns the booking request.
func (w *Wizard) Confirm() (Request, error) {
	if w.step != StepDetailsEntry {
		if w.step == StepSlotSelection {
			return Request{}, ErrNoSlotSelected
		}
		return Request{}, ErrWrongStep
	}
	if w.title == "" {
		return Request{}, ErrTitleRequired
	}
	return Request{SlotID: w.slotID, Title: w.title, Description: w.description}, nil
}

// Complete marks the wizard booked.
func (w *Wizard) Complete() {
	w.step = StepBooked
}
