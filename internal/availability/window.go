// Package availability keeps a mentor's open time windows free of overlaps and
// turns edits into explicit add/remove deltas.
package availability

import (
	"errors"
	"fmt"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	clockLayout = "15:04"
)

var (
	// ErrInvalidRange is returned when a window does not start before it ends.
	ErrInvalidRange = errors.New("start time must be before end time")
	// ErrOverlap is returned when a window intersects another window on the same day.
	ErrOverlap = errors.New("time slot overlaps an existing slot")
	// ErrNoSuchSlot is returned when a staged or persisted slot cannot be found.
	ErrNoSuchSlot = errors.New("no such slot")
	// ErrInvalidFormat is returned for unparsable day or clock values.
	ErrInvalidFormat = errors.New("invalid day or time format")
)

// Window is a wall-clock interval [Start, End) on a calendar day. Start and
// End are offsets from midnight; no time zone is modelled.
type Window struct {
	Day   time.Time
	Start time.Duration
	End   time.Duration
}

// ParseWindow parses YYYY-MM-DD and HH:MM values. It rejects start >= end.
func ParseWindow(day, start, end string) (Window, error) {
	d, err := time.Parse(dayLayout, day)
	if err != nil {
		return Window{}, fmt.Errorf("%w: day %q", ErrInvalidFormat, day)
	}
	s, err := parseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return Window{}, err
	}
	w := Window{Day: d, Start: s, End: e}
	if w.Start >= w.End {
		return Window{}, ErrInvalidRange
	}
	return w, nil
}

func parseClock(v string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		// Postgres may hand back HH:MM:SS.
		t, err = time.Parse("15:04:05", v)
		if err != nil {
			return 0, fmt.Errorf("%w: time %q", ErrInvalidFormat, v)
		}
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// SameDay reports whether both windows fall on the same calendar day.
func (w Window) SameDay(o Window) bool {
	return w.Day.Equal(o.Day)
}

// Overlaps applies the half-open rule: s1 < e2 && s2 < e1 on the same day.
// Windows that only touch at an endpoint do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.SameDay(o) && w.Start < o.End && o.Start < w.End
}

// Length is the window's duration.
func (w Window) Length() time.Duration {
	return w.End - w.Start
}

// StartsAt is the window start as an instant, reading the wall clock as UTC.
func (w Window) StartsAt() time.Time {
	return w.Day.Add(w.Start)
}

// DayString formats the day as YYYY-MM-DD.
func (w Window) DayString() string {
	return w.Day.Format(dayLayout)
}

// StartString formats the start as HH:MM.
func (w Window) StartString() string {
	return formatClock(w.Start)
}

// EndString formats the end as HH:MM.
func (w Window) EndString() string {
	return formatClock(w.End)
}

func (w Window) key() string {
	return w.DayString() + " " + w.StartString() + "-" + w.EndString()
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}
