package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

const slotColumns = `id, mentor_id, to_char(day, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_booked, created_at`

// ListSlots returns a mentor's slots ordered by day and start time.
func (s *Store) ListSlots(ctx context.Context, mentorID uuid.UUID, filter storage.SlotFilter) ([]models.AvailabilitySlot, error) {
	return listSlots(ctx, s.pool, mentorID, filter)
}

func listSlots(ctx context.Context, q querier, mentorID uuid.UUID, filter storage.SlotFilter) ([]models.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM mentor_availability WHERE mentor_id = $1`
	args := []any{mentorID}
	if filter.FromDay != "" {
		args = append(args, filter.FromDay)
		query += fmt.Sprintf(" AND day >= $%d::date", len(args))
	}
	if filter.OnlyOpen {
		query += " AND is_booked = false"
	}
	query += " ORDER BY day, start_time"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := []models.AvailabilitySlot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// GetSlot fetches one slot by id.
func (s *Store) GetSlot(ctx context.Context, id uuid.UUID) (models.AvailabilitySlot, error) {
	return scanSlot(s.pool.QueryRow(ctx, `SELECT `+slotColumns+` FROM mentor_availability WHERE id = $1`, id))
}

// overlapCheck finds any two slots of a mentor on the same day whose
// half-open [start, end) windows intersect.
const overlapCheck = `
SELECT EXISTS (
	SELECT 1
	FROM mentor_availability a
	JOIN mentor_availability b
	  ON b.mentor_id = a.mentor_id AND b.day = a.day AND b.id <> a.id
	 AND a.start_time < b.end_time AND b.start_time < a.end_time
	WHERE a.mentor_id = $1
)`

// ApplySlotChanges removes and inserts slots in one transaction. A booked slot is
// only removed when changes.CancelBooked is set, and its scheduled session is cancelled.
// The mentor row is locked for the duration so concurrent edits of the same
// mentor serialise, and the resulting set is re-checked for overlaps before commit.
func (s *Store) ApplySlotChanges(ctx context.Context, mentorID uuid.UUID, changes storage.SlotChanges) ([]models.AvailabilitySlot, error) {
	var result []models.AvailabilitySlot
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM mentors WHERE id = $1 FOR UPDATE`, mentorID).Scan(&locked); err != nil {
			return notFound(err)
		}

		for _, id := range changes.Remove {
			var booked bool
			err := tx.QueryRow(ctx, `SELECT is_booked FROM mentor_availability WHERE id = $1 AND mentor_id = $2 FOR UPDATE`, id, mentorID).Scan(&booked)
			if err != nil {
				return notFound(err)
			}
			if booked {
				if !changes.CancelBooked {
					return fmt.Errorf("remove slot %s: %w", id, storage.ErrBookedSlot)
				}
				const cancel = `UPDATE sessions SET status = 'cancelled' WHERE slot_id = $1 AND status = 'scheduled'`
				if _, err := tx.Exec(ctx, cancel, id); err != nil {
					return fmt.Errorf("cancel session for slot %s: %w", id, err)
				}
			}
			if _, err := tx.Exec(ctx, `DELETE FROM mentor_availability WHERE id = $1`, id); err != nil {
				return fmt.Errorf("delete slot %s: %w", id, err)
			}
		}

		const insert = `INSERT INTO mentor_availability (id, mentor_id, day, start_time, end_time, is_booked) VALUES ($1, $2, $3::date, $4::time, $5::time, false)`
		for _, slot := range changes.Add {
			id := slot.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.Exec(ctx, insert, id, mentorID, slot.Day, slot.StartTime, slot.EndTime); err != nil {
				if pgCode(err) == "23503" {
					return storage.ErrNotFound
				}
				return fmt.Errorf("insert slot: %w", err)
			}
		}

		var overlapping bool
		if err := tx.QueryRow(ctx, overlapCheck, mentorID).Scan(&overlapping); err != nil {
			return fmt.Errorf("check overlaps: %w", err)
		}
		if overlapping {
			return storage.ErrSlotOverlap
		}

		slots, err := listSlots(ctx, tx, mentorID, storage.SlotFilter{})
		if err != nil {
			return err
		}
		result = slots
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func scanSlot(row pgx.Row) (models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	if err := row.Scan(&slot.ID, &slot.MentorID, &slot.Day, &slot.StartTime, &slot.EndTime, &slot.IsBooked, &slot.CreatedAt); err != nil {
		return models.AvailabilitySlot{}, notFound(err)
	}
	return slot, nil
}
