package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

const sessionColumns = `id, mentor_id, mentee_id, slot_id, title, description, date_time, duration, price, status, payment_status, created_at`

// BookSlot claims the slot with a conditional update and inserts the session in the
// same transaction. Zero claimed rows means someone else got there first.
func (s *Store) BookSlot(ctx context.Context, slotID uuid.UUID, today string, draft storage.SessionDraft) (models.Session, error) {
	var booked models.Session
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		claim := `
		UPDATE mentor_availability SET is_booked = true
		WHERE id = $1 AND is_booked = false AND day >= $2::date
		RETURNING ` + slotColumns
		slot, err := scanSlot(tx.QueryRow(ctx, claim, slotID, today))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return storage.ErrSlotUnavailable
			}
			return fmt.Errorf("claim slot: %w", err)
		}

		mentor, err := getMentor(ctx, tx, slot.MentorID)
		if err != nil {
			return fmt.Errorf("load mentor: %w", err)
		}

		session, err := draft(slot, mentor)
		if err != nil {
			return err
		}
		if session.ID == uuid.Nil {
			session.ID = uuid.New()
		}

		insert := `
		INSERT INTO sessions (id, mentor_id, mentee_id, slot_id, title, description, date_time, duration, price, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + sessionColumns
		created, err := scanSession(tx.QueryRow(ctx, insert,
			session.ID, session.MentorID, session.MenteeID, session.SlotID, session.Title, session.Description,
			session.DateTime, session.Duration, session.Price, session.Status, session.PaymentStatus))
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		booked = created
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}
	return booked, nil
}

// GetSession fetches one session by id.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (models.Session, error) {
	return scanSession(s.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
}

// ListSessions returns sessions matching filter ordered by start time.
func (s *Store) ListSessions(ctx context.Context, filter storage.SessionFilter) ([]models.Session, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.MentorID != uuid.Nil {
		add("mentor_id = $%d", filter.MentorID)
	}
	if filter.MenteeID != uuid.Nil {
		add("mentee_id = $%d", filter.MenteeID)
	}
	if filter.StartsFrom != nil {
		add("date_time >= $%d", *filter.StartsFrom)
	}
	if filter.StartsBefore != nil {
		add("date_time < $%d", *filter.StartsBefore)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date_time`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// UpdateSessionStatus changes the status with a conditional update on the current
// one and, when asked, frees the slot it was booked on.
func (s *Store) UpdateSessionStatus(ctx context.Context, id uuid.UUID, from, to string, releaseSlot bool) (models.Session, error) {
	var updated models.Session
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		const transition = `UPDATE sessions SET status = $3 WHERE id = $1 AND status = $2 RETURNING ` + sessionColumns
		session, err := scanSession(tx.QueryRow(ctx, transition, id, from, to))
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("update session status: %w", err)
			}
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, id).Scan(&exists); err != nil {
				return fmt.Errorf("check session: %w", err)
			}
			if exists {
				return storage.ErrStatusChanged
			}
			return storage.ErrNotFound
		}
		if releaseSlot && session.SlotID != nil {
			if _, err := tx.Exec(ctx, `UPDATE mentor_availability SET is_booked = false WHERE id = $1`, *session.SlotID); err != nil {
				return fmt.Errorf("release slot: %w", err)
			}
		}
		updated = session
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}
	return updated, nil
}

// ScheduledBetween returns scheduled sessions with from <= date_time < to.
func (s *Store) ScheduledBetween(ctx context.Context, from, to time.Time) ([]models.SessionReminder, error) {
	const query = `
	SELECT s.id, s.mentor_id, s.mentee_id, s.slot_id, s.title, s.description, s.date_time, s.duration, s.price,
		s.status, s.payment_status, s.created_at,
		trim(mp.first_name || ' ' || mp.last_name), trim(ep.first_name || ' ' || ep.last_name)
	FROM sessions s
	JOIN profiles mp ON mp.id = s.mentor_id
	JOIN profiles ep ON ep.id = s.mentee_id
	WHERE s.status = 'scheduled' AND s.date_time >= $1 AND s.date_time < $2
	ORDER BY s.date_time`
	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("scheduled sessions: %w", err)
	}
	defer rows.Close()

	out := []models.SessionReminder{}
	for rows.Next() {
		var r models.SessionReminder
		if err := rows.Scan(&r.ID, &r.MentorID, &r.MenteeID, &r.SlotID, &r.Title, &r.Description, &r.DateTime,
			&r.Duration, &r.Price, &r.Status, &r.PaymentStatus, &r.CreatedAt, &r.MentorName, &r.MenteeName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row) (models.Session, error) {
	var s models.Session
	if err := row.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.SlotID, &s.Title, &s.Description, &s.DateTime,
		&s.Duration, &s.Price, &s.Status, &s.PaymentStatus, &s.CreatedAt); err != nil {
		return models.Session{}, notFound(err)
	}
	return s, nil
}
