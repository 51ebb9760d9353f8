package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

const mentorSelect = `
	SELECT m.id, m.hourly_rate, m.years_experience, m.industry, m.expertise, m.company, m.job_title,
		m.average_rating, m.review_count, m.created_at,
		p.id, p.first_name, p.last_name, p.avatar_url, p.bio, p.user_type, p.created_at, p.updated_at
	FROM mentors m
	JOIN profiles p ON p.id = m.id`

// EnsureMentor creates the mentor row for profileID unless it already exists.
func (s *Store) EnsureMentor(ctx context.Context, profileID uuid.UUID) (models.Mentor, bool, error) {
	tag, err := s.pool.Exec(ctx, `INSERT INTO mentors (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, profileID)
	if err != nil {
		if pgCode(err) == "23503" {
			return models.Mentor{}, false, storage.ErrNotFound
		}
		return models.Mentor{}, false, fmt.Errorf("ensure mentor: %w", err)
	}
	mentor, err := s.GetMentor(ctx, profileID)
	if err != nil {
		return models.Mentor{}, false, err
	}
	return mentor, tag.RowsAffected() == 1, nil
}

// GetMentor fetches one mentor with its profile.
func (s *Store) GetMentor(ctx context.Context, id uuid.UUID) (models.Mentor, error) {
	return getMentor(ctx, s.pool, id)
}

func getMentor(ctx context.Context, q querier, id uuid.UUID) (models.Mentor, error) {
	return scanMentor(q.QueryRow(ctx, mentorSelect+` WHERE m.id = $1`, id))
}

// ListMentors returns the catalogue, best rated first.
func (s *Store) ListMentors(ctx context.Context, filter models.MentorFilter) ([]models.Mentor, error) {
	query := mentorSelect + `
	WHERE ($1 = '' OR m.industry ILIKE $1)
	  AND ($2 = '' OR EXISTS (SELECT 1 FROM unnest(m.expertise) e WHERE e ILIKE $2))
	ORDER BY m.average_rating DESC, p.last_name, p.first_name`
	rows, err := s.pool.Query(ctx, query, filter.Industry, filter.Expertise)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	defer rows.Close()

	mentors := []models.Mentor{}
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

// UpdateMentor overwrites the mentor-owned fields.
func (s *Store) UpdateMentor(ctx context.Context, mentor models.Mentor) (models.Mentor, error) {
	const query = `
	UPDATE mentors
	SET hourly_rate = $2, years_experience = $3, industry = $4, expertise = $5, company = $6, job_title = $7
	WHERE id = $1`
	expertise := mentor.Expertise
	if expertise == nil {
		expertise = []string{}
	}
	tag, err := s.pool.Exec(ctx, query, mentor.ID, mentor.HourlyRate, mentor.YearsExperience, mentor.Industry, expertise, mentor.Company, mentor.JobTitle)
	if err != nil {
		return models.Mentor{}, fmt.Errorf("update mentor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Mentor{}, storage.ErrNotFound
	}
	return s.GetMentor(ctx, mentor.ID)
}

// ListReviews returns a mentor's reviews, newest first.
func (s *Store) ListReviews(ctx context.Context, mentorID uuid.UUID) ([]models.Review, error) {
	const query = `
	SELECT id, mentor_id, mentee_id, session_id, rating, comment, created_at
	FROM reviews WHERE mentor_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, mentorID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.MentorID, &r.MenteeID, &r.SessionID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ListGroupSessions returns group sessions starting at or after from.
func (s *Store) ListGroupSessions(ctx context.Context, from time.Time) ([]models.GroupSession, error) {
	const query = `
	SELECT id, mentor_id, title, description, date_time, duration, max_participants, price
	FROM group_sessions WHERE date_time >= $1 ORDER BY date_time`
	rows, err := s.pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("list group sessions: %w", err)
	}
	defer rows.Close()

	out := []models.GroupSession{}
	for rows.Next() {
		var g models.GroupSession
		if err := rows.Scan(&g.ID, &g.MentorID, &g.Title, &g.Description, &g.DateTime, &g.Duration, &g.MaxParticipants, &g.Price); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanMentor(row pgx.Row) (models.Mentor, error) {
	var m models.Mentor
	var p models.Profile
	err := row.Scan(&m.ID, &m.HourlyRate, &m.YearsExperience, &m.Industry, &m.Expertise, &m.Company, &m.JobTitle,
		&m.AverageRating, &m.ReviewCount, &m.CreatedAt,
		&p.ID, &p.FirstName, &p.LastName, &p.AvatarURL, &p.Bio, &p.UserType, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Mentor{}, storage.ErrNotFound
		}
		return models.Mentor{}, err
	}
	m.Profile = &p
	return m, nil
}
