package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for the marketplace.
type Store struct {
	pool *pgxpool.Pool
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewStore creates a new Store and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			user_type TEXT NOT NULL DEFAULT 'mentee' CHECK (user_type IN ('mentor', 'mentee')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS accounts (
			profile_id UUID PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_unique_idx ON accounts (lower(email));`,
		`CREATE TABLE IF NOT EXISTS mentors (
			id UUID PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
			hourly_rate NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (hourly_rate >= 0),
			years_experience INT NOT NULL DEFAULT 0,
			industry TEXT NOT NULL DEFAULT '',
			expertise TEXT[] NOT NULL DEFAULT '{}',
			company TEXT NOT NULL DEFAULT '',
			job_title TEXT NOT NULL DEFAULT '',
			average_rating NUMERIC(3,2) NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS mentor_availability (
			id UUID PRIMARY KEY,
			mentor_id UUID NOT NULL REFERENCES mentors(id) ON DELETE CASCADE,
			day DATE NOT NULL,
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			is_booked BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (start_time < end_time)
		);`,
		`CREATE INDEX IF NOT EXISTS mentor_availability_mentor_day_idx ON mentor_availability (mentor_id, day, start_time);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			mentor_id UUID NOT NULL REFERENCES mentors(id),
			mentee_id UUID NOT NULL REFERENCES profiles(id),
			slot_id UUID REFERENCES mentor_availability(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date_time TIMESTAMPTZ NOT NULL,
			duration INT NOT NULL CHECK (duration > 0),
			price NUMERIC(12,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'completed', 'cancelled')),
			payment_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE sessions ADD COLUMN IF NOT EXISTS slot_id UUID REFERENCES mentor_availability(id) ON DELETE SET NULL;`,
		`CREATE INDEX IF NOT EXISTS sessions_mentor_date_idx ON sessions (mentor_id, date_time);`,
		`CREATE INDEX IF NOT EXISTS sessions_mentee_date_idx ON sessions (mentee_id, date_time);`,
		`CREATE TABLE IF NOT EXISTS group_sessions (
			id UUID PRIMARY KEY,
			mentor_id UUID NOT NULL REFERENCES mentors(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date_time TIMESTAMPTZ NOT NULL,
			duration INT NOT NULL,
			max_participants INT NOT NULL DEFAULT 10,
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS group_session_enrollments (
			group_session_id UUID NOT NULL REFERENCES group_sessions(id) ON DELETE CASCADE,
			mentee_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (group_session_id, mentee_id)
		);`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			mentor_id UUID NOT NULL REFERENCES mentors(id) ON DELETE CASCADE,
			mentee_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// pgCode returns the SQLSTATE of err, or "" when err is not a Postgres error.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
