package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

const profileColumns = `id, first_name, last_name, avatar_url, bio, user_type, created_at, updated_at`

// CreateAccount inserts the profile and its credentials together.
func (s *Store) CreateAccount(ctx context.Context, account models.Account, profile models.Profile) (models.Profile, error) {
	var created models.Profile
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		const insertProfile = `
		INSERT INTO profiles (id, first_name, last_name, avatar_url, bio, user_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileColumns
		row := tx.QueryRow(ctx, insertProfile, profile.ID, profile.FirstName, profile.LastName, profile.AvatarURL, profile.Bio, profile.UserType)
		p, err := scanProfile(row)
		if err != nil {
			return err
		}
		const insertAccount = `INSERT INTO accounts (profile_id, email, password_hash) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertAccount, p.ID, account.Email, account.PasswordHash); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		if pgCode(err) == "23505" {
			return models.Profile{}, storage.ErrAlreadyExists
		}
		return models.Profile{}, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

// FindAccountByEmail fetches credentials by case-insensitive email.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `SELECT profile_id, email, password_hash, created_at FROM accounts WHERE lower(email) = lower($1)`
	var a models.Account
	if err := s.pool.QueryRow(ctx, query, email).Scan(&a.ProfileID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return models.Account{}, notFound(err)
	}
	return a, nil
}

// GetProfile fetches a profile by id.
func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// UpdateProfile overwrites the mutable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	const query = `
	UPDATE profiles
	SET first_name = $2, last_name = $3, avatar_url = $4, bio = $5, user_type = $6, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + profileColumns
	row := s.pool.QueryRow(ctx, query, profile.ID, profile.FirstName, profile.LastName, profile.AvatarURL, profile.Bio, profile.UserType)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (models.Profile, error) {
	var p models.Profile
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.AvatarURL, &p.Bio, &p.UserType, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Profile{}, notFound(err)
	}
	return p, nil
}
