// Package user implements the User and UserSettings repositories using
// PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asvabprep/backend/internal/adapter/postgres"
	"github.com/asvabprep/backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

const getUserByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getUserByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const createUserSQL = `
INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + userColumns

const getSettingsSQL = `
SELECT user_id, proficiency, new_cards_per_day, study_time_minutes, timezone, updated_at
FROM user_settings
WHERE user_id = $1`

const createSettingsSQL = `
INSERT INTO user_settings (user_id, proficiency, new_cards_per_day, study_time_minutes, timezone, updated_at)
VALUES ($1, $2, $3, $4, $5, now())`

const updateSettingsSQL = `
UPDATE user_settings
SET proficiency = $2, new_cards_per_day = $3, study_time_minutes = $4,
    timezone = $5, updated_at = now()
WHERE user_id = $1
RETURNING user_id, proficiency, new_cards_per_day, study_time_minutes, timezone, updated_at`

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	user, err := scanUser(q.QueryRow(ctx, getUserByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return user, nil
}

// GetByEmail returns a user by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	user, err := scanUser(q.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return user, nil
}

// Create inserts a new user.
// Duplicate email results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanUser(q.QueryRow(ctx, createUserSQL,
		user.ID, user.Email, user.PasswordHash, user.Role, now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", user.ID)
	}

	return created, nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// GetByUserID returns the study settings for a user.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	settings, err := scanSettings(q.QueryRow(ctx, getSettingsSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return settings, nil
}

// CreateSettings inserts the settings row for a new user.
func (r *Repo) CreateSettings(ctx context.Context, settings *domain.UserSettings) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createSettingsSQL,
		settings.UserID, settings.Proficiency, settings.NewCardsPerDay,
		settings.StudyTimeMinutes, settings.Timezone,
	)
	if err != nil {
		return postgres.MapError(err, "user_settings", settings.UserID)
	}

	return nil
}

// UpdateSettings replaces the study settings for a user.
func (r *Repo) UpdateSettings(ctx context.Context, settings *domain.UserSettings) (*domain.UserSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanSettings(q.QueryRow(ctx, updateSettingsSQL,
		settings.UserID, settings.Proficiency, settings.NewCardsPerDay,
		settings.StudyTimeMinutes, settings.Timezone,
	))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", settings.UserID)
	}

	return updated, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanSettings(row pgx.Row) (*domain.UserSettings, error) {
	var s domain.UserSettings
	err := row.Scan(&s.UserID, &s.Proficiency, &s.NewCardsPerDay,
		&s.StudyTimeMinutes, &s.Timezone, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan user settings: %w", err)
	}
	return &s, nil
}
