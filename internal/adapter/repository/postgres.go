// Package repository persists portal profiles and reads the
// assessment-completion indicator from Postgres.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auth-gate/internal/domain"
)

// PostgresProfileRepo implements domain.ProfileRepository.
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo creates a profile repository over the given db.
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// Upsert creates the profile row for id or refreshes its email. The
// ON CONFLICT form makes concurrent callbacks for the same user safe:
// both land on the same row and neither touches first_name.
func (r *PostgresProfileRepo) Upsert(ctx context.Context, id, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, created_at, updated_at)
		 VALUES ($1, NULLIF($2, ''), now(), now())
		 ON CONFLICT (id) DO UPDATE
		 SET email = EXCLUDED.email, updated_at = now()`,
		id, email,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrProfileWrite, err)
	}
	return nil
}

// GetByID returns the profile for id, or nil when no row exists. It
// returns an error only for database failures, not for missing rows.
func (r *PostgresProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var (
		profile   domain.Profile
		email     sql.NullString
		firstName sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, first_name, created_at, updated_at FROM profiles WHERE id = $1`,
		id,
	).Scan(&profile.ID, &email, &firstName, &profile.CreatedAt, &profile.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	profile.Email = email.String
	profile.FirstName = firstName.String
	return &profile, nil
}

// PostgresAssessmentRepo implements domain.AssessmentCounter.
type PostgresAssessmentRepo struct {
	db *sql.DB
}

// NewPostgresAssessmentRepo creates an assessment repository over the given db.
func NewPostgresAssessmentRepo(db *sql.DB) *PostgresAssessmentRepo {
	return &PostgresAssessmentRepo{db: db}
}

// CountByUser returns the number of assessment rows for the user. The gate
// only needs this as a boolean onboarding signal; rows are never written
// here.
func (r *PostgresAssessmentRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM assessment_results WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count assessments: %w", err)
	}
	return count, nil
}
