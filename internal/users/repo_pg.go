package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-backend/resume/model"
)

// onboardingTxTimeout bounds the onboarding transaction.
const onboardingTxTimeout = 10 * time.Second

const userColumns = `id, email, full_name, mobile, location, linkedin, github, portfolio, industry,
  sub_industries, experience, bio, skills, is_onboarded, created_at, updated_at`

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = COALESCE(EXCLUDED.full_name, users.full_name),
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) CompleteOnboarding(ctx context.Context, userID string, profile model.OnboardingProfile) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, onboardingTxTimeout)
	defer cancel()

	subIndustries, err := json.Marshal(nonNil(profile.SubIndustries))
	if err != nil {
		return User{}, err
	}
	skills, err := json.Marshal(nonNil(profile.Skills))
	if err != nil {
		return User{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
UPDATE users SET
  mobile = $2,
  location = $3,
  linkedin = $4,
  github = $5,
  portfolio = $6,
  industry = $7,
  sub_industries = $8,
  experience = $9,
  bio = $10,
  skills = $11,
  is_onboarded = TRUE,
  updated_at = now()
WHERE id = $1
RETURNING ` + userColumns
	user, err := scanUser(tx.QueryRowContext(ctx, query,
		userID,
		profile.Mobile,
		profile.Location,
		profile.LinkedIn,
		nullableString(profile.GitHub),
		nullableString(profile.Portfolio),
		profile.Industry,
		subIndustries,
		profile.Experience,
		profile.Bio,
		skills,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if err := tx.Commit(); err != nil {
		return User{}, fmt.Errorf("commit: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user          User
		fullName      sql.NullString
		mobile        sql.NullString
		location      sql.NullString
		linkedin      sql.NullString
		github        sql.NullString
		portfolio     sql.NullString
		industry      sql.NullString
		subIndustries []byte
		experience    sql.NullInt64
		bio           sql.NullString
		skills        []byte
		updatedAt     sql.NullTime
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&mobile,
		&location,
		&linkedin,
		&github,
		&portfolio,
		&industry,
		&subIndustries,
		&experience,
		&bio,
		&skills,
		&user.IsOnboarded,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.FullName = fullName.String
	user.Mobile = mobile.String
	user.Location = location.String
	user.LinkedIn = linkedin.String
	user.GitHub = github.String
	user.Portfolio = portfolio.String
	user.Industry = industry.String
	user.Bio = bio.String
	if experience.Valid {
		user.Experience = int(experience.Int64)
	}
	if user.SubIndustries, err = decodeList(subIndustries); err != nil {
		return User{}, fmt.Errorf("decode sub_industries: %w", err)
	}
	if user.Skills, err = decodeList(skills); err != nil {
		return User{}, fmt.Errorf("decode skills: %w", err)
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = user.CreatedAt
	}
	return user, nil
}

func decodeList(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
