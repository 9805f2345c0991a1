package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository"
)

const profileColumns = `id, email, first_name, last_name, age, bio, location,
	budget_min, budget_max, preferred_gender, lifestyle_preferences,
	profile_image_url, is_active, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		INSERT INTO profiles (
			email, first_name, last_name, age, bio, location,
			budget_min, budget_max, preferred_gender, lifestyle_preferences,
			profile_image_url, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Email, profile.FirstName, profile.LastName, profile.Age,
		profile.Bio, profile.Location, profile.BudgetMin, profile.BudgetMax,
		genderValue(profile.PreferredGender), profile.Lifestyle,
		profile.ProfileImageURL, profile.IsActive,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		UPDATE profiles
		SET email = $1, first_name = $2, last_name = $3, age = $4, bio = $5,
		    location = $6, budget_min = $7, budget_max = $8,
		    preferred_gender = $9, lifestyle_preferences = $10,
		    profile_image_url = $11, is_active = $12,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Email, profile.FirstName, profile.LastName, profile.Age,
		profile.Bio, profile.Location, profile.BudgetMin, profile.BudgetMax,
		genderValue(profile.PreferredGender), profile.Lifestyle,
		profile.ProfileImageURL, profile.IsActive, profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *profileRepository) Search(ctx context.Context, viewerID int, filter repository.ProfileFilter) ([]*domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE is_active = true AND id <> $1`
	args := []interface{}{viewerID}
	argCount := 2

	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argCount)
		args = append(args, "%"+filter.Location+"%")
		argCount++
	}
	if filter.MinAge != nil {
		query += fmt.Sprintf(" AND age >= $%d", argCount)
		args = append(args, *filter.MinAge)
		argCount++
	}
	if filter.MaxAge != nil {
		query += fmt.Sprintf(" AND age <= $%d", argCount)
		args = append(args, *filter.MaxAge)
		argCount++
	}
	if filter.BudgetMin != nil {
		query += fmt.Sprintf(" AND budget_max >= $%d", argCount)
		args = append(args, *filter.BudgetMin)
		argCount++
	}
	if filter.BudgetMax != nil {
		query += fmt.Sprintf(" AND budget_min <= $%d", argCount)
		args = append(args, *filter.BudgetMax)
		argCount++
	}
	if g := filter.PreferredGender; g != nil && *g != domain.GenderAny {
		// Profiles with no preference or "any" always pass; only the other
		// specific gender is excluded.
		query += fmt.Sprintf(" AND (preferred_gender IS NULL OR preferred_gender IN ('any', $%d))", argCount)
		args = append(args, string(*g))
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.UserProfile
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *profileRepository) scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var (
		p        domain.UserProfile
		gender   sql.NullString
		rawPrefs []byte
	)
	err := row.Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Age, &p.Bio,
		&p.Location, &p.BudgetMin, &p.BudgetMax, &gender, &rawPrefs,
		&p.ProfileImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	if gender.Valid {
		g := domain.Gender(gender.String)
		p.PreferredGender = &g
	}
	p.Lifestyle, err = domain.LifestylePreferencesFromJSON(rawPrefs)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func genderValue(g *domain.Gender) interface{} {
	if g == nil {
		return nil
	}
	return string(*g)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
