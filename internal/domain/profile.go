package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderAny    Gender = "any"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderAny:
		return true
	}
	return false
}

// Level grades a lifestyle trait.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// LifestylePreferences is persisted as a single JSON column. Its inner schema
// is enforced here, at the decode boundary, rather than by the storage layer.
type LifestylePreferences struct {
	Smoking     bool  `json:"smoking"`
	Pets        bool  `json:"pets"`
	Cleanliness Level `json:"cleanliness"`
	Quietness   Level `json:"quietness"`
	SocialLevel Level `json:"social_level"`
}

func (p LifestylePreferences) Validate() error {
	if !p.Cleanliness.Valid() {
		return fmt.Errorf("%w: cleanliness must be one of low, medium, high", ErrValidation)
	}
	if !p.Quietness.Valid() {
		return fmt.Errorf("%w: quietness must be one of low, medium, high", ErrValidation)
	}
	if !p.SocialLevel.Valid() {
		return fmt.Errorf("%w: social_level must be one of low, medium, high", ErrValidation)
	}
	return nil
}

// Value implements driver.Valuer so preferences can be bound to a JSON column.
func (p *LifestylePreferences) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// LifestylePreferencesFromJSON decodes and validates a raw JSON column value.
// A NULL column yields nil; malformed content fails with ErrValidation.
func LifestylePreferencesFromJSON(raw []byte) (*LifestylePreferences, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var p LifestylePreferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: malformed lifestyle_preferences: %v", ErrValidation, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

const (
	MinAge = 18
	MaxAge = 100
)

// UserProfile is a roommate-seeking listing. Profiles are soft-deactivated via
// IsActive and never hard-deleted.
type UserProfile struct {
	ID              int                   `json:"id" db:"id"`
	Email           string                `json:"email" db:"email"`
	FirstName       string                `json:"first_name" db:"first_name"`
	LastName        string                `json:"last_name" db:"last_name"`
	Age             int                   `json:"age" db:"age"`
	Bio             *string               `json:"bio" db:"bio"`
	Location        string                `json:"location" db:"location"`
	BudgetMin       float64               `json:"budget_min" db:"budget_min"`
	BudgetMax       float64               `json:"budget_max" db:"budget_max"`
	PreferredGender *Gender               `json:"preferred_gender" db:"preferred_gender"`
	Lifestyle       *LifestylePreferences `json:"lifestyle_preferences"`
	ProfileImageURL *string               `json:"profile_image_url" db:"profile_image_url"`
	IsActive        bool                  `json:"is_active" db:"is_active"`
	CreatedAt       time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at" db:"updated_at"`
}

// BudgetOverlaps reports whether the profile's budget range intersects
// [filterMin, filterMax]; a nil bound is unconstrained.
func (p *UserProfile) BudgetOverlaps(filterMin, filterMax *float64) bool {
	if filterMin != nil && p.BudgetMax < *filterMin {
		return false
	}
	if filterMax != nil && p.BudgetMin > *filterMax {
		return false
	}
	return true
}
