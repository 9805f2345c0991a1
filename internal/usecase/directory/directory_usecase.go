// directory implements the profile directory: profile creation and edits,
// lookups, and filtered candidate browsing.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/roomly-app/roomly-backend/internal/config"
	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/infrastructure/cache"
	"github.com/roomly-app/roomly-backend/internal/infrastructure/gemini"
	"github.com/roomly-app/roomly-backend/internal/repository"
)

// ErrAIUnavailable means bio suggestions were requested but no Gemini API
// key is configured. HTTP 503.
var ErrAIUnavailable = errors.New("bio suggestions are not configured")

type DirectoryUseCase struct {
	profiles repository.ProfileRepository
	cache    *cache.ProfileCache
	ai       *gemini.Client
	app      config.AppConfig
	log      *zap.Logger
}

func NewDirectoryUseCase(
	profiles repository.ProfileRepository,
	profileCache *cache.ProfileCache,
	ai *gemini.Client,
	app config.AppConfig,
	log *zap.Logger,
) *DirectoryUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &DirectoryUseCase{
		profiles: profiles,
		cache:    profileCache,
		ai:       ai,
		app:      app,
		log:      log,
	}
}

// CreateProfileRequest carries all profile fields minus id and timestamps.
type CreateProfileRequest struct {
	Email           string                       `json:"email" binding:"required"`
	FirstName       string                       `json:"first_name" binding:"required"`
	LastName        string                       `json:"last_name" binding:"required"`
	Age             int                          `json:"age" binding:"required"`
	Bio             *string                      `json:"bio"`
	Location        string                       `json:"location" binding:"required"`
	BudgetMin       float64                      `json:"budget_min" binding:"required"`
	BudgetMax       float64                      `json:"budget_max" binding:"required"`
	PreferredGender *string                      `json:"preferred_gender" binding:"omitempty,oneof=male female any"`
	Lifestyle       *domain.LifestylePreferences `json:"lifestyle_preferences"`
	ProfileImageURL *string                      `json:"profile_image_url"`
}

func (uc *DirectoryUseCase) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*domain.UserProfile, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	profile := &domain.UserProfile{
		Email:           email,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Age:             req.Age,
		Bio:             req.Bio,
		Location:        strings.TrimSpace(req.Location),
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		Lifestyle:       req.Lifestyle,
		ProfileImageURL: req.ProfileImageURL,
		IsActive:        true,
	}
	if req.PreferredGender != nil {
		g := domain.Gender(*req.PreferredGender)
		profile.PreferredGender = &g
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := uc.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	uc.log.Info("profile created", zap.Int("profile_id", profile.ID))
	return profile, nil
}

// UpdateProfileRequest carries partial fields; nil fields are left unchanged.
// Email is immutable. Setting is_active=false soft-deactivates the profile.
type UpdateProfileRequest struct {
	FirstName       *string                      `json:"first_name"`
	LastName        *string                      `json:"last_name"`
	Age             *int                         `json:"age"`
	Bio             *string                      `json:"bio"`
	Location        *string                      `json:"location"`
	BudgetMin       *float64                     `json:"budget_min"`
	BudgetMax       *float64                     `json:"budget_max"`
	PreferredGender *string                      `json:"preferred_gender" binding:"omitempty,oneof=male female any"`
	Lifestyle       *domain.LifestylePreferences `json:"lifestyle_preferences"`
	ProfileImageURL *string                      `json:"profile_image_url"`
	IsActive        *bool                        `json:"is_active"`
}

func (uc *DirectoryUseCase) UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest) (*domain.UserProfile, error) {
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		profile.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Location != nil {
		profile.Location = strings.TrimSpace(*req.Location)
	}
	if req.BudgetMin != nil {
		profile.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		profile.BudgetMax = *req.BudgetMax
	}
	if req.PreferredGender != nil {
		g := domain.Gender(*req.PreferredGender)
		profile.PreferredGender = &g
	}
	if req.Lifestyle != nil {
		profile.Lifestyle = req.Lifestyle
	}
	if req.ProfileImageURL != nil {
		profile.ProfileImageURL = req.ProfileImageURL
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}

	// The budget invariant must hold on the merged record, not just on the
	// fields this request touched.
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	uc.cache.Invalidate(ctx, id)
	return profile, nil
}

func (uc *DirectoryUseCase) GetProfile(ctx context.Context, id int) (*domain.UserProfile, error) {
	if p := uc.cache.Get(ctx, id); p != nil {
		return p, nil
	}
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, profile)
	return profile, nil
}

// BrowseRequest holds candidate filters; unset fields are skipped, set fields
// combine with AND.
type BrowseRequest struct {
	Location        string   `form:"location"`
	MinAge          *int     `form:"min_age"`
	MaxAge          *int     `form:"max_age"`
	BudgetMin       *float64 `form:"budget_min"`
	BudgetMax       *float64 `form:"budget_max"`
	PreferredGender *string  `form:"preferred_gender"`
	Limit           int      `form:"limit"`
	Offset          int      `form:"offset"`
}

// Browse returns active candidate profiles matching the filters, always
// excluding the viewer's own profile. The viewer is not required to have a
// profile.
func (uc *DirectoryUseCase) Browse(ctx context.Context, viewerID int, req *BrowseRequest) ([]*domain.UserProfile, error) {
	filter, err := uc.buildFilter(req)
	if err != nil {
		return nil, err
	}

	profiles, err := uc.profiles.Search(ctx, viewerID, filter)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	return profiles, nil
}

func (uc *DirectoryUseCase) buildFilter(req *BrowseRequest) (repository.ProfileFilter, error) {
	var filter repository.ProfileFilter

	if req.MinAge != nil && (*req.MinAge < domain.MinAge || *req.MinAge > domain.MaxAge) {
		return filter, fmt.Errorf("%w: min_age must be between %d and %d", domain.ErrValidation, domain.MinAge, domain.MaxAge)
	}
	if req.MaxAge != nil && (*req.MaxAge < domain.MinAge || *req.MaxAge > domain.MaxAge) {
		return filter, fmt.Errorf("%w: max_age must be between %d and %d", domain.ErrValidation, domain.MinAge, domain.MaxAge)
	}
	if req.BudgetMin != nil && *req.BudgetMin <= 0 {
		return filter, fmt.Errorf("%w: budget_min must be positive", domain.ErrValidation)
	}
	if req.BudgetMax != nil && *req.BudgetMax <= 0 {
		return filter, fmt.Errorf("%w: budget_max must be positive", domain.ErrValidation)
	}
	if req.PreferredGender != nil && !domain.Gender(*req.PreferredGender).Valid() {
		return filter, fmt.Errorf("%w: preferred_gender must be one of male, female, any", domain.ErrValidation)
	}

	filter.Location = strings.TrimSpace(req.Location)
	filter.MinAge = req.MinAge
	filter.MaxAge = req.MaxAge
	filter.BudgetMin = req.BudgetMin
	filter.BudgetMax = req.BudgetMax
	if req.PreferredGender != nil {
		g := domain.Gender(*req.PreferredGender)
		filter.PreferredGender = &g
	}

	filter.Limit = req.Limit
	if filter.Limit <= 0 {
		filter.Limit = uc.app.BrowseDefaultLimit
	}
	if filter.Limit > uc.app.BrowseMaxLimit {
		filter.Limit = uc.app.BrowseMaxLimit
	}
	filter.Offset = req.Offset
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

// SuggestBioRequest asks the AI assistant for bio drafts.
type SuggestBioRequest struct {
	FirstName string                       `json:"first_name" binding:"required"`
	Location  string                       `json:"location" binding:"required"`
	Lifestyle *domain.LifestylePreferences `json:"lifestyle_preferences"`
}

func (uc *DirectoryUseCase) SuggestBio(ctx context.Context, req *SuggestBioRequest) (map[string]string, error) {
	if uc.ai == nil {
		return nil, ErrAIUnavailable
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, fmt.Errorf("%w: first_name and location are required", domain.ErrValidation)
	}
	if req.Lifestyle != nil {
		if err := req.Lifestyle.Validate(); err != nil {
			return nil, err
		}
	}

	var traits []string
	if p := req.Lifestyle; p != nil {
		if p.Smoking {
			traits = append(traits, "smoker")
		} else {
			traits = append(traits, "non-smoker")
		}
		if p.Pets {
			traits = append(traits, "has pets")
		}
		traits = append(traits,
			fmt.Sprintf("%s cleanliness", p.Cleanliness),
			fmt.Sprintf("%s quietness", p.Quietness),
			fmt.Sprintf("%s social level", p.SocialLevel),
		)
	}

	return uc.ai.SuggestBios(ctx, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.Location), traits)
}

func validateProfile(p *domain.UserProfile) error {
	if p.FirstName == "" {
		return fmt.Errorf("%w: first_name must not be empty", domain.ErrValidation)
	}
	if p.LastName == "" {
		return fmt.Errorf("%w: last_name must not be empty", domain.ErrValidation)
	}
	if p.Location == "" {
		return fmt.Errorf("%w: location must not be empty", domain.ErrValidation)
	}
	if p.Age < domain.MinAge || p.Age > domain.MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", domain.ErrValidation, domain.MinAge, domain.MaxAge)
	}
	if p.BudgetMin <= 0 || p.BudgetMax <= 0 {
		return fmt.Errorf("%w: budgets must be positive", domain.ErrValidation)
	}
	if p.BudgetMax < p.BudgetMin {
		return fmt.Errorf("%w: budget_max must be greater than or equal to budget_min", domain.ErrValidation)
	}
	if p.PreferredGender != nil && !p.PreferredGender.Valid() {
		return fmt.Errorf("%w: preferred_gender must be one of male, female, any", domain.ErrValidation)
	}
	if p.Lifestyle != nil {
		if err := p.Lifestyle.Validate(); err != nil {
			return err
		}
	}
	if p.ProfileImageURL != nil {
		if err := validateURL(*p.ProfileImageURL); err != nil {
			return err
		}
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	return email, nil
}

func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: profile_image_url must be a valid http(s) URL", domain.ErrValidation)
	}
	return nil
}
