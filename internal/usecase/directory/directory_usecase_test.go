package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roomly-app/roomly-backend/internal/config"
	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository/memory"
)

func newDirectory(t *testing.T) (*DirectoryUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	app := config.AppConfig{
		BrowseDefaultLimit: 20,
		BrowseMaxLimit:     50,
	}
	return NewDirectoryUseCase(store.Profiles(), nil, nil, app, nil), store
}

func validCreateRequest() *CreateProfileRequest {
	return &CreateProfileRequest{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Age:       27,
		Location:  "New York",
		BudgetMin: 800,
		BudgetMax: 1200,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	req := validCreateRequest()
	req.Email = "  Alice@Example.COM "
	req.FirstName = "  Alice "

	profile, err := uc.CreateProfile(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 1, profile.ID)
	require.Equal(t, "alice@example.com", profile.Email)
	require.Equal(t, "Alice", profile.FirstName)
	require.True(t, profile.IsActive)
}

func TestCreateProfileValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateProfileRequest)
	}{
		{"invalid email", func(r *CreateProfileRequest) { r.Email = "not-an-email" }},
		{"age below minimum", func(r *CreateProfileRequest) { r.Age = 17 }},
		{"age above maximum", func(r *CreateProfileRequest) { r.Age = 101 }},
		{"blank first name", func(r *CreateProfileRequest) { r.FirstName = "   " }},
		{"zero budget", func(r *CreateProfileRequest) { r.BudgetMin = 0 }},
		{"inverted budget", func(r *CreateProfileRequest) { r.BudgetMin = 1200; r.BudgetMax = 800 }},
		{"bad image url", func(r *CreateProfileRequest) { r.ProfileImageURL = strPtr("ftp://example.com/me.png") }},
		{"bad lifestyle level", func(r *CreateProfileRequest) {
			r.Lifestyle = &domain.LifestylePreferences{Cleanliness: "spotless", Quietness: domain.LevelLow, SocialLevel: domain.LevelLow}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newDirectory(t)
			req := validCreateRequest()
			tt.mutate(req)
			_, err := uc.CreateProfile(ctx, req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateProfileDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	_, err := uc.CreateProfile(ctx, validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.Email = "ALICE@example.com"
	_, err = uc.CreateProfile(ctx, dup)
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	profile, err := uc.CreateProfile(ctx, validCreateRequest())
	require.NoError(t, err)

	bio := "quiet, tidy, works from home"
	updated, err := uc.UpdateProfile(ctx, profile.ID, &UpdateProfileRequest{
		Bio:      &bio,
		Location: strPtr("Brooklyn"),
	})
	require.NoError(t, err)
	require.Equal(t, "Brooklyn", updated.Location)
	require.NotNil(t, updated.Bio)
	require.Equal(t, bio, *updated.Bio)
	// Untouched fields survive.
	require.Equal(t, profile.Email, updated.Email)
	require.Equal(t, profile.Age, updated.Age)
}

func TestUpdateProfileValidatesMergedRecord(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	profile, err := uc.CreateProfile(ctx, validCreateRequest())
	require.NoError(t, err)

	// Raising only budget_min past the stored budget_max must fail.
	min := 1500.0
	_, err = uc.UpdateProfile(ctx, profile.ID, &UpdateProfileRequest{BudgetMin: &min})
	require.ErrorIs(t, err, domain.ErrValidation)

	// The stored record is untouched after the failed update.
	stored, err := uc.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.Equal(t, 800.0, stored.BudgetMin)
}

func TestUpdateProfileDeactivate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	profile, err := uc.CreateProfile(ctx, validCreateRequest())
	require.NoError(t, err)

	inactive := false
	updated, err := uc.UpdateProfile(ctx, profile.ID, &UpdateProfileRequest{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	// Deactivated profiles are still readable directly but drop out of browse.
	stored, err := uc.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)

	results, err := uc.Browse(ctx, 0, &BrowseRequest{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestUpdateProfileNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	_, err := uc.UpdateProfile(ctx, 999, &UpdateProfileRequest{Location: strPtr("Berlin")})
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetProfileNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	_, err := uc.GetProfile(ctx, 42)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestBrowseFilterValidation(t *testing.T) {
	ctx := context.Background()

	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		req  *BrowseRequest
	}{
		{"min_age too low", &BrowseRequest{MinAge: intPtr(17)}},
		{"max_age too high", &BrowseRequest{MaxAge: intPtr(101)}},
		{"budget_min not positive", &BrowseRequest{BudgetMin: floatPtr(0)}},
		{"budget_max not positive", &BrowseRequest{BudgetMax: floatPtr(-100)}},
		{"unknown gender", &BrowseRequest{PreferredGender: strPtr("other")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newDirectory(t)
			_, err := uc.Browse(ctx, 0, tt.req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestBrowseLimitClamping(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	for i := 0; i < 60; i++ {
		req := validCreateRequest()
		req.Email = string(rune('a'+i%26)) + string(rune('a'+i/26)) + "@example.com"
		_, err := uc.CreateProfile(ctx, req)
		require.NoError(t, err)
	}

	// No limit falls back to the default.
	results, err := uc.Browse(ctx, 0, &BrowseRequest{})
	require.NoError(t, err)
	require.Len(t, results, 20)

	// Oversized limits clamp to the maximum.
	results, err = uc.Browse(ctx, 0, &BrowseRequest{Limit: 500})
	require.NoError(t, err)
	require.Len(t, results, 50)

	// Negative offsets behave like zero.
	results, err = uc.Browse(ctx, 0, &BrowseRequest{Limit: 5, Offset: -3})
	require.NoError(t, err)
	require.Len(t, results, 5)
	require.Equal(t, 1, results[0].ID)
}

func TestBrowseExcludesViewer(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	viewer, err := uc.CreateProfile(ctx, validCreateRequest())
	require.NoError(t, err)

	other := validCreateRequest()
	other.Email = "bob@example.com"
	candidate, err := uc.CreateProfile(ctx, other)
	require.NoError(t, err)

	results, err := uc.Browse(ctx, viewer.ID, &BrowseRequest{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, candidate.ID, results[0].ID)
}

func TestSuggestBioUnavailableWithoutClient(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDirectory(t)

	_, err := uc.SuggestBio(ctx, &SuggestBioRequest{FirstName: "Alice", Location: "New York"})
	require.ErrorIs(t, err, ErrAIUnavailable)
}
