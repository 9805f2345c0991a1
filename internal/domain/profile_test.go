package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLifestylePreferencesFromJSON(t *testing.T) {
	t.Run("nil column", func(t *testing.T) {
		p, err := LifestylePreferencesFromJSON(nil)
		require.NoError(t, err)
		require.Nil(t, p)
	})

	t.Run("valid", func(t *testing.T) {
		raw := []byte(`{"smoking":false,"pets":true,"cleanliness":"high","quietness":"medium","social_level":"low"}`)
		p, err := LifestylePreferencesFromJSON(raw)
		require.NoError(t, err)
		require.NotNil(t, p)
		require.True(t, p.Pets)
		require.Equal(t, LevelHigh, p.Cleanliness)
	})

	t.Run("unknown level", func(t *testing.T) {
		raw := []byte(`{"smoking":false,"pets":false,"cleanliness":"spotless","quietness":"medium","social_level":"low"}`)
		_, err := LifestylePreferencesFromJSON(raw)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LifestylePreferencesFromJSON([]byte(`{"smoking":`))
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestLifestylePreferencesValue(t *testing.T) {
	var p *LifestylePreferences
	v, err := p.Value()
	require.NoError(t, err)
	require.Nil(t, v)

	p = &LifestylePreferences{Cleanliness: LevelHigh, Quietness: LevelMedium, SocialLevel: LevelLow}
	v, err = p.Value()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"smoking":false,"pets":false,"cleanliness":"high","quietness":"medium","social_level":"low"}`,
		string(v.([]byte)),
	)
}

func TestBudgetOverlaps(t *testing.T) {
	fl := func(v float64) *float64 { return &v }
	p := &UserProfile{BudgetMin: 800, BudgetMax: 1200}

	tests := []struct {
		name string
		min  *float64
		max  *float64
		want bool
	}{
		{"unbounded", nil, nil, true},
		{"min inside range", fl(1000), nil, true},
		{"min above range", fl(1300), nil, false},
		{"min at upper edge", fl(1200), nil, true},
		{"max inside range", nil, fl(900), true},
		{"max below range", nil, fl(700), false},
		{"max at lower edge", nil, fl(800), true},
		{"band overlaps", fl(1000), fl(1500), true},
		{"band disjoint", fl(1300), fl(1500), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.BudgetOverlaps(tt.min, tt.max))
		})
	}
}

func TestGenderValid(t *testing.T) {
	require.True(t, GenderMale.Valid())
	require.True(t, GenderFemale.Valid())
	require.True(t, GenderAny.Valid())
	require.False(t, Gender("other").Valid())
	require.False(t, Gender("").Valid())
}
