// repository defines the store abstraction shared by the Postgres and
// in-memory implementations. Usecases depend on these interfaces only.
package repository

import (
	"context"

	"github.com/roomly-app/roomly-backend/internal/domain"
)

// ProfileFilter narrows a candidate search. Nil/zero fields are skipped;
// all set fields combine with AND. Budget bounds use range overlap, not
// exact match: a candidate passes when budget_max >= BudgetMin and
// budget_min <= BudgetMax.
type ProfileFilter struct {
	Location        string
	MinAge          *int
	MaxAge          *int
	BudgetMin       *float64
	BudgetMax       *float64
	PreferredGender *domain.Gender
	Limit           int
	Offset          int
}

type ProfileRepository interface {
	// Create assigns id and timestamps. Fails with domain.ErrEmailTaken when
	// the email is already registered.
	Create(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id int) (*domain.UserProfile, error)
	// Update persists all mutable fields and refreshes updated_at.
	Update(ctx context.Context, profile *domain.UserProfile) error
	// Search returns active profiles matching the filter, always excluding
	// the viewer's own profile.
	Search(ctx context.Context, viewerID int, filter ProfileFilter) ([]*domain.UserProfile, error)
}

type InterestRepository interface {
	Create(ctx context.Context, interest *domain.Interest) error
	GetByID(ctx context.Context, id int) (*domain.Interest, error)
	// GetActiveByPair finds the pending or accepted interest for the exact
	// ordered (requester, target) pair, or domain.ErrInterestNotFound.
	GetActiveByPair(ctx context.Context, requesterID, targetID int) (*domain.Interest, error)
	// UpdateStatus resolves a pending interest and refreshes updated_at.
	UpdateStatus(ctx context.Context, id int, status domain.InterestStatus) (*domain.Interest, error)
	ListByRequester(ctx context.Context, userID int) ([]*domain.Interest, error)
	ListByTarget(ctx context.Context, userID int) ([]*domain.Interest, error)
}

type MatchRepository interface {
	// Create stores the pair in canonical order and assigns id/created_at.
	Create(ctx context.Context, match *domain.Match) error
	// GetByUsers accepts the pair in any order, or domain.ErrMatchNotFound.
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Match, error)
}
