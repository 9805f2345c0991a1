// memory implements the repository interfaces on mutex-guarded maps. It backs
// the STORAGE_TYPE=memory mode and the usecase/handler tests. Reads hand out
// copies, so callers never observe a partially written record.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	profiles  map[int]domain.UserProfile
	interests map[int]domain.Interest
	matches   map[int]domain.Match

	nextProfileID  int
	nextInterestID int
	nextMatchID    int
}

func NewStore() *Store {
	return &Store{
		profiles:       make(map[int]domain.UserProfile),
		interests:      make(map[int]domain.Interest),
		matches:        make(map[int]domain.Match),
		nextProfileID:  1,
		nextInterestID: 1,
		nextMatchID:    1,
	}
}

func (s *Store) Profiles() repository.ProfileRepository   { return &profileRepo{s} }
func (s *Store) Interests() repository.InterestRepository { return &interestRepo{s} }
func (s *Store) Matches() repository.MatchRepository      { return &matchRepo{s} }

func cloneProfile(p domain.UserProfile) *domain.UserProfile {
	out := p
	if p.Bio != nil {
		bio := *p.Bio
		out.Bio = &bio
	}
	if p.PreferredGender != nil {
		g := *p.PreferredGender
		out.PreferredGender = &g
	}
	if p.Lifestyle != nil {
		prefs := *p.Lifestyle
		out.Lifestyle = &prefs
	}
	if p.ProfileImageURL != nil {
		u := *p.ProfileImageURL
		out.ProfileImageURL = &u
	}
	return &out
}

func cloneInterest(i domain.Interest) *domain.Interest {
	out := i
	if i.Message != nil {
		msg := *i.Message
		out.Message = &msg
	}
	return &out
}

type profileRepo struct {
	s *Store
}

func (r *profileRepo) Create(_ context.Context, profile *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.profiles {
		if strings.EqualFold(existing.Email, profile.Email) {
			return domain.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	profile.ID = r.s.nextProfileID
	r.s.nextProfileID++
	profile.CreatedAt = now
	profile.UpdatedAt = now

	r.s.profiles[profile.ID] = *cloneProfile(*profile)
	return nil
}

func (r *profileRepo) GetByID(_ context.Context, id int) (*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *profileRepo) Update(_ context.Context, profile *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.profiles[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	for id, existing := range r.s.profiles {
		if id != profile.ID && strings.EqualFold(existing.Email, profile.Email) {
			return domain.ErrEmailTaken
		}
	}

	profile.CreatedAt = stored.CreatedAt
	profile.UpdatedAt = time.Now().UTC()
	r.s.profiles[profile.ID] = *cloneProfile(*profile)
	return nil
}

func (r *profileRepo) Search(_ context.Context, viewerID int, filter repository.ProfileFilter) ([]*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int, 0, len(r.s.profiles))
	for id := range r.s.profiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var results []*domain.UserProfile
	skipped := 0
	for _, id := range ids {
		p := r.s.profiles[id]
		if !matchesFilter(&p, viewerID, filter) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		results = append(results, cloneProfile(p))
		if filter.Limit > 0 && len(results) >= filter.Limit {
			break
		}
	}
	return results, nil
}

func matchesFilter(p *domain.UserProfile, viewerID int, filter repository.ProfileFilter) bool {
	if p.ID == viewerID || !p.IsActive {
		return false
	}
	if filter.Location != "" &&
		!strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.MinAge != nil && p.Age < *filter.MinAge {
		return false
	}
	if filter.MaxAge != nil && p.Age > *filter.MaxAge {
		return false
	}
	if !p.BudgetOverlaps(filter.BudgetMin, filter.BudgetMax) {
		return false
	}
	if g := filter.PreferredGender; g != nil && *g != domain.GenderAny {
		// Only candidates locked to the other specific gender are excluded.
		if p.PreferredGender != nil && *p.PreferredGender != domain.GenderAny && *p.PreferredGender != *g {
			return false
		}
	}
	return true
}

type interestRepo struct {
	s *Store
}

func (r *interestRepo) Create(_ context.Context, interest *domain.Interest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.interests {
		if existing.RequesterID == interest.RequesterID &&
			existing.TargetID == interest.TargetID && existing.Active() {
			return domain.ErrDuplicateInterest
		}
	}

	now := time.Now().UTC()
	interest.ID = r.s.nextInterestID
	r.s.nextInterestID++
	interest.CreatedAt = now
	interest.UpdatedAt = now

	r.s.interests[interest.ID] = *cloneInterest(*interest)
	return nil
}

func (r *interestRepo) GetByID(_ context.Context, id int) (*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.interests[id]
	if !ok {
		return nil, domain.ErrInterestNotFound
	}
	return cloneInterest(i), nil
}

func (r *interestRepo) GetActiveByPair(_ context.Context, requesterID, targetID int) (*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, i := range r.s.interests {
		if i.RequesterID == requesterID && i.TargetID == targetID && i.Active() {
			return cloneInterest(i), nil
		}
	}
	return nil, domain.ErrInterestNotFound
}

func (r *interestRepo) UpdateStatus(_ context.Context, id int, status domain.InterestStatus) (*domain.Interest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.interests[id]
	if !ok {
		return nil, domain.ErrInterestNotFound
	}
	i.Status = status
	i.UpdatedAt = time.Now().UTC()
	r.s.interests[id] = i
	return cloneInterest(i), nil
}

func (r *interestRepo) ListByRequester(_ context.Context, userID int) ([]*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var interests []*domain.Interest
	for _, i := range r.s.interests {
		if i.RequesterID == userID {
			interests = append(interests, cloneInterest(i))
		}
	}
	sortInterests(interests)
	return interests, nil
}

func (r *interestRepo) ListByTarget(_ context.Context, userID int) ([]*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var interests []*domain.Interest
	for _, i := range r.s.interests {
		if i.TargetID == userID {
			interests = append(interests, cloneInterest(i))
		}
	}
	sortInterests(interests)
	// Pending interests first: they still need action.
	sort.SliceStable(interests, func(a, b int) bool {
		return interests[a].Status == domain.InterestPending &&
			interests[b].Status != domain.InterestPending
	})
	return interests, nil
}

func sortInterests(interests []*domain.Interest) {
	sort.Slice(interests, func(a, b int) bool {
		return interests[a].ID < interests[b].ID
	})
}

type matchRepo struct {
	s *Store
}

func (r *matchRepo) Create(_ context.Context, match *domain.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user1ID, user2ID := domain.CanonicalPair(match.User1ID, match.User2ID)

	match.ID = r.s.nextMatchID
	r.s.nextMatchID++
	match.User1ID = user1ID
	match.User2ID = user2ID
	match.CreatedAt = time.Now().UTC()

	r.s.matches[match.ID] = *match
	return nil
}

func (r *matchRepo) GetByUsers(_ context.Context, user1ID, user2ID int) (*domain.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)
	for _, m := range r.s.matches {
		if m.User1ID == user1ID && m.User2ID == user2ID {
			out := m
			return &out, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *matchRepo) ListByUser(_ context.Context, userID int) ([]*domain.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matches []*domain.Match
	for _, m := range r.s.matches {
		if m.HasUser(userID) {
			out := m
			matches = append(matches, &out)
		}
	}
	sort.Slice(matches, func(a, b int) bool {
		return matches[a].ID < matches[b].ID
	})
	return matches, nil
}
