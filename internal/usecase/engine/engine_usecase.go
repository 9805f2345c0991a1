// engine implements the interest/match state machine: directed interest
// requests, accept/reject resolution, and symmetric match derivation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository"
)

const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

type EngineUseCase struct {
	interests repository.InterestRepository
	matches   repository.MatchRepository
	profiles  repository.ProfileRepository

	maxMessageLen int
	log           *zap.Logger

	// mu serializes the engine's write paths so the dedup check and the
	// accept-then-match step each run as one indivisible unit. Write volume
	// is low enough that a single lock suffices; the store's unique
	// constraints are the backstop.
	mu sync.Mutex
}

func NewEngineUseCase(
	interests repository.InterestRepository,
	matches repository.MatchRepository,
	profiles repository.ProfileRepository,
	maxMessageLen int,
	log *zap.Logger,
) *EngineUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &EngineUseCase{
		interests:     interests,
		matches:       matches,
		profiles:      profiles,
		maxMessageLen: maxMessageLen,
		log:           log,
	}
}

// CreateInterestRequest expresses interest from requester to target.
type CreateInterestRequest struct {
	RequesterID int     `json:"requester_id" binding:"required"`
	TargetID    int     `json:"target_id" binding:"required"`
	Message     *string `json:"message"`
}

// CreateInterest creates a pending interest. Both parties must have active
// profiles; an active interest for the same ordered pair fails with
// domain.ErrDuplicateInterest. A pending interest in the opposite direction
// does not block and does not auto-match.
func (uc *EngineUseCase) CreateInterest(ctx context.Context, req *CreateInterestRequest) (*domain.Interest, error) {
	if req.RequesterID == req.TargetID {
		return nil, domain.ErrSelfInterest
	}
	if req.Message != nil && len(*req.Message) > uc.maxMessageLen {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrValidation, uc.maxMessageLen)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.requireActiveProfile(ctx, req.RequesterID); err != nil {
		return nil, err
	}
	if err := uc.requireActiveProfile(ctx, req.TargetID); err != nil {
		return nil, err
	}

	_, err := uc.interests.GetActiveByPair(ctx, req.RequesterID, req.TargetID)
	if err == nil {
		return nil, domain.ErrDuplicateInterest
	}
	if !errors.Is(err, domain.ErrInterestNotFound) {
		return nil, fmt.Errorf("check existing interest: %w", err)
	}

	interest := &domain.Interest{
		RequesterID: req.RequesterID,
		TargetID:    req.TargetID,
		Status:      domain.InterestPending,
		Message:     req.Message,
	}
	if err := uc.interests.Create(ctx, interest); err != nil {
		return nil, fmt.Errorf("create interest: %w", err)
	}

	uc.log.Info("interest created",
		zap.Int("interest_id", interest.ID),
		zap.Int("requester_id", interest.RequesterID),
		zap.Int("target_id", interest.TargetID),
	)
	return interest, nil
}

// RespondRequest resolves a pending interest.
type RespondRequest struct {
	ResponderID int    `json:"responder_id" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=accepted rejected"`
}

// RespondResult carries the resolved interest and, on acceptance, the match.
type RespondResult struct {
	Interest *domain.Interest `json:"interest"`
	Match    *domain.Match    `json:"match,omitempty"`
}

// RespondToInterest transitions a pending interest to accepted or rejected.
// Only the target may respond, and only once. Acceptance creates the match
// for the canonical pair, reusing an existing one rather than duplicating it.
func (uc *EngineUseCase) RespondToInterest(ctx context.Context, interestID int, req *RespondRequest) (*RespondResult, error) {
	status := domain.InterestStatus(req.Status)
	if status != domain.InterestAccepted && status != domain.InterestRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", domain.ErrValidation)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	interest, err := uc.interests.GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}
	if interest.Status != domain.InterestPending {
		return nil, domain.ErrInterestResolved
	}
	if req.ResponderID != interest.TargetID {
		return nil, domain.ErrNotInterestTarget
	}

	updated, err := uc.interests.UpdateStatus(ctx, interestID, status)
	if err != nil {
		return nil, fmt.Errorf("update interest: %w", err)
	}

	result := &RespondResult{Interest: updated}
	if status == domain.InterestAccepted {
		match, err := uc.createOrReuseMatch(ctx, updated.RequesterID, updated.TargetID)
		if err != nil {
			return nil, err
		}
		result.Match = match
	}
	return result, nil
}

func (uc *EngineUseCase) createOrReuseMatch(ctx context.Context, userA, userB int) (*domain.Match, error) {
	user1ID, user2ID := domain.CanonicalPair(userA, userB)

	match, err := uc.matches.GetByUsers(ctx, user1ID, user2ID)
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, fmt.Errorf("check existing match: %w", err)
	}

	match = &domain.Match{User1ID: user1ID, User2ID: user2ID}
	if err := uc.matches.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	uc.log.Info("match created",
		zap.Int("match_id", match.ID),
		zap.Int("user1_id", match.User1ID),
		zap.Int("user2_id", match.User2ID),
	)
	return match, nil
}

// ListInterests returns the user's sent or received interests, each enriched
// with the counterpart's profile. Received interests come pending-first. An
// unresolvable counterpart profile yields a nil enrichment, not an error.
func (uc *EngineUseCase) ListInterests(ctx context.Context, userID int, direction string) ([]*domain.InterestWithProfile, error) {
	if _, err := uc.profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var (
		interests []*domain.Interest
		err       error
	)
	switch direction {
	case DirectionSent:
		interests, err = uc.interests.ListByRequester(ctx, userID)
	case DirectionReceived:
		interests, err = uc.interests.ListByTarget(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: direction must be sent or received", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}

	enriched := make([]*domain.InterestWithProfile, 0, len(interests))
	for _, interest := range interests {
		counterpartID := interest.TargetID
		if direction == DirectionReceived {
			counterpartID = interest.RequesterID
		}
		enriched = append(enriched, &domain.InterestWithProfile{
			Interest: *interest,
			Profile:  uc.lookupProfile(ctx, counterpartID),
		})
	}
	return enriched, nil
}

// ListMatches returns the user's matches, each enriched with the other
// party's profile.
func (uc *EngineUseCase) ListMatches(ctx context.Context, userID int) ([]*domain.MatchWithProfile, error) {
	if _, err := uc.profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	matches, err := uc.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	enriched := make([]*domain.MatchWithProfile, 0, len(matches))
	for _, match := range matches {
		otherID, _ := match.OtherUserID(userID)
		enriched = append(enriched, &domain.MatchWithProfile{
			Match:   *match,
			Profile: uc.lookupProfile(ctx, otherID),
		})
	}
	return enriched, nil
}

func (uc *EngineUseCase) lookupProfile(ctx context.Context, id int) *domain.UserProfile {
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			uc.log.Warn("profile enrichment failed", zap.Int("profile_id", id), zap.Error(err))
		}
		return nil
	}
	return profile
}

func (uc *EngineUseCase) requireActiveProfile(ctx context.Context, id int) error {
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !profile.IsActive {
		return domain.ErrProfileNotFound
	}
	return nil
}
