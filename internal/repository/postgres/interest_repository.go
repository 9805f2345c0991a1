package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository"
)

type interestRepository struct {
	db *sqlx.DB
}

func NewInterestRepository(db *sqlx.DB) repository.InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	query := `
		INSERT INTO interests (requester_id, target_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		interest.RequesterID, interest.TargetID, interest.Status, interest.Message,
	).Scan(&interest.ID, &interest.CreatedAt, &interest.UpdatedAt)
	if isUniqueViolation(err) {
		// Backstop for the engine-level dedup check: the partial unique
		// index rejects a second active interest for the ordered pair.
		return domain.ErrDuplicateInterest
	}
	return err
}

func (r *interestRepository) GetByID(ctx context.Context, id int) (*domain.Interest, error) {
	var interest domain.Interest
	query := `SELECT * FROM interests WHERE id = $1`
	err := r.db.GetContext(ctx, &interest, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) GetActiveByPair(ctx context.Context, requesterID, targetID int) (*domain.Interest, error) {
	var interest domain.Interest
	query := `
		SELECT * FROM interests
		WHERE requester_id = $1 AND target_id = $2 AND status IN ('pending', 'accepted')
	`
	err := r.db.GetContext(ctx, &interest, query, requesterID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) UpdateStatus(ctx context.Context, id int, status domain.InterestStatus) (*domain.Interest, error) {
	var interest domain.Interest
	query := `
		UPDATE interests
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING *
	`
	err := r.db.GetContext(ctx, &interest, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) ListByRequester(ctx context.Context, userID int) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	query := `SELECT * FROM interests WHERE requester_id = $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &interests, query, userID)
	return interests, err
}

func (r *interestRepository) ListByTarget(ctx context.Context, userID int) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	// Pending interests first: they are the ones that still need action.
	query := `
		SELECT * FROM interests
		WHERE target_id = $1
		ORDER BY (status <> 'pending'), created_at
	`
	err := r.db.SelectContext(ctx, &interests, query, userID)
	return interests, err
}
