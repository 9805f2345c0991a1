package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	user1ID, user2ID := domain.CanonicalPair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (user1_id, user2_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, user1ID, user2ID).
		Scan(&match.ID, &match.CreatedAt)

	match.User1ID = user1ID
	match.User2ID = user2ID
	return err
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)

	var match domain.Match
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}
