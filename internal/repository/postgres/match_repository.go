package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

const matchColumns = `id, user1_id, user2_id, is_accepted_by_user1, is_accepted_by_user2, match_explanation, created_at`

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Upsert(ctx context.Context, match *domain.Match) (bool, error) {
	// Ensure user1_id < user2_id for constraint
	match.User1ID, match.User2ID = domain.CanonicalPair(match.User1ID, match.User2ID)

	// xmax is zero only for a row inserted by this statement.
	query := `
		INSERT INTO matches (user1_id, user2_id, is_accepted_by_user1, is_accepted_by_user2)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user1_id, user2_id) DO UPDATE
		SET is_accepted_by_user1 = matches.is_accepted_by_user1 OR EXCLUDED.is_accepted_by_user1,
		    is_accepted_by_user2 = matches.is_accepted_by_user2 OR EXCLUDED.is_accepted_by_user2
		RETURNING ` + matchColumns + `, (xmax = 0) AS created
	`
	var created bool
	err := r.db.QueryRowContext(ctx, query,
		match.User1ID, match.User2ID, match.IsAcceptedByUser1, match.IsAcceptedByUser2,
	).Scan(
		&match.ID, &match.User1ID, &match.User2ID,
		&match.IsAcceptedByUser1, &match.IsAcceptedByUser2,
		&match.Explanation, &match.CreatedAt, &created,
	)
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	matches := []*domain.Match{}
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_id = $1 OR user2_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &matches, query, userID, normalizeLimit(limit), offset)
	return matches, err
}

func (r *matchRepository) UpdateExplanation(ctx context.Context, matchID int, explanation string) error {
	query := `UPDATE matches SET match_explanation = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, explanation, matchID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
