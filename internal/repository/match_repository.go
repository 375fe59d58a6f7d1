package repository

import (
	"context"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
)

type MatchRepository interface {
	// Upsert inserts the canonical pair or merges acceptance flags into the
	// existing row. created reports whether a new row was inserted.
	Upsert(ctx context.Context, match *domain.Match) (created bool, err error)
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error)
	UpdateExplanation(ctx context.Context, matchID int, explanation string) error
}
