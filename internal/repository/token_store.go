package repository

import (
	"context"
	"time"
)

// RefreshTokenStore tracks live refresh token ids.
type RefreshTokenStore interface {
	Save(ctx context.Context, tokenID string, userID int, ttl time.Duration) error
	// Consume removes tokenID and returns its owner; it fails with
	// domain.ErrTokenRevoked when the id is unknown.
	Consume(ctx context.Context, tokenID string) (int, error)
	Delete(ctx context.Context, tokenID string) error
}
