package memory

import (
	"context"
	"time"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

type refreshTokenStore struct {
	s *Store
}

// NewRefreshTokenStore ignores ttl; tokens live until consumed or deleted.
func NewRefreshTokenStore(s *Store) repository.RefreshTokenStore {
	return &refreshTokenStore{s: s}
}

func (t *refreshTokenStore) Save(_ context.Context, tokenID string, userID int, _ time.Duration) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	t.s.tokens[tokenID] = userID
	return nil
}

func (t *refreshTokenStore) Consume(_ context.Context, tokenID string) (int, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	userID, ok := t.s.tokens[tokenID]
	if !ok {
		return 0, domain.ErrTokenRevoked
	}
	delete(t.s.tokens, tokenID)
	return userID, nil
}

func (t *refreshTokenStore) Delete(_ context.Context, tokenID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	delete(t.s.tokens, tokenID)
	return nil
}
