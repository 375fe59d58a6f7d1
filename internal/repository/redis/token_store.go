package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh_token:"

type refreshTokenStore struct {
	client *goredis.Client
}

func NewRefreshTokenStore(client *goredis.Client) repository.RefreshTokenStore {
	return &refreshTokenStore{client: client}
}

func (s *refreshTokenStore) Save(ctx context.Context, tokenID string, userID int, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKeyPrefix+tokenID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (s *refreshTokenStore) Consume(ctx context.Context, tokenID string) (int, error) {
	val, err := s.client.GetDel(ctx, refreshKeyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, domain.ErrTokenRevoked
		}
		return 0, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry: %w", err)
	}
	return userID, nil
}

func (s *refreshTokenStore) Delete(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, refreshKeyPrefix+tokenID).Err()
}
