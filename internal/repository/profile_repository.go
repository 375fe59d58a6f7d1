package repository

import (
	"context"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
)

type ProfileFilter struct {
	Country string
	Limit   int
	Offset  int
}

// ProfileRepository loads profiles together with their skills and interests.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile, skillIDs, interestIDs []int) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]*domain.Profile, error)
	// Update saves the country and, when non-nil, replaces the skill and
	// interest sets.
	Update(ctx context.Context, profile *domain.Profile, skillIDs, interestIDs *[]int) error
}
