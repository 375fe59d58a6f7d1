package repository

import (
	"context"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
)

type TagFilter struct {
	Search string
	Limit  int
	Offset int
}

// TagRepository stores named reference entities (skills, interests).
type TagRepository[T domain.Skill | domain.Interest] interface {
	Create(ctx context.Context, name string) (*T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	List(ctx context.Context, filter TagFilter) ([]*T, error)
	Update(ctx context.Context, id int, name string) (*T, error)
	Delete(ctx context.Context, id int) error
	// CountByIDs returns how many of ids exist.
	CountByIDs(ctx context.Context, ids []int) (int, error)
}

type SkillRepository = TagRepository[domain.Skill]

type InterestRepository = TagRepository[domain.Interest]
