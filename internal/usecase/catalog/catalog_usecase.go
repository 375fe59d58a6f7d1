// Package catalog manages the skill and interest reference lists.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/pkg/validation"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

const nameRules = "required,max=100"

// CatalogUseCase serves one tag kind. Field is the JSON name of the tag's
// name attribute, used for validation messages.
type CatalogUseCase[T domain.Skill | domain.Interest] struct {
	repo  repository.TagRepository[T]
	field string
}

func NewSkillUseCase(repo repository.SkillRepository) *CatalogUseCase[domain.Skill] {
	return &CatalogUseCase[domain.Skill]{repo: repo, field: "skill_name"}
}

func NewInterestUseCase(repo repository.InterestRepository) *CatalogUseCase[domain.Interest] {
	return &CatalogUseCase[domain.Interest]{repo: repo, field: "interest_name"}
}

// Field returns the JSON name of the tag's name attribute.
func (uc *CatalogUseCase[T]) Field() string {
	return uc.field
}

func (uc *CatalogUseCase[T]) Create(ctx context.Context, name string) (*T, error) {
	name, err := uc.checkName(name)
	if err != nil {
		return nil, err
	}

	tag, err := uc.repo.Create(ctx, name)
	if err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create %s: %w", uc.field, err)
	}
	return tag, nil
}

func (uc *CatalogUseCase[T]) Get(ctx context.Context, id int) (*T, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *CatalogUseCase[T]) List(ctx context.Context, filter repository.TagFilter) ([]*T, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	tags, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", uc.field, err)
	}
	return tags, nil
}

// Update renames a tag. A nil name is a no-op PATCH.
func (uc *CatalogUseCase[T]) Update(ctx context.Context, id int, name *string, partial bool) (*T, error) {
	if name == nil {
		if !partial {
			return nil, domain.NewValidationError(uc.field, "this field is required")
		}
		return uc.repo.GetByID(ctx, id)
	}

	clean, err := uc.checkName(*name)
	if err != nil {
		return nil, err
	}

	tag, err := uc.repo.Update(ctx, id, clean)
	if err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return nil, err
		}
		if err == domain.ErrSkillNotFound || err == domain.ErrInterestNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update %s: %w", uc.field, err)
	}
	return tag, nil
}

func (uc *CatalogUseCase[T]) Delete(ctx context.Context, id int) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CatalogUseCase[T]) checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if verr := validation.Var(uc.field, name, nameRules); verr != nil {
		return "", verr
	}
	return name, nil
}
