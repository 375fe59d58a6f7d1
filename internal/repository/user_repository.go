package repository

import (
	"context"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
)

type UserRepository interface {
	// CreateWithProfile stores the user and its (possibly empty) profile
	// in one transaction.
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// FindCandidates returns users, other than userID, whose profile skills
	// include one of interestNames or whose profile interests include one of
	// skillNames. Names are compared normalized.
	FindCandidates(ctx context.Context, userID int, interestNames, skillNames []string) ([]*domain.User, error)
}
