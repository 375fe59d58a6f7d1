package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/pkg/validation"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	usernameRules = "required,min=3,max=150"
	emailRules    = "required,email,max=254"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

func NewUserUseCase(userRepo repository.UserRepository, bcryptCost int) *UserUseCase {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserUseCase{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// CreateUserRequest represents the fields accepted when creating an account
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=150"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	Password  string  `json:"password" binding:"required,min=8,max=128"`
	FirstName string  `json:"first_name" binding:"omitempty,max=150"`
	LastName  string  `json:"last_name" binding:"omitempty,max=150"`
	Country   *string `json:"country" binding:"omitempty,max=100"`
}

// UpdateUserRequest represents user update request. PUT requires username
// and email; PATCH takes any subset.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	IsActive  *bool   `json:"is_active"`
}

// CreateUser validates uniqueness, hashes the password and stores the user
// with an empty profile.
func (uc *UserUseCase) CreateUser(ctx context.Context, req *CreateUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if err := checkAccountFields(username, email); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, username, email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}
	profile := &domain.Profile{Country: req.Country}

	if err := uc.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks username and password.
func (uc *UserUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies req to the user. With partial false, username and
// email must be present.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id int, req *UpdateUserRequest, partial bool) (*domain.User, error) {
	user, err := uc.PrepareUpdate(ctx, id, req, partial)
	if err != nil {
		return nil, err
	}
	if err := uc.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// PrepareUpdate loads the user, applies req and validates the result
// without saving it.
func (uc *UserUseCase) PrepareUpdate(ctx context.Context, id int, req *UpdateUserRequest, partial bool) (*domain.User, error) {
	if !partial {
		verr := &domain.ValidationError{}
		if req.Username == nil {
			verr.Add("username", "this field is required")
		}
		if req.Email == nil {
			verr.Add("email", "this field is required")
		}
		if verr.HasErrors() {
			return nil, verr
		}
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := checkAccountFields(user.Username, user.Email); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, user.Username, user.Email, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// SaveUser stores a user returned by PrepareUpdate.
func (uc *UserUseCase) SaveUser(ctx context.Context, user *domain.User) error {
	if err := uc.userRepo.Update(ctx, user); err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return err
		}
		if err == domain.ErrUserNotFound {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// checkAccountFields validates trimmed values; binding tags only see the
// raw input.
func checkAccountFields(username, email string) error {
	verr := &domain.ValidationError{}
	if fe := validation.Var("username", username, usernameRules); fe != nil {
		verr.Add("username", fe.Fields["username"])
	}
	if fe := validation.Var("email", email, emailRules); fe != nil {
		verr.Add("email", fe.Fields["email"])
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (uc *UserUseCase) checkUnique(ctx context.Context, username, email string, excludeID int) error {
	verr := &domain.ValidationError{}

	taken, err := uc.userRepo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		verr.Add("username", "a user with that username already exists")
	}

	taken, err = uc.userRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		verr.Add("email", "a user with that email already exists")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
