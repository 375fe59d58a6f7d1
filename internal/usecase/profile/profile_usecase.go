package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/user"
)

type ProfileUseCase struct {
	profileRepo  repository.ProfileRepository
	userRepo     repository.UserRepository
	skillRepo    repository.SkillRepository
	interestRepo repository.InterestRepository
	users        *user.UserUseCase
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	interestRepo repository.InterestRepository,
	users *user.UserUseCase,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		skillRepo:    skillRepo,
		interestRepo: interestRepo,
		users:        users,
	}
}

// CreateProfileRequest represents profile creation request
type CreateProfileRequest struct {
	User        int     `json:"user" binding:"required,gt=0"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
	SkillIDs    []int   `json:"skill_ids" binding:"omitempty,dive,gt=0"`
	InterestIDs []int   `json:"interest_ids" binding:"omitempty,dive,gt=0"`
}

// UpdateProfileRequest represents profile update request. On PUT absent
// fields are cleared; on PATCH they are kept.
type UpdateProfileRequest struct {
	Country     *string `json:"country" binding:"omitempty,max=100"`
	SkillIDs    *[]int  `json:"skill_ids" binding:"omitempty,dive,gt=0"`
	InterestIDs *[]int  `json:"interest_ids" binding:"omitempty,dive,gt=0"`
}

// UpdateMeRequest updates the caller's account and profile together
type UpdateMeRequest struct {
	user.UpdateUserRequest
	UpdateProfileRequest
}

func (uc *ProfileUseCase) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*domain.Profile, error) {
	if _, err := uc.userRepo.GetByID(ctx, req.User); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewValidationError("user", fmt.Sprintf("invalid pk %d - object does not exist", req.User))
		}
		return nil, err
	}

	if _, err := uc.profileRepo.GetByUserID(ctx, req.User); err == nil {
		return nil, domain.NewValidationError("user", "profile with this user already exists")
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	if err := uc.checkTags(ctx, &req.SkillIDs, &req.InterestIDs); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:  req.User,
		Country: trimmed(req.Country),
	}
	if err := uc.profileRepo.Create(ctx, profile, req.SkillIDs, req.InterestIDs); err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, id int) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

func (uc *ProfileUseCase) ListProfiles(ctx context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	profiles, err := uc.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest, partial bool) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.applyUpdate(ctx, profile, req, partial)
}

// GetMyProfile returns the caller's account with its profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int) (*domain.UserWithProfile, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.UserWithProfile{User: u, Profile: profile}, nil
}

// UpdateMyProfile updates the caller's account and profile. Both halves are
// validated before anything is written; the profile is saved first.
func (uc *ProfileUseCase) UpdateMyProfile(ctx context.Context, userID int, req *UpdateMeRequest, partial bool) (*domain.UserWithProfile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u, err := uc.users.PrepareUpdate(ctx, userID, &req.UpdateUserRequest, partial)
	if err != nil {
		return nil, err
	}

	profile, err = uc.applyUpdate(ctx, profile, &req.UpdateProfileRequest, partial)
	if err != nil {
		return nil, err
	}

	if err := uc.users.SaveUser(ctx, u); err != nil {
		return nil, err
	}

	return &domain.UserWithProfile{User: u, Profile: profile}, nil
}

func (uc *ProfileUseCase) applyUpdate(ctx context.Context, profile *domain.Profile, req *UpdateProfileRequest, partial bool) (*domain.Profile, error) {
	skillIDs, interestIDs := req.SkillIDs, req.InterestIDs
	if !partial {
		profile.Country = trimmed(req.Country)
		if skillIDs == nil {
			skillIDs = &[]int{}
		}
		if interestIDs == nil {
			interestIDs = &[]int{}
		}
	} else if req.Country != nil {
		profile.Country = trimmed(req.Country)
	}

	if err := uc.checkTags(ctx, skillIDs, interestIDs); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Update(ctx, profile, skillIDs, interestIDs); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// checkTags verifies every referenced skill and interest exists.
func (uc *ProfileUseCase) checkTags(ctx context.Context, skillIDs, interestIDs *[]int) error {
	verr := &domain.ValidationError{}

	if skillIDs != nil && len(*skillIDs) > 0 {
		ids := unique(*skillIDs)
		n, err := uc.skillRepo.CountByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to check skills: %w", err)
		}
		if n != len(ids) {
			verr.Add("skill_ids", "invalid pk - object does not exist")
		}
	}

	if interestIDs != nil && len(*interestIDs) > 0 {
		ids := unique(*interestIDs)
		n, err := uc.interestRepo.CountByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to check interests: %w", err)
		}
		if n != len(ids) {
			verr.Add("interest_ids", "invalid pk - object does not exist")
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func unique(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
