package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

type profileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) repository.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) Create(_ context.Context, profile *domain.Profile, skillIDs, interestIDs []int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.profileByUser(profile.UserID) != nil {
		return domain.NewValidationError("user", "already exists")
	}

	profile.ID = r.s.id()
	profile.CreatedAt, profile.UpdatedAt = now(), now()
	stored := *profile
	r.s.profiles[profile.ID] = &stored
	r.s.profileSkills[profile.ID] = dedupe(skillIDs)
	r.s.profileInterests[profile.ID] = dedupe(interestIDs)

	*profile = *r.s.hydrate(&stored)
	return nil
}

func (r *profileRepository) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return r.s.hydrate(p), nil
}

func (r *profileRepository) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.profileByUser(userID)
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return r.s.hydrate(p), nil
}

func (r *profileRepository) List(_ context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profiles := []*domain.Profile{}
	for _, p := range r.s.profiles {
		if filter.Country != "" && (p.Country == nil || *p.Country != filter.Country) {
			continue
		}
		profiles = append(profiles, r.s.hydrate(p))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return page(profiles, filter.Limit, filter.Offset), nil
}

func (r *profileRepository) Update(_ context.Context, profile *domain.Profile, skillIDs, interestIDs *[]int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.profiles[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	stored.Country = profile.Country
	stored.UpdatedAt = now()
	if skillIDs != nil {
		r.s.profileSkills[profile.ID] = dedupe(*skillIDs)
	}
	if interestIDs != nil {
		r.s.profileInterests[profile.ID] = dedupe(*interestIDs)
	}

	*profile = *r.s.hydrate(stored)
	return nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
