package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) CreateWithProfile(_ context.Context, user *domain.User, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.NewValidationError("username", "already exists")
		}
		if strings.EqualFold(u.Email, user.Email) {
			return domain.NewValidationError("email", "already exists")
		}
	}

	user.ID = r.s.id()
	user.DateJoined = now()
	stored := *user
	r.s.users[user.ID] = &stored

	profile.ID = r.s.id()
	profile.UserID = user.ID
	profile.CreatedAt, profile.UpdatedAt = now(), now()
	storedProfile := *profile
	r.s.profiles[profile.ID] = &storedProfile
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) ExistsByUsername(_ context.Context, username string, excludeID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) ExistsByEmail(_ context.Context, email string, excludeID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) List(_ context.Context, limit, offset int) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return page(users, limit, offset), nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.s.users {
		if u.ID == user.ID {
			continue
		}
		if u.Username == user.Username {
			return domain.NewValidationError("username", "already exists")
		}
		if strings.EqualFold(u.Email, user.Email) {
			return domain.NewValidationError("email", "already exists")
		}
	}

	updated := *user
	updated.PasswordHash = existing.PasswordHash
	updated.DateJoined = existing.DateJoined
	r.s.users[user.ID] = &updated
	return nil
}

func (r *userRepository) FindCandidates(_ context.Context, userID int, interestNames, skillNames []string) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wantedSkills := toSet(interestNames)
	wantedInterests := toSet(skillNames)

	out := []*domain.User{}
	for _, u := range r.s.users {
		if u.ID == userID {
			continue
		}
		p := r.s.profileByUser(u.ID)
		if p == nil {
			continue
		}
		full := r.s.hydrate(p)
		if anyIn(full.SkillNames(), wantedSkills) || anyIn(full.InterestNames(), wantedInterests) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func anyIn(names []string, set map[string]struct{}) bool {
	for _, n := range names {
		if _, ok := set[n]; ok {
			return true
		}
	}
	return false
}
