package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

type tagRepository[T domain.Skill | domain.Interest] struct {
	s        *Store
	items    map[int]*T
	field    string
	notFound error
	name     func(*T) string
	id       func(*T) int
	build    func(id int, name string) *T
}

func NewSkillRepository(s *Store) repository.SkillRepository {
	return &tagRepository[domain.Skill]{
		s:        s,
		items:    s.skills,
		field:    "skill_name",
		notFound: domain.ErrSkillNotFound,
		name:     func(t *domain.Skill) string { return t.Name },
		id:       func(t *domain.Skill) int { return t.ID },
		build:    func(id int, name string) *domain.Skill { return &domain.Skill{ID: id, Name: name} },
	}
}

func NewInterestRepository(s *Store) repository.InterestRepository {
	return &tagRepository[domain.Interest]{
		s:        s,
		items:    s.interests,
		field:    "interest_name",
		notFound: domain.ErrInterestNotFound,
		name:     func(t *domain.Interest) string { return t.Name },
		id:       func(t *domain.Interest) int { return t.ID },
		build:    func(id int, name string) *domain.Interest { return &domain.Interest{ID: id, Name: name} },
	}
}

func (r *tagRepository[T]) Create(_ context.Context, name string) (*T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.taken(name, 0) {
		return nil, domain.NewValidationError(r.field, "already exists")
	}
	tag := r.build(r.s.id(), name)
	r.items[r.id(tag)] = tag
	cp := *tag
	return &cp, nil
}

func (r *tagRepository[T]) GetByID(_ context.Context, id int) (*T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tag, ok := r.items[id]
	if !ok {
		return nil, r.notFound
	}
	cp := *tag
	return &cp, nil
}

func (r *tagRepository[T]) List(_ context.Context, filter repository.TagFilter) ([]*T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tags := []*T{}
	for _, tag := range r.items {
		if filter.Search != "" && !containsFold(r.name(tag), filter.Search) {
			continue
		}
		cp := *tag
		tags = append(tags, &cp)
	}
	sort.Slice(tags, func(i, j int) bool { return r.name(tags[i]) < r.name(tags[j]) })
	return page(tags, filter.Limit, filter.Offset), nil
}

func (r *tagRepository[T]) Update(_ context.Context, id int, name string) (*T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil, r.notFound
	}
	if r.taken(name, id) {
		return nil, domain.NewValidationError(r.field, "already exists")
	}
	tag := r.build(id, name)
	r.items[id] = tag
	cp := *tag
	return &cp, nil
}

func (r *tagRepository[T]) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return r.notFound
	}
	delete(r.items, id)
	return nil
}

func (r *tagRepository[T]) CountByIDs(_ context.Context, ids []int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen), nil
}

func (r *tagRepository[T]) taken(name string, exceptID int) bool {
	for id, tag := range r.items {
		if id != exceptID && r.name(tag) == name {
			return true
		}
	}
	return false
}
