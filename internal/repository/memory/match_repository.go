package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

type matchRepository struct {
	s *Store
}

func NewMatchRepository(s *Store) repository.MatchRepository {
	return &matchRepository{s: s}
}

func (r *matchRepository) Upsert(_ context.Context, match *domain.Match) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	match.User1ID, match.User2ID = domain.CanonicalPair(match.User1ID, match.User2ID)

	for _, m := range r.s.matches {
		if m.User1ID == match.User1ID && m.User2ID == match.User2ID {
			m.IsAcceptedByUser1 = m.IsAcceptedByUser1 || match.IsAcceptedByUser1
			m.IsAcceptedByUser2 = m.IsAcceptedByUser2 || match.IsAcceptedByUser2
			*match = *m
			return false, nil
		}
	}

	match.ID = r.s.id()
	match.CreatedAt = now()
	stored := *match
	r.s.matches[match.ID] = &stored
	return true, nil
}

func (r *matchRepository) GetByID(_ context.Context, id int) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *matchRepository) GetUserMatches(_ context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matches := []*domain.Match{}
	for _, m := range r.s.matches {
		if m.HasUser(userID) {
			cp := *m
			matches = append(matches, &cp)
		}
	}
	// ids grow with creation time
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID > matches[j].ID })
	return page(matches, limit, offset), nil
}

func (r *matchRepository) UpdateExplanation(_ context.Context, matchID int, explanation string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[matchID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.Explanation = &explanation
	return nil
}
