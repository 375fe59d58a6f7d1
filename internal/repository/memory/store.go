// Package memory implements the repository interfaces over in-process maps.
// It is test support only: use case and handler tests build on it, while
// the server always wires the postgres and redis implementations.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
)

// Store is the shared state behind all repositories of one instance.
type Store struct {
	mu sync.Mutex

	nextID int

	users     map[int]*domain.User
	profiles  map[int]*domain.Profile // by profile id
	skills    map[int]*domain.Skill
	interests map[int]*domain.Interest

	profileSkills    map[int][]int
	profileInterests map[int][]int

	matches map[int]*domain.Match
	tokens  map[string]int
}

func NewStore() *Store {
	return &Store{
		users:            make(map[int]*domain.User),
		profiles:         make(map[int]*domain.Profile),
		skills:           make(map[int]*domain.Skill),
		interests:        make(map[int]*domain.Interest),
		profileSkills:    make(map[int][]int),
		profileInterests: make(map[int][]int),
		matches:          make(map[int]*domain.Match),
		tokens:           make(map[string]int),
	}
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

// MatchCount returns the number of stored matches.
func (s *Store) MatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

func (s *Store) profileByUser(userID int) *domain.Profile {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// hydrate returns a copy of p with skills and interests attached.
func (s *Store) hydrate(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Skills = []domain.Skill{}
	cp.Interests = []domain.Interest{}
	for _, id := range s.profileSkills[p.ID] {
		if sk, ok := s.skills[id]; ok {
			cp.Skills = append(cp.Skills, *sk)
		}
	}
	for _, id := range s.profileInterests[p.ID] {
		if in, ok := s.interests[id]; ok {
			cp.Interests = append(cp.Interests, *in)
		}
	}
	sort.Slice(cp.Skills, func(i, j int) bool { return cp.Skills[i].Name < cp.Skills[j].Name })
	sort.Slice(cp.Interests, func(i, j int) bool { return cp.Interests[i].Name < cp.Interests[j].Name })
	return &cp
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func now() time.Time {
	return time.Now().UTC()
}
