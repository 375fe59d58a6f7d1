package matching

import "github.com/gdugdh24/skillswap-backend/internal/domain"

// nameSet is a set of normalized tag names.
type nameSet map[string]struct{}

func newNameSet(names []string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) intersects(other nameSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for n := range small {
		if _, ok := large[n]; ok {
			return true
		}
	}
	return false
}

// Offers reports whether one of skills is among interests.
func Offers(skills, interests []string) bool {
	return newNameSet(skills).intersects(newNameSet(interests))
}

// Reciprocal reports whether a's skills meet b's interests and b's skills
// meet a's interests.
func Reciprocal(a, b *domain.Profile) bool {
	return Offers(a.SkillNames(), b.InterestNames()) &&
		Offers(b.SkillNames(), a.InterestNames())
}

// SharedTags lists what a can teach b and what b can teach a.
func SharedTags(a, b *domain.Profile) (aTeaches, bTeaches []string) {
	return overlap(a.Skills, b.Interests), overlap(b.Skills, a.Interests)
}

func overlap(skills []domain.Skill, interests []domain.Interest) []string {
	wanted := make(nameSet, len(interests))
	for _, i := range interests {
		wanted[domain.NormalizeTagName(i.Name)] = struct{}{}
	}

	var out []string
	seen := make(nameSet)
	for _, s := range skills {
		key := domain.NormalizeTagName(s.Name)
		if _, ok := wanted[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s.Name)
	}
	return out
}
