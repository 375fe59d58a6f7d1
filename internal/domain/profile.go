package domain

import "time"

type Profile struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user" db:"user_id"`
	Country   *string    `json:"country" db:"country"`
	Skills    []Skill    `json:"skills" db:"-"`
	Interests []Interest `json:"interests" db:"-"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// SkillNames returns the normalized names of the profile skills.
func (p *Profile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, NormalizeTagName(s.Name))
	}
	return names
}

// InterestNames returns the normalized names of the profile interests.
func (p *Profile) InterestNames() []string {
	names := make([]string, 0, len(p.Interests))
	for _, i := range p.Interests {
		names = append(names, NormalizeTagName(i.Name))
	}
	return names
}
