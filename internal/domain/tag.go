package domain

import "strings"

type Skill struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"skill_name" db:"skill_name"`
}

type Interest struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"interest_name" db:"interest_name"`
}

// NormalizeTagName is the comparison key shared by skills and interests.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
