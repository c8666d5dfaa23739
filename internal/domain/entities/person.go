package entities

import (
	"strings"
	"time"
)

// Sex is the recorded biological sex of a person.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// ParseSex validates and converts a string to Sex.
// An empty string is treated as unknown.
func ParseSex(s string) (Sex, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, true
	case "female", "f":
		return SexFemale, true
	case "unknown", "":
		return SexUnknown, true
	default:
		return SexUnknown, false
	}
}

// Person represents an individual in a family tree.
type Person struct {
	ID            string     `json:"id"`
	TreeID        string     `json:"tree_id"`
	Name          string     `json:"name"`                  // Primary display name
	ArabicName    string     `json:"arabic_name,omitempty"` // Localized variant, used for patronymic parsing
	Sex           Sex        `json:"sex"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	FamilyGroupID string     `json:"family_group_id,omitempty"`
	Deleted       bool       `json:"deleted,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DisplayName returns the name used in human-readable output.
func (p *Person) DisplayName() string {
	return p.Name
}

// LocalName returns the Arabic name variant when present, falling back
// to the primary name. Name-pattern heuristics parse this form.
func (p *Person) LocalName() string {
	if strings.TrimSpace(p.ArabicName) != "" {
		return p.ArabicName
	}
	return p.Name
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
