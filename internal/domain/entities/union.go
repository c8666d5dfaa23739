package entities

import "time"

// Union represents a marriage or partnership within a tree.
// A union normally has exactly 2 active members, but historical and
// poly data may carry more; consumers must iterate all member pairs.
type Union struct {
	ID        string        `json:"id"`
	TreeID    string        `json:"tree_id"`
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	Deleted   bool          `json:"deleted,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Members   []UnionMember `json:"members,omitempty"`
}

// UnionMember links a person to a union. Members are soft-deletable
// independently of the union itself.
type UnionMember struct {
	ID         string    `json:"id"`
	UnionID    string    `json:"union_id"`
	PersonID   string    `json:"person_id"`
	PersonName string    `json:"person_name,omitempty"`
	Deleted    bool      `json:"deleted,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActiveMembers returns the non-deleted members of the union.
func (u *Union) ActiveMembers() []UnionMember {
	result := make([]UnionMember, 0, len(u.Members))
	for _, m := range u.Members {
		if !m.Deleted {
			result = append(result, m)
		}
	}
	return result
}

// HasMember reports whether the person is an active member of the union.
func (u *Union) HasMember(personID string) bool {
	for _, m := range u.Members {
		if !m.Deleted && m.PersonID == personID {
			return true
		}
	}
	return false
}
