package entities

import "time"

// Tree represents a family tree. All people, links, and unions belong
// to exactly one tree.
type Tree struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
