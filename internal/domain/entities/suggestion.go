package entities

import "time"

// SuggestionStatus is the review state of a queued suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

// Suggestion is a prediction candidate persisted to the review queue
// for admin accept/reject. Accepting a suggestion creates the real
// parent-child link or union rows.
type Suggestion struct {
	ID          string           `json:"id"`
	TreeID      string           `json:"tree_id"`
	RuleID      string           `json:"rule_id"`
	Kind        PredictedKind    `json:"kind"`
	SourceID    string           `json:"source_id"`
	TargetID    string           `json:"target_id"`
	Confidence  int              `json:"confidence"`
	Explanation string           `json:"explanation"`
	Status      SuggestionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty"`
}
