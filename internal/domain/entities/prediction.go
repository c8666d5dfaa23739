package entities

// PredictedKind is the kind of relationship a prediction proposes.
type PredictedKind string

const (
	// PredictParentChild proposes a parent-child link: source is the
	// proposed parent, target is the child.
	PredictParentChild PredictedKind = "parent_child"
	// PredictUnion proposes a union between source and target (the two
	// co-parents, in either order).
	PredictUnion PredictedKind = "union"
)

// PredictionCandidate is a relationship inferred by a prediction rule.
// Candidates are ephemeral engine output; persisting them for review is
// the caller's responsibility.
type PredictionCandidate struct {
	RuleID      string        `json:"rule_id"`
	Kind        PredictedKind `json:"kind"`
	SourceID    string        `json:"source_id"`
	TargetID    string        `json:"target_id"`
	Confidence  int           `json:"confidence"` // 0-100
	Explanation string        `json:"explanation"`
}
