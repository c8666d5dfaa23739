package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// Spouse-child-gap confidence levels by union-date overlap.
const (
	spouseChildBase    = 85
	spouseChildWithin  = 95
	spouseChildOutside = 60
)

// SpouseChildGapRule proposes the missing parent when one member of a
// union is recorded as a parent of a child and another member is not.
// This is the highest-confidence signal: spouses of a recorded parent
// are very likely the other parent.
type SpouseChildGapRule struct{}

// NewSpouseChildGapRule creates a new SpouseChildGapRule.
func NewSpouseChildGapRule() *SpouseChildGapRule {
	return &SpouseChildGapRule{}
}

// ID returns the rule tag.
func (r *SpouseChildGapRule) ID() string { return "spouse_child_gap" }

// Detect scans every union's ordered member pairs (A, B): for each
// child of A not linked to B, and not already at the biological-parent
// cap, it proposes B as a parent of that child.
func (r *SpouseChildGapRule) Detect(ctx context.Context, store ports.FamilyStore, treeID string) ([]entities.PredictionCandidate, error) {
	snap, err := LoadSnapshot(ctx, store, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.People) < 2 {
		return []entities.PredictionCandidate{}, nil
	}

	candidates := make([]entities.PredictionCandidate, 0)
	proposed := make(map[string]bool)

	for ui := range snap.Unions {
		union := &snap.Unions[ui]
		members := union.ActiveMembers()
		if len(members) < 2 {
			continue
		}

		for i := range members {
			for j := range members {
				if i == j {
					continue
				}
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				recorded := snap.Person(members[i].PersonID)
				missing := snap.Person(members[j].PersonID)
				if recorded == nil || missing == nil {
					continue
				}

				for _, link := range snap.ChildrenOf(recorded.ID) {
					if snap.HasLink(missing.ID, link.ChildID) {
						continue
					}
					key := missing.ID + "|" + link.ChildID
					if proposed[key] {
						continue
					}
					if snap.BiologicalParentCount(link.ChildID) >= entities.MaxBiologicalParents {
						continue
					}
					child := snap.Person(link.ChildID)
					if child == nil {
						continue
					}

					confidence, reason := spouseChildConfidence(child.BirthDate, union)
					proposed[key] = true
					candidates = append(candidates, entities.PredictionCandidate{
						RuleID:     r.ID(),
						Kind:       entities.PredictParentChild,
						SourceID:   missing.ID,
						TargetID:   child.ID,
						Confidence: confidence,
						Explanation: fmt.Sprintf(
							"%s and %s share a union; %s is recorded as a parent of %s but %s is not (%s)",
							recorded.DisplayName(), missing.DisplayName(),
							recorded.DisplayName(), child.DisplayName(),
							missing.DisplayName(), reason),
					})
				}
			}
		}
	}

	return candidates, nil
}

// spouseChildConfidence scores the proposal by whether the child's
// birth date falls inside the union period. A null union end date is
// treated as unbounded; a birth outside the window signals a possible
// step-relationship and lowers the score instead of rejecting.
func spouseChildConfidence(birth *time.Time, union *entities.Union) (int, string) {
	if birth == nil || (union.StartDate == nil && union.EndDate == nil) {
		return spouseChildBase, "dates unknown"
	}
	within := (union.StartDate == nil || !birth.Before(*union.StartDate)) &&
		(union.EndDate == nil || !birth.After(*union.EndDate))
	if within {
		return spouseChildWithin, "child born within the union period"
	}
	return spouseChildOutside, "child born outside the union period"
}
