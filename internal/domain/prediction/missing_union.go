package prediction

import (
	"context"
	"fmt"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// MissingUnionRule proposes a union between two people who are both
// recorded parents of the same child but have no union record.
type MissingUnionRule struct{}

// NewMissingUnionRule creates a new MissingUnionRule.
func NewMissingUnionRule() *MissingUnionRule {
	return &MissingUnionRule{}
}

// ID returns the rule tag.
func (r *MissingUnionRule) ID() string { return "missing_union" }

// Detect groups parent-child links by child to find co-parent pairs.
// Each unordered pair is evaluated exactly once via a canonical
// lower-id-first key, regardless of child iteration order.
func (r *MissingUnionRule) Detect(ctx context.Context, store ports.FamilyStore, treeID string) ([]entities.PredictionCandidate, error) {
	snap, err := LoadSnapshot(ctx, store, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.People) < 2 {
		return []entities.PredictionCandidate{}, nil
	}

	candidates := make([]entities.PredictionCandidate, 0)
	processed := make(map[string]bool)

	for _, childID := range childIDsInOrder(snap) {
		parents := distinctParentIDs(snap.ParentsOf(childID))
		if len(parents) < 2 {
			continue
		}

		for i := 0; i < len(parents); i++ {
			for j := i + 1; j < len(parents); j++ {
				a, b := parents[i], parents[j]
				if b < a {
					a, b = b, a
				}
				key := a + "|" + b
				if processed[key] {
					continue
				}
				processed[key] = true

				if err := ctx.Err(); err != nil {
					return nil, err
				}
				shared, err := store.HasUnionBetween(ctx, a, b)
				if err != nil {
					return nil, fmt.Errorf("checking union between %s and %s: %w", a, b, err)
				}
				if shared {
					continue
				}

				pa, pb := snap.Person(a), snap.Person(b)
				if pa == nil || pb == nil {
					continue
				}

				sharedChildren := snap.SharedChildCount(a, b)
				confidence := missingUnionConfidence(sharedChildren)
				if oppositeSex(pa, pb) {
					confidence = min(confidence+5, 99)
				}

				candidates = append(candidates, entities.PredictionCandidate{
					RuleID:     r.ID(),
					Kind:       entities.PredictUnion,
					SourceID:   a,
					TargetID:   b,
					Confidence: confidence,
					Explanation: fmt.Sprintf(
						"%s and %s are both recorded parents of %d shared %s but have no union record",
						pa.DisplayName(), pb.DisplayName(),
						sharedChildren, pluralChildren(sharedChildren)),
				})
			}
		}
	}

	return candidates, nil
}

// missingUnionConfidence scales with the number of shared children.
func missingUnionConfidence(sharedChildren int) int {
	switch {
	case sharedChildren >= 3:
		return 95
	case sharedChildren == 2:
		return 90
	case sharedChildren == 1:
		return 80
	default:
		return 70
	}
}

// oppositeSex reports whether both sexes are known and differ.
func oppositeSex(a, b *entities.Person) bool {
	if a.Sex == entities.SexUnknown || b.Sex == entities.SexUnknown {
		return false
	}
	return a.Sex != b.Sex
}

// childIDsInOrder returns the distinct child IDs in link order.
func childIDsInOrder(snap *Snapshot) []string {
	seen := make(map[string]bool)
	order := make([]string, 0)
	for i := range snap.Links {
		childID := snap.Links[i].ChildID
		if !seen[childID] {
			seen[childID] = true
			order = append(order, childID)
		}
	}
	return order
}

// distinctParentIDs returns the distinct parent IDs of a child's links
// in link order.
func distinctParentIDs(links []entities.ParentChildLink) []string {
	seen := make(map[string]bool)
	parents := make([]string, 0, len(links))
	for i := range links {
		if !seen[links[i].ParentID] {
			seen[links[i].ParentID] = true
			parents = append(parents, links[i].ParentID)
		}
	}
	return parents
}

func pluralChildren(n int) string {
	if n == 1 {
		return "child"
	}
	return "children"
}
