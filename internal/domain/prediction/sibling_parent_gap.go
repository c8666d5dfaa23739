package prediction

import (
	"context"
	"fmt"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// SiblingParentGapRule completes partially linked sibling groups: when
// two parents share a union and some of their shared children have
// both parents linked, the children linked to only one of them are
// proposed for the missing link. Sibling corroboration (how many
// children already carry both parents) drives the confidence.
type SiblingParentGapRule struct{}

// NewSiblingParentGapRule creates a new SiblingParentGapRule.
func NewSiblingParentGapRule() *SiblingParentGapRule {
	return &SiblingParentGapRule{}
}

// ID returns the rule tag.
func (r *SiblingParentGapRule) ID() string { return "sibling_parent_gap" }

// Detect finds co-parent pairs that do share a union and runs a
// symmetric pass in both directions, deduplicating proposals with a
// processed set keyed (proposed parent, child).
func (r *SiblingParentGapRule) Detect(ctx context.Context, store ports.FamilyStore, treeID string) ([]entities.PredictionCandidate, error) {
	snap, err := LoadSnapshot(ctx, store, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.People) < 2 {
		return []entities.PredictionCandidate{}, nil
	}

	candidates := make([]entities.PredictionCandidate, 0)
	processedPairs := make(map[string]bool)
	proposed := make(map[string]bool)

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
				if processedPairs[key] {
					continue
				}
				processedPairs[key] = true

				if err := ctx.Err(); err != nil {
					return nil, err
				}
				shared, err := store.HasUnionBetween(ctx, a, b)
				if err != nil {
					return nil, fmt.Errorf("checking union between %s and %s: %w", a, b, err)
				}
				if !shared {
					continue
				}

				sibsWithBoth := snap.SharedChildCount(a, b)
				confidence := siblingGapConfidence(sibsWithBoth)

				// Both directions: children of a missing b, then children
				// of b missing a.
				found, err := r.proposeMissing(ctx, store, snap, a, b, sibsWithBoth, confidence, proposed)
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, found...)

				found, err = r.proposeMissing(ctx, store, snap, b, a, sibsWithBoth, confidence, proposed)
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, found...)
			}
		}
	}

	return candidates, nil
}

// proposeMissing emits a candidate for every child of linkedParent that
// lacks a link from missingParent and is below the biological-parent cap.
func (r *SiblingParentGapRule) proposeMissing(
	ctx context.Context,
	store ports.FamilyStore,
	snap *Snapshot,
	linkedParent, missingParent string,
	sibsWithBoth, confidence int,
	proposed map[string]bool,
) ([]entities.PredictionCandidate, error) {
	linked := snap.Person(linkedParent)
	missing := snap.Person(missingParent)
	if linked == nil || missing == nil {
		return nil, nil
	}

	var candidates []entities.PredictionCandidate
	for _, link := range snap.ChildrenOf(linkedParent) {
		key := missingParent + "|" + link.ChildID
		if proposed[key] {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		has, err := store.HasParentLink(ctx, missingParent, link.ChildID)
		if err != nil {
			return nil, fmt.Errorf("checking link from %s to %s: %w", missingParent, link.ChildID, err)
		}
		if has {
			continue
		}

		bioCount, err := store.CountBiologicalParents(ctx, link.ChildID)
		if err != nil {
			return nil, fmt.Errorf("counting biological parents of %s: %w", link.ChildID, err)
		}
		if bioCount >= entities.MaxBiologicalParents {
			continue
		}

		child := snap.Person(link.ChildID)
		if child == nil {
			continue
		}

		proposed[key] = true
		candidates = append(candidates, entities.PredictionCandidate{
			RuleID:     r.ID(),
			Kind:       entities.PredictParentChild,
			SourceID:   missingParent,
			TargetID:   child.ID,
			Confidence: confidence,
			Explanation: fmt.Sprintf(
				"%s and %s share a union with %d %s linked to both; %s is a child of %s but is not linked to %s",
				linked.DisplayName(), missing.DisplayName(),
				sibsWithBoth, pluralChildren(sibsWithBoth),
				child.DisplayName(), linked.DisplayName(), missing.DisplayName()),
		})
	}

	return candidates, nil
}

// siblingGapConfidence scales with the number of siblings already
// linked to both parents.
func siblingGapConfidence(sibsWithBoth int) int {
	switch {
	case sibsWithBoth >= 3:
		return 90
	case sibsWithBoth >= 1:
		return 80
	default:
		return 70
	}
}
