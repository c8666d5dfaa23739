package prediction

import (
	"context"
	"fmt"
	"sort"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// Age-family confidence and volume limits. This is the weakest,
// highest-volume signal, so the output is truncated to keep it from
// flooding the review queue.
const (
	ageFamilyLowConfidence  = 45
	ageFamilyHighConfidence = 55
	ageFamilyMinGapYears    = 15
	ageFamilyMaxGapYears    = 50
	ageFamilyCoreMinYears   = 20
	ageFamilyCoreMaxYears   = 40
	ageFamilyMaxCandidates  = 200
)

// AgeFamilyRule proposes parent-child links between members of the
// same family group whose birth dates imply a plausible generational
// age gap.
type AgeFamilyRule struct{}

// NewAgeFamilyRule creates a new AgeFamilyRule.
func NewAgeFamilyRule() *AgeFamilyRule {
	return &AgeFamilyRule{}
}

// ID returns the rule tag.
func (r *AgeFamilyRule) ID() string { return "age_family" }

// Detect groups people by family-group ID; within each group, every
// (older, younger) pair with a gap strictly between 15 and 50 years
// that isn't already linked in either direction becomes a candidate.
// Output is sorted by confidence and capped at 200 candidates.
func (r *AgeFamilyRule) Detect(ctx context.Context, store ports.FamilyStore, treeID string) ([]entities.PredictionCandidate, error) {
	snap, err := LoadSnapshot(ctx, store, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.People) < 2 {
		return []entities.PredictionCandidate{}, nil
	}

	groups := make(map[string][]int)
	groupOrder := make([]string, 0)
	for i := range snap.People {
		groupID := snap.People[i].FamilyGroupID
		if groupID == "" {
			continue
		}
		if _, ok := groups[groupID]; !ok {
			groupOrder = append(groupOrder, groupID)
		}
		groups[groupID] = append(groups[groupID], i)
	}

	candidates := make([]entities.PredictionCandidate, 0)

	for _, groupID := range groupOrder {
		members := groups[groupID]
		if len(members) < 2 {
			continue
		}

		for _, oi := range members {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			older := &snap.People[oi]
			if older.BirthDate == nil {
				continue
			}

			for _, yi := range members {
				younger := &snap.People[yi]
				if oi == yi || younger.BirthDate == nil {
					continue
				}

				gap := yearsBetween(*older.BirthDate, *younger.BirthDate)
				if gap <= ageFamilyMinGapYears || gap >= ageFamilyMaxGapYears {
					continue
				}
				if snap.HasLink(older.ID, younger.ID) || snap.HasLink(younger.ID, older.ID) {
					continue
				}
				if snap.BiologicalParentCount(younger.ID) >= entities.MaxBiologicalParents {
					continue
				}

				confidence := ageFamilyLowConfidence
				if gap >= ageFamilyCoreMinYears && gap <= ageFamilyCoreMaxYears {
					confidence = ageFamilyHighConfidence
				}

				candidates = append(candidates, entities.PredictionCandidate{
					RuleID:     r.ID(),
					Kind:       entities.PredictParentChild,
					SourceID:   older.ID,
					TargetID:   younger.ID,
					Confidence: confidence,
					Explanation: fmt.Sprintf(
						"%s and %s share family group %s with a %d-year age gap",
						older.DisplayName(), younger.DisplayName(),
						groupID, int(gap)),
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > ageFamilyMaxCandidates {
		candidates = candidates[:ageFamilyMaxCandidates]
	}

	return candidates, nil
}
