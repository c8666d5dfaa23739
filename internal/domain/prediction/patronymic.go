package prediction

import (
	"context"
	"fmt"
	"strings"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// Patronymic confidence formula. The rule is inherently noisy (common
// given names collide), so the ceiling stays low and candidates need at
// least one corroborating boost to clear the floor. The implausible
// age-gap reject is the main precision guard and must short-circuit
// before any candidate is emitted.
const (
	patronymicBase        = 35
	patronymicBoost       = 10
	patronymicCap         = 65
	patronymicFloor       = 40
	patronymicMinGapYears = 15
	patronymicMaxGapYears = 50
	patronymicRejectYears = 60
)

// PatronymicNameRule applies the Arabic naming convention: a person's
// second name token is usually the father's given name. A match
// between one person's second token and another's given name proposes
// a parent-child link.
type PatronymicNameRule struct{}

// NewPatronymicNameRule creates a new PatronymicNameRule.
func NewPatronymicNameRule() *PatronymicNameRule {
	return &PatronymicNameRule{}
}

// ID returns the rule tag.
func (r *PatronymicNameRule) ID() string { return "patronymic_name" }

// Detect tokenizes each person's local name, indexes people by
// normalized given name, and matches every person's father-name token
// against the index.
func (r *PatronymicNameRule) Detect(ctx context.Context, store ports.FamilyStore, treeID string) ([]entities.PredictionCandidate, error) {
	snap, err := LoadSnapshot(ctx, store, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(snap.People) < 2 {
		return []entities.PredictionCandidate{}, nil
	}

	byGivenName := make(map[string][]int)
	for i := range snap.People {
		tokens := strings.Fields(snap.People[i].LocalName())
		if len(tokens) == 0 {
			continue
		}
		given := NormalizeArabic(tokens[0])
		byGivenName[given] = append(byGivenName[given], i)
	}

	candidates := make([]entities.PredictionCandidate, 0)

	for i := range snap.People {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		child := &snap.People[i]
		tokens := strings.Fields(child.LocalName())
		if len(tokens) < 2 {
			continue
		}
		fatherToken := NormalizeArabic(tokens[1])

		for _, pi := range byGivenName[fatherToken] {
			parent := &snap.People[pi]
			if parent.ID == child.ID {
				continue
			}
			if snap.HasLink(parent.ID, child.ID) {
				continue
			}
			if snap.BiologicalParentCount(child.ID) >= entities.MaxBiologicalParents {
				continue
			}

			confidence := patronymicBase
			var evidence []string

			if parent.Sex == entities.SexMale {
				confidence += patronymicBoost
				evidence = append(evidence, "candidate parent is male")
			}
			if child.FamilyGroupID != "" && child.FamilyGroupID == parent.FamilyGroupID {
				confidence += patronymicBoost
				evidence = append(evidence, "shared family group")
			}
			if child.BirthDate != nil && parent.BirthDate != nil {
				gap := yearsBetween(*parent.BirthDate, *child.BirthDate)
				if gap < 0 || gap > patronymicRejectYears {
					// Implausible gap: reject the pair outright.
					continue
				}
				if gap >= patronymicMinGapYears && gap <= patronymicMaxGapYears {
					confidence += patronymicBoost
					evidence = append(evidence, fmt.Sprintf("plausible %d-year age gap", int(gap)))
				}
			}

			confidence = min(confidence, patronymicCap)
			if confidence < patronymicFloor {
				continue
			}

			candidates = append(candidates, entities.PredictionCandidate{
				RuleID:     r.ID(),
				Kind:       entities.PredictParentChild,
				SourceID:   parent.ID,
				TargetID:   child.ID,
				Confidence: confidence,
				Explanation: fmt.Sprintf(
					"second name token of %s matches the given name of %s (%s)",
					child.DisplayName(), parent.DisplayName(),
					strings.Join(evidence, ", ")),
			})
		}
	}

	return candidates, nil
}
