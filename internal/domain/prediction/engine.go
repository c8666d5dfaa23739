// Package prediction implements the relationship-prediction rule
// engine: heuristic detectors that scan a tree's existing graph of
// people, unions, and parent-child links to infer missing
// relationships, each with a confidence score and a human-readable
// explanation. Rules are stateless and side-effect free; persisting
// accepted candidates is the caller's responsibility.
package prediction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// Rule is a single heuristic detector. Detect is a pure read of the
// store followed by in-memory computation: running it twice against an
// unchanged tree yields an identical candidate list.
type Rule interface {
	// ID returns the rule tag recorded on every candidate it produces.
	ID() string

	// Detect scans a tree and returns candidate predictions.
	Detect(ctx context.Context, store ports.FamilyStore, treeID string) ([]entities.PredictionCandidate, error)
}

// DefaultRules returns all built-in rules in their standard order.
func DefaultRules() []Rule {
	return []Rule{
		NewSpouseChildGapRule(),
		NewMissingUnionRule(),
		NewSiblingParentGapRule(),
		NewPatronymicNameRule(),
		NewAgeFamilyRule(),
	}
}

// RuleByID returns the built-in rule with the given tag.
func RuleByID(id string) (Rule, bool) {
	for _, rule := range DefaultRules() {
		if rule.ID() == id {
			return rule, true
		}
	}
	return nil, false
}

// RuleFailure records a rule whose scan failed. One rule failing does
// not prevent the remaining rules from completing.
type RuleFailure struct {
	RuleID string
	Err    error
}

// Runner executes a set of rules against a tree.
type Runner struct {
	store  ports.FamilyStore
	logger *slog.Logger
	rules  []Rule
}

// NewRunner creates a Runner. When no rules are given, the default rule
// set is used.
func NewRunner(store ports.FamilyStore, logger *slog.Logger, rules ...Rule) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Runner{
		store:  store,
		logger: logger,
		rules:  rules,
	}
}

// Scan runs each rule against the tree and merges the candidate lists
// in rule order. Rule failures are collected rather than aborting the
// scan; only cancellation stops it early. Candidates from different
// rules are not deduplicated against each other.
func (r *Runner) Scan(ctx context.Context, treeID string) ([]entities.PredictionCandidate, []RuleFailure, error) {
	candidates := make([]entities.PredictionCandidate, 0)
	var failures []RuleFailure

	for _, rule := range r.rules {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		found, err := rule.Detect(ctx, r.store, treeID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, nil, err
			}
			r.logger.Error("prediction rule failed",
				"rule", rule.ID(), "tree", treeID, "error", err)
			failures = append(failures, RuleFailure{RuleID: rule.ID(), Err: err})
			continue
		}

		r.logger.Info("prediction rule completed",
			"rule", rule.ID(), "tree", treeID, "candidates", len(found))
		candidates = append(candidates, found...)
	}

	return candidates, failures, nil
}
