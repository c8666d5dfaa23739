package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/prediction"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
)

// PredictHandler runs the prediction rules over a tree and optionally
// queues the resulting candidates for review.
type PredictHandler struct {
	store             ports.FamilyStore
	suggestionService *services.SuggestionService
	logger            *slog.Logger
}

// NewPredictHandler creates a new PredictHandler.
func NewPredictHandler(store ports.FamilyStore, suggestionService *services.SuggestionService, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{
		store:             store,
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// PredictOptions controls a prediction scan.
type PredictOptions struct {
	RuleIDs       []string // Empty means all rules
	MinConfidence int      // Drop candidates below this score
	Queue         bool     // Save candidates as pending suggestions
}

// PredictResult contains the result of a prediction scan.
type PredictResult struct {
	Candidates []entities.PredictionCandidate
	Failures   []prediction.RuleFailure
	Queued     int
}

// HandleScan runs the selected rules over a tree.
func (h *PredictHandler) HandleScan(ctx context.Context, treeID string, opts PredictOptions) (*PredictResult, error) {
	rules, err := selectRules(opts.RuleIDs)
	if err != nil {
		return nil, err
	}

	runner := prediction.NewRunner(h.store, h.logger, rules...)
	candidates, failures, err := runner.Scan(ctx, treeID)
	if err != nil {
		return nil, err
	}

	if opts.MinConfidence > 0 {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.Confidence >= opts.MinConfidence {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	result := &PredictResult{
		Candidates: candidates,
		Failures:   failures,
	}

	if opts.Queue && len(candidates) > 0 {
		queued, err := h.suggestionService.Queue(ctx, treeID, candidates)
		if err != nil {
			return nil, fmt.Errorf("queueing suggestions: %w", err)
		}
		result.Queued = len(queued)
	}

	return result, nil
}

// Rules returns the IDs of all registered rules.
func (h *PredictHandler) Rules() []string {
	rules := prediction.DefaultRules()
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID())
	}
	return ids
}

func selectRules(ids []string) ([]prediction.Rule, error) {
	if len(ids) == 0 {
		return prediction.DefaultRules(), nil
	}
	rules := make([]prediction.Rule, 0, len(ids))
	for _, id := range ids {
		rule, ok := prediction.RuleByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown rule: %s", id)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
