package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
	"github.com/google/uuid"
)

// SuggestionService persists prediction candidates to the review queue
// and applies admin decisions. Accepting a suggestion creates the real
// parent-child link or union rows; the prediction engine itself never
// writes anything.
type SuggestionService struct {
	store ports.FamilyStore
	queue ports.ReviewQueue
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(store ports.FamilyStore, queue ports.ReviewQueue) *SuggestionService {
	return &SuggestionService{
		store: store,
		queue: queue,
	}
}

// Queue persists a batch of prediction candidates as pending
// suggestions. Candidates from different rules proposing the same pair
// are kept as separate rows; reconciling them is the reviewer's call.
func (s *SuggestionService) Queue(ctx context.Context, treeID string, candidates []entities.PredictionCandidate) ([]entities.Suggestion, error) {
	suggestions := make([]entities.Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		suggestion := entities.Suggestion{
			ID:          uuid.New().String(),
			TreeID:      treeID,
			RuleID:      candidate.RuleID,
			Kind:        candidate.Kind,
			SourceID:    candidate.SourceID,
			TargetID:    candidate.TargetID,
			Confidence:  candidate.Confidence,
			Explanation: candidate.Explanation,
			Status:      entities.SuggestionPending,
			CreatedAt:   time.Now(),
		}
		if err := s.queue.SaveSuggestion(ctx, &suggestion); err != nil {
			return nil, fmt.Errorf("saving suggestion: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

// List returns suggestions for a tree, optionally filtered by status.
func (s *SuggestionService) List(ctx context.Context, treeID string, status entities.SuggestionStatus) ([]entities.Suggestion, error) {
	return s.queue.ListSuggestions(ctx, treeID, status)
}

// Accept applies a pending suggestion: the proposed link or union is
// re-validated against current data and created, then the suggestion is
// marked accepted. Validations are repeated here because the graph may
// have changed since the scan that produced the suggestion.
func (s *SuggestionService) Accept(ctx context.Context, id string) error {
	suggestion, err := s.findPending(ctx, id)
	if err != nil {
		return err
	}

	switch suggestion.Kind {
	case entities.PredictParentChild:
		if err := s.applyParentChild(ctx, suggestion); err != nil {
			return err
		}
	case entities.PredictUnion:
		if err := s.applyUnion(ctx, suggestion); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown suggestion kind: %s", suggestion.Kind)
	}

	if err := s.queue.UpdateSuggestionStatus(ctx, id, entities.SuggestionAccepted); err != nil {
		return fmt.Errorf("updating suggestion status: %w", err)
	}
	return nil
}

// Reject marks a pending suggestion as rejected.
func (s *SuggestionService) Reject(ctx context.Context, id string) error {
	if _, err := s.findPending(ctx, id); err != nil {
		return err
	}
	if err := s.queue.UpdateSuggestionStatus(ctx, id, entities.SuggestionRejected); err != nil {
		return fmt.Errorf("updating suggestion status: %w", err)
	}
	return nil
}

func (s *SuggestionService) findPending(ctx context.Context, id string) (*entities.Suggestion, error) {
	suggestion, err := s.queue.FindSuggestionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding suggestion: %w", err)
	}
	if suggestion == nil {
		return nil, fmt.Errorf("suggestion not found: %s", id)
	}
	if suggestion.Status != entities.SuggestionPending {
		return nil, fmt.Errorf("suggestion already reviewed: %s (%s)", id, suggestion.Status)
	}
	return suggestion, nil
}

func (s *SuggestionService) applyParentChild(ctx context.Context, suggestion *entities.Suggestion) error {
	exists, err := s.store.HasParentLink(ctx, suggestion.SourceID, suggestion.TargetID)
	if err != nil {
		return fmt.Errorf("checking existing link: %w", err)
	}
	if exists {
		return nil
	}

	count, err := s.store.CountBiologicalParents(ctx, suggestion.TargetID)
	if err != nil {
		return fmt.Errorf("counting biological parents: %w", err)
	}
	if count >= entities.MaxBiologicalParents {
		return fmt.Errorf("child %s already has %d biological parents", suggestion.TargetID, count)
	}

	link := &entities.ParentChildLink{
		ID:        uuid.New().String(),
		ParentID:  suggestion.SourceID,
		ChildID:   suggestion.TargetID,
		Type:      entities.LinkBiological,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveParentLink(ctx, link); err != nil {
		return fmt.Errorf("saving link: %w", err)
	}
	return nil
}

func (s *SuggestionService) applyUnion(ctx context.Context, suggestion *entities.Suggestion) error {
	shared, err := s.store.HasUnionBetween(ctx, suggestion.SourceID, suggestion.TargetID)
	if err != nil {
		return fmt.Errorf("checking existing union: %w", err)
	}
	if shared {
		return nil
	}

	union := &entities.Union{
		ID:        uuid.New().String(),
		TreeID:    suggestion.TreeID,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveUnion(ctx, union); err != nil {
		return fmt.Errorf("saving union: %w", err)
	}
	for _, personID := range []string{suggestion.SourceID, suggestion.TargetID} {
		if err := s.store.AddUnionMember(ctx, union.ID, personID); err != nil {
			return fmt.Errorf("adding union member: %w", err)
		}
	}
	return nil
}
