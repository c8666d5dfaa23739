package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

// ReviewQueue is an in-memory mock implementation of ports.ReviewQueue.
type ReviewQueue struct {
	Suggestions map[string]*entities.Suggestion
	Err         error
}

// NewReviewQueue creates a new mock ReviewQueue.
func NewReviewQueue() *ReviewQueue {
	return &ReviewQueue{
		Suggestions: make(map[string]*entities.Suggestion),
	}
}

// SaveSuggestion saves or updates a suggestion.
func (m *ReviewQueue) SaveSuggestion(_ context.Context, suggestion *entities.Suggestion) error {
	if m.Err != nil {
		return m.Err
	}
	m.Suggestions[suggestion.ID] = suggestion
	return nil
}

// FindSuggestionByID finds a suggestion by ID.
func (m *ReviewQueue) FindSuggestionByID(_ context.Context, id string) (*entities.Suggestion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suggestions[id], nil
}

// ListSuggestions lists suggestions for a tree, optionally filtered by
// status, ordered by confidence descending.
func (m *ReviewQueue) ListSuggestions(_ context.Context, treeID string, status entities.SuggestionStatus) ([]entities.Suggestion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Suggestion, 0)
	for _, suggestion := range m.Suggestions {
		if suggestion.TreeID != treeID {
			continue
		}
		if status != "" && suggestion.Status != status {
			continue
		}
		result = append(result, *suggestion)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Confidence != result[j].Confidence {
			return result[i].Confidence > result[j].Confidence
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateSuggestionStatus sets the review status of a suggestion.
func (m *ReviewQueue) UpdateSuggestionStatus(_ context.Context, id string, status entities.SuggestionStatus) error {
	if m.Err != nil {
		return m.Err
	}
	if suggestion, ok := m.Suggestions[id]; ok {
		suggestion.Status = status
		now := time.Now()
		suggestion.ReviewedAt = &now
	}
	return nil
}
