package ports

import (
	"context"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

// ReviewQueue defines the downstream contract for persisted prediction
// suggestions awaiting admin review. The engine itself never writes
// here; the scan caller queues candidates and admins resolve them.
type ReviewQueue interface {
	// SaveSuggestion saves or updates a suggestion.
	SaveSuggestion(ctx context.Context, suggestion *entities.Suggestion) error

	// FindSuggestionByID finds a suggestion by ID.
	FindSuggestionByID(ctx context.Context, id string) (*entities.Suggestion, error)

	// ListSuggestions lists suggestions for a tree, optionally filtered
	// by status (empty status = all), ordered by confidence descending.
	ListSuggestions(ctx context.Context, treeID string, status entities.SuggestionStatus) ([]entities.Suggestion, error)

	// UpdateSuggestionStatus sets the review status of a suggestion.
	UpdateSuggestionStatus(ctx context.Context, id string, status entities.SuggestionStatus) error
}
