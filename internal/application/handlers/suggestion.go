package handlers

import (
	"context"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
)

// SuggestionHandler handles review-queue operations at the application
// layer.
type SuggestionHandler struct {
	suggestionService *services.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestionService *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
	}
}

// HandleList returns suggestions for a tree, optionally filtered by
// status. An empty status returns all suggestions.
func (h *SuggestionHandler) HandleList(ctx context.Context, treeID string, status entities.SuggestionStatus) ([]entities.Suggestion, error) {
	return h.suggestionService.List(ctx, treeID, status)
}

// HandleAccept applies a pending suggestion to the tree and marks it
// accepted.
func (h *SuggestionHandler) HandleAccept(ctx context.Context, id string) error {
	return h.suggestionService.Accept(ctx, id)
}

// HandleReject marks a pending suggestion rejected without touching
// the tree.
func (h *SuggestionHandler) HandleReject(ctx context.Context, id string) error {
	return h.suggestionService.Reject(ctx, id)
}
