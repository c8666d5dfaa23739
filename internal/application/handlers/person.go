package handlers

import (
	"context"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
)

// PersonHandler handles person operations at the application layer.
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// PersonListResult contains the result of listing people.
type PersonListResult struct {
	People []entities.Person `json:"people"`
	Total  int               `json:"total"`
}

// HandleAdd creates a new person in a tree.
func (h *PersonHandler) HandleAdd(ctx context.Context, treeID string, input services.PersonInput) (*entities.Person, error) {
	return h.personService.Add(ctx, treeID, input)
}

// HandleList returns all people in a tree.
func (h *PersonHandler) HandleList(ctx context.Context, treeID string) (*PersonListResult, error) {
	people, err := h.personService.List(ctx, treeID)
	if err != nil {
		return nil, err
	}

	count, err := h.personService.Count(ctx, treeID)
	if err != nil {
		return nil, err
	}

	return &PersonListResult{
		People: people,
		Total:  count,
	}, nil
}

// HandleSearch searches people by name pattern.
func (h *PersonHandler) HandleSearch(ctx context.Context, treeID, query string, limit int) (*PersonListResult, error) {
	people, err := h.personService.Search(ctx, treeID, query, limit)
	if err != nil {
		return nil, err
	}

	return &PersonListResult{
		People: people,
		Total:  len(people),
	}, nil
}

// HandleDelete soft-deletes a person.
func (h *PersonHandler) HandleDelete(ctx context.Context, personID string) error {
	return h.personService.Delete(ctx, personID)
}
