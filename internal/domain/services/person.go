package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
	"github.com/google/uuid"
)

// PersonInput carries the attributes for creating a person.
type PersonInput struct {
	Name          string
	ArabicName    string
	Sex           entities.Sex
	BirthDate     *time.Time
	FamilyGroupID string
}

// PersonService manages people within a tree.
type PersonService struct {
	store ports.FamilyStore
}

// NewPersonService creates a new PersonService.
func NewPersonService(store ports.FamilyStore) *PersonService {
	return &PersonService{store: store}
}

// Add creates a new person in a tree.
func (s *PersonService) Add(ctx context.Context, treeID string, input PersonInput) (*entities.Person, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("person name is required")
	}

	tree, err := s.store.FindTreeByID(ctx, treeID)
	if err != nil {
		return nil, fmt.Errorf("finding tree: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree not found: %s", treeID)
	}

	sex := input.Sex
	if sex == "" {
		sex = entities.SexUnknown
	}

	person := &entities.Person{
		ID:            uuid.New().String(),
		TreeID:        treeID,
		Name:          strings.TrimSpace(input.Name),
		ArabicName:    strings.TrimSpace(input.ArabicName),
		Sex:           sex,
		BirthDate:     input.BirthDate,
		FamilyGroupID: input.FamilyGroupID,
		CreatedAt:     time.Now(),
	}
	if err := s.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}

	return person, nil
}

// FindByID finds a person by ID.
func (s *PersonService) FindByID(ctx context.Context, personID string) (*entities.Person, error) {
	return s.store.FindPersonByID(ctx, personID)
}

// List returns all people in a tree.
func (s *PersonService) List(ctx context.Context, treeID string) ([]entities.Person, error) {
	return s.store.ListPeople(ctx, treeID)
}

// Search searches people in a tree by name pattern.
func (s *PersonService) Search(ctx context.Context, treeID, query string, limit int) ([]entities.Person, error) {
	return s.store.SearchPeople(ctx, treeID, query, limit)
}

// Delete soft-deletes a person. Their links and union memberships stay
// in place but are filtered from every read by the person's flag.
func (s *PersonService) Delete(ctx context.Context, personID string) error {
	person, err := s.store.FindPersonByID(ctx, personID)
	if err != nil {
		return fmt.Errorf("finding person: %w", err)
	}
	if person == nil {
		return fmt.Errorf("person not found: %s", personID)
	}
	return s.store.DeletePerson(ctx, personID)
}

// Count returns the number of people in a tree.
func (s *PersonService) Count(ctx context.Context, treeID string) (int, error) {
	return s.store.CountPeople(ctx, treeID)
}
