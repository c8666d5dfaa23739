package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
	"github.com/google/uuid"
)

// UnionService manages unions and their members.
type UnionService struct {
	store ports.FamilyStore
}

// NewUnionService creates a new UnionService.
func NewUnionService(store ports.FamilyStore) *UnionService {
	return &UnionService{store: store}
}

// Create records a union between two or more people in a tree.
func (s *UnionService) Create(ctx context.Context, treeID string, memberIDs []string, start, end *time.Time) (*entities.Union, error) {
	if len(memberIDs) < 2 {
		return nil, fmt.Errorf("a union requires at least 2 members, got %d", len(memberIDs))
	}

	seen := make(map[string]bool, len(memberIDs))
	for _, memberID := range memberIDs {
		if seen[memberID] {
			return nil, fmt.Errorf("duplicate union member: %s", memberID)
		}
		seen[memberID] = true

		person, err := s.store.FindPersonByID(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("finding member: %w", err)
		}
		if person == nil {
			return nil, fmt.Errorf("member not found: %s", memberID)
		}
		if person.TreeID != treeID {
			return nil, fmt.Errorf("member %s belongs to a different tree", person.Name)
		}
	}

	shared, err := s.store.HasUnionBetween(ctx, memberIDs[0], memberIDs[1])
	if err != nil {
		return nil, fmt.Errorf("checking existing union: %w", err)
	}
	if shared {
		return nil, fmt.Errorf("a union already exists between %s and %s", memberIDs[0], memberIDs[1])
	}

	union := &entities.Union{
		ID:        uuid.New().String(),
		TreeID:    treeID,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveUnion(ctx, union); err != nil {
		return nil, fmt.Errorf("saving union: %w", err)
	}
	for _, memberID := range memberIDs {
		if err := s.store.AddUnionMember(ctx, union.ID, memberID); err != nil {
			return nil, fmt.Errorf("adding union member: %w", err)
		}
	}

	return s.store.FindUnionByID(ctx, union.ID)
}

// AddMember adds a person to an existing union.
func (s *UnionService) AddMember(ctx context.Context, unionID, personID string) error {
	union, err := s.store.FindUnionByID(ctx, unionID)
	if err != nil {
		return fmt.Errorf("finding union: %w", err)
	}
	if union == nil {
		return fmt.Errorf("union not found: %s", unionID)
	}
	if union.HasMember(personID) {
		return fmt.Errorf("person %s is already a member of the union", personID)
	}

	person, err := s.store.FindPersonByID(ctx, personID)
	if err != nil {
		return fmt.Errorf("finding person: %w", err)
	}
	if person == nil {
		return fmt.Errorf("person not found: %s", personID)
	}

	if err := s.store.AddUnionMember(ctx, unionID, personID); err != nil {
		return fmt.Errorf("adding union member: %w", err)
	}
	return nil
}

// List returns all unions in a tree with their members.
func (s *UnionService) List(ctx context.Context, treeID string) ([]entities.Union, error) {
	return s.store.ListUnions(ctx, treeID)
}

// Delete soft-deletes a union.
func (s *UnionService) Delete(ctx context.Context, unionID string) error {
	return s.store.DeleteUnion(ctx, unionID)
}
