package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
	"github.com/google/uuid"
)

// LinkService manages parent-child links.
type LinkService struct {
	store ports.FamilyStore
}

// NewLinkService creates a new LinkService.
func NewLinkService(store ports.FamilyStore) *LinkService {
	return &LinkService{store: store}
}

// Create records a parent-child link. It validates that both people
// exist in the same tree, that the pair isn't already linked, and that
// a biological link would not push the child past the two-parent cap.
func (s *LinkService) Create(ctx context.Context, parentID, childID string, linkType entities.LinkType) (*entities.ParentChildLink, error) {
	if parentID == childID {
		return nil, errors.New("a person cannot be their own parent")
	}

	parent, err := s.store.FindPersonByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("finding parent: %w", err)
	}
	if parent == nil {
		return nil, fmt.Errorf("parent not found: %s", parentID)
	}

	child, err := s.store.FindPersonByID(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("finding child: %w", err)
	}
	if child == nil {
		return nil, fmt.Errorf("child not found: %s", childID)
	}
	if parent.TreeID != child.TreeID {
		return nil, errors.New("parent and child belong to different trees")
	}

	exists, err := s.store.HasParentLink(ctx, parentID, childID)
	if err != nil {
		return nil, fmt.Errorf("checking existing link: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("link already exists between %s and %s", parent.Name, child.Name)
	}

	if linkType == entities.LinkBiological {
		count, err := s.store.CountBiologicalParents(ctx, childID)
		if err != nil {
			return nil, fmt.Errorf("counting biological parents: %w", err)
		}
		if count >= entities.MaxBiologicalParents {
			return nil, fmt.Errorf("%s already has %d biological parents", child.Name, count)
		}
	}

	link := &entities.ParentChildLink{
		ID:        uuid.New().String(),
		ParentID:  parentID,
		ChildID:   childID,
		Type:      linkType,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveParentLink(ctx, link); err != nil {
		return nil, fmt.Errorf("saving link: %w", err)
	}

	return link, nil
}

// List returns all parent-child links in a tree.
func (s *LinkService) List(ctx context.Context, treeID string) ([]entities.ParentChildLink, error) {
	return s.store.ListParentLinks(ctx, treeID)
}

// Delete soft-deletes a parent-child link.
func (s *LinkService) Delete(ctx context.Context, linkID string) error {
	return s.store.DeleteParentLink(ctx, linkID)
}
