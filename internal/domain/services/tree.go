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

// TreeService manages family trees.
type TreeService struct {
	store ports.FamilyStore
}

// NewTreeService creates a new TreeService.
func NewTreeService(store ports.FamilyStore) *TreeService {
	return &TreeService{store: store}
}

// Create creates a new family tree with a unique name.
func (s *TreeService) Create(ctx context.Context, name, description string) (*entities.Tree, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("tree name is required")
	}

	existing, err := s.store.FindTreeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking existing tree: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("tree already exists: %s", name)
	}

	tree := &entities.Tree{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.store.SaveTree(ctx, tree); err != nil {
		return nil, fmt.Errorf("saving tree: %w", err)
	}

	return tree, nil
}

// FindByName finds a tree by its name (case-insensitive).
func (s *TreeService) FindByName(ctx context.Context, name string) (*entities.Tree, error) {
	return s.store.FindTreeByName(ctx, name)
}

// List returns all trees.
func (s *TreeService) List(ctx context.Context) ([]entities.Tree, error) {
	return s.store.ListTrees(ctx)
}
