package handlers

import (
	"context"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
)

// RelationHandler handles parent-child link and union operations at the
// application layer.
type RelationHandler struct {
	linkService  *services.LinkService
	unionService *services.UnionService
}

// NewRelationHandler creates a new RelationHandler.
func NewRelationHandler(linkService *services.LinkService, unionService *services.UnionService) *RelationHandler {
	return &RelationHandler{
		linkService:  linkService,
		unionService: unionService,
	}
}

// HandleLink creates a parent-child link between two people.
func (h *RelationHandler) HandleLink(ctx context.Context, parentID, childID string, linkType entities.LinkType) (*entities.ParentChildLink, error) {
	return h.linkService.Create(ctx, parentID, childID, linkType)
}

// HandleListLinks returns all parent-child links in a tree.
func (h *RelationHandler) HandleListLinks(ctx context.Context, treeID string) ([]entities.ParentChildLink, error) {
	return h.linkService.List(ctx, treeID)
}

// HandleUnlink soft-deletes a parent-child link.
func (h *RelationHandler) HandleUnlink(ctx context.Context, linkID string) error {
	return h.linkService.Delete(ctx, linkID)
}

// HandleUnion creates a union between two or more people.
func (h *RelationHandler) HandleUnion(ctx context.Context, treeID string, memberIDs []string, start, end *time.Time) (*entities.Union, error) {
	return h.unionService.Create(ctx, treeID, memberIDs, start, end)
}

// HandleAddUnionMember adds a person to an existing union.
func (h *RelationHandler) HandleAddUnionMember(ctx context.Context, unionID, personID string) error {
	return h.unionService.AddMember(ctx, unionID, personID)
}

// HandleListUnions returns all unions in a tree.
func (h *RelationHandler) HandleListUnions(ctx context.Context, treeID string) ([]entities.Union, error) {
	return h.unionService.List(ctx, treeID)
}

// HandleDissolveUnion soft-deletes a union and its memberships.
func (h *RelationHandler) HandleDissolveUnion(ctx context.Context, unionID string) error {
	return h.unionService.Delete(ctx, unionID)
}
