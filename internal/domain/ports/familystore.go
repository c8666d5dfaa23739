package ports

import (
	"context"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

// FamilyStore defines the data-access contract for family-tree data.
// All list operations filter soft-deleted rows at every level (entity
// and join) and return results in a deterministic order, so that
// consumers such as the prediction rules produce identical output for
// an unchanged store. Lookups return (nil, nil) when nothing matches.
type FamilyStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Tree operations

	// SaveTree saves or updates a tree.
	SaveTree(ctx context.Context, tree *entities.Tree) error

	// FindTreeByID finds a tree by its ID.
	FindTreeByID(ctx context.Context, treeID string) (*entities.Tree, error)

	// FindTreeByName finds a tree by its name (case-insensitive).
	FindTreeByName(ctx context.Context, name string) (*entities.Tree, error)

	// ListTrees lists all trees.
	ListTrees(ctx context.Context) ([]entities.Tree, error)

	// Person operations

	// SavePerson saves or updates a person.
	SavePerson(ctx context.Context, person *entities.Person) error

	// FindPersonByID finds a non-deleted person by ID.
	FindPersonByID(ctx context.Context, personID string) (*entities.Person, error)

	// ListPeople lists all non-deleted people in a tree, ordered by name.
	ListPeople(ctx context.Context, treeID string) ([]entities.Person, error)

	// SearchPeople searches non-deleted people in a tree by name pattern.
	SearchPeople(ctx context.Context, treeID, query string, limit int) ([]entities.Person, error)

	// DeletePerson soft-deletes a person.
	DeletePerson(ctx context.Context, personID string) error

	// CountPeople returns the number of non-deleted people in a tree.
	CountPeople(ctx context.Context, treeID string) (int, error)

	// Parent-child link operations

	// SaveParentLink saves or updates a parent-child link.
	SaveParentLink(ctx context.Context, link *entities.ParentChildLink) error

	// ListParentLinks lists all non-deleted parent-child links between
	// non-deleted people in a tree, annotated with parent and child names.
	ListParentLinks(ctx context.Context, treeID string) ([]entities.ParentChildLink, error)

	// HasParentLink reports whether a non-deleted link from parent to
	// child is recorded.
	HasParentLink(ctx context.Context, parentID, childID string) (bool, error)

	// CountBiologicalParents returns the number of non-deleted biological
	// parent links a child currently has.
	CountBiologicalParents(ctx context.Context, childID string) (int, error)

	// DeleteParentLink soft-deletes a parent-child link.
	DeleteParentLink(ctx context.Context, linkID string) error

	// Union operations

	// SaveUnion saves or updates a union (without members).
	SaveUnion(ctx context.Context, union *entities.Union) error

	// AddUnionMember adds a person to a union.
	AddUnionMember(ctx context.Context, unionID, personID string) error

	// ListUnions lists all non-deleted unions in a tree with their
	// non-deleted members, annotated with member names.
	ListUnions(ctx context.Context, treeID string) ([]entities.Union, error)

	// FindUnionByID finds a non-deleted union by ID with its members.
	FindUnionByID(ctx context.Context, unionID string) (*entities.Union, error)

	// HasUnionBetween reports whether two people share a non-deleted
	// union as active members.
	HasUnionBetween(ctx context.Context, personA, personB string) (bool, error)

	// DeleteUnion soft-deletes a union.
	DeleteUnion(ctx context.Context, unionID string) error
}
