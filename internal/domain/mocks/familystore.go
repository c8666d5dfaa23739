package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

// FamilyStore is an in-memory mock implementation of ports.FamilyStore.
// It honours soft-delete flags and returns results in a deterministic
// order, matching the store contract.
type FamilyStore struct {
	Trees  map[string]*entities.Tree
	People map[string]*entities.Person
	Links  map[string]*entities.ParentChildLink
	Unions map[string]*entities.Union
	Err    error
}

// NewFamilyStore creates a new mock FamilyStore.
func NewFamilyStore() *FamilyStore {
	return &FamilyStore{
		Trees:  make(map[string]*entities.Tree),
		People: make(map[string]*entities.Person),
		Links:  make(map[string]*entities.ParentChildLink),
		Unions: make(map[string]*entities.Union),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *FamilyStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *FamilyStore) Close() error {
	return nil
}

// Tree methods.

// SaveTree saves or updates a tree.
func (m *FamilyStore) SaveTree(_ context.Context, tree *entities.Tree) error {
	if m.Err != nil {
		return m.Err
	}
	m.Trees[tree.ID] = tree
	return nil
}

// FindTreeByID finds a tree by its ID.
func (m *FamilyStore) FindTreeByID(_ context.Context, treeID string) (*entities.Tree, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Trees[treeID], nil
}

// FindTreeByName finds a tree by its name (case-insensitive).
func (m *FamilyStore) FindTreeByName(_ context.Context, name string) (*entities.Tree, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	normalized := entities.NormalizeName(name)
	for _, tree := range m.Trees {
		if entities.NormalizeName(tree.Name) == normalized {
			return tree, nil
		}
	}
	return nil, nil
}

// ListTrees lists all trees.
func (m *FamilyStore) ListTrees(_ context.Context) ([]entities.Tree, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Tree, 0, len(m.Trees))
	for _, tree := range m.Trees {
		result = append(result, *tree)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Person methods.

// SavePerson saves or updates a person.
func (m *FamilyStore) SavePerson(_ context.Context, person *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	m.People[person.ID] = person
	return nil
}

// FindPersonByID finds a non-deleted person by ID.
func (m *FamilyStore) FindPersonByID(_ context.Context, personID string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	person := m.People[personID]
	if person == nil || person.Deleted {
		return nil, nil
	}
	return person, nil
}

// ListPeople lists all non-deleted people in a tree, ordered by name.
func (m *FamilyStore) ListPeople(_ context.Context, treeID string) ([]entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Person, 0)
	for _, person := range m.People {
		if person.TreeID == treeID && !person.Deleted {
			result = append(result, *person)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// SearchPeople searches non-deleted people in a tree by name pattern.
func (m *FamilyStore) SearchPeople(_ context.Context, treeID, query string, limit int) ([]entities.Person, error) {
	people, err := m.ListPeople(context.Background(), treeID)
	if err != nil {
		return nil, err
	}
	normalized := entities.NormalizeName(query)
	result := make([]entities.Person, 0)
	for _, person := range people {
		if strings.Contains(entities.NormalizeName(person.Name), normalized) {
			result = append(result, person)
		}
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// DeletePerson soft-deletes a person.
func (m *FamilyStore) DeletePerson(_ context.Context, personID string) error {
	if m.Err != nil {
		return m.Err
	}
	if person, ok := m.People[personID]; ok {
		person.Deleted = true
	}
	return nil
}

// CountPeople returns the number of non-deleted people in a tree.
func (m *FamilyStore) CountPeople(_ context.Context, treeID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, person := range m.People {
		if person.TreeID == treeID && !person.Deleted {
			count++
		}
	}
	return count, nil
}

// Parent-child link methods.

// SaveParentLink saves or updates a parent-child link.
func (m *FamilyStore) SaveParentLink(_ context.Context, link *entities.ParentChildLink) error {
	if m.Err != nil {
		return m.Err
	}
	m.Links[link.ID] = link
	return nil
}

// ListParentLinks lists non-deleted links between non-deleted people in
// a tree, annotated with parent and child names.
func (m *FamilyStore) ListParentLinks(_ context.Context, treeID string) ([]entities.ParentChildLink, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.ParentChildLink, 0)
	for _, link := range m.Links {
		if link.Deleted {
			continue
		}
		parent := m.People[link.ParentID]
		child := m.People[link.ChildID]
		if parent == nil || parent.Deleted || child == nil || child.Deleted {
			continue
		}
		if parent.TreeID != treeID {
			continue
		}
		annotated := *link
		annotated.ParentName = parent.Name
		annotated.ChildName = child.Name
		result = append(result, annotated)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// HasParentLink reports whether a non-deleted parent-to-child link exists.
func (m *FamilyStore) HasParentLink(_ context.Context, parentID, childID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, link := range m.Links {
		if !link.Deleted && link.ParentID == parentID && link.ChildID == childID {
			return true, nil
		}
	}
	return false, nil
}

// CountBiologicalParents counts non-deleted biological parent links of a child.
func (m *FamilyStore) CountBiologicalParents(_ context.Context, childID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, link := range m.Links {
		if !link.Deleted && link.ChildID == childID && link.Type == entities.LinkBiological {
			count++
		}
	}
	return count, nil
}

// DeleteParentLink soft-deletes a parent-child link.
func (m *FamilyStore) DeleteParentLink(_ context.Context, linkID string) error {
	if m.Err != nil {
		return m.Err
	}
	if link, ok := m.Links[linkID]; ok {
		link.Deleted = true
	}
	return nil
}

// Union methods.

// SaveUnion saves or updates a union (without members).
func (m *FamilyStore) SaveUnion(_ context.Context, union *entities.Union) error {
	if m.Err != nil {
		return m.Err
	}
	if existing, ok := m.Unions[union.ID]; ok && len(union.Members) == 0 {
		union.Members = existing.Members
	}
	m.Unions[union.ID] = union
	return nil
}

// AddUnionMember adds a person to a union.
func (m *FamilyStore) AddUnionMember(_ context.Context, unionID, personID string) error {
	if m.Err != nil {
		return m.Err
	}
	union, ok := m.Unions[unionID]
	if !ok {
		return nil
	}
	union.Members = append(union.Members, entities.UnionMember{
		ID:       unionID + ":" + personID,
		UnionID:  unionID,
		PersonID: personID,
	})
	return nil
}

// ListUnions lists non-deleted unions in a tree with their non-deleted
// members, annotated with member names.
func (m *FamilyStore) ListUnions(_ context.Context, treeID string) ([]entities.Union, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Union, 0)
	for _, union := range m.Unions {
		if union.Deleted || union.TreeID != treeID {
			continue
		}
		view := *union
		view.Members = m.activeMembers(union)
		result = append(result, view)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// FindUnionByID finds a non-deleted union by ID with its members.
func (m *FamilyStore) FindUnionByID(_ context.Context, unionID string) (*entities.Union, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	union := m.Unions[unionID]
	if union == nil || union.Deleted {
		return nil, nil
	}
	view := *union
	view.Members = m.activeMembers(union)
	return &view, nil
}

// HasUnionBetween reports whether two people share a non-deleted union.
func (m *FamilyStore) HasUnionBetween(_ context.Context, personA, personB string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, union := range m.Unions {
		if union.Deleted {
			continue
		}
		if union.HasMember(personA) && union.HasMember(personB) {
			return true, nil
		}
	}
	return false, nil
}

// DeleteUnion soft-deletes a union.
func (m *FamilyStore) DeleteUnion(_ context.Context, unionID string) error {
	if m.Err != nil {
		return m.Err
	}
	if union, ok := m.Unions[unionID]; ok {
		union.Deleted = true
	}
	return nil
}

// activeMembers filters deleted members and members whose person is
// deleted, annotating the rest with person names.
func (m *FamilyStore) activeMembers(union *entities.Union) []entities.UnionMember {
	members := make([]entities.UnionMember, 0, len(union.Members))
	for _, member := range union.Members {
		if member.Deleted {
			continue
		}
		person := m.People[member.PersonID]
		if person == nil || person.Deleted {
			continue
		}
		member.PersonName = person.Name
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members
}
