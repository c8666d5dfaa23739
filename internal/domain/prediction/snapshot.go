package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/ports"
)

// hoursPerYear converts date differences to fractional years.
const hoursPerYear = 24 * 365.25

// yearsBetween returns the age gap in years from older to younger.
// The result is negative when younger was born before older.
func yearsBetween(older, younger time.Time) float64 {
	return younger.Sub(older).Hours() / hoursPerYear
}

// Snapshot is an in-memory view of a tree's relationship graph at scan
// time. It holds only non-deleted people, links, and union members, in
// the deterministic order the store returns them.
type Snapshot struct {
	TreeID string
	People []entities.Person
	Links  []entities.ParentChildLink
	Unions []entities.Union

	peopleByID        map[string]int
	linksByParent     map[string][]int
	linksByChild      map[string][]int
	bioParentsByChild map[string]int
}

// LoadSnapshot reads the current relationship graph of a tree from the
// store. It has no side effects.
func LoadSnapshot(ctx context.Context, store ports.FamilyStore, treeID string) (*Snapshot, error) {
	people, err := store.ListPeople(ctx, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading people: %w", err)
	}

	links, err := store.ListParentLinks(ctx, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading parent-child links: %w", err)
	}

	unions, err := store.ListUnions(ctx, treeID)
	if err != nil {
		return nil, fmt.Errorf("loading unions: %w", err)
	}

	return newSnapshot(treeID, people, links, unions), nil
}

// newSnapshot builds the per-person lookup structures.
func newSnapshot(treeID string, people []entities.Person, links []entities.ParentChildLink, unions []entities.Union) *Snapshot {
	s := &Snapshot{
		TreeID:            treeID,
		People:            people,
		Links:             links,
		Unions:            unions,
		peopleByID:        make(map[string]int, len(people)),
		linksByParent:     make(map[string][]int),
		linksByChild:      make(map[string][]int),
		bioParentsByChild: make(map[string]int),
	}

	for i := range people {
		s.peopleByID[people[i].ID] = i
	}
	for i := range links {
		s.linksByParent[links[i].ParentID] = append(s.linksByParent[links[i].ParentID], i)
		s.linksByChild[links[i].ChildID] = append(s.linksByChild[links[i].ChildID], i)
		if links[i].Type == entities.LinkBiological {
			s.bioParentsByChild[links[i].ChildID]++
		}
	}

	return s
}

// Person returns the person with the given ID, or nil if not present.
func (s *Snapshot) Person(id string) *entities.Person {
	i, ok := s.peopleByID[id]
	if !ok {
		return nil
	}
	return &s.People[i]
}

// ChildrenOf returns the links where the given person is the parent.
func (s *Snapshot) ChildrenOf(parentID string) []entities.ParentChildLink {
	indexes := s.linksByParent[parentID]
	result := make([]entities.ParentChildLink, 0, len(indexes))
	for _, i := range indexes {
		result = append(result, s.Links[i])
	}
	return result
}

// ParentsOf returns the links where the given person is the child.
func (s *Snapshot) ParentsOf(childID string) []entities.ParentChildLink {
	indexes := s.linksByChild[childID]
	result := make([]entities.ParentChildLink, 0, len(indexes))
	for _, i := range indexes {
		result = append(result, s.Links[i])
	}
	return result
}

// HasLink reports whether a parent-to-child link is recorded.
func (s *Snapshot) HasLink(parentID, childID string) bool {
	for _, i := range s.linksByParent[parentID] {
		if s.Links[i].ChildID == childID {
			return true
		}
	}
	return false
}

// BiologicalParentCount returns how many biological parent links the
// child currently has.
func (s *Snapshot) BiologicalParentCount(childID string) int {
	return s.bioParentsByChild[childID]
}

// SharedChildCount returns how many children have both a and b recorded
// as parents.
func (s *Snapshot) SharedChildCount(a, b string) int {
	count := 0
	for _, i := range s.linksByParent[a] {
		if s.HasLink(b, s.Links[i].ChildID) {
			count++
		}
	}
	return count
}
