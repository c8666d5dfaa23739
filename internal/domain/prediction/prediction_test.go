package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
)

const testTreeID = "tree-1"

// newTestStore creates a mock store with one tree.
func newTestStore(t *testing.T) *mocks.FamilyStore {
	t.Helper()
	store := mocks.NewFamilyStore()
	store.Trees[testTreeID] = &entities.Tree{ID: testTreeID, Name: "test"}
	return store
}

func addPerson(store *mocks.FamilyStore, id, name string, sex entities.Sex, birthYear int) *entities.Person {
	person := &entities.Person{
		ID:     id,
		TreeID: testTreeID,
		Name:   name,
		Sex:    sex,
	}
	if birthYear > 0 {
		birth := time.Date(birthYear, 6, 1, 0, 0, 0, 0, time.UTC)
		person.BirthDate = &birth
	}
	store.People[id] = person
	return person
}

func addLink(store *mocks.FamilyStore, id, parentID, childID string, linkType entities.LinkType) {
	store.Links[id] = &entities.ParentChildLink{
		ID:       id,
		ParentID: parentID,
		ChildID:  childID,
		Type:     linkType,
	}
}

func addUnion(store *mocks.FamilyStore, id string, start, end *time.Time, memberIDs ...string) {
	union := &entities.Union{ID: id, TreeID: testTreeID, StartDate: start, EndDate: end}
	for _, personID := range memberIDs {
		union.Members = append(union.Members, entities.UnionMember{
			ID:       id + ":" + personID,
			UnionID:  id,
			PersonID: personID,
		})
	}
	store.Unions[id] = union
}

func datePtr(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

// detect runs a rule and fails the test on error.
func detect(t *testing.T, rule Rule, store *mocks.FamilyStore) []entities.PredictionCandidate {
	t.Helper()
	candidates, err := rule.Detect(context.Background(), store, testTreeID)
	require.NoError(t, err)
	return candidates
}
