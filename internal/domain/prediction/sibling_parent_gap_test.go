package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

func TestSiblingParentGapRule(t *testing.T) {
	rule := NewSiblingParentGapRule()

	t.Run("completes partially linked sibling group", func(t *testing.T) {
		store := newTestStore(t)
		addPerson(store, "a", "Adam", entities.SexMale, 1950)
		addPerson(store, "b", "Beth", entities.SexFemale, 1952)
		addPerson(store, "c1", "Carl", entities.SexMale, 1978)
		addPerson(store, "c2", "Cora", entities.SexFemale, 1981)
		addUnion(store, "u1", nil, nil, "a", "b")
		// c1 is linked to both parents, c2 only to a.
		addLink(store, "l1", "a", "c1", entities.LinkBiological)
		addLink(store, "l2", "b", "c1", entities.LinkBiological)
		addLink(store, "l3", "a", "c2", entities.LinkBiological)

		candidates := detect(t, rule, store)
		require.Len(t, candidates, 1)

		c := candidates[0]
		assert.Equal(t, "sibling_parent_gap", c.RuleID)
		assert.Equal(t, entities.PredictParentChild, c.Kind)
		assert.Equal(t, "b", c.SourceID)
		assert.Equal(t, "c2", c.TargetID)
		// One sibling linked to both parents.
		assert.Equal(t, 80, c.Confidence)
		assert.Contains(t, c.Explanation, "Cora")
	})

	t.Run("higher confidence with three corroborating siblings", func(t *testing.T) {
		store := newTestStore(t)
		addPerson(store, "a", "Adam", entities.SexMale, 1950)
		addPerson(store, "b", "Beth", entities.SexFemale, 1952)
		addUnion(store, "u1", nil, nil, "a", "b")
		for i, childID := range []string{"c1", "c2", "c3"} {
			addPerson(store, childID, "Child", entities.SexUnknown, 1978+i)
			addLink(store, "la"+childID, "a", childID, entities.LinkBiological)
			addLink(store, "lb"+childID, "b", childID, entities.LinkBiological)
		}
		addPerson(store, "c4", "Cora", entities.SexFemale, 1985)
		addLink(store, "l7", "a", "c4", entities.LinkBiological)

		candidates := detect(t, rule, store)
		require.Len(t, candidates, 1)
		assert.Equal(t, 90, candidates[0].Confidence)
		assert.Equal(t, "c4", candidates[0].TargetID)
	})

	t.Run("requires a shared union", func(t *testing.T) {
		store := newTestStore(t)
		addPerson(store, "a", "Adam", entities.SexMale, 1950)
		addPerson(store, "b", "Beth", entities.SexFemale, 1952)
		addPerson(store, "c1", "Carl", entities.SexMale, 1978)
		addPerson(store, "c2", "Cora", entities.SexFemale, 1981)
		addLink(store, "l1", "a", "c1", entities.LinkBiological)
		addLink(store, "l2", "b", "c1", entities.LinkBiological)
		addLink(store, "l3", "a", "c2", entities.LinkBiological)

		assert.Empty(t, detect(t, rule, store))
	})

	t.Run("respects the biological parent cap", func(t *testing.T) {
		store := newTestStore(t)
		addPerson(store, "a", "Adam", entities.SexMale, 1950)
		addPerson(store, "b", "Beth", entities.SexFemale, 1952)
		addPerson(store, "x", "Xavier", entities.SexMale, 1949)
		addPerson(store, "c1", "Carl", entities.SexMale, 1978)
		addPerson(store, "c2", "Cora", entities.SexFemale, 1981)
		addUnion(store, "u1", nil, nil, "a", "b")
		addLink(store, "l1", "a", "c1", entities.LinkBiological)
		addLink(store, "l2", "b", "c1", entities.LinkBiological)
		// c2 already has two biological parents, neither of them b.
		addLink(store, "l3", "a", "c2", entities.LinkBiological)
		addLink(store, "l4", "x", "c2", entities.LinkBiological)

		assert.Empty(t, detect(t, rule, store))
	})

	t.Run("symmetric pass covers both parents", func(t *testing.T) {
		store := newTestStore(t)
		addPerson(store, "a", "Adam", entities.SexMale, 1950)
		addPerson(store, "b", "Beth", entities.SexFemale, 1952)
		addPerson(store, "c1", "Carl", entities.SexMale, 1978)
		addPerson(store, "c2", "Cora", entities.SexFemale, 1981)
		addPerson(store, "c3", "Cody", entities.SexMale, 1983)
		addUnion(store, "u1", nil, nil, "a", "b")
		addLink(store, "l1", "a", "c1", entities.LinkBiological)
		addLink(store, "l2", "b", "c1", entities.LinkBiological)
		// c2 linked only to a, c3 linked only to b.
		addLink(store, "l3", "a", "c2", entities.LinkBiological)
		addLink(store, "l4", "b", "c3", entities.LinkBiological)

		candidates := detect(t, rule, store)
		require.Len(t, candidates, 2)

		byTarget := map[string]string{}
		for _, c := range candidates {
			byTarget[c.TargetID] = c.SourceID
		}
		assert.Equal(t, "b", byTarget["c2"])
		assert.Equal(t, "a", byTarget["c3"])
	})
}
