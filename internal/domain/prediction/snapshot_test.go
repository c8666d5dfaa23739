package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

func TestLoadSnapshot(t *testing.T) {
	store := newTestStore(t)
	addPerson(store, "p1", "Alice", entities.SexFemale, 1950)
	addPerson(store, "p2", "Bob", entities.SexMale, 1948)
	addPerson(store, "p3", "Carol", entities.SexFemale, 1975)
	addLink(store, "l1", "p1", "p3", entities.LinkBiological)
	addLink(store, "l2", "p2", "p3", entities.LinkBiological)
	addUnion(store, "u1", nil, nil, "p1", "p2")

	snap, err := LoadSnapshot(context.Background(), store, testTreeID)
	require.NoError(t, err)

	assert.Equal(t, testTreeID, snap.TreeID)
	assert.Len(t, snap.People, 3)
	assert.Len(t, snap.Links, 2)
	assert.Len(t, snap.Unions, 1)

	t.Run("person lookup", func(t *testing.T) {
		require.NotNil(t, snap.Person("p1"))
		assert.Equal(t, "Alice", snap.Person("p1").Name)
		assert.Nil(t, snap.Person("missing"))
	})

	t.Run("children and parents", func(t *testing.T) {
		assert.Len(t, snap.ChildrenOf("p1"), 1)
		assert.Len(t, snap.ParentsOf("p3"), 2)
		assert.Empty(t, snap.ChildrenOf("p3"))
	})

	t.Run("has link is directed", func(t *testing.T) {
		assert.True(t, snap.HasLink("p1", "p3"))
		assert.False(t, snap.HasLink("p3", "p1"))
	})

	t.Run("biological parent count", func(t *testing.T) {
		assert.Equal(t, 2, snap.BiologicalParentCount("p3"))
		assert.Equal(t, 0, snap.BiologicalParentCount("p1"))
	})

	t.Run("shared child count", func(t *testing.T) {
		assert.Equal(t, 1, snap.SharedChildCount("p1", "p2"))
		assert.Equal(t, 0, snap.SharedChildCount("p1", "p3"))
	})
}

func TestLoadSnapshot_ExcludesDeleted(t *testing.T) {
	store := newTestStore(t)
	addPerson(store, "p1", "Alice", entities.SexFemale, 1950)
	deleted := addPerson(store, "p2", "Bob", entities.SexMale, 1948)
	deleted.Deleted = true
	addLink(store, "l1", "p2", "p1", entities.LinkBiological)

	snap, err := LoadSnapshot(context.Background(), store, testTreeID)
	require.NoError(t, err)

	assert.Len(t, snap.People, 1)
	// Links touching a deleted person are filtered by the store.
	assert.Empty(t, snap.Links)
}

func TestYearsBetween(t *testing.T) {
	older := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	younger := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

	gap := yearsBetween(older, younger)
	assert.InDelta(t, 30.0, gap, 0.1)

	// Reversed arguments give a negative gap.
	assert.InDelta(t, -30.0, yearsBetween(younger, older), 0.1)
}
