package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
)

func newLinkTestStore() *mocks.FamilyStore {
	store := mocks.NewFamilyStore()
	store.Trees["t1"] = &entities.Tree{ID: "t1", Name: "test"}
	store.People["p1"] = &entities.Person{ID: "p1", TreeID: "t1", Name: "Parent"}
	store.People["c1"] = &entities.Person{ID: "c1", TreeID: "t1", Name: "Child"}
	return store
}

func TestLinkService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a biological link", func(t *testing.T) {
		store := newLinkTestStore()
		service := NewLinkService(store)

		link, err := service.Create(ctx, "p1", "c1", entities.LinkBiological)
		require.NoError(t, err)
		assert.NotEmpty(t, link.ID)
		assert.Equal(t, "p1", link.ParentID)
		assert.Equal(t, "c1", link.ChildID)
		assert.Equal(t, entities.LinkBiological, link.Type)
		assert.Len(t, store.Links, 1)
	})

	t.Run("rejects self-parenting", func(t *testing.T) {
		store := newLinkTestStore()
		service := NewLinkService(store)

		_, err := service.Create(ctx, "p1", "p1", entities.LinkBiological)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own parent")
	})

	t.Run("rejects unknown people", func(t *testing.T) {
		store := newLinkTestStore()
		service := NewLinkService(store)

		_, err := service.Create(ctx, "missing", "c1", entities.LinkBiological)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parent not found")

		_, err = service.Create(ctx, "p1", "missing", entities.LinkBiological)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "child not found")
	})

	t.Run("rejects cross-tree links", func(t *testing.T) {
		store := newLinkTestStore()
		store.People["other"] = &entities.Person{ID: "other", TreeID: "t2", Name: "Other"}
		service := NewLinkService(store)

		_, err := service.Create(ctx, "p1", "other", entities.LinkBiological)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different trees")
	})

	t.Run("rejects duplicate links", func(t *testing.T) {
		store := newLinkTestStore()
		service := NewLinkService(store)

		_, err := service.Create(ctx, "p1", "c1", entities.LinkBiological)
		require.NoError(t, err)

		_, err = service.Create(ctx, "p1", "c1", entities.LinkBiological)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("enforces the biological parent cap", func(t *testing.T) {
		store := newLinkTestStore()
		store.People["p2"] = &entities.Person{ID: "p2", TreeID: "t1", Name: "Parent Two"}
		store.People["p3"] = &entities.Person{ID: "p3", TreeID: "t1", Name: "Parent Three"}
		service := NewLinkService(store)

		_, err := service.Create(ctx, "p1", "c1", entities.LinkBiological)
		require.NoError(t, err)
		_, err = service.Create(ctx, "p2", "c1", entities.LinkBiological)
		require.NoError(t, err)

		_, err = service.Create(ctx, "p3", "c1", entities.LinkBiological)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "biological parents")
	})

	t.Run("the cap does not apply to non-biological links", func(t *testing.T) {
		store := newLinkTestStore()
		store.People["p2"] = &entities.Person{ID: "p2", TreeID: "t1", Name: "Parent Two"}
		store.People["p3"] = &entities.Person{ID: "p3", TreeID: "t1", Name: "Parent Three"}
		service := NewLinkService(store)

		_, err := service.Create(ctx, "p1", "c1", entities.LinkBiological)
		require.NoError(t, err)
		_, err = service.Create(ctx, "p2", "c1", entities.LinkBiological)
		require.NoError(t, err)

		_, err = service.Create(ctx, "p3", "c1", entities.LinkStep)
		require.NoError(t, err)
	})
}

func TestLinkService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newLinkTestStore()
	service := NewLinkService(store)

	link, err := service.Create(ctx, "p1", "c1", entities.LinkBiological)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, link.ID))

	links, err := service.List(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, links)
}
