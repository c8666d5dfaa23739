package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
)

func newUnionTestStore() *mocks.FamilyStore {
	store := mocks.NewFamilyStore()
	store.Trees["t1"] = &entities.Tree{ID: "t1", Name: "test"}
	store.People["a"] = &entities.Person{ID: "a", TreeID: "t1", Name: "Adam"}
	store.People["b"] = &entities.Person{ID: "b", TreeID: "t1", Name: "Beth"}
	store.People["c"] = &entities.Person{ID: "c", TreeID: "t1", Name: "Cora"}
	return store
}

func TestUnionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a union with members", func(t *testing.T) {
		store := newUnionTestStore()
		service := NewUnionService(store)

		union, err := service.Create(ctx, "t1", []string{"a", "b"}, nil, nil)
		require.NoError(t, err)
		require.NotNil(t, union)
		assert.Len(t, union.Members, 2)
	})

	t.Run("requires at least two members", func(t *testing.T) {
		store := newUnionTestStore()
		service := NewUnionService(store)

		_, err := service.Create(ctx, "t1", []string{"a"}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 members")
	})

	t.Run("rejects duplicate members", func(t *testing.T) {
		store := newUnionTestStore()
		service := NewUnionService(store)

		_, err := service.Create(ctx, "t1", []string{"a", "a"}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate union member")
	})

	t.Run("rejects unknown members", func(t *testing.T) {
		store := newUnionTestStore()
		service := NewUnionService(store)

		_, err := service.Create(ctx, "t1", []string{"a", "missing"}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "member not found")
	})

	t.Run("rejects members from another tree", func(t *testing.T) {
		store := newUnionTestStore()
		store.People["x"] = &entities.Person{ID: "x", TreeID: "t2", Name: "Xen"}
		service := NewUnionService(store)

		_, err := service.Create(ctx, "t1", []string{"a", "x"}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different tree")
	})

	t.Run("rejects a second union between the same pair", func(t *testing.T) {
		store := newUnionTestStore()
		service := NewUnionService(store)

		_, err := service.Create(ctx, "t1", []string{"a", "b"}, nil, nil)
		require.NoError(t, err)

		_, err = service.Create(ctx, "t1", []string{"a", "b"}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestUnionService_AddMember(t *testing.T) {
	ctx := context.Background()
	store := newUnionTestStore()
	service := NewUnionService(store)

	union, err := service.Create(ctx, "t1", []string{"a", "b"}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, service.AddMember(ctx, union.ID, "c"))

	err = service.AddMember(ctx, union.ID, "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already a member")

	err = service.AddMember(ctx, "missing", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "union not found")
}

func TestUnionService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newUnionTestStore()
	service := NewUnionService(store)

	union, err := service.Create(ctx, "t1", []string{"a", "b"}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, union.ID))

	unions, err := service.List(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, unions)
}
