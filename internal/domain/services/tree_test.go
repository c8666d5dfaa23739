package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
)

func TestTreeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a tree", func(t *testing.T) {
		store := mocks.NewFamilyStore()
		service := NewTreeService(store)

		tree, err := service.Create(ctx, "Smith Family", "descendants of John Smith")
		require.NoError(t, err)
		assert.NotEmpty(t, tree.ID)
		assert.Equal(t, "Smith Family", tree.Name)
		assert.Len(t, store.Trees, 1)
	})

	t.Run("trims and requires a name", func(t *testing.T) {
		store := mocks.NewFamilyStore()
		service := NewTreeService(store)

		_, err := service.Create(ctx, "   ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("rejects duplicate names case-insensitively", func(t *testing.T) {
		store := mocks.NewFamilyStore()
		service := NewTreeService(store)

		_, err := service.Create(ctx, "Smith Family", "")
		require.NoError(t, err)

		_, err = service.Create(ctx, "smith family", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestTreeService_FindByName(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewFamilyStore()
	service := NewTreeService(store)

	created, err := service.Create(ctx, "Smith Family", "")
	require.NoError(t, err)

	found, err := service.FindByName(ctx, "SMITH FAMILY")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := service.FindByName(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
