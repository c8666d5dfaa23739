package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
)

func newPersonTestStore() *mocks.FamilyStore {
	store := mocks.NewFamilyStore()
	store.Trees["t1"] = &entities.Tree{ID: "t1", Name: "test"}
	return store
}

func TestPersonService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a person with defaults", func(t *testing.T) {
		store := newPersonTestStore()
		service := NewPersonService(store)

		person, err := service.Add(ctx, "t1", PersonInput{Name: "  John Smith  "})
		require.NoError(t, err)
		assert.NotEmpty(t, person.ID)
		assert.Equal(t, "John Smith", person.Name)
		assert.Equal(t, entities.SexUnknown, person.Sex)
		assert.Equal(t, "t1", person.TreeID)
	})

	t.Run("requires a name", func(t *testing.T) {
		store := newPersonTestStore()
		service := NewPersonService(store)

		_, err := service.Add(ctx, "t1", PersonInput{Name: " "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("requires an existing tree", func(t *testing.T) {
		store := newPersonTestStore()
		service := NewPersonService(store)

		_, err := service.Add(ctx, "missing", PersonInput{Name: "John"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tree not found")
	})
}

func TestPersonService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newPersonTestStore()
	service := NewPersonService(store)

	person, err := service.Add(ctx, "t1", PersonInput{Name: "John"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, person.ID))

	// Soft delete: the row stays, reads filter it.
	assert.True(t, store.People[person.ID].Deleted)

	found, err := service.FindByID(ctx, person.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	count, err := service.Count(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = service.Delete(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPersonService_Search(t *testing.T) {
	ctx := context.Background()
	store := newPersonTestStore()
	service := NewPersonService(store)

	for _, name := range []string{"John Smith", "Jane Smith", "Omar Khalil"} {
		_, err := service.Add(ctx, "t1", PersonInput{Name: name})
		require.NoError(t, err)
	}

	found, err := service.Search(ctx, "t1", "smith", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = service.Search(ctx, "t1", "smith", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
