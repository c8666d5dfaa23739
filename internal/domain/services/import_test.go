package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/parsers"
)

func newImportTestStore() *mocks.FamilyStore {
	store := mocks.NewFamilyStore()
	store.Trees["t1"] = &entities.Tree{ID: "t1", Name: "test"}
	return store
}

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("imports people, links, and unions", func(t *testing.T) {
		store := newImportTestStore()
		service := NewImportService(store)

		doc := &parsers.Document{
			People: []parsers.RawPerson{
				{Ref: "p1", Name: "Adam", Sex: "male", BirthDate: "1950-03-14", LineNum: 1},
				{Ref: "p2", Name: "Beth", Sex: "female", LineNum: 2},
				{Ref: "p3", Name: "Carl", LineNum: 3},
			},
			Links: []parsers.RawLink{
				{ParentRef: "p1", ChildRef: "p3", Type: "biological", LineNum: 4},
				{ParentRef: "p2", ChildRef: "p3", LineNum: 5},
			},
			Unions: []parsers.RawUnion{
				{MemberRefs: []string{"p1", "p2"}, StartDate: "1975-01-01", LineNum: 6},
			},
		}

		result, err := service.Import(ctx, "t1", doc)
		require.NoError(t, err)
		assert.Equal(t, 3, result.People)
		assert.Equal(t, 2, result.Links)
		assert.Equal(t, 1, result.Unions)
		assert.Empty(t, result.Errors)

		people, err := store.ListPeople(ctx, "t1")
		require.NoError(t, err)
		require.Len(t, people, 3)

		// An empty link type defaults to biological.
		links, err := store.ListParentLinks(ctx, "t1")
		require.NoError(t, err)
		for _, link := range links {
			assert.Equal(t, entities.LinkBiological, link.Type)
		}
	})

	t.Run("collects errors and keeps importing", func(t *testing.T) {
		store := newImportTestStore()
		service := NewImportService(store)

		doc := &parsers.Document{
			People: []parsers.RawPerson{
				{Ref: "p1", Name: "Adam", LineNum: 1},
				{Ref: "p2", Name: "", LineNum: 2},
				{Ref: "p1", Name: "Imposter", LineNum: 3},
				{Ref: "p4", Name: "Dina", BirthDate: "14-03-1950", LineNum: 4},
			},
			Links: []parsers.RawLink{
				{ParentRef: "p1", ChildRef: "p9", LineNum: 5},
				{ParentRef: "p1", ChildRef: "p1", Type: "weird", LineNum: 6},
			},
		}

		result, err := service.Import(ctx, "t1", doc)
		require.NoError(t, err)
		assert.Equal(t, 1, result.People)
		assert.Equal(t, 0, result.Links)
		require.Len(t, result.Errors, 5)

		// Errors carry line numbers for reporting.
		assert.Equal(t, 2, result.Errors[0].Line)
		assert.Contains(t, result.Errors[0].Message, "missing name")
		assert.Contains(t, result.Errors[1].Message, "duplicate ref")
		assert.Contains(t, result.Errors[2].Message, "invalid birth date")
		assert.Contains(t, result.Errors[3].Message, "unknown ref")
	})

	t.Run("enforces the biological parent cap", func(t *testing.T) {
		store := newImportTestStore()
		service := NewImportService(store)

		doc := &parsers.Document{
			People: []parsers.RawPerson{
				{Ref: "p1", Name: "Adam", LineNum: 1},
				{Ref: "p2", Name: "Beth", LineNum: 2},
				{Ref: "p3", Name: "Carl", LineNum: 3},
				{Ref: "c", Name: "Child", LineNum: 4},
			},
			Links: []parsers.RawLink{
				{ParentRef: "p1", ChildRef: "c", LineNum: 5},
				{ParentRef: "p2", ChildRef: "c", LineNum: 6},
				{ParentRef: "p3", ChildRef: "c", LineNum: 7},
			},
		}

		result, err := service.Import(ctx, "t1", doc)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Links)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 7, result.Errors[0].Line)
		assert.Contains(t, result.Errors[0].Message, "biological parents")
	})

	t.Run("requires an existing tree", func(t *testing.T) {
		store := newImportTestStore()
		service := NewImportService(store)

		_, err := service.Import(ctx, "missing", &parsers.Document{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tree not found")
	})

	t.Run("union needs two resolvable members", func(t *testing.T) {
		store := newImportTestStore()
		service := NewImportService(store)

		doc := &parsers.Document{
			People: []parsers.RawPerson{{Ref: "p1", Name: "Adam", LineNum: 1}},
			Unions: []parsers.RawUnion{
				{MemberRefs: []string{"p1"}, LineNum: 2},
				{MemberRefs: []string{"p1", "p9"}, LineNum: 3},
			},
		}

		result, err := service.Import(ctx, "t1", doc)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Unions)
		require.Len(t, result.Errors, 2)
		assert.Contains(t, result.Errors[0].Message, "at least 2 members")
		assert.Contains(t, result.Errors[1].Message, "unknown ref")
	})
}
