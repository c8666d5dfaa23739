package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/mocks"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
)

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportHandler_Handle_JSON(t *testing.T) {
	store := mocks.NewFamilyStore()
	store.Trees["t1"] = &entities.Tree{ID: "t1", Name: "test"}
	handler := NewImportHandler(services.NewImportService(store))

	path := writeImportFile(t, "family.json", `{
		"people": [
			{"ref": "p1", "name": "Adam", "sex": "male"},
			{"ref": "p2", "name": "Carl", "sex": "male"}
		],
		"links": [
			{"parent_ref": "p1", "child_ref": "p2"}
		]
	}`)

	result, err := handler.Handle(t.Context(), "t1", path, ImportOptions{Format: "auto"})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.People)
	assert.Equal(t, 1, result.Links)
	assert.Len(t, store.People, 2)
	assert.Len(t, store.Links, 1)
}

func TestImportHandler_Handle_CSV(t *testing.T) {
	store := mocks.NewFamilyStore()
	store.Trees["t1"] = &entities.Tree{ID: "t1", Name: "test"}
	handler := NewImportHandler(services.NewImportService(store))

	path := writeImportFile(t, "family.csv",
		"ref,name,sex,father_ref\np1,Adam,male,\np2,Carl,male,p1\n")

	result, err := handler.Handle(t.Context(), "t1", path, ImportOptions{Format: "csv"})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.People)
	assert.Equal(t, 1, result.Links)
}

func TestImportHandler_Handle_UnsupportedFormat(t *testing.T) {
	store := mocks.NewFamilyStore()
	handler := NewImportHandler(services.NewImportService(store))

	path := writeImportFile(t, "family.txt", "whatever")

	_, err := handler.Handle(t.Context(), "t1", path, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestImportHandler_Handle_MissingFile(t *testing.T) {
	store := mocks.NewFamilyStore()
	handler := NewImportHandler(services.NewImportService(store))

	_, err := handler.Handle(t.Context(), "t1", "/nonexistent/family.json", ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")
}
