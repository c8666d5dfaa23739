package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/config"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/familystore/sqlite"
)

var testRepo *sqlite.Repository

func TestMain(m *testing.M) {
	// Skip if INTEGRATION_TEST is not set
	if os.Getenv("INTEGRATION_TEST") != "1" {
		os.Exit(0)
	}

	dir, err := os.MkdirTemp("", "familytree-integration-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}

	cfg := config.SQLiteConfig{
		Path: filepath.Join(dir, "familytree.db"),
	}
	testRepo, err = sqlite.NewRepository(cfg)
	if err != nil {
		panic("failed to create repository: " + err.Error())
	}
	if err := testRepo.EnsureSchema(context.Background()); err != nil {
		panic("failed to ensure schema: " + err.Error())
	}

	code := m.Run()

	testRepo.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

// createTestTree creates a uniquely named tree so tests stay isolated
// within the shared database file.
func createTestTree(t *testing.T) *entities.Tree {
	t.Helper()
	tree, err := services.NewTreeService(testRepo).Create(
		t.Context(), "it-"+uuid.NewString(), "integration test tree")
	require.NoError(t, err)
	return tree
}

func addTestPerson(t *testing.T, treeID, name string, sex entities.Sex, birth time.Time) *entities.Person {
	t.Helper()
	person, err := services.NewPersonService(testRepo).Add(t.Context(), treeID, services.PersonInput{
		Name:      name,
		Sex:       sex,
		BirthDate: &birth,
	})
	require.NoError(t, err)
	return person
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
