package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Virtualupon/FamilyTree-sub012/internal/application/handlers"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/config"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/familystore/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config            *config.Config
	Logger            *slog.Logger
	TreeService       *services.TreeService
	PersonHandler     *handlers.PersonHandler
	RelationHandler   *handlers.RelationHandler
	PredictHandler    *handlers.PredictHandler
	SuggestionHandler *handlers.SuggestionHandler
	ImportHandler     *handlers.ImportHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLogger := cfg.Logging.SetupLogger()
	defer func() { _ = closeLogger() }()

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	linkService := services.NewLinkService(store)
	unionService := services.NewUnionService(store)
	suggestionService := services.NewSuggestionService(store, store)

	deps := &Deps{
		Config:            cfg,
		Logger:            logger,
		TreeService:       services.NewTreeService(store),
		PersonHandler:     handlers.NewPersonHandler(services.NewPersonService(store)),
		RelationHandler:   handlers.NewRelationHandler(linkService, unionService),
		PredictHandler:    handlers.NewPredictHandler(store, suggestionService, logger),
		SuggestionHandler: handlers.NewSuggestionHandler(suggestionService),
		ImportHandler:     handlers.NewImportHandler(services.NewImportService(store)),
	}

	return fn(deps)
}

// resolveTree looks up the tree named by the --tree flag, trying the
// name first and then the raw ID.
func resolveTree(ctx context.Context, d *Deps) (*entities.Tree, error) {
	if globalTree == "" {
		return nil, errors.New("tree is required (use --tree flag)")
	}

	tree, err := d.TreeService.FindByName(ctx, globalTree)
	if err != nil {
		return nil, fmt.Errorf("finding tree: %w", err)
	}
	if tree != nil {
		return tree, nil
	}

	trees, err := d.TreeService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing trees: %w", err)
	}
	for i := range trees {
		if trees[i].ID == globalTree {
			return &trees[i], nil
		}
	}

	return nil, fmt.Errorf("tree not found: %s", globalTree)
}
