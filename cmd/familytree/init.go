package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/config"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/familystore/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new familytree database",
		Long:  "Creates a .familytree directory with default configuration and sets up the SQLite database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("familytree already initialized in %s", cwd)
	}

	cfg := config.Default(cwd)
	if err := cfg.Save(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	fmt.Printf("Created database: %s\n", cfg.SQLite.Path)
	fmt.Println("Familytree initialized successfully!")

	return nil
}
