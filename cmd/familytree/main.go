// Package main provides the entry point for the familytree CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0-dev"
	globalTree string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "familytree",
		Short:   "A genealogy store with rule-based relationship prediction",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalTree, "tree", "t", "", "Tree to operate on (name or ID)")

	rootCmd.AddCommand(
		newInitCmd(),
		newTreesCmd(),
		newPeopleCmd(),
		newLinkCmd(),
		newUnionsCmd(),
		newImportCmd(),
		newPredictCmd(),
		newSuggestionsCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
