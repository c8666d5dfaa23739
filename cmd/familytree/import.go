package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/application/handlers"
)

func newImportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import people and relations from JSON or CSV",
		Long: `Imports people, parent-child links, and unions from a structured
file into the tree selected with --tree. Records reference each other
by file-local refs; invalid records are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportFile(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "File format (json, csv, auto)")

	return cmd
}

func runImportFile(cmd *cobra.Command, filePath, format string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		fmt.Printf("Importing %s into %s...\n", filePath, tree.Name)

		result, err := d.ImportHandler.Handle(ctx, tree.ID, filePath, handlers.ImportOptions{Format: format})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		fmt.Println()
		fmt.Printf("Imported: %d people, %d links, %d unions", result.People, result.Links, result.Unions)
		if len(result.Errors) > 0 {
			fmt.Printf(", %d errors", len(result.Errors))
		}
		fmt.Println()

		return nil
	})
}
