package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTreesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "Manage family trees",
	}

	cmd.AddCommand(
		newTreesCreateCmd(),
		newTreesListCmd(),
	)

	return cmd
}

func newTreesCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new family tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreesCreate(cmd, args[0], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Tree description")

	return cmd
}

func runTreesCreate(cmd *cobra.Command, name, description string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := d.TreeService.Create(ctx, name, description)
		if err != nil {
			return fmt.Errorf("creating tree: %w", err)
		}

		fmt.Printf("Created tree: %s (%s)\n", tree.Name, tree.ID)
		return nil
	})
}

func newTreesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all family trees",
		RunE:  runTreesList,
	}
}

func runTreesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		trees, err := d.TreeService.List(ctx)
		if err != nil {
			return fmt.Errorf("listing trees: %w", err)
		}

		if len(trees) == 0 {
			fmt.Println("No trees found. Create one with 'familytree trees create <name>'.")
			return nil
		}

		for _, tree := range trees {
			fmt.Printf("%s  %s", tree.ID, tree.Name)
			if tree.Description != "" {
				fmt.Printf("  - %s", tree.Description)
			}
			fmt.Println()
		}
		return nil
	})
}
