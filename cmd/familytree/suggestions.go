package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

func newSuggestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Review queued relationship suggestions",
	}

	cmd.AddCommand(
		newSuggestionsListCmd(),
		newSuggestionsAcceptCmd(),
		newSuggestionsRejectCmd(),
	)

	return cmd
}

func newSuggestionsListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions for a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggestionsList(cmd, status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "pending", "Filter by status (pending, accepted, rejected, all)")

	return cmd
}

func runSuggestionsList(cmd *cobra.Command, status string) error {
	ctx := cmd.Context()

	var filter entities.SuggestionStatus
	switch status {
	case "all":
		filter = ""
	case string(entities.SuggestionPending), string(entities.SuggestionAccepted), string(entities.SuggestionRejected):
		filter = entities.SuggestionStatus(status)
	default:
		return fmt.Errorf("invalid status %q (valid: pending, accepted, rejected, all)", status)
	}

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		suggestions, err := d.SuggestionHandler.HandleList(ctx, tree.ID, filter)
		if err != nil {
			return fmt.Errorf("listing suggestions: %w", err)
		}

		if len(suggestions) == 0 {
			fmt.Printf("No %s suggestions in tree: %s\n", status, tree.Name)
			return nil
		}

		for _, s := range suggestions {
			fmt.Printf("%s  [%3d] %s  %s -> %s  (%s)\n", s.ID, s.Confidence, s.Kind, s.SourceID, s.TargetID, s.Status)
			fmt.Printf("      %s\n", s.Explanation)
		}
		return nil
	})
}

func newSuggestionsAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <suggestion-id>",
		Short: "Accept a suggestion and apply it to the tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggestionsAccept,
	}
}

func runSuggestionsAccept(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.SuggestionHandler.HandleAccept(ctx, id); err != nil {
			return fmt.Errorf("accepting suggestion: %w", err)
		}

		fmt.Printf("Accepted suggestion: %s\n", id)
		return nil
	})
}

func newSuggestionsRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <suggestion-id>",
		Short: "Reject a suggestion",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggestionsReject,
	}
}

func runSuggestionsReject(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.SuggestionHandler.HandleReject(ctx, id); err != nil {
			return fmt.Errorf("rejecting suggestion: %w", err)
		}

		fmt.Printf("Rejected suggestion: %s\n", id)
		return nil
	})
}
