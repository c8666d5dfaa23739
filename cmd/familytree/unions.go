package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

func newUnionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unions",
		Short: "Manage unions (marriages and partnerships)",
	}

	cmd.AddCommand(
		newUnionsCreateCmd(),
		newUnionsListCmd(),
		newUnionsAddMemberCmd(),
		newUnionsDissolveCmd(),
	)

	return cmd
}

type unionsCreateFlags struct {
	start string
	end   string
}

func newUnionsCreateCmd() *cobra.Command {
	var flags unionsCreateFlags

	cmd := &cobra.Command{
		Use:   "create <person-id> <person-id> [person-id...]",
		Short: "Create a union between two or more people",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnionsCreate(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.start, "start", "", "Union start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "Union end date (YYYY-MM-DD)")

	return cmd
}

func runUnionsCreate(cmd *cobra.Command, memberIDs []string, flags unionsCreateFlags) error {
	ctx := cmd.Context()

	start, err := parseDateFlag(flags.start, "start")
	if err != nil {
		return err
	}
	end, err := parseDateFlag(flags.end, "end")
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		union, err := d.RelationHandler.HandleUnion(ctx, tree.ID, memberIDs, start, end)
		if err != nil {
			return fmt.Errorf("creating union: %w", err)
		}

		fmt.Printf("Created union: %s (%d members)\n", union.ID, len(union.Members))
		return nil
	})
}

func newUnionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List unions in a tree",
		RunE:  runUnionsList,
	}
}

func runUnionsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		unions, err := d.RelationHandler.HandleListUnions(ctx, tree.ID)
		if err != nil {
			return fmt.Errorf("listing unions: %w", err)
		}

		if len(unions) == 0 {
			fmt.Printf("No unions in tree: %s\n", tree.Name)
			return nil
		}

		for _, union := range unions {
			printUnion(union)
		}
		return nil
	})
}

func printUnion(union entities.Union) {
	fmt.Printf("%s", union.ID)
	if union.StartDate != nil {
		fmt.Printf("  %s", union.StartDate.Format(dateLayout))
	}
	if union.EndDate != nil {
		fmt.Printf(" - %s", union.EndDate.Format(dateLayout))
	}
	fmt.Println()
	for _, member := range union.ActiveMembers() {
		name := member.PersonName
		if name == "" {
			name = member.PersonID
		}
		fmt.Printf("  - %s\n", name)
	}
}

func newUnionsAddMemberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-member <union-id> <person-id>",
		Short: "Add a person to an existing union",
		Args:  cobra.ExactArgs(2),
		RunE:  runUnionsAddMember,
	}
}

func runUnionsAddMember(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	unionID := args[0]
	personID := args[1]

	return withDeps(func(d *Deps) error {
		if err := d.RelationHandler.HandleAddUnionMember(ctx, unionID, personID); err != nil {
			return fmt.Errorf("adding union member: %w", err)
		}

		fmt.Printf("Added %s to union %s\n", personID, unionID)
		return nil
	})
}

func newUnionsDissolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dissolve <union-id>",
		Short: "Delete a union and its memberships",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnionsDissolve,
	}
}

func runUnionsDissolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	unionID := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.RelationHandler.HandleDissolveUnion(ctx, unionID); err != nil {
			return fmt.Errorf("dissolving union: %w", err)
		}

		fmt.Printf("Dissolved union: %s\n", unionID)
		return nil
	})
}

func parseDateFlag(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD)", name, value)
	}
	return &parsed, nil
}
