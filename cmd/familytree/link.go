package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
)

func newLinkCmd() *cobra.Command {
	var linkType string

	cmd := &cobra.Command{
		Use:   "link <parent-id> <child-id>",
		Short: "Create a parent-child link",
		Long: `Creates a directed parent-to-child link between two people.

Valid link types:
  - biological (default), adopted, foster, step

Examples:
  familytree -t smiths link 3f2e... 91ab...
  familytree -t smiths link 3f2e... 91ab... --type adopted`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, args, linkType)
		},
	}

	cmd.Flags().StringVar(&linkType, "type", "biological", "Link type (biological, adopted, foster, step)")

	cmd.AddCommand(
		newLinkListCmd(),
		newLinkDeleteCmd(),
	)

	return cmd
}

func runLink(cmd *cobra.Command, args []string, linkType string) error {
	ctx := cmd.Context()
	parentID := args[0]
	childID := args[1]

	parsed, ok := entities.ParseLinkType(linkType)
	if !ok {
		return fmt.Errorf("invalid link type %q (valid: biological, adopted, foster, step)", linkType)
	}

	return withDeps(func(d *Deps) error {
		link, err := d.RelationHandler.HandleLink(ctx, parentID, childID, parsed)
		if err != nil {
			return fmt.Errorf("creating link: %w", err)
		}

		fmt.Printf("Created link: %s\n", link.ID)
		fmt.Printf("  %s -[%s]-> %s\n", parentID, link.Type, childID)
		return nil
	})
}

func newLinkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List parent-child links in a tree",
		RunE:  runLinkList,
	}
}

func runLinkList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		links, err := d.RelationHandler.HandleListLinks(ctx, tree.ID)
		if err != nil {
			return fmt.Errorf("listing links: %w", err)
		}

		if len(links) == 0 {
			fmt.Printf("No links in tree: %s\n", tree.Name)
			return nil
		}

		for _, link := range links {
			fmt.Printf("%s  %s -[%s]-> %s\n", link.ID, link.ParentName, link.Type, link.ChildName)
		}
		return nil
	})
}

func newLinkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <link-id>",
		Short: "Delete a parent-child link",
		Args:  cobra.ExactArgs(1),
		RunE:  runLinkDelete,
	}
}

func runLinkDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	linkID := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.RelationHandler.HandleUnlink(ctx, linkID); err != nil {
			return fmt.Errorf("deleting link: %w", err)
		}

		fmt.Printf("Deleted link: %s\n", linkID)
		return nil
	})
}
