package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/services"
)

const dateLayout = "2006-01-02"

func newPeopleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "Manage people in a tree",
	}

	cmd.AddCommand(
		newPeopleAddCmd(),
		newPeopleListCmd(),
		newPeopleSearchCmd(),
		newPeopleDeleteCmd(),
	)

	return cmd
}

type peopleAddFlags struct {
	arabicName  string
	sex         string
	birthDate   string
	familyGroup string
}

func newPeopleAddCmd() *cobra.Command {
	var flags peopleAddFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person to a tree",
		Long: `Adds a person to the tree selected with --tree.

Examples:
  familytree -t smiths people add "John Smith" --sex male --birth-date 1950-03-14
  familytree -t khalils people add "Omar Khalil" --arabic-name "عمر خليل" --family-group khalil`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeopleAdd(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.arabicName, "arabic-name", "", "Arabic name")
	cmd.Flags().StringVar(&flags.sex, "sex", "", "Sex (male, female, unknown)")
	cmd.Flags().StringVar(&flags.birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.familyGroup, "family-group", "", "Family group identifier")

	return cmd
}

func runPeopleAdd(cmd *cobra.Command, name string, flags peopleAddFlags) error {
	ctx := cmd.Context()

	sex, ok := entities.ParseSex(flags.sex)
	if !ok {
		return fmt.Errorf("invalid sex %q (valid: male, female, unknown)", flags.sex)
	}

	var birthDate *time.Time
	if flags.birthDate != "" {
		parsed, err := time.Parse(dateLayout, flags.birthDate)
		if err != nil {
			return fmt.Errorf("invalid birth date %q (want YYYY-MM-DD)", flags.birthDate)
		}
		birthDate = &parsed
	}

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		person, err := d.PersonHandler.HandleAdd(ctx, tree.ID, services.PersonInput{
			Name:          name,
			ArabicName:    flags.arabicName,
			Sex:           sex,
			BirthDate:     birthDate,
			FamilyGroupID: flags.familyGroup,
		})
		if err != nil {
			return fmt.Errorf("adding person: %w", err)
		}

		fmt.Printf("Added person: %s (%s)\n", person.Name, person.ID)
		return nil
	})
}

func newPeopleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people in a tree",
		RunE:  runPeopleList,
	}
}

func runPeopleList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		result, err := d.PersonHandler.HandleList(ctx, tree.ID)
		if err != nil {
			return fmt.Errorf("listing people: %w", err)
		}

		if result.Total == 0 {
			fmt.Printf("No people in tree: %s\n", tree.Name)
			return nil
		}

		for _, person := range result.People {
			printPerson(person)
		}
		fmt.Printf("\nTotal: %d\n", result.Total)
		return nil
	})
}

func newPeopleSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search people by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeopleSearch(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")

	return cmd
}

func runPeopleSearch(cmd *cobra.Command, query string, limit int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		result, err := d.PersonHandler.HandleSearch(ctx, tree.ID, query, limit)
		if err != nil {
			return fmt.Errorf("searching people: %w", err)
		}

		if result.Total == 0 {
			fmt.Printf("No people matching: %s\n", query)
			return nil
		}

		for _, person := range result.People {
			printPerson(person)
		}
		return nil
	})
}

func newPeopleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <person-id>",
		Short: "Delete a person",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeopleDelete,
	}
}

func runPeopleDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	personID := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.PersonHandler.HandleDelete(ctx, personID); err != nil {
			return fmt.Errorf("deleting person: %w", err)
		}

		fmt.Printf("Deleted person: %s\n", personID)
		return nil
	})
}

func printPerson(person entities.Person) {
	fmt.Printf("%s  %s", person.ID, person.Name)
	if person.ArabicName != "" {
		fmt.Printf(" (%s)", person.ArabicName)
	}
	if person.Sex != entities.SexUnknown {
		fmt.Printf("  %s", person.Sex)
	}
	if person.BirthDate != nil {
		fmt.Printf("  b. %s", person.BirthDate.Format(dateLayout))
	}
	fmt.Println()
}
