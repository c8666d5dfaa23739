package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Virtualupon/FamilyTree-sub012/internal/application/handlers"
)

type predictFlags struct {
	rules         []string
	minConfidence int
	queue         bool
}

func newPredictCmd() *cobra.Command {
	var flags predictFlags

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Scan a tree for likely missing relationships",
		Long: `Runs the prediction rules over a tree and prints candidate
relationships with confidence scores.

Examples:
  familytree -t smiths predict
  familytree -t smiths predict --rules missing_union,patronymic
  familytree -t smiths predict --min-confidence 80 --queue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "Comma-separated rule IDs (default: all)")
	cmd.Flags().IntVar(&flags.minConfidence, "min-confidence", 0, "Drop candidates below this confidence")
	cmd.Flags().BoolVar(&flags.queue, "queue", false, "Save candidates as pending suggestions")

	cmd.AddCommand(newPredictRulesCmd())

	return cmd
}

func runPredict(cmd *cobra.Command, flags predictFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		tree, err := resolveTree(ctx, d)
		if err != nil {
			return err
		}

		result, err := d.PredictHandler.HandleScan(ctx, tree.ID, handlers.PredictOptions{
			RuleIDs:       flags.rules,
			MinConfidence: flags.minConfidence,
			Queue:         flags.queue,
		})
		if err != nil {
			return fmt.Errorf("scanning tree: %w", err)
		}

		for _, failure := range result.Failures {
			fmt.Printf("warning: rule %s failed: %v\n", failure.RuleID, failure.Err)
		}

		if len(result.Candidates) == 0 {
			fmt.Printf("No candidates found in tree: %s\n", tree.Name)
			return nil
		}

		for _, c := range result.Candidates {
			fmt.Printf("[%3d] %s  %s -> %s\n", c.Confidence, c.Kind, c.SourceID, c.TargetID)
			fmt.Printf("      %s (%s)\n", c.Explanation, c.RuleID)
		}

		fmt.Printf("\nTotal: %d candidates\n", len(result.Candidates))
		if flags.queue {
			fmt.Printf("Queued %d suggestions for review\n", result.Queued)
		}
		return nil
	})
}

func newPredictRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available prediction rules",
		RunE:  runPredictRules,
	}
}

func runPredictRules(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		for _, id := range d.PredictHandler.Rules() {
			fmt.Println(id)
		}
		return nil
	})
}
