package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/complior/engine/internal/models"
)

func newFixCmd() *cobra.Command {
	var all bool
	var checkID string

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Apply fixes for failing compliance checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, log, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}

			if _, err := svc.Scan(ctx); err != nil {
				log.Error("scan before fix failed")
				exitCode(1)
				return err
			}

			if all {
				results, summary, err := svc.FixApplyAll(ctx)
				if err != nil {
					exitCode(1)
					return err
				}
				fmt.Printf("applied %d, failed %d\n", summary.Applied, summary.Failed)
				for _, r := range results {
					printFixResult(r)
				}
				return nil
			}

			if checkID == "" {
				exitCode(1)
				return fmt.Errorf("specify --all or --check ID")
			}
			result, err := svc.FixApplyAndValidate(ctx, checkID, "")
			if err != nil {
				exitCode(1)
				return err
			}
			printFixResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "apply every available fix")
	cmd.Flags().StringVar(&checkID, "check", "", "apply the fix for a single check id")
	return cmd
}

func printFixResult(r models.FixResult) {
	if !r.Applied {
		fmt.Printf("  %s: failed (%s)\n", r.Plan.CheckID, r.Error)
		return
	}
	fmt.Printf("  %s: applied, score %.2f -> %.2f\n", r.Plan.CheckID, r.ScoreBefore, r.ScoreAfter)
}
