package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var asJSON bool
	var ci bool
	var threshold int

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the project and report its compliance score",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, log, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}

			result, err := svc.Scan(ctx)
			if err != nil {
				log.Error("scan failed")
				exitCode(1)
				return err
			}

			if asJSON {
				data, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(data))
			} else {
				fmt.Printf("Score: %.2f (%s)\n", result.Score.TotalScore, result.Score.Zone)
				fmt.Printf("Checks: %d total, %d passed, %d failed, %d skipped\n",
					result.Score.TotalChecks, result.Score.PassedChecks, result.Score.FailedChecks, result.Score.SkippedChecks)
				for _, f := range result.Findings {
					if f.Message == "" {
						continue
					}
					fmt.Printf("  [%s] %s\n", f.Severity, f.Message)
				}
			}

			if ci && threshold > 0 && result.Score.TotalScore < float64(threshold) {
				exitCode(2)
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable JSON instead of a text summary")
	cmd.Flags().BoolVar(&ci, "ci", false, "exit 2 when the score falls below --threshold")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "minimum passing score for --ci")
	return cmd
}
