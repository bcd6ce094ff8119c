package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newUndoCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recently applied fix, or a specific one by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}

			var idPtr *int64
			if cmd.Flags().Changed("id") {
				idPtr = &id
			}
			result, err := svc.FixUndo(ctx, idPtr)
			if err != nil {
				exitCode(1)
				return err
			}
			fmt.Printf("undone %s: score %.2f -> %.2f\n", result.Plan.CheckID, result.ScoreBefore, result.ScoreAfter)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "history entry id to undo (defaults to the most recent applied fix)")
	return cmd
}
