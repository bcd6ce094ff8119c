package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the engine's current status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}
			data, _ := json.MarshalIndent(svc.Status(), "", "  ")
			fmt.Println(string(data))
			return nil
		},
	}
}
