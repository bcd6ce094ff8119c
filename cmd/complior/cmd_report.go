package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/complior/engine/internal/service"
)

func newReportCmd() *cobra.Command {
	var format, organization, jurisdiction string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a compliance report from the last scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, _, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}
			if _, err := svc.Scan(ctx); err != nil {
				exitCode(1)
				return err
			}
			body, err := svc.Report(ctx, service.ReportOptions{Format: format, Organization: organization, Jurisdiction: jurisdiction})
			if err != nil {
				exitCode(1)
				return err
			}
			fmt.Println(string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "report format: markdown|json|pdf")
	cmd.Flags().StringVar(&organization, "organization", "", "organization name to include in the report header")
	cmd.Flags().StringVar(&jurisdiction, "jurisdiction", "", "jurisdiction to include in the report header")
	return cmd
}
