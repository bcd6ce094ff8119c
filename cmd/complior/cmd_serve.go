package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/complior/engine/internal/config"
	complihttp "github.com/complior/engine/internal/transport/http"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the engine as a long-lived HTTP/SSE server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, llmClient, log, err := bootstrap(ctx)
			if err != nil {
				exitCode(1)
				return err
			}

			cfg := config.Load()
			server := complihttp.NewServer(svc, llmClient, log)

			addr := ":" + cfg.Port
			log.Info("starting server")
			fmt.Println("complior listening on", addr)
			return http.ListenAndServe(addr, server)
		},
	}
}
