// Command complior is the compliance engine's CLI entrypoint: init, scan,
// fix, report, undo, status, serve, and mcp-server all share one bootstrap
// path (load config, catalogue, and collaborators) and exit with 0 on
// success, 1 on failure, 2 when --ci --threshold is not met.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/complior/engine/internal/cache"
	"github.com/complior/engine/internal/catalogue"
	"github.com/complior/engine/internal/config"
	"github.com/complior/engine/internal/events"
	"github.com/complior/engine/internal/llm"
	"github.com/complior/engine/internal/logger"
	"github.com/complior/engine/internal/service"
	"github.com/complior/engine/internal/store"
)

var projectPathFlag string

func main() {
	root := &cobra.Command{
		Use:           "complior",
		Short:         "AI-compliance scanner, fixer, and reporter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&projectPathFlag, "path", "", "project root (defaults to COMPLIOR_PROJECT_PATH or .)")

	root.AddCommand(
		newInitCmd(),
		newScanCmd(),
		newFixCmd(),
		newReportCmd(),
		newUndoCmd(),
		newStatusCmd(),
		newServeCmd(),
		newMCPServerCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap wires one Service with its optional collaborators, following
// every CLI subcommand's shared startup path.
func bootstrap(ctx context.Context) (*service.Service, llm.Client, logger.Interface, error) {
	_ = config.LoadDotEnv()
	cfg := config.Load()

	log, err := logger.New(logger.FromEnv())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	cat, err := catalogue.Load()
	if err != nil {
		// Config/catalogue load failure is fatal, per the engine's failure
		// semantics: the process cannot serve a meaningful scan without it.
		return nil, nil, nil, fmt.Errorf("loading catalogue: %w", err)
	}

	var mirror events.Mirror
	if len(cfg.KafkaBrokers) > 0 {
		mirror = events.NewKafkaMirror(cfg.KafkaBrokers, log)
	}
	bus := events.New(mirror)

	c, err := cache.Connect(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Warn("cache unavailable, continuing without it")
	}
	st, err := store.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Warn("store unavailable, continuing without it")
	}

	projectPath := projectPathFlag
	if projectPath == "" {
		projectPath = cfg.ProjectPath
	}

	llmClient := llm.New(cfg, log)
	svc := service.New(projectPath, cat, bus, c, st, log)

	return svc, llmClient, log, nil
}

func exitCode(code int) {
	os.Exit(code)
}
