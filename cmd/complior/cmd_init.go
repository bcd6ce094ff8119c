package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/complior/engine/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the .complior state directory for this project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := projectPathFlag
			if projectPath == "" {
				projectPath = config.Load().ProjectPath
			}
			base := filepath.Join(projectPath, ".complior")
			for _, dir := range []string{"backups", "reports", "shares"} {
				if err := os.MkdirAll(filepath.Join(base, dir), 0755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}
			fmt.Println("initialized .complior in", projectPath)
			return nil
		},
	}
}
