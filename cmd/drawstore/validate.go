package main

import (
	"fmt"

	"github.com/jpalmerr/drawstore/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a session file without replaying it.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a session file",
	Long: `Validate a drawstore session file without replaying it.

This command parses the YAML, expands environment variables, and validates
every feature and step. It's useful for CI pipelines.

Exit codes:
  0 - Session is valid
  1 - Session is invalid (error details printed to stderr)

Example:
  drawstore validate -c session.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to session file (required)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session is valid!\n")
	if cfg.Title != "" {
		fmt.Fprintf(out, "  Title:    %s\n", cfg.Title)
	}
	fmt.Fprintf(out, "  Features: %d\n", len(cfg.Features))
	fmt.Fprintf(out, "  Steps:    %d\n", len(cfg.Steps))

	return nil
}
