// Package main is the entry point for the drawstore CLI.
//
// The CLI replays session files (YAML scripts of store operations) against
// a fresh drawstore Store and prints what every step returned and fired.
//
// Usage:
//
//	drawstore replay -c session.yaml    # Replay a session
//	drawstore validate -c session.yaml  # Validate a session file
//	drawstore version                   # Show version info
//
// Flags can also be set through DRAWSTORE_* environment variables
// (e.g. DRAWSTORE_CONFIG, DRAWSTORE_LOG_LEVEL), which are read from .env
// and .env.local in the working directory when present.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "drawstore",
	Short: "Replay drawing sessions against an in-memory feature store",
	Long: `drawstore tracks drawable map features, their changed state and the
current selection, and reports deletions and renders to a map context.

This CLI replays session files against a fresh store, which is handy for
checking selection deltas and render batching without a map.

Example session:
  title: demo
  features:
    - id: p
      kind: point
  steps:
    - op: add
    - op: select
      ids: p
    - op: flush`,
	SilenceUsage:      true,
	PersistentPreRunE: initEnv,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this drawstore binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "drawstore %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

// initEnv loads .env files and binds the command's flags to DRAWSTORE_* variables.
func initEnv(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("drawstore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return viper.BindPFlags(cmd.Flags())
}

// newLogger creates a JSON logger on stderr at the given level.
func newLogger(cmd *cobra.Command, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// configPath returns the session file path from --config or DRAWSTORE_CONFIG.
func configPath() (string, error) {
	path := viper.GetString("config")
	if path == "" {
		return "", fmt.Errorf("config file is required (--config or DRAWSTORE_CONFIG)")
	}
	return path, nil
}
