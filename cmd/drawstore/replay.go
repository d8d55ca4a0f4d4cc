package main

import (
	"encoding/json"
	"fmt"

	"github.com/jpalmerr/drawstore/config"
	"github.com/jpalmerr/drawstore/hub"
	"github.com/jpalmerr/drawstore/internal/replay"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// replayCmd replays a session file against a fresh store.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a session file",
	Long: `Replay a drawstore session file against a fresh store.

Every step is printed with its arguments, its result (for queries and
flushes) and the events it fired. The final store state is printed last.

With --stream, fired events are also published through an event hub and
written to stderr as JSON lines as they happen.

Example:
  drawstore replay -c session.yaml
  drawstore replay -c session.yaml --format json
  DRAWSTORE_CONFIG=session.yaml drawstore replay --stream`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("config", "c", "", "path to session file (required)")
	replayCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	replayCmd.Flags().Bool("stream", false, "write fired events to stderr as JSON lines")
}

func runReplay(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	format := viper.GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("format must be text or json, got %q", format)
	}

	logger, err := newLogger(cmd, viper.GetString("log-level"))
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Info("session loaded",
		"features", len(cfg.Features),
		"steps", len(cfg.Steps),
	)

	opts := replay.Options{Logger: logger}

	if viper.GetBool("stream") {
		h, err := hub.New()
		if err != nil {
			return fmt.Errorf("failed to create event hub: %w", err)
		}
		ch := h.Subscribe()
		done := make(chan struct{})
		go func() {
			defer close(done)
			enc := json.NewEncoder(cmd.ErrOrStderr())
			for ev := range ch {
				if err := enc.Encode(ev); err != nil {
					logger.Warn("failed to write event", "event", ev.Name, "error", err.Error())
				}
			}
		}()
		defer func() {
			h.Unsubscribe(ch)
			<-done
			if n := h.Dropped(); n > 0 {
				logger.Warn("stream dropped events", "count", n)
			}
		}()
		opts.Sink = h
	}

	tr, err := replay.Run(cfg, opts)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	}
	return tr.WriteText(out)
}
