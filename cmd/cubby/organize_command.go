package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"cubby/internal/classify"
	"cubby/internal/config"
	"cubby/internal/history"
	"cubby/internal/lockfile"
	"cubby/internal/logging"
	"cubby/internal/organize"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var dryRun bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Move a directory's files into category or date folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			mode, err := resolveMode(modeFlag, cfg)
			if err != nil {
				return err
			}
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve target: %w", err)
			}

			logger := ctx.logger()

			// Dry runs mutate nothing, so they skip the per-target lock.
			if !dryRun {
				lock, err := lockfile.Acquire(cfg, target)
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.Warn("failed to release target lock", logging.Error(err))
					}
				}()
			}

			started := time.Now()
			runner := organize.NewRunner(logger)
			report, err := runner.Run(cmd.Context(), organize.Request{
				Root:   target,
				Mode:   mode,
				DryRun: dryRun,
				Ignore: cfg.Organize.Ignore,
			})
			if err != nil {
				return err
			}

			if !dryRun && cfg.History.Enabled {
				recordHistory(cmd, cfg, logger, report, started)
			}

			if jsonOut {
				if err := writeJSON(cmd, buildReportView(report)); err != nil {
					return err
				}
			} else {
				renderReport(cmd.OutOrStdout(), report)
			}

			if report.Failed > 0 {
				return fmt.Errorf("failed to move %d of %d files", report.Failed, report.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Organize mode: type or date (defaults to config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without moving files")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}

func resolveMode(flag string, cfg *config.Config) (classify.Mode, error) {
	value := flag
	if value == "" {
		value = cfg.Organize.DefaultMode
	}
	mode, ok := classify.ParseMode(value)
	if !ok {
		return "", fmt.Errorf("invalid mode %q (valid: type, date)", value)
	}
	return mode, nil
}

// recordHistory journals a completed pass. History failures never fail the
// run itself; the files already moved.
func recordHistory(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, report *organize.Report, started time.Time) {
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	run, files := history.NewRun(report, started, time.Now())
	if err := store.RecordRun(cmd.Context(), run, files, cfg.History.KeepRuns); err != nil {
		logger.Warn("failed to record run", logging.Error(err))
	}
}
