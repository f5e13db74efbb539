package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cubby/internal/config"
	"cubby/internal/organize"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preview <directory>",
		Short: "Show where files would go without moving anything",
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

			runner := organize.NewRunner(ctx.logger())
			report, err := runner.Run(cmd.Context(), organize.Request{
				Root:   target,
				Mode:   mode,
				DryRun: true,
				Ignore: cfg.Organize.Ignore,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, buildReportView(report))
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Organize mode: type or date (defaults to config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}
