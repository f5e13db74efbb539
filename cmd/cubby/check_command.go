package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cubby/internal/config"
	"cubby/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check [directory]",
		Short: "Verify cubby can organize before touching any file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var target string
			if len(args) == 1 {
				target, err = config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve target: %w", err)
				}
			}

			results := preflight.RunAll(cmd.Context(), cfg, target)
			if jsonOut {
				if err := writeJSON(cmd, buildCheckViews(results)); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, result := range results {
					fmt.Fprintln(out, renderCheckLine(result, colorize))
				}
			}

			if !preflight.Passed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit check results as JSON")
	return cmd
}

type checkView struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

func buildCheckViews(results []preflight.Result) []checkView {
	views := make([]checkView, 0, len(results))
	for _, result := range results {
		views = append(views, checkView{Name: result.Name, Passed: result.Passed, Detail: result.Detail})
	}
	return views
}

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const checkLabelWidth = 18

func renderCheckLine(result preflight.Result, colorize bool) string {
	status, color := "OK", ansiGreen
	if !result.Passed {
		status, color = "ERROR", ansiRed
	}
	line := fmt.Sprintf("  %-*s [%s] %s", checkLabelWidth, result.Name+":", status, result.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
