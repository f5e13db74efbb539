package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cubby/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past organize runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, buildRunViews(runs))
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.ID),
					formatRunTime(run.StartedAt),
					run.Root,
					run.Mode,
					fmt.Sprintf("%d", run.Moved),
					fmt.Sprintf("%d", run.SkippedExists),
					fmt.Sprintf("%d", run.Failed),
				})
			}
			table := renderTable(
				[]string{"Run", "Started", "Root", "Mode", "Moved", "Skipped", "Failed"},
				rows,
				4, 5, 6,
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum runs to list (0 lists all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and every file it touched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			run, files, err := store.FindRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %q not found", args[0])
			}

			if jsonOut {
				return writeJSON(cmd, buildRunDetailView(run, files))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:     %s\n", run.ID)
			fmt.Fprintf(out, "Started: %s\n", formatRunTime(run.StartedAt))
			fmt.Fprintf(out, "Root:    %s\n", run.Root)
			fmt.Fprintf(out, "Mode:    %s\n", run.Mode)
			fmt.Fprintf(out, "Result:  %d moved, %d skipped, %d failed\n", run.Moved, run.SkippedExists, run.Failed)

			if len(files) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(files))
			for _, file := range files {
				rows = append(rows, []string{file.Name, file.Destination, file.Outcome, file.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"File", "Destination", "Outcome", "Detail"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run as JSON")
	return cmd
}

type runView struct {
	ID            string `json:"id"`
	Root          string `json:"root"`
	Mode          string `json:"mode"`
	StartedAt     string `json:"started_at"`
	FinishedAt    string `json:"finished_at"`
	Moved         int    `json:"moved"`
	SkippedExists int    `json:"skipped_exists"`
	Failed        int    `json:"failed"`
}

type runDetailView struct {
	runView
	Files []runFileView `json:"files"`
}

type runFileView struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Outcome     string `json:"outcome"`
	Detail      string `json:"detail,omitempty"`
}

func buildRunViews(runs []history.Run) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, buildRunView(run))
	}
	return views
}

func buildRunView(run history.Run) runView {
	return runView{
		ID:            run.ID,
		Root:          run.Root,
		Mode:          run.Mode,
		StartedAt:     run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:    run.FinishedAt.UTC().Format(time.RFC3339),
		Moved:         run.Moved,
		SkippedExists: run.SkippedExists,
		Failed:        run.Failed,
	}
}

func buildRunDetailView(run *history.Run, files []history.FileRecord) runDetailView {
	detail := runDetailView{
		runView: buildRunView(*run),
		Files:   make([]runFileView, 0, len(files)),
	}
	for _, file := range files {
		detail.Files = append(detail.Files, runFileView{
			Name:        file.Name,
			Destination: file.Destination,
			Outcome:     file.Outcome,
			Detail:      file.Detail,
		})
	}
	return detail
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRunTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04")
}
