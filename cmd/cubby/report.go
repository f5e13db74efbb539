package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cubby/internal/organize"
)

// reportView is the JSON shape for one organize or preview pass.
type reportView struct {
	Root          string           `json:"root"`
	Mode          string           `json:"mode"`
	DryRun        bool             `json:"dry_run"`
	Total         int              `json:"total"`
	Moved         int              `json:"moved"`
	SkippedExists int              `json:"skipped_exists"`
	SkippedDryRun int              `json:"skipped_dry_run"`
	Failed        int              `json:"failed"`
	Files         []fileResultView `json:"files"`
}

type fileResultView struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Outcome     string `json:"outcome"`
	Reason      string `json:"reason,omitempty"`
}

func buildReportView(report *organize.Report) reportView {
	view := reportView{
		Root:          report.Root,
		Mode:          string(report.Mode),
		DryRun:        report.DryRun,
		Total:         report.Total(),
		Moved:         report.Moved,
		SkippedExists: report.SkippedExists,
		SkippedDryRun: report.SkippedDryRun,
		Failed:        report.Failed,
		Files:         make([]fileResultView, 0, len(report.Results)),
	}
	for _, result := range report.Results {
		view.Files = append(view.Files, fileResultView{
			Name:        result.Plan.Entry.Name,
			Destination: result.Plan.RelDir,
			Outcome:     string(result.Outcome),
			Reason:      result.Reason,
		})
	}
	return view
}

func renderReport(w io.Writer, report *organize.Report) {
	if report.Total() == 0 {
		fmt.Fprintln(w, "Nothing to organize")
		return
	}

	headers := []string{"File", "Destination", "Outcome"}
	withNotes := report.Failed > 0
	if withNotes {
		headers = append(headers, "Note")
	}

	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		row := []string{
			result.Plan.Entry.Name,
			result.Plan.RelDir,
			outcomeLabel(result.Outcome),
		}
		if withNotes {
			row = append(row, result.Reason)
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(w, renderTable(headers, rows))
	fmt.Fprintln(w, summarizeReport(report))
}

func outcomeLabel(outcome organize.Outcome) string {
	switch outcome {
	case organize.OutcomeMoved:
		return "Moved"
	case organize.OutcomeSkippedExists:
		return "Skipped (exists)"
	case organize.OutcomeSkippedDryRun:
		return "Would move"
	case organize.OutcomeFailed:
		return "Failed"
	default:
		return string(outcome)
	}
}

func summarizeReport(report *organize.Report) string {
	folders := len(report.Destinations())

	var b strings.Builder
	if report.DryRun {
		fmt.Fprintf(&b, "Would move %d of %d files into %d folders", report.SkippedDryRun, report.Total(), folders)
	} else {
		fmt.Fprintf(&b, "Moved %d of %d files into %d folders", report.Moved, report.Total(), folders)
	}
	if report.SkippedExists > 0 {
		fmt.Fprintf(&b, ", skipped %d already present", report.SkippedExists)
	}
	if report.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", report.Failed)
	}
	return b.String()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
