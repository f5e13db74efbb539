package history

import (
	"time"

	"github.com/google/uuid"

	"cubby/internal/organize"
)

// Run summarizes one completed organize pass.
type Run struct {
	ID            string
	Root          string
	Mode          string
	StartedAt     time.Time
	FinishedAt    time.Time
	Moved         int
	SkippedExists int
	Failed        int
}

// FileRecord captures what happened to a single file during a run. Detail is
// set only for failures.
type FileRecord struct {
	RunID       string
	Name        string
	Destination string
	Outcome     string
	Detail      string
}

// NewRun converts a finished organize report into a run record and its
// per-file rows. Dry runs are never recorded; callers filter those out.
func NewRun(report *organize.Report, startedAt, finishedAt time.Time) (Run, []FileRecord) {
	run := Run{
		ID:            uuid.NewString(),
		Root:          report.Root,
		Mode:          string(report.Mode),
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		Moved:         report.Moved,
		SkippedExists: report.SkippedExists,
		Failed:        report.Failed,
	}

	files := make([]FileRecord, 0, len(report.Results))
	for _, result := range report.Results {
		files = append(files, FileRecord{
			RunID:       run.ID,
			Name:        result.Plan.Entry.Name,
			Destination: result.Plan.RelDir,
			Outcome:     string(result.Outcome),
			Detail:      result.Reason,
		})
	}
	return run, files
}
