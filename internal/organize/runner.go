package organize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"cubby/internal/classify"
	"cubby/internal/fileutil"
	"cubby/internal/logging"
)

// Request describes one organize pass over a directory.
type Request struct {
	Root   string
	Mode   classify.Mode
	DryRun bool
	Ignore []string
}

// Runner executes organize passes.
type Runner struct {
	logger *slog.Logger
}

// NewRunner constructs a runner. A nil logger disables logging.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logging.NewComponentLogger(logger, "organizer")}
}

// Run performs a full pass: snapshot the root, classify every file, and apply
// the moves in name order. Per-file trouble is captured in the report and the
// pass keeps going; only a missing, non-directory, or unlistable target
// aborts with an error. A pass always completes the snapshot it started.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	mode := req.Mode
	if mode == "" {
		mode = classify.ModeType
	}

	entries, err := Scan(root, req.Ignore)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With(
		logging.String("root", root),
		logging.String("mode", string(mode)),
		logging.Bool("dry_run", req.DryRun),
	)
	logger.Info("starting organize pass", logging.Int("files", len(entries)))

	report := &Report{Root: root, Mode: mode, DryRun: req.DryRun}
	for _, entry := range entries {
		plan := planFor(root, entry, mode)
		result := r.apply(plan, req.DryRun)
		report.add(result)
		switch result.Outcome {
		case OutcomeFailed:
			logger.Warn("move failed",
				logging.String("name", entry.Name),
				logging.String("destination", plan.RelDir),
				logging.String("reason", result.Reason),
			)
		default:
			logger.Debug("file handled",
				logging.String("name", entry.Name),
				logging.String("destination", plan.RelDir),
				logging.String("outcome", string(result.Outcome)),
			)
		}
	}

	logger.Info("organize pass complete",
		logging.Int("moved", report.Moved),
		logging.Int("skipped_exists", report.SkippedExists),
		logging.Int("skipped_dry_run", report.SkippedDryRun),
		logging.Int("failed", report.Failed),
	)
	return report, nil
}

// apply executes one plan. The order of checks is contractual: a dry run
// returns before anything on disk is touched, and an occupied destination is
// detected before the destination directory is created.
func (r *Runner) apply(plan Plan, dryRun bool) Result {
	if dryRun {
		return Result{Plan: plan, Outcome: OutcomeSkippedDryRun}
	}

	if _, err := os.Stat(plan.DestPath); err == nil {
		return Result{Plan: plan, Outcome: OutcomeSkippedExists}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Result{Plan: plan, Outcome: OutcomeFailed, Reason: fmt.Sprintf("check destination: %v", err)}
	}

	if err := os.MkdirAll(plan.DestDir, 0o755); err != nil {
		return Result{Plan: plan, Outcome: OutcomeFailed, Reason: fmt.Sprintf("create %s: %v", plan.RelDir, err)}
	}

	if err := r.moveFile(plan); err != nil {
		return Result{Plan: plan, Outcome: OutcomeFailed, Reason: err.Error()}
	}
	return Result{Plan: plan, Outcome: OutcomeMoved}
}

func (r *Runner) moveFile(plan Plan) error {
	renameErr := os.Rename(plan.Entry.Path, plan.DestPath)
	if renameErr == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return renameErr
	}

	// Destination lives on another filesystem: copy, restore the modification
	// stamp (date mode buckets by it), then drop the source.
	info, err := os.Stat(plan.Entry.Path)
	if err != nil {
		return err
	}
	if err := fileutil.CopyFileExclusive(plan.Entry.Path, plan.DestPath, info.Mode().Perm()); err != nil {
		return err
	}
	_ = os.Chtimes(plan.DestPath, time.Now(), info.ModTime())
	if err := os.Remove(plan.Entry.Path); err != nil {
		r.logger.Warn("failed to remove source file after copy",
			logging.String("name", plan.Entry.Name),
			logging.Error(err),
		)
	}
	return nil
}
