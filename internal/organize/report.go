package organize

import "cubby/internal/classify"

// Outcome classifies what happened to one planned file.
type Outcome string

const (
	OutcomeMoved         Outcome = "moved"
	OutcomeSkippedExists Outcome = "skipped_exists"
	OutcomeSkippedDryRun Outcome = "skipped_dry_run"
	OutcomeFailed        Outcome = "failed"
)

// Result records the outcome for a single planned file. Reason is set only
// when the outcome is OutcomeFailed.
type Result struct {
	Plan    Plan
	Outcome Outcome
	Reason  string
}

// Report aggregates the ordered per-file results of one organize pass.
type Report struct {
	Root   string
	Mode   classify.Mode
	DryRun bool

	Results []Result

	Moved         int
	SkippedExists int
	SkippedDryRun int
	Failed        int
}

func (r *Report) add(result Result) {
	r.Results = append(r.Results, result)
	switch result.Outcome {
	case OutcomeMoved:
		r.Moved++
	case OutcomeSkippedExists:
		r.SkippedExists++
	case OutcomeSkippedDryRun:
		r.SkippedDryRun++
	case OutcomeFailed:
		r.Failed++
	}
}

// Total returns the number of files the pass considered.
func (r *Report) Total() int {
	return len(r.Results)
}

// Destinations returns the relative directories that received files, or would
// have in a dry run, in first-use order.
func (r *Report) Destinations() []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, result := range r.Results {
		if result.Outcome != OutcomeMoved && result.Outcome != OutcomeSkippedDryRun {
			continue
		}
		if _, ok := seen[result.Plan.RelDir]; ok {
			continue
		}
		seen[result.Plan.RelDir] = struct{}{}
		dirs = append(dirs, result.Plan.RelDir)
	}
	return dirs
}
