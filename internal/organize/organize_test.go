package organize_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cubby/internal/classify"
	"cubby/internal/logging"
	"cubby/internal/organize"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunMovesFilesByType(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "jpg")
	writeFile(t, filepath.Join(root, "b.pdf"), "pdf")
	writeFile(t, filepath.Join(root, "c.unknownext"), "???")
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}
	writeFile(t, filepath.Join(root, "sub", "nested.jpg"), "nested")

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Moved != 3 || report.Failed != 0 || report.SkippedExists != 0 {
		t.Fatalf("unexpected counts: moved=%d skipped=%d failed=%d", report.Moved, report.SkippedExists, report.Failed)
	}
	if report.Total() != 3 {
		t.Fatalf("expected 3 results, got %d", report.Total())
	}

	wantOrder := []string{"a.jpg", "b.pdf", "c.unknownext"}
	for i, name := range wantOrder {
		if report.Results[i].Plan.Entry.Name != name {
			t.Fatalf("result[%d] = %q, want %q", i, report.Results[i].Plan.Entry.Name, name)
		}
		if report.Results[i].Outcome != organize.OutcomeMoved {
			t.Fatalf("result[%d] outcome = %q", i, report.Results[i].Outcome)
		}
	}

	for file, dir := range map[string]string{
		"a.jpg":        "images",
		"b.pdf":        "documents",
		"c.unknownext": "other",
	} {
		moved := filepath.Join(root, dir, file)
		if _, err := os.Stat(moved); err != nil {
			t.Fatalf("expected %s: %v", moved, err)
		}
		if _, err := os.Stat(filepath.Join(root, file)); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected %s gone from root, err=%v", file, err)
		}
	}

	// The subdirectory and its contents stay put.
	if _, err := os.Stat(filepath.Join(root, "sub", "nested.jpg")); err != nil {
		t.Fatalf("subdirectory was disturbed: %v", err)
	}

	wantDirs := []string{"images", "documents", "other"}
	gotDirs := report.Destinations()
	if len(gotDirs) != len(wantDirs) {
		t.Fatalf("destinations = %v, want %v", gotDirs, wantDirs)
	}
	for i := range wantDirs {
		if gotDirs[i] != wantDirs[i] {
			t.Fatalf("destinations = %v, want %v", gotDirs, wantDirs)
		}
	}
}

func TestRunPreservesNameCase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "IMG.JPG"), "jpg")

	runner := organize.NewRunner(nil)
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Moved != 1 {
		t.Fatalf("moved = %d", report.Moved)
	}
	if _, err := os.Stat(filepath.Join(root, "images", "IMG.JPG")); err != nil {
		t.Fatalf("expected images/IMG.JPG with original casing: %v", err)
	}
}

func TestRunDateModeBucketsByModTime(t *testing.T) {
	root := t.TempDir()
	january := filepath.Join(root, "jan.txt")
	march := filepath.Join(root, "mar.txt")
	writeFile(t, january, "jan")
	writeFile(t, march, "mar")

	janStamp := time.Date(2023, time.January, 15, 10, 30, 0, 0, time.Local)
	marStamp := time.Date(2024, time.March, 22, 14, 45, 0, 0, time.Local)
	if err := os.Chtimes(january, janStamp, janStamp); err != nil {
		t.Fatalf("chtimes jan: %v", err)
	}
	if err := os.Chtimes(march, marStamp, marStamp); err != nil {
		t.Fatalf("chtimes mar: %v", err)
	}

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeDate})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Moved != 2 {
		t.Fatalf("moved = %d, want 2", report.Moved)
	}
	if _, err := os.Stat(filepath.Join(root, "2023", "01", "jan.txt")); err != nil {
		t.Fatalf("expected 2023/01/jan.txt: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "2024", "03", "mar.txt")); err != nil {
		t.Fatalf("expected 2024/03/mar.txt: %v", err)
	}
}

func TestRunDryRunLeavesTreeUntouched(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "jpg")
	writeFile(t, filepath.Join(root, "b.pdf"), "pdf")

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType, DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.SkippedDryRun != 2 || report.Moved != 0 {
		t.Fatalf("unexpected counts: dry_run=%d moved=%d", report.SkippedDryRun, report.Moved)
	}
	for _, name := range []string{"a.jpg", "b.pdf"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Fatalf("%s should remain in place: %v", name, err)
		}
	}
	for _, dir := range []string{"images", "documents"} {
		if _, err := os.Stat(filepath.Join(root, dir)); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("dry run created %s, err=%v", dir, err)
		}
	}

	dirs := report.Destinations()
	if len(dirs) != 2 || dirs[0] != "images" || dirs[1] != "documents" {
		t.Fatalf("dry run destinations = %v", dirs)
	}
}

func TestRunSkipsOccupiedDestination(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "incoming")
	writeFile(t, filepath.Join(root, "images", "a.jpg"), "original")

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.SkippedExists != 1 || report.Moved != 0 {
		t.Fatalf("unexpected counts: skipped=%d moved=%d", report.SkippedExists, report.Moved)
	}
	if got := readFile(t, filepath.Join(root, "images", "a.jpg")); got != "original" {
		t.Fatalf("destination overwritten: %q", got)
	}
	if got := readFile(t, filepath.Join(root, "a.jpg")); got != "incoming" {
		t.Fatalf("source disturbed: %q", got)
	}
}

func TestRunSecondPassFindsNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "jpg")
	writeFile(t, filepath.Join(root, "b.pdf"), "pdf")

	runner := organize.NewRunner(logging.NewNop())
	first, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if first.Moved != 2 {
		t.Fatalf("first pass moved = %d", first.Moved)
	}

	second, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.Total() != 0 {
		t.Fatalf("second pass saw %d files, want 0", second.Total())
	}
}

func TestRunContinuesAfterPerFileFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.pdf"), "pdf")
	writeFile(t, filepath.Join(root, "x.jpg"), "jpg")
	// A regular file occupying the category path makes the move of x.jpg fail.
	writeFile(t, filepath.Join(root, "images"), "blocker")

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{
		Root:   root,
		Mode:   classify.ModeType,
		Ignore: []string{"images"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Moved != 1 || report.Failed != 1 {
		t.Fatalf("unexpected counts: moved=%d failed=%d", report.Moved, report.Failed)
	}
	if report.Results[0].Plan.Entry.Name != "b.pdf" || report.Results[0].Outcome != organize.OutcomeMoved {
		t.Fatalf("unexpected first result: %+v", report.Results[0])
	}
	failed := report.Results[1]
	if failed.Plan.Entry.Name != "x.jpg" || failed.Outcome != organize.OutcomeFailed {
		t.Fatalf("unexpected second result: %+v", failed)
	}
	if !strings.Contains(failed.Reason, "images") {
		t.Fatalf("failure reason missing destination: %q", failed.Reason)
	}
	if _, err := os.Stat(filepath.Join(root, "x.jpg")); err != nil {
		t.Fatalf("failed file should remain in place: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "documents", "b.pdf")); err != nil {
		t.Fatalf("expected documents/b.pdf: %v", err)
	}
}

func TestRunHonorsIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.tmp"), "tmp")
	writeFile(t, filepath.Join(root, "move.jpg"), "jpg")

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{
		Root:   root,
		Mode:   classify.ModeType,
		Ignore: []string{"*.tmp"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Total() != 1 || report.Moved != 1 {
		t.Fatalf("unexpected report: total=%d moved=%d", report.Total(), report.Moved)
	}
	if _, err := os.Stat(filepath.Join(root, "keep.tmp")); err != nil {
		t.Fatalf("ignored file should stay: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "images", "move.jpg")); err != nil {
		t.Fatalf("expected images/move.jpg: %v", err)
	}
}

func TestRunExcludesSymlinks(t *testing.T) {
	root := t.TempDir()
	targetDir := t.TempDir()
	target := filepath.Join(targetDir, "real.jpg")
	writeFile(t, target, "real")
	link := filepath.Join(root, "link.jpg")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Total() != 0 {
		t.Fatalf("symlink was scanned: %+v", report.Results)
	}
	if _, err := os.Lstat(link); err != nil {
		t.Fatalf("symlink should stay in place: %v", err)
	}
}

func TestRunFatalTargetErrors(t *testing.T) {
	runner := organize.NewRunner(logging.NewNop())

	missing := filepath.Join(t.TempDir(), "absent")
	if _, err := runner.Run(context.Background(), organize.Request{Root: missing}); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing target: got %v, want not-exist", err)
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, "not a dir")
	if _, err := runner.Run(context.Background(), organize.Request{Root: file}); !errors.Is(err, organize.ErrNotDirectory) {
		t.Fatalf("file target: got %v, want ErrNotDirectory", err)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	runner := organize.NewRunner(logging.NewNop())
	report, err := runner.Run(context.Background(), organize.Request{Root: root, Mode: classify.ModeType})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Total() != 0 || report.Moved != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if len(report.Destinations()) != 0 {
		t.Fatalf("expected no destinations, got %v", report.Destinations())
	}
}
