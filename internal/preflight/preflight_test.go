package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cubby/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckHistoryStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	result := CheckHistoryStore(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected history store to pass, got: %s", result.Detail)
	}
}

func TestRunAllCoversTarget(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	target := t.TempDir()

	results := RunAll(context.Background(), cfg, target)
	if len(results) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(results))
	}
	if results[0].Name != "Target directory" {
		t.Fatalf("unexpected first check: %s", results[0].Name)
	}
	if !Passed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}

func TestRunAllSkipsHistoryWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.History.Enabled = false
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg, "")
	for _, result := range results {
		if result.Name == "History store" {
			t.Fatal("history check should be skipped when disabled")
		}
	}
}

func TestRunAllFlagsMissingTarget(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg, filepath.Join(t.TempDir(), "absent"))
	if Passed(results) {
		t.Fatal("expected missing target to fail preflight")
	}
}
