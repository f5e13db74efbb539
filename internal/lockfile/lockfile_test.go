package lockfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cubby/internal/lockfile"
	"cubby/internal/testsupport"
)

func TestAcquireAndRelease(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	target := t.TempDir()

	lock, err := lockfile.Acquire(cfg, target)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	again, err := lockfile.Acquire(cfg, target)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestAcquireHeldTarget(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	target := t.TempDir()

	lock, err := lockfile.Acquire(cfg, target)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	if _, err := lockfile.Acquire(cfg, target); !errors.Is(err, lockfile.ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}
}

func TestAcquireResolvesRelativeTargets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "inbox"), 0o755); err != nil {
		t.Fatalf("mkdir inbox: %v", err)
	}

	lock, err := lockfile.Acquire(cfg, filepath.Join(base, "inbox"))
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	t.Chdir(base)
	if _, err := lockfile.Acquire(cfg, "inbox"); !errors.Is(err, lockfile.ErrHeld) {
		t.Fatalf("expected ErrHeld for same directory via relative path, got %v", err)
	}
}

func TestAcquireIndependentTargets(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := lockfile.Acquire(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer first.Release()

	second, err := lockfile.Acquire(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire for second target failed: %v", err)
	}
	defer second.Release()
}
