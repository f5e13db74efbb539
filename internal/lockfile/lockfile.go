package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"cubby/internal/config"
)

// ErrHeld indicates another process holds the lock for the same target.
var ErrHeld = errors.New("another cubby run is organizing this directory")

// Lock guards one target directory for the duration of an organize pass.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the per-target lock without blocking. It fails with ErrHeld
// when another process already owns it.
func Acquire(cfg *config.Config, target string) (*Lock, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	dir := filepath.Join(cfg.Paths.StateDir, "locks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	path := filepath.Join(dir, lockName(abs))
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHeld, abs)
	}
	return &Lock{path: path, lock: l}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// lockName derives a stable file name from the absolute target path.
func lockName(target string) string {
	sum := sha256.Sum256([]byte(target))
	return hex.EncodeToString(sum[:6]) + ".lock"
}
