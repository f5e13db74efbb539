package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"cubby/internal/config"
	"cubby/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedRun records a minimal run for tests using the provided store.
func SeedRun(t testing.TB, store *history.Store, root string, started time.Time) history.Run {
	t.Helper()

	run := history.Run{
		ID:         uuid.NewString(),
		Root:       root,
		Mode:       "type",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Moved:      1,
	}
	files := []history.FileRecord{{
		RunID:       run.ID,
		Name:        "a.jpg",
		Destination: "images",
		Outcome:     "moved",
	}}
	if err := store.RecordRun(context.Background(), run, files, 0); err != nil {
		t.Fatalf("store.RecordRun: %v", err)
	}
	return run
}
