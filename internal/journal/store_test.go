package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"faramir/internal/journal"
	"faramir/internal/testsupport"
)

func TestRunLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	started := time.Date(2024, 7, 14, 18, 30, 0, 0, time.UTC)
	run := journal.Run{
		ID:        "3f2a9c1e-0000-4000-8000-000000000001",
		Folder:    "/scans/Kodak Gold 200/Paris - Summer 2024",
		Sidecar:   "/scans/roll.csv",
		Policy:    "prefix",
		StartedAt: started,
	}
	if err := store.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != journal.StatusRunning || !got.StartedAt.Equal(started) {
		t.Fatalf("unexpected run %+v", got)
	}

	run.Status = journal.StatusCompleted
	run.FinishedAt = started.Add(3 * time.Second)
	run.Found, run.Renamed, run.Tagged, run.UnmatchedRows, run.Warnings = 2, 2, 2, 1, 1
	items := []journal.Item{
		{Index: 1, Source: "a.jpg", Target: "Kodak_Gold_200_Paris_Summer 2024_R01_F01.jpg", Status: "tagged", TagCount: 8},
		{Index: 2, Source: "b.jpg", Target: "Kodak_Gold_200_Paris_Summer 2024_R01_F02.jpg", Status: "tagged", TagCount: 7,
			Warnings: []string{`shutter "abc": invalid shutter speed`}},
	}
	if err := store.FinishRun(ctx, run, items); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	got, err = store.GetRun(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("GetRun by prefix: %v", err)
	}
	if got.Status != journal.StatusCompleted || got.Renamed != 2 || got.UnmatchedRows != 1 {
		t.Fatalf("unexpected finished run %+v", got)
	}
	if got.Duration() != 3*time.Second {
		t.Fatalf("unexpected duration %s", got.Duration())
	}

	storedItems, err := store.ListItems(ctx, run.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(storedItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(storedItems))
	}
	if len(storedItems[1].Warnings) != 1 || storedItems[0].Warnings != nil {
		t.Fatalf("unexpected warnings %+v", storedItems)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.BeginRun(ctx, journal.Run{ID: id, Folder: "f", Sidecar: "s", Policy: "prefix", StartedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("BeginRun %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("unexpected order %+v", runs)
	}

	all, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestGetRunErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"abc-1", "abc-2"} {
		if err := store.BeginRun(ctx, journal.Run{ID: id, Folder: "f", Sidecar: "s", Policy: "prefix"}); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
	}
	if _, err := store.GetRun(ctx, "abc"); !errors.Is(err, journal.ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := store.GetRun(ctx, "zzz"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.FinishRun(ctx, journal.Run{ID: "missing", Status: journal.StatusFailed}, nil); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound finishing unknown run, got %v", err)
	}
}

func TestSchemaMismatchRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := journal.OpenPath(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
