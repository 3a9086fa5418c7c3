package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/rokovi/internal/backup"
	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/storage/sqlite"
)

var workflowNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

// runCommand parses args and runs them against the database at dbPath the way
// main does, with a fixed clock.
func runCommand(t *testing.T, dbPath string, args ...string) *cli.Context {
	t.Helper()

	var root rootCmd
	parser, err := kong.New(&root, parserOptions()...)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })
	if needsStore(kctx.Command()) {
		if err := store.Load(); err != nil {
			t.Fatalf("load store for %v: %v", args, err)
		}
	}

	appCtx := &cli.Context{Store: store, Clock: func() time.Time { return workflowNow }}
	if err := kctx.Run(appCtx); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return appCtx
}

func TestEndToEndWorkflow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rokovi.db")

	runCommand(t, dbPath, "init")
	runCommand(t, dbPath, "settings", "--timezone", "UTC", "--reminder-horizon-days", "7")
	runCommand(t, dbPath, "company", "add", "1", "Acme")
	runCommand(t, dbPath, "injury", "add", "-c", "1", "-e", "Ana Marić", "-d", "2024-03-05 09:00", "-s", "serious")
	runCommand(t, dbPath, "deadline", "list", "--show-ids")
	runCommand(t, dbPath, "remind", "--dry-run")

	appCtx := runCommand(t, dbPath, "deadline", "summary")
	engine, err := appCtx.Engine()
	if err != nil {
		t.Fatal(err)
	}
	pending, err := engine.InjuryDeadline(1)
	if err != nil {
		t.Fatalf("InjuryDeadline() error = %v", err)
	}
	if pending.IsCompleted {
		t.Fatal("injury deadline should be pending before notification")
	}
	if got := deadlines.DaysUntil(pending.DueDate, engine.Today()); got != 1 {
		t.Errorf("days until injury deadline = %d, want 1", got)
	}

	appCtx = runCommand(t, dbPath, "injury", "notify", "1", "--at", "2024-03-05 12:00")
	injury, err := appCtx.Registry().Injuries.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if injury.InspectionNotificationDate == nil {
		t.Fatal("injury should be marked as reported")
	}

	appCtx = runCommand(t, dbPath, "deadline", "list", "--all")
	engine, err = appCtx.Engine()
	if err != nil {
		t.Fatal(err)
	}
	done, err := engine.InjuryDeadline(1)
	if err != nil {
		t.Fatal(err)
	}
	if !done.IsCompleted {
		t.Error("injury deadline should be completed after notification")
	}
	summary, err := engine.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if summary.Completed != 1 || summary.Total != 5 {
		t.Errorf("summary = %+v, want 1 completed of 5", summary)
	}

	runCommand(t, dbPath, "backup", "create")
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("backups = %d, want 1", len(backups))
	}
}
