package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/storage/sqlite"
)

func TestMigrateCmd(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	if err := (&MigrateCmd{}).Run(&cli.Context{Store: store}); err != nil {
		t.Errorf("migrate on up-to-date database failed: %v", err)
	}
}

func TestMigrateCmdRejectsJSONStore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "rokovi.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	if err := (&MigrateCmd{}).Run(&cli.Context{Store: store}); err == nil {
		t.Error("expected error for JSON store")
	}
}
