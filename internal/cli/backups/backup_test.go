package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list without backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath := setupTestDB(t)
	if err := ctx.Registry().Companies.Add(models.Company{ID: "1", Name: "Metalac"}); err != nil {
		t.Fatal(err)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Registry().Companies.Delete("1"); err != nil {
		t.Fatal(err)
	}

	cancel := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), in: strings.NewReader("n\n")}
	if err := cancel.Run(ctx); err != nil {
		t.Fatalf("cancelled restore failed: %v", err)
	}
	if _, err := ctx.Registry().Companies.Get("1"); err == nil {
		t.Fatal("cancelled restore must not change the database")
	}

	confirm := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), in: strings.NewReader("yes\n")}
	if err := confirm.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if _, err := restored.GetRecord(constants.KindCompanies, "1"); err != nil {
		t.Errorf("company not restored: %v", err)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "rokovi-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "rokovi.json"))
	ctx := &cli.Context{Store: store}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for JSON store")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("expected error for JSON store")
	}
}
