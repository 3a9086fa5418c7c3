package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/storage/storagetest"
)

func setupTestJSONStore(t *testing.T) storage.Provider {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "rokovi.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func TestJSONStoreProvider(t *testing.T) {
	storagetest.RunProviderTests(t, setupTestJSONStore)
}

func TestJSONStoreInitTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rokovi.json")
	if err := storage.NewJSONStore(path).Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	err := storage.NewJSONStore(path).Init()
	if err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("second Init error = %v, want already initialized", err)
	}
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Load() error = %v, want not initialized", err)
	}
}

func TestJSONStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rokovi.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.PutRecord("things", storage.Record{ID: "x", CompanyID: "1", Data: []byte(`{"k":"v"}`)}); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}
	if err := store.SetCounter("nextDeadlineId", 10003); err != nil {
		t.Fatalf("SetCounter failed: %v", err)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	rec, err := reopened.GetRecord("things", "x")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if string(rec.Data) != `{"k":"v"}` {
		t.Errorf("reloaded data = %s", rec.Data)
	}
	n, err := reopened.GetCounter("nextDeadlineId")
	if err != nil || n != 10003 {
		t.Errorf("GetCounter() = %d, %v; want 10003", n, err)
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "rokovi.json"))
	if _, err := store.ListRecords("things"); err == nil {
		t.Error("expected error from unloaded store")
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rokovi.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := storage.NewJSONStore(path).Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestJSONStoreFailedWriteLeavesStateUnchanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store := storage.NewJSONStore(filepath.Join(dir, "rokovi.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.PutRecord("things", storage.Record{ID: "kept", Data: []byte(`{}`)}); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}

	// Replace the directory with a file so every write fails
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, []byte("not a directory"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := store.PutRecord("things", storage.Record{ID: "lost", Data: []byte(`{}`)}); err == nil {
		t.Fatal("expected PutRecord to fail")
	}
	if _, err := store.GetRecord("things", "lost"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetRecord(lost) error = %v, want ErrNotFound", err)
	}

	if err := store.SetCounter("nextDeadlineId", 10001); err == nil {
		t.Fatal("expected SetCounter to fail")
	}
	if _, err := store.GetCounter("nextDeadlineId"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCounter() error = %v, want ErrNotFound", err)
	}

	if err := store.DeleteRecord("things", "kept"); err == nil {
		t.Fatal("expected DeleteRecord to fail")
	}
	if _, err := store.GetRecord("things", "kept"); err != nil {
		t.Errorf("GetRecord(kept) error = %v, want the record to remain", err)
	}
}
