// Package storagetest holds behaviour checks shared by every storage.Provider.
package storagetest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

// RunProviderTests exercises the Provider contract against stores built by
// newStore. Each subtest receives a freshly initialized store.
func RunProviderTests(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("default settings", func(t *testing.T) {
		store := newStore(t)
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		want := models.DefaultSettings()
		if settings != want {
			t.Errorf("GetSettings() = %+v, want %+v", settings, want)
		}
	})

	t.Run("save settings", func(t *testing.T) {
		store := newStore(t)
		settings := models.DefaultSettings()
		settings.Timezone = "Europe/Belgrade"
		settings.StrictPersistence = true
		settings.ReminderHorizonDays = 7
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got != settings {
			t.Errorf("GetSettings() = %+v, want %+v", got, settings)
		}
	})

	t.Run("counters", func(t *testing.T) {
		store := newStore(t)
		if _, err := store.GetCounter("missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetCounter(missing) error = %v, want ErrNotFound", err)
		}
		for _, v := range []int{10000, 10001, 10007} {
			if err := store.SetCounter("nextDeadlineId", v); err != nil {
				t.Fatalf("SetCounter(%d) failed: %v", v, err)
			}
			got, err := store.GetCounter("nextDeadlineId")
			if err != nil {
				t.Fatalf("GetCounter failed: %v", err)
			}
			if got != v {
				t.Errorf("GetCounter() = %d, want %d", got, v)
			}
		}
	})

	t.Run("put and get", func(t *testing.T) {
		store := newStore(t)
		rec := storage.Record{ID: "1", CompanyID: "c1", Data: []byte(`{"a":1}`)}
		if err := store.PutRecord("things", rec); err != nil {
			t.Fatalf("PutRecord failed: %v", err)
		}
		got, err := store.GetRecord("things", "1")
		if err != nil {
			t.Fatalf("GetRecord failed: %v", err)
		}
		if got.ID != "1" || got.CompanyID != "c1" || string(got.Data) != `{"a":1}` {
			t.Errorf("GetRecord() = %+v", got)
		}
		if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
		if _, err := store.GetRecord("things", "2"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetRecord(missing) error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetRecord("other", "1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetRecord(other kind) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("upsert keeps insertion order", func(t *testing.T) {
		store := newStore(t)
		for i := 1; i <= 3; i++ {
			rec := storage.Record{ID: fmt.Sprint(i), CompanyID: "c1", Data: []byte(fmt.Sprintf(`{"v":%d}`, i))}
			if err := store.PutRecord("things", rec); err != nil {
				t.Fatalf("PutRecord failed: %v", err)
			}
		}
		if err := store.PutRecord("things", storage.Record{ID: "1", CompanyID: "c1", Data: []byte(`{"v":99}`)}); err != nil {
			t.Fatalf("PutRecord update failed: %v", err)
		}

		records, err := store.ListRecords("things")
		if err != nil {
			t.Fatalf("ListRecords failed: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("ListRecords() returned %d records, want 3", len(records))
		}
		for i, want := range []string{"1", "2", "3"} {
			if records[i].ID != want {
				t.Errorf("records[%d].ID = %s, want %s", i, records[i].ID, want)
			}
		}
		if string(records[0].Data) != `{"v":99}` {
			t.Errorf("updated data = %s, want {\"v\":99}", records[0].Data)
		}
	})

	t.Run("list by company", func(t *testing.T) {
		store := newStore(t)
		puts := []storage.Record{
			{ID: "a", CompanyID: "1", Data: []byte(`{}`)},
			{ID: "b", CompanyID: "2", Data: []byte(`{}`)},
			{ID: "c", CompanyID: "1", Data: []byte(`{}`)},
		}
		for _, rec := range puts {
			if err := store.PutRecord("things", rec); err != nil {
				t.Fatalf("PutRecord failed: %v", err)
			}
		}
		records, err := store.ListRecordsByCompany("things", "1")
		if err != nil {
			t.Fatalf("ListRecordsByCompany failed: %v", err)
		}
		if len(records) != 2 || records[0].ID != "a" || records[1].ID != "c" {
			t.Errorf("ListRecordsByCompany() = %+v", records)
		}
		empty, err := store.ListRecords("nothing")
		if err != nil {
			t.Fatalf("ListRecords(empty kind) failed: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("ListRecords(empty kind) returned %d records", len(empty))
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		if err := store.PutRecord("things", storage.Record{ID: "1", Data: []byte(`{}`)}); err != nil {
			t.Fatalf("PutRecord failed: %v", err)
		}
		if err := store.DeleteRecord("things", "1"); err != nil {
			t.Fatalf("DeleteRecord failed: %v", err)
		}
		if _, err := store.GetRecord("things", "1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetRecord after delete error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteRecord("things", "1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteRecord error = %v, want ErrNotFound", err)
		}
	})
}
