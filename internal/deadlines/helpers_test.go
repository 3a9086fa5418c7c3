package deadlines

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

var errInjected = errors.New("injected failure")

// flakyStore fails selected operations on demand.
type flakyStore struct {
	storage.Provider
	failPut        bool
	failList       bool
	failSetCounter bool
	failGetCounter bool
}

func (s *flakyStore) PutRecord(kind string, rec storage.Record) error {
	if s.failPut {
		return errInjected
	}
	return s.Provider.PutRecord(kind, rec)
}

func (s *flakyStore) ListRecords(kind string) ([]storage.Record, error) {
	if s.failList {
		return nil, errInjected
	}
	return s.Provider.ListRecords(kind)
}

func (s *flakyStore) SetCounter(key string, value int) error {
	if s.failSetCounter {
		return errInjected
	}
	return s.Provider.SetCounter(key, value)
}

func (s *flakyStore) GetCounter(key string) (int, error) {
	if s.failGetCounter {
		return 0, errInjected
	}
	return s.Provider.GetCounter(key)
}

type companyList struct {
	companies []models.Company
	err       error
}

func (c *companyList) List() ([]models.Company, error) {
	return c.companies, c.err
}

func (c *companyList) Get(id string) (models.Company, error) {
	for _, company := range c.companies {
		if company.ID == id {
			return company, nil
		}
	}
	return models.Company{}, errors.New("company not found")
}

func newTestStore(t *testing.T, path string) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

type testEnv struct {
	path      string
	store     *flakyStore
	companies *companyList
	engine    *Engine
	now       time.Time
}

func setupTestEngine(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rokovi.json")
	env := &testEnv{
		path:  path,
		store: &flakyStore{Provider: newTestStore(t, path)},
		companies: &companyList{companies: []models.Company{
			{ID: "1", Name: "Metalac"},
			{ID: "3", Name: "Gradnja"},
		}},
		now: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	base := []Option{
		WithClock(func() time.Time { return env.now }),
		WithLocation(time.UTC),
	}
	env.engine = New(env.store, env.companies, append(base, opts...)...)
	return env
}

// reopen builds a fresh engine over the same file, as after a restart.
func (env *testEnv) reopen(t *testing.T) *Engine {
	t.Helper()
	store := storage.NewJSONStore(env.path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	return New(store, env.companies,
		WithClock(func() time.Time { return env.now }),
		WithLocation(time.UTC),
	)
}

func deadlineDueIn(days int, today time.Time) models.Deadline {
	return models.Deadline{ID: days + 1000, DueDate: today.AddDate(0, 0, days)}
}
