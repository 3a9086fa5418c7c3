package storage

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
)

type jsonRecord struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"companyId,omitempty"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type fileStore struct {
	Version  int                     `json:"version"`
	Settings map[string]string       `json:"settings"`
	Counters map[string]int          `json:"counters"`
	Records  map[string][]jsonRecord `json:"records"` // kind -> records in insertion order
}

// JSONStore keeps everything in a single JSON document that is rewritten on
// every mutation. Suitable for small single-user installs and tests.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version:  1,
		Settings: models.SettingsToMap(models.DefaultSettings()),
		Counters: make(map[string]int),
		Records:  make(map[string][]jsonRecord),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &fileStore{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if store.Settings == nil {
		store.Settings = make(map[string]string)
	}
	if store.Counters == nil {
		store.Counters = make(map[string]int)
	}
	if store.Records == nil {
		store.Records = make(map[string][]jsonRecord)
	}
	s.store = store

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write through a temp file so a crash never leaves a truncated document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (d *fileStore) clone() *fileStore {
	next := &fileStore{
		Version:  d.Version,
		Settings: maps.Clone(d.Settings),
		Counters: maps.Clone(d.Counters),
		Records:  make(map[string][]jsonRecord, len(d.Records)),
	}
	for kind, records := range d.Records {
		next.Records[kind] = slices.Clone(records)
	}
	return next
}

// commit applies change to a copy of the document and keeps the copy only
// once it has been written. Must be called with mu held.
func (s *JSONStore) commit(change func(doc *fileStore) error) error {
	if err := s.loaded(); err != nil {
		return err
	}
	next := s.store.clone()
	if err := change(next); err != nil {
		return err
	}

	prev := s.store
	s.store = next
	if err := s.save(); err != nil {
		s.store = prev
		return err
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	if len(s.store.Settings) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	return models.MapToSettings(s.store.Settings)
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(func(doc *fileStore) error {
		doc.Settings = models.SettingsToMap(settings)
		return nil
	})
}

func (s *JSONStore) GetCounter(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return 0, err
	}
	value, ok := s.store.Counters[key]
	if !ok {
		return 0, ErrNotFound
	}
	return value, nil
}

func (s *JSONStore) SetCounter(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(func(doc *fileStore) error {
		doc.Counters[key] = value
		return nil
	})
}

func (s *JSONStore) PutRecord(kind string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}

	return s.commit(func(doc *fileStore) error {
		now := time.Now().UTC()
		records := doc.Records[kind]
		for i, existing := range records {
			if existing.ID == rec.ID {
				records[i].CompanyID = rec.CompanyID
				records[i].Data = json.RawMessage(append([]byte(nil), rec.Data...))
				records[i].UpdatedAt = now
				return nil
			}
		}

		doc.Records[kind] = append(records, jsonRecord{
			ID:        rec.ID,
			CompanyID: rec.CompanyID,
			Data:      json.RawMessage(append([]byte(nil), rec.Data...)),
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
}

func (s *JSONStore) GetRecord(kind, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return Record{}, err
	}
	for _, rec := range s.store.Records[kind] {
		if rec.ID == id {
			return rec.toRecord(), nil
		}
	}
	return Record{}, ErrNotFound
}

func (s *JSONStore) ListRecords(kind string) ([]Record, error) {
	return s.list(kind, func(jsonRecord) bool { return true })
}

func (s *JSONStore) ListRecordsByCompany(kind, companyID string) ([]Record, error) {
	return s.list(kind, func(rec jsonRecord) bool { return rec.CompanyID == companyID })
}

func (s *JSONStore) list(kind string, keep func(jsonRecord) bool) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []Record
	for _, rec := range s.store.Records[kind] {
		if keep(rec) {
			out = append(out, rec.toRecord())
		}
	}
	return out, nil
}

func (s *JSONStore) DeleteRecord(kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(func(doc *fileStore) error {
		records := doc.Records[kind]
		for i, rec := range records {
			if rec.ID == id {
				doc.Records[kind] = slices.Delete(records, i, i+1)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r jsonRecord) toRecord() Record {
	return Record{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Data:      append([]byte(nil), r.Data...),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
