package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/rokovi/internal/models"
)

// ErrNotFound is returned for missing records and counters.
var ErrNotFound = errors.New("not found")

// Record is one persisted entity. Data is opaque to the store; callers own
// the encoding.
type Record struct {
	ID        string
	CompanyID string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Counters
	GetCounter(key string) (int, error)
	SetCounter(key string, value int) error

	// Records
	// PutRecord inserts or replaces the record with the same (kind, id).
	// Replacing a record keeps its original position in ListRecords.
	PutRecord(kind string, rec Record) error
	GetRecord(kind, id string) (Record, error)
	// ListRecords returns every record of kind in insertion order.
	ListRecords(kind string) ([]Record, error)
	ListRecordsByCompany(kind, companyID string) ([]Record, error)
	DeleteRecord(kind, id string) error

	// Utils
	GetConfigPath() string
}
