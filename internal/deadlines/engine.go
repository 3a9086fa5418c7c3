// Package deadlines derives deadline urgency, seeds per-company baseline
// deadlines, and manages the injury-notification deadline lifecycle.
package deadlines

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/julianstephens/rokovi/internal/constants"
	apperrors "github.com/julianstephens/rokovi/internal/errors"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

var (
	ErrDeadlineNotFound = errors.New("deadline not found")
	ErrSeededDeadline   = errors.New("seeded deadlines cannot be deleted")
)

// CompanyDirectory resolves the companies the engine seeds deadlines for.
type CompanyDirectory interface {
	List() ([]models.Company, error)
	Get(id string) (models.Company, error)
}

type Option func(*Engine)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the timezone used for midnight normalization.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithStrict makes persistence failures in the injury lifecycle return an
// error wrapping ErrStorageUnavailable instead of being logged and dropped.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

type Engine struct {
	// mu serializes read-modify-write of dynamic deadlines within the process.
	mu        sync.Mutex
	store     storage.Provider
	companies CompanyDirectory
	now       func() time.Time
	loc       *time.Location
	catalog   Catalog
	strict    bool
	ids       *idAllocator
}

func New(store storage.Provider, companies CompanyDirectory, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		companies: companies,
		now:       time.Now,
		loc:       time.Local,
		catalog:   DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ids = &idAllocator{
		load: e.loadCounter,
		save: func(next int) error {
			return e.store.SetCounter(constants.CounterNextDeadlineID, next)
		},
	}
	return e
}

// Init loads the deadline id counter. Calling it is optional; the counter is
// otherwise loaded on first allocation.
func (e *Engine) Init() error {
	if err := e.ids.Init(); err != nil {
		return e.persistFailure("load counter", err, "key", constants.CounterNextDeadlineID)
	}
	return nil
}

// loadCounter returns the next id to hand out: the stored counter, raised
// past any persisted dynamic id so a lost counter write cannot cause reuse.
func (e *Engine) loadCounter() (int, error) {
	next := constants.DynamicDeadlineIDStart
	var errs []error

	stored, err := e.store.GetCounter(constants.CounterNextDeadlineID)
	switch {
	case err == nil:
		next = max(next, stored)
	case errors.Is(err, storage.ErrNotFound):
	default:
		errs = append(errs, err)
	}

	records, err := e.store.ListRecords(constants.KindDynamicDeadlines)
	if err != nil {
		errs = append(errs, err)
	}
	for _, rec := range records {
		if id, err := strconv.Atoi(rec.ID); err == nil && id >= next {
			next = id + 1
		}
	}

	return next, errors.Join(errs...)
}

// Today is the current instant in the engine's location.
func (e *Engine) Today() time.Time {
	return e.now().In(e.loc)
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) Strict() bool {
	return e.strict
}

// persistFailure logs a storage failure and, in strict mode, returns it
// wrapped as ErrStorageUnavailable.
func (e *Engine) persistFailure(op string, err error, keyvals ...any) error {
	logger.Warn("Deadline persistence failed", append([]any{"op", op, "error", err}, keyvals...)...)
	if e.strict {
		return apperrors.Unavailable(op, err)
	}
	return nil
}

// SeedDeadlines materializes the seed list for company as of today.
func (e *Engine) SeedDeadlines(company models.Company) []models.Deadline {
	return SeedDeadlines(e.catalog, company, e.Today())
}

// DynamicDeadlines returns persisted deadlines in creation order. Records
// that fail to decode are skipped. A store read failure yields an empty list
// in advisory mode.
func (e *Engine) DynamicDeadlines() ([]models.Deadline, error) {
	records, err := e.store.ListRecords(constants.KindDynamicDeadlines)
	if err != nil {
		return nil, e.persistFailure("list deadlines", err, "key", constants.KindDynamicDeadlines)
	}

	out := make([]models.Deadline, 0, len(records))
	for _, rec := range records {
		d, err := decodeDeadline(rec)
		if err != nil {
			logger.Warn("Skipping malformed deadline", "deadline_id", rec.ID, "error", err)
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// AllDeadlines returns the seeded deadlines of every known company followed
// by all dynamic deadlines. No sort is applied.
func (e *Engine) AllDeadlines() ([]models.Deadline, error) {
	companies, err := e.companies.List()
	if err != nil {
		if ferr := e.persistFailure("list companies", err, "key", constants.KindCompanies); ferr != nil {
			return nil, ferr
		}
		companies = nil
	}

	today := e.Today()
	var out []models.Deadline
	for _, c := range companies {
		out = append(out, SeedDeadlines(e.catalog, c, today)...)
	}

	dynamic, err := e.DynamicDeadlines()
	if err != nil {
		return nil, err
	}
	return append(out, dynamic...), nil
}

// DeleteDeadline removes a dynamic deadline. Seeded deadlines are
// regenerated on every read and cannot be deleted.
func (e *Engine) DeleteDeadline(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.store.DeleteRecord(constants.KindDynamicDeadlines, strconv.Itoa(id))
	if err == nil {
		logger.Info("Deleted deadline", "deadline_id", id)
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return apperrors.Unavailable("delete deadline", err)
	}

	if e.isSeedID(id) {
		return ErrSeededDeadline
	}
	return ErrDeadlineNotFound
}

func (e *Engine) isSeedID(id int) bool {
	companies, err := e.companies.List()
	if err != nil {
		return false
	}
	for _, c := range companies {
		base := c.NumericID() * 100
		if id > base && id <= base+len(e.catalog.SeedsFor(c.ID)) {
			return true
		}
	}
	return false
}
