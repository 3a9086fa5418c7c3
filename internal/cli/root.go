package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/rokovi/internal/backup"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/registry"
	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/storage/sqlite"
	"github.com/julianstephens/rokovi/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Clock overrides the wall clock. Nil means time.Now.
	Clock func() time.Time

	registry *registry.Registry
	engine   *deadlines.Engine
}

func (c *Context) clock() func() time.Time {
	if c.Clock != nil {
		return c.Clock
	}
	return time.Now
}

// Now returns the current time from the context clock.
func (c *Context) Now() time.Time {
	return c.clock()()
}

// Registry returns the company, employee and injury repositories.
func (c *Context) Registry() *registry.Registry {
	if c.registry == nil {
		c.registry = registry.New(c.Store)
	}
	return c.registry
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Engine builds the deadline engine from the stored settings on first use.
func (c *Context) Engine() (*deadlines.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}

	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	opts := []deadlines.Option{
		deadlines.WithClock(c.clock()),
		deadlines.WithLocation(loc),
		deadlines.WithStrict(settings.StrictPersistence),
	}
	if settings.SeedCatalog != "" {
		catalog, err := deadlines.LoadCatalog(settings.SeedCatalog)
		if err != nil {
			return nil, err
		}
		opts = append(opts, deadlines.WithCatalog(catalog))
	}

	engine := deadlines.New(c.Store, c.Registry().Companies, opts...)
	if err := engine.Init(); err != nil {
		return nil, err
	}
	c.engine = engine
	return engine, nil
}

// SaveInjury stores the injury and lets the engine react to the change.
func (c *Context) SaveInjury(injury models.Injury) (models.Injury, error) {
	engine, err := c.Engine()
	if err != nil {
		return models.Injury{}, err
	}

	previous, saved, err := c.Registry().Injuries.Save(injury)
	if err != nil {
		return models.Injury{}, err
	}
	if err := engine.OnInjurySaved(previous, saved); err != nil {
		return saved, fmt.Errorf("injury %d saved but deadline update failed: %w", saved.ID, err)
	}
	return saved, nil
}

// BackupManager returns a backup manager for SQLite stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
