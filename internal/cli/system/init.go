package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/storage/postgres"
)

var migratedKinds = []string{
	constants.KindCompanies,
	constants.KindEmployees,
	constants.KindInjuries,
	constants.KindDynamicDeadlines,
}

var migratedCounters = []string{
	constants.CounterNextDeadlineID,
	constants.CounterNextInjuryID,
}

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

// isFileStore reports whether the store lives in a local file.
func isFileStore(store storage.Provider) bool {
	_, remote := store.(*postgres.Store)
	return !remote
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !isFileStore(ctx.Store) {
		return fmt.Errorf("--force is only supported for file-based storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if absDbPath, err := filepath.Abs(dbPath); err == nil {
		dbPath = absDbPath
	}
	// Don't delete if it's the source
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release file locks
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// migrateData copies settings, counters and every record kind from the
// source store. Records keep their ids and timestamps.
func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := cli.OpenStore(sourcePath, false)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating counters...")
	for _, key := range migratedCounters {
		value, err := sourceStore.GetCounter(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to get counter %s from source: %w", key, err)
		}
		if err := ctx.Store.SetCounter(key, value); err != nil {
			return fmt.Errorf("failed to set counter %s: %w", key, err)
		}
	}

	for _, kind := range migratedKinds {
		fmt.Printf("  Migrating %s...\n", kind)
		records, err := sourceStore.ListRecords(kind)
		if err != nil {
			return fmt.Errorf("failed to list %s from source: %w", kind, err)
		}
		for _, rec := range records {
			if err := ctx.Store.PutRecord(kind, rec); err != nil {
				return fmt.Errorf("failed to copy %s %s: %w", kind, rec.ID, err)
			}
		}
		fmt.Printf("    Migrated %d %s\n", len(records), kind)
	}

	return nil
}
