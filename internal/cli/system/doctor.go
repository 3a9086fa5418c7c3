package system

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/storage"
	"github.com/julianstephens/rokovi/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks never fail the run
	warnOnly bool
	needsDB  bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Seed catalog", needsDB: true, run: checkSeedCatalog},
	{name: "Deadline records", needsDB: true, run: checkDeadlineRecords},
	{name: "Deadline counter", needsDB: true, warnOnly: true, run: checkDeadlineCounter},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if settings.ReminderHorizonDays < 0 {
		return fmt.Errorf("reminder horizon must not be negative, got %d", settings.ReminderHorizonDays)
	}
	if _, err := cron.ParseStandard(settings.ReminderSchedule); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", settings.ReminderSchedule, err)
	}
	return nil
}

func checkSeedCatalog(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if settings.SeedCatalog == "" {
		return deadlines.DefaultCatalog().Validate()
	}
	_, err = deadlines.LoadCatalog(settings.SeedCatalog)
	return err
}

// checkDeadlineRecords fails when stored deadlines cannot be decoded.
func checkDeadlineRecords(ctx *cli.Context) error {
	records, err := ctx.Store.ListRecords(constants.KindDynamicDeadlines)
	if err != nil {
		return fmt.Errorf("failed to list deadlines: %w", err)
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	decoded, err := engine.DynamicDeadlines()
	if err != nil {
		return err
	}
	if bad := len(records) - len(decoded); bad > 0 {
		return fmt.Errorf("found %d malformed deadline record(s); they are skipped when listing", bad)
	}
	return nil
}

// checkDeadlineCounter fails when the stored counter would hand out an id
// that is already in use.
func checkDeadlineCounter(ctx *cli.Context) error {
	next, err := ctx.Store.GetCounter(constants.CounterNextDeadlineID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read counter: %w", err)
	}
	records, err := ctx.Store.ListRecords(constants.KindDynamicDeadlines)
	if err != nil {
		return fmt.Errorf("failed to list deadlines: %w", err)
	}
	for _, rec := range records {
		id, err := strconv.Atoi(rec.ID)
		if err != nil {
			continue
		}
		if id >= next {
			return fmt.Errorf("counter %s=%d is not above stored deadline id %d", constants.CounterNextDeadlineID, next, id)
		}
	}
	return nil
}
