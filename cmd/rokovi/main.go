package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/cli/backups"
	"github.com/julianstephens/rokovi/internal/cli/companies"
	"github.com/julianstephens/rokovi/internal/cli/deadlines"
	"github.com/julianstephens/rokovi/internal/cli/employees"
	"github.com/julianstephens/rokovi/internal/cli/injuries"
	"github.com/julianstephens/rokovi/internal/cli/settings"
	"github.com/julianstephens/rokovi/internal/cli/system"
	"github.com/julianstephens/rokovi/internal/constants"
	apperrors "github.com/julianstephens/rokovi/internal/errors"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/storage/postgres"
)

type rootCmd struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json file, or PostgreSQL connection string (default ~/.config/rokovi/rokovi.db). PostgreSQL passwords must NOT be embedded; use ROKOVI_DB_CONNECTION, .pgpass, or the OS keyring." type:"string"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize rokovi storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Company struct {
		Add    companies.CompanyAddCmd    `cmd:"" help:"Add a company."`
		List   companies.CompanyListCmd   `cmd:"" help:"List companies."`
		Delete companies.CompanyDeleteCmd `cmd:"" help:"Delete a company."`
	} `cmd:"" help:"Manage companies."`
	Employee struct {
		Add  employees.EmployeeAddCmd  `cmd:"" help:"Add an employee."`
		List employees.EmployeeListCmd `cmd:"" help:"List a company's employees."`
	} `cmd:"" help:"Manage employees."`
	Injury struct {
		Add    injuries.InjuryAddCmd    `cmd:"" help:"Record a workplace injury."`
		Notify injuries.InjuryNotifyCmd `cmd:"" help:"Mark an injury as reported to the labour inspectorate."`
		List   injuries.InjuryListCmd   `cmd:"" help:"List injuries."`
	} `cmd:"" help:"Manage workplace injuries."`
	Deadline struct {
		List    deadlines.DeadlineListCmd    `cmd:"" help:"List deadlines, most urgent first." default:"1"`
		Summary deadlines.DeadlineSummaryCmd `cmd:"" help:"Show deadline counts by status."`
		Delete  deadlines.DeadlineDeleteCmd  `cmd:"" help:"Delete a deadline created at runtime."`
	} `cmd:"" help:"Work with deadlines."`
	Remind   deadlines.RemindCmd  `cmd:"" help:"Send a reminder about upcoming deadlines."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

var CLI rootCmd

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("HSE compliance deadline tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}
}

// logDir keeps logs next to a file store, or in the default config directory.
func logDir(configPath string) string {
	if configPath == "" || postgres.IsConnString(configPath) {
		home, err := os.UserHomeDir()
		if err != nil {
			return os.TempDir()
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(configPath)
}

// needsStore reports whether the command expects a loaded store. Init
// handles its own loading and keyring commands never touch storage.
func needsStore(command string) bool {
	return !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring")
}

func main() {
	ctx := kong.Parse(&CLI, parserOptions()...)

	config, fromSecret := cli.ResolveConfig(CLI.Config, CLI.Config != "")
	store, err := cli.OpenStore(config, fromSecret)
	if err != nil {
		apperrors.Fatal(err)
	}

	configPath := ""
	if _, remote := store.(*postgres.Store); !remote {
		configPath = store.GetConfigPath()
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{Store: store}

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
