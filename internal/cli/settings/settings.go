package settings

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone used for due dates (or Local)."`
	StrictPersistence    *bool   `help:"Fail deadline operations when storage is unavailable instead of logging."`
	SeedCatalog          *string `help:"Path to a YAML seed catalog (empty for the built-in catalog)."`
	NotificationsEnabled *bool   `help:"Enable or disable reminder notifications."`
	ReminderHorizonDays  *int    `help:"Remind about deadlines due within this many days."`
	ReminderSchedule     *string `help:"Cron schedule for 'remind --watch'."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		printSettings(settings)
		return nil
	}

	updated, err := c.apply(&settings)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

// apply validates and copies every flag that was given onto settings.
func (c *SettingsCmd) apply(settings *models.Settings) (bool, error) {
	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return false, fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.StrictPersistence != nil {
		settings.StrictPersistence = *c.StrictPersistence
		updated = true
	}
	if c.SeedCatalog != nil {
		if *c.SeedCatalog != "" {
			if _, err := deadlines.LoadCatalog(*c.SeedCatalog); err != nil {
				return false, err
			}
		}
		settings.SeedCatalog = *c.SeedCatalog
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.ReminderHorizonDays != nil {
		if *c.ReminderHorizonDays < 1 {
			return false, fmt.Errorf("reminder horizon must be at least 1 day")
		}
		settings.ReminderHorizonDays = *c.ReminderHorizonDays
		updated = true
	}
	if c.ReminderSchedule != nil {
		if _, err := cron.ParseStandard(*c.ReminderSchedule); err != nil {
			return false, fmt.Errorf("invalid reminder schedule %q: %w", *c.ReminderSchedule, err)
		}
		settings.ReminderSchedule = *c.ReminderSchedule
		updated = true
	}
	return updated, nil
}

func printSettings(settings models.Settings) {
	catalog := settings.SeedCatalog
	if catalog == "" {
		catalog = "(built-in)"
	}
	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:              %s\n", settings.Timezone)
	fmt.Printf("  Strict Persistence:    %v\n", settings.StrictPersistence)
	fmt.Printf("  Seed Catalog:          %s\n", catalog)
	fmt.Println("\nReminder Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	fmt.Printf("  Horizon:               %d days\n", settings.ReminderHorizonDays)
	fmt.Printf("  Schedule:              %s\n", settings.ReminderSchedule)
}
