package models

import (
	"fmt"

	"github.com/julianstephens/rokovi/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingStrictPersistence:
			settings.StrictPersistence = value == "true"
		case constants.SettingSeedCatalog:
			settings.SeedCatalog = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingReminderHorizonDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderHorizonDays); err != nil {
				return Settings{}, fmt.Errorf("parsing reminder_horizon_days: %w", err)
			}
		case constants.SettingReminderSchedule:
			settings.ReminderSchedule = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingStrictPersistence:    fmt.Sprintf("%v", settings.StrictPersistence),
		constants.SettingSeedCatalog:          settings.SeedCatalog,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingReminderHorizonDays:  fmt.Sprintf("%d", settings.ReminderHorizonDays),
		constants.SettingReminderSchedule:     settings.ReminderSchedule,
	}
}

// DefaultSettings returns the settings written by a fresh `init`.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		StrictPersistence:    constants.DefaultStrictPersistence,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		ReminderHorizonDays:  constants.DefaultReminderHorizonDays,
		ReminderSchedule:     constants.DefaultReminderSchedule,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ReminderHorizonDays == 0 {
		settings.ReminderHorizonDays = constants.DefaultReminderHorizonDays
	}
	if settings.ReminderSchedule == "" {
		settings.ReminderSchedule = constants.DefaultReminderSchedule
	}
}
