package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name or "Local"
	StrictPersistence    bool   `json:"strict_persistence"`    // surface deadline persistence failures instead of logging them
	SeedCatalog          string `json:"seed_catalog"`          // optional YAML seed catalog path; empty uses the built-in catalog
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminders are sent to the tray app
	ReminderHorizonDays  int    `json:"reminder_horizon_days"` // include deadlines due within this many days in reminders
	ReminderSchedule     string `json:"reminder_schedule"`     // cron schedule for `remind --watch`
}
