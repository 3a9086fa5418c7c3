package constants

const (
	SettingTimezone             = "timezone"
	SettingStrictPersistence    = "strict_persistence"
	SettingSeedCatalog          = "seed_catalog"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderHorizonDays  = "reminder_horizon_days"
	SettingReminderSchedule     = "reminder_schedule"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultStrictPersistence    = false
	DefaultNotificationsEnabled = true
	DefaultReminderHorizonDays  = 14
	DefaultReminderSchedule     = "0 8 * * *"
)
