package constants

import "time"

const (
	AppName            = "rokovi"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/rokovi/rokovi.db"
	Version            = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string when none is given on the command line
	EnvDBConnection = "ROKOVI_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is accepted for injury timestamps entered by hand
	DateTimeFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "rokovi-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "rokovi-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.rokovi"
	TrayExecutablePrefix   = "rokovi-tray"
)

// Record kinds and counter keys shared by every storage provider.
const (
	KindCompanies        = "companies"
	KindEmployees        = "employees"
	KindInjuries         = "injuries"
	KindDynamicDeadlines = "dynamicDeadlines"

	CounterNextDeadlineID = "nextDeadlineId"
	CounterNextInjuryID   = "nextInjuryId"

	// DynamicDeadlineIDStart is the first id handed out to runtime-created deadlines.
	// Seeded deadlines use companyID*100+n and stay below it for company ids < 100.
	DynamicDeadlineIDStart = 10000
	InjuryIDStart          = 1

	// MaxNumericCompanyID is the largest numeric company id whose seeded block
	// (id*100+1 .. id*100+99) stays below DynamicDeadlineIDStart.
	MaxNumericCompanyID = DynamicDeadlineIDStart/100 - 1
)

// Injury notification deadline fields.
const (
	AreaOccupationalSafety       = "Occupational Safety"
	ObligationInjuryNotification = "Injury inspection notification"
	InjuryNotificationWindow     = 24 * time.Hour
	CompletedLabel               = "Completed"
)
