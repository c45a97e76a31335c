package constants

import "time"

// ParameterType is the declared value type of a parameter
type ParameterType string

// GoalOperator is the comparison applied between a logged value and the goal value
type GoalOperator string

// GoalStatus is the completion state of a discrete goal
type GoalStatus string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName               = "progresio"
	DefaultKeyringUser    = "database-connection"
	EncryptionKeyringUser = "field-encryption-key"
	DefaultConfigDir      = "~/.config/progresio"
	DefaultConfigPath     = "~/.config/progresio/progresio.db"
	DefaultConfigFile     = "config.yaml"
	Version               = "v0.3.0"

	// Environment overrides
	EnvDBConnection  = "PROGRESIO_DB_CONNECTION"
	EnvEncryptionKey = "PROGRESIO_ENCRYPTION_KEY"
	EnvDebug         = "PROGRESIO_DEBUG"
	EnvTestPostgres  = "PROGRESIO_TEST_POSTGRES"

	DefaultHistoryDays     = 14
	DefaultOverviewWorkers = 4

	// DateFormat is the calendar-day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "progresio-"
	BackupFileSuffix = ".db"

	// Parameter types
	ParameterNumber  ParameterType = "number"
	ParameterBoolean ParameterType = "boolean"
	ParameterString  ParameterType = "string"

	// Goal operators
	OperatorEqual        GoalOperator = "="
	OperatorGreater      GoalOperator = ">"
	OperatorLess         GoalOperator = "<"
	OperatorGreaterEqual GoalOperator = ">="
	OperatorLessEqual    GoalOperator = "<="

	// Goal statuses
	GoalActive    GoalStatus = "Active"
	GoalCompleted GoalStatus = "Completed"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateGoals
	StateLogEntry
)

// PostgresPoolLifetime bounds how long a pooled PostgreSQL connection is reused
const PostgresPoolLifetime = 5 * time.Minute

// ParameterTypes lists every supported parameter type in display order
var ParameterTypes = []ParameterType{ParameterNumber, ParameterBoolean, ParameterString}

// GoalOperators lists every supported operator in display order
var GoalOperators = []GoalOperator{
	OperatorGreaterEqual,
	OperatorLessEqual,
	OperatorEqual,
	OperatorGreater,
	OperatorLess,
}
