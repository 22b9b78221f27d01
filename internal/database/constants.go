package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Migration Constants
const (
	// MigrationsDir is the embedded directory holding goose SQL migrations
	MigrationsDir = "migrations"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToCreateMigrator   = "failed to create migration provider"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgFailedToRevertMigration  = "failed to revert migration"
	ErrMsgFailedToGetMigrationInfo = "failed to get migration status"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Migration applied"
	LogMsgMigrationReverted               = "Migration reverted"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
)
