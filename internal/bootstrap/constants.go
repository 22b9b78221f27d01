package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept beside the new session
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingGardenBot   = "Starting GardenBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotificationStreamReady    = "Notification stream subscribed"
)

// =============================================================================
// Component Wiring
// =============================================================================

const (
	// JobPoolName and RenderPoolName label the two worker pools
	JobPoolName    = "jobs"
	RenderPoolName = "render"

	// JobPoolWorkers is small because the only periodic job is the lifecycle tick
	JobPoolWorkers   = 1
	JobPoolQueueSize = 4

	// CapabilityCacheSize bounds the in-process capability cache
	CapabilityCacheSize = 4096
)

const (
	LogMsgCatalogLoaded       = "Plant catalog loaded"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgSpriteStoreSelected = "Sprite store selected"
	LogMsgCapabilityCache     = "Capability cache selected"
	LogMsgSchedulerStarted    = "Lifecycle scheduler started"

	ErrMsgFailedConnectDB       = "failed to connect to database"
	ErrMsgFailedMigrate         = "failed to apply migrations"
	ErrMsgFailedLoadCatalog     = "failed to load plant catalog"
	ErrMsgFailedSpriteStore     = "failed to create sprite store"
	ErrMsgFailedCapabilityRedis = "failed to connect capability cache"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgCloseFailed                = "Failed to close component"

	// Component names for shutdown logging
	ComponentTradeManager    = "trade manager"
	ComponentCapabilityCache = "capability cache"
)

// Shutdown log message format (component name will be prepended)
const (
	LogMsgServiceShutdownFailed = " shutdown failed"
)
