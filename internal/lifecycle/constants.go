package lifecycle

const (
	ErrMsgBeginTxFailed     = "failed to begin lifecycle transaction"
	ErrMsgCommitTxFailed    = "failed to commit lifecycle transaction"
	ErrMsgKillOverdueFailed = "failed to kill overdue plants"
	ErrMsgAchievementFailed = "failed to record plant death"
	ErrMsgMaxLifetimeFailed = "failed to update max plant lifetime"
	ErrMsgMarkWiltingFailed = "failed to mark wilting plants"
)

const (
	LogMsgTickStarted   = "Lifecycle tick started"
	LogMsgTickCompleted = "Lifecycle tick completed"
	LogMsgPlantDied     = "Plant died"
	LogMsgPublishFailed = "Failed to publish lifecycle event"
)
