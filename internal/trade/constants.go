package trade

import "time"

// ==================== Timeouts ====================

const (
	DefaultAcceptTimeout  = 120 * time.Second
	DefaultSelectTimeout  = 30 * time.Second
	DefaultConfirmTimeout = 30 * time.Second

	// DefaultFinishedRetention keeps ended trades queryable by id
	DefaultFinishedRetention = 10 * time.Minute
	finishedCacheSize        = 1024
)

// ==================== Error Messages ====================

const (
	ErrMsgBeginTxFailed     = "failed to begin transaction"
	ErrMsgCommitTxFailed    = "failed to commit transaction"
	ErrMsgGetUserFailed     = "failed to lock user"
	ErrMsgListPlantsFailed  = "failed to list plants"
	ErrMsgDeletePlantFailed = "failed to delete plant"
	ErrMsgInsertPlantFailed = "failed to insert plant"
	ErrMsgCheckNameFailed   = "failed to check plant name"
	ErrMsgAchievementFailed = "failed to increment achievement"
)

// ==================== Log Messages ====================

const (
	LogMsgTradeOffered   = "Trade offered"
	LogMsgTradeAccepted  = "Trade accepted"
	LogMsgPlantSelected  = "Trade plant selected"
	LogMsgTradeConfirmed = "Trade confirmed"
	LogMsgTradeCommitted = "Trade committed"
	LogMsgTradeAborted   = "Trade aborted"
	LogMsgTradeTimedOut  = "Trade timed out"
	LogMsgCommitFailed   = "Trade commit failed"
	LogMsgPublishFailed  = "Failed to publish event"
	LogMsgShuttingDown   = "Shutting down trade manager"
)
