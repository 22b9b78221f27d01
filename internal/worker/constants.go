package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgPoolStarted       = "Worker pool started"
	LogMsgPoolStopped       = "Worker pool stopped"
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// Pool names
const (
	PoolLifecycle = "lifecycle"
	PoolRender    = "render"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
