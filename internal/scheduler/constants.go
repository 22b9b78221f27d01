package scheduler

// LogMsgEnqueueFailed is logged when a scheduled job cannot be queued
const LogMsgEnqueueFailed = "Failed to enqueue scheduled job"
