package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// MaxDroppedEvents is how many events in a row a client may miss before it is disconnected
const MaxDroppedEvents = 20

// KeepaliveInterval is how often to send keepalive pings
const KeepaliveInterval = 30 * time.Second

// Stream-only event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes selects which event types a client receives
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
	LogMsgClientEvicted      = "SSE client too slow, disconnecting"
	LogMsgBadFilter          = "SSE client requested an unknown event type"
)

const (
	// ErrMsgStreamingUnsupported is returned when the writer cannot flush
	ErrMsgStreamingUnsupported = "SSE not supported"
	ErrMsgUnknownEventType     = "unknown garden event type"
)
