package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"

	// Generic service failure message; matches domain.ErrMsgFatal
	ErrMsgTemporarilyUnavailable = "temporarily unavailable"
	ErrMsgUnknownError           = "Unknown error"
)

// Success messages for API responses
const (
	MsgPlantDeleted        = "Plant deleted"
	MsgItemGiven           = "Item given"
	MsgShopRefreshed       = "Shop refreshed"
	MsgKeyGiven            = "Key given"
	MsgKeyRevoked          = "Key revoked"
	MsgTradeCancelled      = "Trade cancelled"
	MsgCapabilityRefreshed = "Capability cache refreshed"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode %s request"
	LogMsgRequestDecoded   = "%s request decoded"
	LogMsgValidationFailed = "%s request failed validation"
	LogMsgServiceFailed    = "%s failed"
	LogMsgServiceRejected  = "%s rejected"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response"
	LogMsgReadinessFailed  = "Readiness check failed"
)

// Header names and content types
const (
	HeaderContentType = "Content-Type"
	HeaderRetryAfter  = "Retry-After"
	ContentTypeJSON   = "application/json"
	ContentTypePNG    = "image/png"
)
