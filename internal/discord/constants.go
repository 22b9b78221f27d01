package discord

import "time"

// API client settings
const (
	apiRequestTimeout = 10 * time.Second
	apiMaxRetries     = 3
	apiRetryDelay     = 500 * time.Millisecond
	apiErrorPrefix    = "API error: "
	maxImageBytes     = 8 << 20
	maxErrorBodyBytes = 4 << 10

	// interactionTimeout bounds the API work behind one interaction
	interactionTimeout = 15 * time.Second
)

// Log messages
const (
	LogMsgRetryingRequest  = "Retrying API request"
	LogMsgRequestFailed    = "API request failed"
	LogMsgServerErrorRetry = "Server error, will retry"
	LogMsgActionFailed     = "Action failed"
	LogMsgResponseFailed   = "Failed to send response"
	LogMsgDeferFailed      = "Failed to send deferred response"
	LogMsgUnknownComponent = "Unhandled component interaction"
	LogMsgAutocompleteFail = "Failed to load autocomplete choices"
)

// Embed colors
const (
	ColorSuccess = 0x2ecc71
	ColorInfo    = 0x3498db
	ColorWarning = 0xf39c12
	ColorDanger  = 0xe74c3c
	ColorGarden  = 0x27ae60
	ColorTrade   = 0x9b59b6
	ColorNeutral = 0x95a5a6
)

// Footer constants for standardized embed footers
const (
	FooterGardenBot = "GardenBot"
	FooterTrade     = "GardenBot Trading"
)

// Component custom IDs are "<prefix>:<trade id>"
const (
	customIDSeparator    = ":"
	CustomIDTradeAccept  = "trade_accept"
	CustomIDTradeDecline = "trade_decline"
	CustomIDTradeSelect  = "trade_select"
	CustomIDTradeConfirm = "trade_confirm"
	CustomIDTradeCancel  = "trade_cancel"
)

// Discord limits
const (
	maxAutocompleteChoices = 25
	maxSelectOptions       = 25
	maxEmbedFields         = 25
)

// Image attachment names
const (
	attachmentPlant    = "plant.png"
	attachmentGarden   = "garden.png"
	attachmentHerbiary = "herbiary.png"
)
