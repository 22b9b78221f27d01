package capability

import "time"

// Kind names a capability that can be looked up
type Kind string

const (
	KindPremium Kind = "premium"
	KindVote    Kind = "vote"
)

// Cache lifetimes per kind
const (
	PremiumTTL = 5 * time.Minute
	VoteTTL    = 1 * time.Minute
)

// DefaultTimeout bounds a single external lookup
const DefaultTimeout = 2 * time.Second

// DefaultCacheSize is the number of users kept per kind in the in-process cache
const DefaultCacheSize = 4096

// RedisKeyPrefix namespaces capability entries in a shared Redis
const RedisKeyPrefix = "garden:capability"

// Query parameters and headers of the external APIs
const (
	PremiumQueryUserID  = "user_id"
	VoteQueryUserID     = "userId"
	HeaderAuthorization = "Authorization"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgLookupFailed     = "Capability lookup failed, degrading to false"
	LogMsgCacheReadFailed  = "Capability cache read failed"
	LogMsgCacheWriteFailed = "Capability cache write failed"
	LogMsgRefreshed        = "Capability cache cleared"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgUnexpectedStatus = "unexpected status %d from %s"
	ErrMsgDecodeFailed     = "failed to decode %s response: %w"
	ErrMsgBuildRequest     = "failed to build %s request: %w"
)

func ttlFor(kind Kind) time.Duration {
	if kind == KindVote {
		return VoteTTL
	}
	return PremiumTTL
}
