package cooldown

import "time"

const (
	// DefaultCooldownDuration applies to action kinds with no configured duration
	DefaultCooldownDuration = 5 * time.Minute

	// ActionGuestWater is the kind for a guest watering someone else's plant
	ActionGuestWater = "guest_water"

	// ActionSeparator joins an action kind and its subject
	ActionSeparator = ":"
)

const (
	ErrMsgReadCooldownFailed   = "failed to read cooldown"
	ErrMsgRecordCooldownFailed = "failed to record cooldown"
)

const (
	LogMsgDevModeBypass  = "DEV_MODE: Bypassing cooldown check"
	LogMsgCooldownRecord = "Cooldown recorded"
)
