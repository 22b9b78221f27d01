package cooldown

import (
	"strings"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Cooldowns maps action kinds to their durations
	// If not specified, defaults from domain package are used
	Cooldowns map[string]time.Duration
}

// GetCooldownDuration returns the cooldown duration for an action.
// Actions are "<kind>:<subject>"; the duration is looked up by kind.
func (c *Config) GetCooldownDuration(action string) time.Duration {
	kind, _, _ := strings.Cut(action, ActionSeparator)

	// Check custom overrides first
	if c.Cooldowns != nil {
		if duration, ok := c.Cooldowns[kind]; ok {
			return duration
		}
	}

	// Fall back to defaults
	switch kind {
	case ActionGuestWater:
		return domain.DefaultGuestWaterCooldown
	default:
		// Unknown action - use default
		return DefaultCooldownDuration
	}
}
