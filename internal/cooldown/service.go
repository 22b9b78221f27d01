package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// Reader returns when userID last performed action, or nil if never
type Reader interface {
	GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error)
}

// Store is a Reader that can also record a use. Repository transactions
// implement it so the record commits together with the action it limits.
type Store interface {
	Reader
	SetCooldown(ctx context.Context, userID int64, action string, at time.Time) error
}

// Service checks and records per-user action cooldowns
type Service interface {
	// CheckCooldown is an unlocked read for rejecting repeats before any
	// transaction is opened
	CheckCooldown(ctx context.Context, userID int64, action string, now time.Time) (bool, time.Duration, error)

	// Consume rechecks the cooldown through store and records now as the last
	// use. A rejected call returns domain.CooldownError. store must be the
	// caller's transaction, holding a lock that serializes the user's claims.
	Consume(ctx context.Context, store Store, userID int64, action string, now time.Time) error
}

type service struct {
	reader Reader
	config Config
}

// NewService creates a cooldown service that pre-checks through reader
func NewService(reader Reader, config Config) Service {
	return &service{reader: reader, config: config}
}

func (s *service) CheckCooldown(ctx context.Context, userID int64, action string, now time.Time) (bool, time.Duration, error) {
	if s.config.DevMode {
		return false, 0, nil
	}
	lastUsed, err := s.reader.GetCooldown(ctx, userID, action)
	if err != nil {
		return false, 0, fmt.Errorf("%s: %w", ErrMsgReadCooldownFailed, err)
	}
	onCooldown, remaining := Remaining(now, lastUsed, s.config.GetCooldownDuration(action))
	return onCooldown, remaining, nil
}

func (s *service) Consume(ctx context.Context, store Store, userID int64, action string, now time.Time) error {
	log := logger.FromContext(ctx)

	if s.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "userID", userID)
	} else {
		lastUsed, err := store.GetCooldown(ctx, userID, action)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgReadCooldownFailed, err)
		}
		if onCooldown, remaining := Remaining(now, lastUsed, s.config.GetCooldownDuration(action)); onCooldown {
			return domain.CooldownError{Remaining: remaining}
		}
	}

	if err := store.SetCooldown(ctx, userID, action, now); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRecordCooldownFailed, err)
	}
	log.Debug(LogMsgCooldownRecord, "action", action, "userID", userID)
	return nil
}

// Remaining reports whether a use at lastUsed still blocks at now, and for how long
func Remaining(now time.Time, lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}
	if elapsed := now.Sub(*lastUsed); elapsed < duration {
		return true, duration - elapsed
	}
	return false, 0
}

// GuestWaterAction is the action key for a guest watering one plant
func GuestWaterAction(plantID int64) string {
	return fmt.Sprintf("%s%s%d", ActionGuestWater, ActionSeparator, plantID)
}
