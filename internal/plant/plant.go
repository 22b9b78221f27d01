// Package plant holds the plant state machine. Every function is pure: it
// inspects or mutates a domain.UserPlant value and never touches storage.
package plant

import (
	"fmt"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// State is an observable plant state
type State string

const (
	StateSeeded          State = "seeded"
	StateGrowing         State = "growing"
	StateWilting         State = "wilting"
	StateDead            State = "dead"
	StateImmortalGrowing State = "immortal_growing"
)

// Timings are the configurable durations the state machine depends on
type Timings struct {
	WaterCooldown    time.Duration
	DeathTimeout     time.Duration
	NotificationTime time.Duration
}

// DefaultTimings returns the stock durations
func DefaultTimings() Timings {
	return Timings{
		WaterCooldown:    domain.DefaultWaterCooldown,
		DeathTimeout:     domain.DefaultDeathTimeout,
		NotificationTime: domain.DefaultNotificationTime,
	}
}

// StateOf classifies p at now. Wilting is reported in place of Growing when
// death is within NotificationTime.
func (t Timings) StateOf(p domain.UserPlant, now time.Time) State {
	switch {
	case p.Nourishment == 0:
		return StateSeeded
	case p.Nourishment < 0:
		return StateDead
	case p.Immortal:
		return StateImmortalGrowing
	case t.IsWilting(p, now):
		return StateWilting
	default:
		return StateGrowing
	}
}

// CanWater checks the watering preconditions. Dead plants fail with
// ErrPlantIsDead; a plant still on cooldown fails with domain.CooldownError.
// Seeded plants bypass the cooldown. On success it returns how long ago the
// cooldown expired, or zero for Seeded plants.
func (t Timings) CanWater(p domain.UserPlant, now time.Time) (time.Duration, error) {
	if p.IsDead() {
		return 0, fmt.Errorf("%w: %s", domain.ErrPlantIsDead, p.Name)
	}
	if p.IsSeeded() {
		return 0, nil
	}
	readyAt := p.LastWaterTime.Add(t.WaterCooldown)
	if now.Before(readyAt) {
		return 0, domain.CooldownError{Remaining: readyAt.Sub(now)}
	}
	return now.Sub(readyAt), nil
}

// QuickWater reports whether p is watered within QuickWaterWindow of its
// cooldown expiring. Seeded plants never qualify.
func (t Timings) QuickWater(p domain.UserPlant, now time.Time) bool {
	if !p.IsAlive() {
		return false
	}
	since := now.Sub(p.LastWaterTime.Add(t.WaterCooldown))
	return since >= 0 && since <= domain.QuickWaterWindow
}

// Water grows p by one stage, saturating at the maximum, and records now
func Water(p *domain.UserPlant, now time.Time) {
	p.Nourishment = min(p.Nourishment+1, domain.MaxNourishmentLevel)
	p.LastWaterTime = now
	p.NotificationSent = false
}

// Kill marks a growing mortal plant dead, keeping its growth stage
func Kill(p *domain.UserPlant) {
	if p.Nourishment > 0 && !p.Immortal {
		p.Nourishment = -p.Nourishment
	}
}

// Revive returns a dead plant to Seeded with its cooldown already expired
func (t Timings) Revive(p *domain.UserPlant, now time.Time) error {
	if !p.IsDead() {
		return fmt.Errorf("%w: %s", domain.ErrPlantNotDead, p.Name)
	}
	p.Nourishment = 0
	p.LastWaterTime = now.Add(-t.WaterCooldown)
	p.NotificationSent = false
	return nil
}

// Immortalize exempts p from death. Dead and already immortal plants are rejected.
func Immortalize(p *domain.UserPlant) error {
	if p.IsDead() {
		return fmt.Errorf("%w: %s", domain.ErrPlantIsDead, p.Name)
	}
	if p.Immortal {
		return fmt.Errorf("%w: %s", domain.ErrPlantImmortal, p.Name)
	}
	p.Immortal = true
	return nil
}

// IsOverdue reports whether the lifecycle worker should kill p at now.
// A plant watered exactly DeathTimeout ago is not yet overdue.
func (t Timings) IsOverdue(p domain.UserPlant, now time.Time) bool {
	return p.Nourishment > 0 && !p.Immortal && now.Sub(p.LastWaterTime) > t.DeathTimeout
}

// IsWilting reports whether a growing mortal plant is within NotificationTime of death
func (t Timings) IsWilting(p domain.UserPlant, now time.Time) bool {
	if p.Nourishment <= 0 || p.Immortal {
		return false
	}
	return now.Sub(p.LastWaterTime) > t.DeathTimeout-t.NotificationTime
}

// DiesAt is the instant after which a mortal plant is overdue
func (t Timings) DiesAt(p domain.UserPlant) time.Time {
	return p.LastWaterTime.Add(t.DeathTimeout)
}

// TradeWaterTime is the last_water_time a traded plant carries to its new
// owner: kept while still on cooldown, otherwise moved to now - WaterCooldown.
func (t Timings) TradeWaterTime(p domain.UserPlant, now time.Time) time.Time {
	if now.Before(p.LastWaterTime.Add(t.WaterCooldown)) {
		return p.LastWaterTime
	}
	return now.Add(-t.WaterCooldown)
}
