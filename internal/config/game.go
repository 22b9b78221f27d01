package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// GameConfig holds the gameplay tunables read from the garden YAML file
type GameConfig struct {
	Plants PlantsConfig `yaml:"plants"`
	OAuth  OAuthConfig  `yaml:"oauth"`
}

// PlantsConfig mirrors the plants.* keys
type PlantsConfig struct {
	WaterCooldown           time.Duration `yaml:"water_cooldown"`
	DeathTimeout            time.Duration `yaml:"death_timeout"`
	GuestWaterCooldown      time.Duration `yaml:"guest_water_cooldown"`
	NotificationTime        time.Duration `yaml:"notification_time"`
	HardPlantCap            int           `yaml:"hard_plant_cap"`
	NonSubscriberPlantCap   int           `yaml:"non_subscriber_plant_cap"`
	RevivalTokenPrice       int           `yaml:"revival_token_price"`
	RefreshTokenPrice       int           `yaml:"refresh_token_price"`
	ImmortalPlantJuicePrice int           `yaml:"immortal_plant_juice_price"`
}

// OAuthConfig mirrors the oauth.* keys
type OAuthConfig struct {
	ClientID string `yaml:"client_id"`
}

// DefaultGameConfig returns the built-in gameplay defaults
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Plants: PlantsConfig{
			WaterCooldown:           domain.DefaultWaterCooldown,
			DeathTimeout:            domain.DefaultDeathTimeout,
			GuestWaterCooldown:      domain.DefaultGuestWaterCooldown,
			NotificationTime:        domain.DefaultNotificationTime,
			HardPlantCap:            domain.DefaultHardPlantCap,
			NonSubscriberPlantCap:   domain.DefaultNonSubscriberCap,
			RevivalTokenPrice:       domain.DefaultRevivalTokenPrice,
			RefreshTokenPrice:       domain.DefaultRefreshTokenPrice,
			ImmortalPlantJuicePrice: domain.DefaultImmortalJuicePrice,
		},
	}
}

// LoadGameConfig reads the YAML file at path on top of the defaults.
// A missing file yields the defaults.
func LoadGameConfig(path string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return GameConfig{}, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	if err := ParseGameConfig(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse game config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig decodes YAML into cfg, keeping existing values for absent keys
func ParseGameConfig(data []byte, cfg *GameConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate rejects settings the game cannot run with
func (g GameConfig) Validate() error {
	p := g.Plants
	switch {
	case p.WaterCooldown <= 0:
		return fmt.Errorf("plants.water_cooldown must be positive, got %s", p.WaterCooldown)
	case p.DeathTimeout <= 0:
		return fmt.Errorf("plants.death_timeout must be positive, got %s", p.DeathTimeout)
	case p.GuestWaterCooldown <= 0:
		return fmt.Errorf("plants.guest_water_cooldown must be positive, got %s", p.GuestWaterCooldown)
	case p.NotificationTime < 0 || p.NotificationTime >= p.DeathTimeout:
		return fmt.Errorf("plants.notification_time must be within [0, death_timeout), got %s", p.NotificationTime)
	case p.HardPlantCap < 1:
		return fmt.Errorf("plants.hard_plant_cap must be at least 1, got %d", p.HardPlantCap)
	case p.NonSubscriberPlantCap < 1 || p.NonSubscriberPlantCap > p.HardPlantCap:
		return fmt.Errorf("plants.non_subscriber_plant_cap must be within [1, hard_plant_cap], got %d", p.NonSubscriberPlantCap)
	case p.RevivalTokenPrice < 0 || p.RefreshTokenPrice < 0 || p.ImmortalPlantJuicePrice < 0:
		return fmt.Errorf("plants item prices must not be negative")
	}
	return nil
}

// ItemPrices returns the configured price per consumable item
func (p PlantsConfig) ItemPrices() map[string]int {
	return map[string]int{
		domain.ItemRevivalToken:       p.RevivalTokenPrice,
		domain.ItemRefreshToken:       p.RefreshTokenPrice,
		domain.ItemImmortalPlantJuice: p.ImmortalPlantJuicePrice,
	}
}
