package domain

import "time"

// Item internal name constants - stable code identifiers
const (
	ItemRevivalToken       = "revival_token"
	ItemRefreshToken       = "refresh_token"
	ItemImmortalPlantJuice = "immortal_plant_juice"
	ItemPlantPot           = "plant_pot" // virtual, dynamically priced
)

// Pot types
const (
	PotTypeClay = "clay"
)

// Plant growth limits
const (
	MaxNourishmentLevel = 21
	MaxPlantNameLength  = 50
	PlantLevelCount     = 7 // plant levels 0..6
	VisibleRosterLevels = 5 // levels 0..4 are offered in the shop
	DefaultPlantVariant = 0
	HueCircle           = 360
)

// Default timings and caps; overridable through configuration
const (
	DefaultWaterCooldown      = 15 * time.Minute
	DefaultDeathTimeout       = 72 * time.Hour
	DefaultGuestWaterCooldown = 60 * time.Minute
	DefaultNotificationTime   = 1 * time.Hour
	DefaultHardPlantCap       = 10
	DefaultNonSubscriberCap   = 5
	DefaultRevivalTokenPrice  = 300
	DefaultRefreshTokenPrice  = 200
	DefaultImmortalJuicePrice = 2500
)

// Watering bonus parameters
const (
	QuickWaterWindow   = 30 * time.Second
	VoteBonusWindow    = 12 * time.Hour
	MaturePlantAge     = 7 * 24 * time.Hour
	LifecycleTickEvery = 1 * time.Minute
)

// Multiplier names reported in WaterResult
const (
	MultiplierPremium    = "premium"
	MultiplierQuickWater = "quick_water"
	MultiplierGuest      = "not_original_owner"
	MultiplierVoted      = "voted"
	MultiplierMature     = "mature_plant"
	MultiplierImmortal   = "immortal"
)

// SentinelPast is the "long past" instant used for fresh plants and forced
// shop rotations.
var SentinelPast = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
