package domain

import "time"

// UserInfo holds a gardener's settings and balance
type UserInfo struct {
	UserID            int64     `json:"user_id"`
	PlantLimit        int       `json:"plant_limit"`
	PotType           string    `json:"pot_type"`
	Experience        int       `json:"experience"`
	LastPlantShopTime time.Time `json:"last_plant_shop_time"`
	PlantPotHue       int       `json:"plant_pot_hue"`
	HasPremium        bool      `json:"has_premium"`
}

// NewUserInfo returns the defaults for a user seen for the first time
func NewUserInfo(userID int64) UserInfo {
	hue := int(userID % HueCircle)
	if hue < 0 {
		hue += HueCircle
	}
	return UserInfo{
		UserID:            userID,
		PlantLimit:        1,
		PotType:           PotTypeClay,
		Experience:        0,
		LastPlantShopTime: SentinelPast,
		PlantPotHue:       hue,
	}
}

// EffectivePlantCap is the highest plant_limit the user may hold
func (u UserInfo) EffectivePlantCap(hardCap, nonSubscriberCap int) int {
	if u.HasPremium {
		return hardCap
	}
	return min(hardCap, nonSubscriberCap)
}

// GardenKey grants a guest permission to water an owner's plants
type GardenKey struct {
	OwnerID   int64     `json:"owner_id"`
	GuestID   int64     `json:"guest_id"`
	CreatedAt time.Time `json:"created_at"`
}
