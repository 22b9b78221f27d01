package domain

// UserAchievements is the set of per-user counters
type UserAchievements struct {
	UserID           int64 `json:"user_id"`
	WaterCount       int64 `json:"water_count"`
	GiveCount        int64 `json:"give_count"`
	TradeCount       int64 `json:"trade_count"`
	ReviveCount      int64 `json:"revive_count"`
	ImmortalizeCount int64 `json:"immortalize_count"`
	MaxPlantLifetime int64 `json:"max_plant_lifetime"` // seconds
	DeathsTotal      int64 `json:"deaths_total"`
}

// PlantAchievements is the set of per-(user, plant type) counters
type PlantAchievements struct {
	UserID              int64  `json:"user_id"`
	PlantType           string `json:"plant_type"`
	PlantCount          int64  `json:"plant_count"`
	PlantDeathCount     int64  `json:"plant_death_count"`
	MaxPlantNourishment int64  `json:"max_plant_nourishment"`
}

// Achievements bundles both counter tables for a user
type Achievements struct {
	User   UserAchievements    `json:"user"`
	Plants []PlantAchievements `json:"plants"`
}
