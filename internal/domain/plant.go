package domain

import "time"

// UserPlant is a single plant owned by a user
type UserPlant struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	PlantType        string    `json:"plant_type"`
	PlantVariant     int       `json:"plant_variant"`
	Nourishment      int       `json:"nourishment"`
	LastWaterTime    time.Time `json:"last_water_time"`
	OriginalOwnerID  int64     `json:"original_owner_id"`
	PlantPotHue      int       `json:"plant_pot_hue"`
	AdoptionTime     time.Time `json:"adoption_time"`
	NotificationSent bool      `json:"notification_sent"`
	Immortal         bool      `json:"immortal"`
}

// IsDead reports whether the plant has died
func (p UserPlant) IsDead() bool {
	return p.Nourishment < 0
}

// IsSeeded reports whether the plant has never been watered (or was revived)
func (p UserPlant) IsSeeded() bool {
	return p.Nourishment == 0
}

// IsAlive reports whether the plant is growing
func (p UserPlant) IsAlive() bool {
	return p.Nourishment > 0
}

// Growth returns the absolute nourishment, the plant's growth stage
func (p UserPlant) Growth() int {
	if p.Nourishment < 0 {
		return -p.Nourishment
	}
	return p.Nourishment
}

// Multiplier is one applied experience factor
type Multiplier struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// WaterResult is returned by a successful watering
type WaterResult struct {
	Success            bool         `json:"success"`
	PlantName          string       `json:"plant_name"`
	NewNourishment     int          `json:"new_nourishment"`
	OriginalExperience int          `json:"original_experience"`
	GainedExperience   int          `json:"gained_experience"`
	Multipliers        []Multiplier `json:"multipliers"`
}

// DeadPlant is a row returned by the lifecycle bulk kill
type DeadPlant struct {
	PlantID      int64     `json:"plant_id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	PlantType    string    `json:"plant_type"`
	Nourishment  int       `json:"nourishment"`
	AdoptionTime time.Time `json:"adoption_time"`
}
