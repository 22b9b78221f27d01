package domain

// ExperienceRange is the inclusive experience granted per watering
type ExperienceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PlantType is an immutable catalog entry loaded from a plant pack
type PlantType struct {
	Name                     string          `json:"name"`
	DisplayName              string          `json:"display_name"`
	SoilHue                  int             `json:"soil_hue"`
	Visible                  bool            `json:"visible"`
	Available                bool            `json:"available"`
	Artist                   string          `json:"artist"`
	Stages                   int             `json:"stages"`
	NourishmentDisplayLevels map[int]int     `json:"nourishment_display_levels"`
	PlantLevel               int             `json:"plant_level"`
	RequiredExperience       int             `json:"required_experience"`
	ExperienceGain           ExperienceRange `json:"experience_gain"`
}

// MaxNourishment is the saturation level for every plant type
func (p PlantType) MaxNourishment() int {
	return MaxNourishmentLevel
}

// DisplayLevel maps a nourishment value to the rendered growth frame.
// Missing entries walk down to the nearest lower nourishment; values <= 0 use 1.
func (p PlantType) DisplayLevel(nourishment int) int {
	if nourishment <= 0 {
		nourishment = 1
	}
	if nourishment > MaxNourishmentLevel {
		nourishment = MaxNourishmentLevel
	}
	for n := nourishment; n >= 1; n-- {
		if level, ok := p.NourishmentDisplayLevels[n]; ok {
			return level
		}
	}
	return 1
}

// Item is a purchasable catalog item
type Item struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Price       int    `json:"price"`
}

// Artist credits the author of a plant's sprites
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}
