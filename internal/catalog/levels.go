package catalog

import "github.com/osse101/GardenBot_Go/internal/domain"

// Level is one row of the fixed plant-level table
type Level struct {
	RequiredExperience int
	ExperienceGain     domain.ExperienceRange
}

var plantLevels = [domain.PlantLevelCount]Level{
	{RequiredExperience: 0, ExperienceGain: domain.ExperienceRange{Min: 10, Max: 25}},
	{RequiredExperience: 200, ExperienceGain: domain.ExperienceRange{Min: 30, Max: 80}},
	{RequiredExperience: 500, ExperienceGain: domain.ExperienceRange{Min: 60, Max: 140}},
	{RequiredExperience: 1000, ExperienceGain: domain.ExperienceRange{Min: 100, Max: 220}},
	{RequiredExperience: 1800, ExperienceGain: domain.ExperienceRange{Min: 150, Max: 320}},
	{RequiredExperience: 3000, ExperienceGain: domain.ExperienceRange{Min: 220, Max: 450}},
	{RequiredExperience: 5000, ExperienceGain: domain.ExperienceRange{Min: 300, Max: 600}},
}

// LevelStats returns the table row for a plant level (0..6)
func LevelStats(level int) (Level, bool) {
	if level < 0 || level >= len(plantLevels) {
		return Level{}, false
	}
	return plantLevels[level], true
}

// DefaultDisplayLevels derives the nourishment → growth-frame mapping for a
// plant with the given number of stages: ceil(n*stages/20) for n in 1..20.
func DefaultDisplayLevels(stages int) map[int]int {
	levels := make(map[int]int, displayedNourishment)
	for n := 1; n <= displayedNourishment; n++ {
		levels[n] = (n*stages + displayedNourishment - 1) / displayedNourishment
	}
	return levels
}

// displayedNourishment is the highest nourishment with its own frame; 21 reuses 20.
const displayedNourishment = 20
