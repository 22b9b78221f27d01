package shop

import (
	"math/rand"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// GenerateRoster draws up to seven distinct available plants for userID.
// Plants from the previous roster are only drawn once the rest of the pool
// runs out, so consecutive months are disjoint whenever the catalog allows.
func GenerateRoster(userID int64, available []domain.PlantType, previous *domain.ShopRoster, now time.Time, rng *rand.Rand) domain.ShopRoster {
	seen := make(map[string]bool, domain.PlantLevelCount)
	if previous != nil {
		for _, name := range previous.Names() {
			seen[name] = true
		}
	}

	var fresh, repeat []string
	for _, p := range available {
		if seen[p.Name] {
			repeat = append(repeat, p.Name)
		} else {
			fresh = append(fresh, p.Name)
		}
	}
	rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
	rng.Shuffle(len(repeat), func(i, j int) { repeat[i], repeat[j] = repeat[j], repeat[i] })
	pool := append(fresh, repeat...)

	roster := domain.ShopRoster{UserID: userID, LastShopTimestamp: now}
	for level := 0; level < domain.PlantLevelCount && level < len(pool); level++ {
		roster.PlantLevels[level] = pool[level]
	}
	return roster
}

// IsStale reports whether the roster was drawn in a different UTC month
func IsStale(roster domain.ShopRoster, now time.Time) bool {
	drawn := roster.LastShopTimestamp.UTC()
	now = now.UTC()
	return drawn.Year() != now.Year() || drawn.Month() != now.Month()
}

// NextRotation is the start of the UTC month after now
func NextRotation(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// PotPrice is the cost of raising plant_limit from limit to limit+1
func PotPrice(limit int) int {
	if limit < potQuadraticLimit {
		return potQuadraticBase * limit * limit
	}
	return potLinearStep*(limit-(potQuadraticLimit-1)) + potLinearOffset
}
