package utils

import (
	"math/rand"
)

// RandomInt returns a random integer between min and max (inclusive).
// An inverted range yields min.
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}
