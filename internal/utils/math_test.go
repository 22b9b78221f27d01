package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomInt(t *testing.T) {
	t.Run("returns value within range", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			result := RandomInt(10, 40)
			assert.GreaterOrEqual(t, result, 10)
			assert.LessOrEqual(t, result, 40)
		}
	})

	t.Run("handles min equals max", func(t *testing.T) {
		assert.Equal(t, 25, RandomInt(25, 25))
	})

	t.Run("handles inverted range gracefully", func(t *testing.T) {
		assert.Equal(t, 10, RandomInt(10, 5))
	})

	t.Run("covers both bounds", func(t *testing.T) {
		seen := make(map[int]bool)
		for i := 0; i < 500; i++ {
			seen[RandomInt(1, 3)] = true
		}
		assert.Len(t, seen, 3)
	})
}
