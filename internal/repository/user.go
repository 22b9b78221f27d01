package repository

import (
	"context"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// User defines the read side shared by the garden, shop and trade engines
type User interface {
	// GetUser returns the stored settings, or the defaults for an unseen user
	GetUser(ctx context.Context, userID int64) (*domain.UserInfo, error)
	GetInventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error)
	GetAchievements(ctx context.Context, userID int64) (*domain.Achievements, error)

	ListPlants(ctx context.Context, userID int64) ([]domain.UserPlant, error)
	// GetPlant returns ErrPlantNotFound when the user has no plant by that name
	GetPlant(ctx context.Context, userID int64, name string) (*domain.UserPlant, error)
}
