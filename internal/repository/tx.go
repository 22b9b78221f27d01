package repository

import (
	"context"
	"time"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UserTx is the balance, inventory and achievement surface shared by every
// domain transaction
type UserTx interface {
	Tx
	// GetUserForUpdate locks the user's settings row, creating it with
	// defaults on first sight
	GetUserForUpdate(ctx context.Context, userID int64) (*domain.UserInfo, error)
	// UpdateUser writes every settings column, experience included; call it
	// before AddExperience in the same transaction
	UpdateUser(ctx context.Context, user domain.UserInfo) error
	// AddExperience fails with ErrInsufficientExperience when the balance would go negative
	AddExperience(ctx context.Context, userID int64, delta int) error

	AddInventory(ctx context.Context, userID int64, itemName string, amount int) error
	// ConsumeInventory fails with ErrInsufficientInventory when fewer than amount are held
	ConsumeInventory(ctx context.Context, userID int64, itemName string, amount int) error

	IncrementAchievement(ctx context.Context, userID int64, counter achievement.Counter, delta int64) error
	IncrementPlantAchievement(ctx context.Context, userID int64, plantType string, counter achievement.PlantCounter, delta int64) error
}

// PlantTx reads and writes plant rows inside a transaction
type PlantTx interface {
	// GetPlantForUpdate locks the plant; names match case-insensitively
	GetPlantForUpdate(ctx context.Context, userID int64, name string) (*domain.UserPlant, error)
	// InsertPlant stores a new row and sets p.ID; a name clash yields ErrNameCollision
	InsertPlant(ctx context.Context, p *domain.UserPlant) error
	// SavePlant upserts the row by id
	SavePlant(ctx context.Context, p domain.UserPlant) error
	DeletePlant(ctx context.Context, plantID int64) error
	// PlantNameTaken checks name against the user's other plants, ignoring excludeID
	PlantNameTaken(ctx context.Context, userID int64, name string, excludeID int64) (bool, error)
	CountPlants(ctx context.Context, userID int64) (int, error)
}

// CooldownTx reads and records action cooldowns inside a transaction
type CooldownTx interface {
	GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error)
	SetCooldown(ctx context.Context, userID int64, action string, at time.Time) error
}

// Timing bounds used by the lifecycle statements
type Timing struct {
	Now              time.Time
	DeathTimeout     time.Duration
	NotificationTime time.Duration
}
