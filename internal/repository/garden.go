package repository

import (
	"context"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Garden defines persistence for watering and plant management
type Garden interface {
	User

	HasKey(ctx context.Context, ownerID, guestID int64) (bool, error)
	GrantKey(ctx context.Context, ownerID, guestID int64) error
	RevokeKey(ctx context.Context, ownerID, guestID int64) error
	ListKeys(ctx context.Context, ownerID int64) ([]domain.GardenKey, error)
	// GetCooldown returns when userID last performed action, or nil
	GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error)

	BeginTx(ctx context.Context) (GardenTx, error)
}

// GardenTx defines the transaction surface for watering and plant management
type GardenTx interface {
	UserTx
	PlantTx
	CooldownTx
}
