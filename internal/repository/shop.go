package repository

import (
	"context"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Shop defines persistence for the shop engine
type Shop interface {
	User
	BeginTx(ctx context.Context) (ShopTx, error)
}

// ShopTx defines the transaction surface for shop operations
type ShopTx interface {
	UserTx
	PlantTx

	// GetRoster returns nil when the user has never opened the shop
	GetRoster(ctx context.Context, userID int64) (*domain.ShopRoster, error)
	// SaveRoster upserts the roster by user id
	SaveRoster(ctx context.Context, roster domain.ShopRoster) error
	// InsertRosterIfAbsent stores roster unless one exists and returns the stored one
	InsertRosterIfAbsent(ctx context.Context, roster domain.ShopRoster) (*domain.ShopRoster, error)
}
