package repository

import (
	"context"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Lifecycle defines persistence for the periodic death tick
type Lifecycle interface {
	BeginTx(ctx context.Context) (LifecycleTx, error)
}

// LifecycleTx defines the transaction surface of one lifecycle tick
type LifecycleTx interface {
	UserTx

	// KillOverdue negates the nourishment of every mortal, growing plant whose
	// last watering is more than DeathTimeout before Now, returning the rows
	KillOverdue(ctx context.Context, t Timing) ([]domain.DeadPlant, error)
	// UpdateMaxLifetimes folds the oldest living mortal plant per user into max_plant_lifetime
	UpdateMaxLifetimes(ctx context.Context, now time.Time) error
	// MarkWilting flags plants within NotificationTime of death that were not
	// yet notified and returns them
	MarkWilting(ctx context.Context, t Timing) ([]domain.UserPlant, error)
}
