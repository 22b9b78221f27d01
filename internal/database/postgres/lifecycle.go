package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// LifecycleRepository implements repository.Lifecycle for PostgreSQL
type LifecycleRepository struct {
	db *pgxpool.Pool
}

// NewLifecycleRepository creates a new LifecycleRepository
func NewLifecycleRepository(db *pgxpool.Pool) *LifecycleRepository {
	return &LifecycleRepository{db: db}
}

// BeginTx starts a lifecycle tick transaction
func (r *LifecycleRepository) BeginTx(ctx context.Context) (repository.LifecycleTx, error) {
	return beginTx(ctx, r.db)
}

// KillOverdue negates nourishment of every overdue mortal plant in one statement
func (t *gardenTx) KillOverdue(ctx context.Context, timing repository.Timing) ([]domain.DeadPlant, error) {
	cutoff := utc(timing.Now.Add(-timing.DeathTimeout))
	rows, err := t.tx.Query(ctx, queryKillOverdue, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToKillPlants, err)
	}
	defer rows.Close()

	dead := []domain.DeadPlant{}
	for rows.Next() {
		var d domain.DeadPlant
		if err := rows.Scan(&d.PlantID, &d.UserID, &d.Name, &d.PlantType, &d.Nourishment, &d.AdoptionTime); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToKillPlants, err)
		}
		dead = append(dead, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToKillPlants, err)
	}
	return dead, nil
}

// UpdateMaxLifetimes folds each user's oldest living mortal plant into max_plant_lifetime
func (t *gardenTx) UpdateMaxLifetimes(ctx context.Context, now time.Time) error {
	if _, err := t.tx.Exec(ctx, queryUpdateMaxLifetimes, utc(now)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMaxLifetimes, err)
	}
	return nil
}

// MarkWilting flags un-notified plants that will die within NotificationTime
func (t *gardenTx) MarkWilting(ctx context.Context, timing repository.Timing) ([]domain.UserPlant, error) {
	cutoff := utc(timing.Now.Add(-(timing.DeathTimeout - timing.NotificationTime)))
	plants, err := listPlants(ctx, t.tx, queryMarkWilting, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarkWilting, err)
	}
	return plants, nil
}
