package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
)

// UserRepository implements the read side shared by every engine
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser returns the user's settings, or defaults when the user was never stored
func (r *UserRepository) GetUser(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	u, err := scanUser(r.db.QueryRow(ctx, queryGetUser, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := domain.NewUserInfo(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return u, nil
}

// GetInventory returns the user's items with amounts clamped at zero
func (r *UserRepository) GetInventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, queryGetInventory, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	entries := []domain.InventoryEntry{}
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.ItemName, &e.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return entries, nil
}

// GetAchievements reads both counter tables
func (r *UserRepository) GetAchievements(ctx context.Context, userID int64) (*domain.Achievements, error) {
	a, err := achievement.Get(ctx, r.db, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAchievement, err)
	}
	return a, nil
}

// ListPlants returns the user's plants, oldest adoption first
func (r *UserRepository) ListPlants(ctx context.Context, userID int64) ([]domain.UserPlant, error) {
	plants, err := listPlants(ctx, r.db, queryListPlants, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlants, err)
	}
	return plants, nil
}

// GetPlant reads one plant by case-insensitive name without locking
func (r *UserRepository) GetPlant(ctx context.Context, userID int64, name string) (*domain.UserPlant, error) {
	p, err := scanPlant(r.db.QueryRow(ctx, queryGetPlant, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlantNotFound, name)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlant, err)
	}
	return p, nil
}
