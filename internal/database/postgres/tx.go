package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
)

// gardenTx implements every repository transaction interface over one pgx.Tx
type gardenTx struct {
	tx pgx.Tx
}

func beginTx(ctx context.Context, db *pgxpool.Pool) (*gardenTx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &gardenTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *gardenTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *gardenTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetUserForUpdate locks the user row, inserting defaults first if absent
func (t *gardenTx) GetUserForUpdate(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	if _, err := t.tx.Exec(ctx, queryInsertUserDefaults, userArgs(domain.NewUserInfo(userID))...); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockUser, err)
	}
	u, err := scanUser(t.tx.QueryRow(ctx, queryGetUserForUpdate, userID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockUser, err)
	}
	return u, nil
}

// UpdateUser upserts the user's settings
func (t *gardenTx) UpdateUser(ctx context.Context, user domain.UserInfo) error {
	if _, err := t.tx.Exec(ctx, queryUpsertUser, userArgs(user)...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertUser, err)
	}
	return nil
}

// AddExperience credits or debits experience without letting it go negative
func (t *gardenTx) AddExperience(ctx context.Context, userID int64, delta int) error {
	tag, err := t.tx.Exec(ctx, queryAddExperience, userID, delta)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddExperience, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientExperience
	}
	return nil
}

// AddInventory increments an item's amount, creating the row if needed
func (t *gardenTx) AddInventory(ctx context.Context, userID int64, itemName string, amount int) error {
	if _, err := t.tx.Exec(ctx, queryAddInventory, userID, itemName, amount); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddInventory, err)
	}
	return nil
}

// ConsumeInventory decrements an item's amount; holding fewer than amount fails
func (t *gardenTx) ConsumeInventory(ctx context.Context, userID int64, itemName string, amount int) error {
	tag, err := t.tx.Exec(ctx, queryConsumeInventory, userID, itemName, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToConsumeItem, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientInventory, itemName)
	}
	return nil
}

// IncrementAchievement upserts a per-user counter
func (t *gardenTx) IncrementAchievement(ctx context.Context, userID int64, counter achievement.Counter, delta int64) error {
	return achievement.Increment(ctx, t.tx, userID, counter, delta)
}

// IncrementPlantAchievement upserts a per-(user, plant type) counter
func (t *gardenTx) IncrementPlantAchievement(ctx context.Context, userID int64, plantType string, counter achievement.PlantCounter, delta int64) error {
	return achievement.IncrementPlant(ctx, t.tx, userID, plantType, counter, delta)
}

// GetPlantForUpdate locks one plant by owner and case-insensitive name
func (t *gardenTx) GetPlantForUpdate(ctx context.Context, userID int64, name string) (*domain.UserPlant, error) {
	p, err := scanPlant(t.tx.QueryRow(ctx, queryGetPlantForUpdate, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlantNotFound, name)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlant, err)
	}
	return p, nil
}

// InsertPlant stores a new plant and sets its id
func (t *gardenTx) InsertPlant(ctx context.Context, p *domain.UserPlant) error {
	err := t.tx.QueryRow(ctx, queryInsertPlant,
		p.UserID, p.Name, p.PlantType, p.PlantVariant, p.Nourishment, utc(p.LastWaterTime),
		p.OriginalOwnerID, p.PlantPotHue, utc(p.AdoptionTime), p.NotificationSent, p.Immortal,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrNameCollision, p.Name)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlant, err)
	}
	return nil
}

// SavePlant upserts a plant by id
func (t *gardenTx) SavePlant(ctx context.Context, p domain.UserPlant) error {
	_, err := t.tx.Exec(ctx, queryUpsertPlant,
		p.ID, p.UserID, p.Name, p.PlantType, p.PlantVariant, p.Nourishment, utc(p.LastWaterTime),
		p.OriginalOwnerID, p.PlantPotHue, utc(p.AdoptionTime), p.NotificationSent, p.Immortal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrNameCollision, p.Name)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePlant, err)
	}
	return nil
}

// DeletePlant removes a plant row
func (t *gardenTx) DeletePlant(ctx context.Context, plantID int64) error {
	tag, err := t.tx.Exec(ctx, queryDeletePlant, plantID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePlant, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

// PlantNameTaken reports a case-insensitive clash with another of the user's plants
func (t *gardenTx) PlantNameTaken(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	var taken bool
	if err := t.tx.QueryRow(ctx, queryPlantNameTaken, userID, name, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckName, err)
	}
	return taken, nil
}

// CountPlants counts the user's plants, dead ones included
func (t *gardenTx) CountPlants(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := t.tx.QueryRow(ctx, queryCountPlants, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountPlants, err)
	}
	return n, nil
}

// GetCooldown reads the last use of action inside the transaction
func (t *gardenTx) GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error) {
	return getCooldown(ctx, t.tx, userID, action)
}

// SetCooldown records a use of action; it commits with the transaction
func (t *gardenTx) SetCooldown(ctx context.Context, userID int64, action string, at time.Time) error {
	if _, err := t.tx.Exec(ctx, querySetCooldown, userID, action, utc(at)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetCooldown, err)
	}
	return nil
}
