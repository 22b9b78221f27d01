package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// GardenRepository implements repository.Garden for PostgreSQL
type GardenRepository struct {
	*UserRepository
	db *pgxpool.Pool
}

// NewGardenRepository creates a new GardenRepository
func NewGardenRepository(db *pgxpool.Pool) *GardenRepository {
	return &GardenRepository{
		UserRepository: NewUserRepository(db),
		db:             db,
	}
}

// BeginTx starts a watering or plant management transaction
func (r *GardenRepository) BeginTx(ctx context.Context) (repository.GardenTx, error) {
	return beginTx(ctx, r.db)
}

// HasKey reports whether guestID holds a key to ownerID's garden
func (r *GardenRepository) HasKey(ctx context.Context, ownerID, guestID int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, queryHasKey, ownerID, guestID).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckKey, err)
	}
	return ok, nil
}

// GrantKey gives guestID a key; granting twice is a no-op
func (r *GardenRepository) GrantKey(ctx context.Context, ownerID, guestID int64) error {
	if _, err := r.db.Exec(ctx, queryGrantKey, ownerID, guestID, utc(time.Now())); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGrantKey, err)
	}
	return nil
}

// RevokeKey removes guestID's key; revoking a missing key is a no-op
func (r *GardenRepository) RevokeKey(ctx context.Context, ownerID, guestID int64) error {
	if _, err := r.db.Exec(ctx, queryRevokeKey, ownerID, guestID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRevokeKey, err)
	}
	return nil
}

// ListKeys returns the keys to ownerID's garden, oldest first
func (r *GardenRepository) ListKeys(ctx context.Context, ownerID int64) ([]domain.GardenKey, error) {
	rows, err := r.db.Query(ctx, queryListKeys, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListKeys, err)
	}
	defer rows.Close()

	keys := []domain.GardenKey{}
	for rows.Next() {
		var k domain.GardenKey
		if err := rows.Scan(&k.OwnerID, &k.GuestID, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanKey, err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListKeys, err)
	}
	return keys, nil
}

// GetCooldown is the unlocked read behind the guest cooldown pre-check
func (r *GardenRepository) GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error) {
	return getCooldown(ctx, r.db, userID, action)
}
