package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// utc normalizes t for TIMESTAMP columns, which store wall-clock UTC
func utc(t time.Time) time.Time {
	return t.UTC()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// scanPlant reads a row selected with plantColumns
func scanPlant(row pgx.Row) (*domain.UserPlant, error) {
	var p domain.UserPlant
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.PlantType, &p.PlantVariant, &p.Nourishment, &p.LastWaterTime,
		&p.OriginalOwnerID, &p.PlantPotHue, &p.AdoptionTime, &p.NotificationSent, &p.Immortal,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanUser(row pgx.Row) (*domain.UserInfo, error) {
	var u domain.UserInfo
	err := row.Scan(&u.UserID, &u.PlantLimit, &u.PotType, &u.Experience, &u.LastPlantShopTime, &u.PlantPotHue, &u.HasPremium)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func userArgs(u domain.UserInfo) []any {
	return []any{u.UserID, u.PlantLimit, u.PotType, u.Experience, utc(u.LastPlantShopTime), u.PlantPotHue, u.HasPremium}
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listPlants(ctx context.Context, q querier, sql string, args ...any) ([]domain.UserPlant, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plants := []domain.UserPlant{}
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, *p)
	}
	return plants, rows.Err()
}

// getCooldown returns nil when the user never performed action
func getCooldown(ctx context.Context, q querier, userID int64, action string) (*time.Time, error) {
	var lastUsed time.Time
	if err := q.QueryRow(ctx, queryGetCooldown, userID, action).Scan(&lastUsed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCooldown, err)
	}
	lastUsed = lastUsed.UTC()
	return &lastUsed, nil
}
