// Package achievement maps the closed set of achievement counters to static
// upsert statements.
package achievement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Counter is a per-user achievement column
type Counter string

const (
	WaterCount       Counter = "water_count"
	GiveCount        Counter = "give_count"
	TradeCount       Counter = "trade_count"
	ReviveCount      Counter = "revive_count"
	ImmortalizeCount Counter = "immortalize_count"
	MaxPlantLifetime Counter = "max_plant_lifetime"
	DeathsTotal      Counter = "deaths_total"
)

// PlantCounter is a per-(user, plant type) achievement column
type PlantCounter string

const (
	PlantCount          PlantCounter = "plant_count"
	PlantDeathCount     PlantCounter = "plant_death_count"
	MaxPlantNourishment PlantCounter = "max_plant_nourishment"
)

// Execer runs a statement; pgx.Tx, *pgx.Conn and *pgxpool.Pool all satisfy it
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Querier reads rows; pgx.Tx and *pgxpool.Pool satisfy it
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Additive counters add delta; maxima keep the greatest value seen.
var userStatements = map[Counter]string{
	WaterCount:       upsertUserAdd("water_count"),
	GiveCount:        upsertUserAdd("give_count"),
	TradeCount:       upsertUserAdd("trade_count"),
	ReviveCount:      upsertUserAdd("revive_count"),
	ImmortalizeCount: upsertUserAdd("immortalize_count"),
	DeathsTotal:      upsertUserAdd("deaths_total"),
	MaxPlantLifetime: upsertUserMax("max_plant_lifetime"),
}

var plantStatements = map[PlantCounter]string{
	PlantCount:          upsertPlantAdd("plant_count"),
	PlantDeathCount:     upsertPlantAdd("plant_death_count"),
	MaxPlantNourishment: upsertPlantMax("max_plant_nourishment"),
}

func upsertUserAdd(col string) string {
	return `INSERT INTO user_achievement_counts (user_id, ` + col + `) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET ` + col + ` = user_achievement_counts.` + col + ` + EXCLUDED.` + col
}

func upsertUserMax(col string) string {
	return `INSERT INTO user_achievement_counts (user_id, ` + col + `) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET ` + col + ` = GREATEST(user_achievement_counts.` + col + `, EXCLUDED.` + col + `)`
}

func upsertPlantAdd(col string) string {
	return `INSERT INTO plant_achievement_counts (user_id, plant_type, ` + col + `) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, plant_type) DO UPDATE
		SET ` + col + ` = plant_achievement_counts.` + col + ` + EXCLUDED.` + col
}

func upsertPlantMax(col string) string {
	return `INSERT INTO plant_achievement_counts (user_id, plant_type, ` + col + `) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, plant_type) DO UPDATE
		SET ` + col + ` = GREATEST(plant_achievement_counts.` + col + `, EXCLUDED.` + col + `)`
}

// IsMax reports whether the counter keeps a maximum instead of a sum
func (c Counter) IsMax() bool {
	return c == MaxPlantLifetime
}

// IsMax reports whether the counter keeps a maximum instead of a sum
func (c PlantCounter) IsMax() bool {
	return c == MaxPlantNourishment
}

// Valid reports whether c is a known counter
func (c Counter) Valid() bool {
	_, ok := userStatements[c]
	return ok
}

// Valid reports whether c is a known counter
func (c PlantCounter) Valid() bool {
	_, ok := plantStatements[c]
	return ok
}

// Increment upserts a per-user counter. For maxima delta is the candidate value.
func Increment(ctx context.Context, exec Execer, userID int64, counter Counter, delta int64) error {
	stmt, ok := userStatements[counter]
	if !ok {
		return fmt.Errorf("%w: unknown counter %q", domain.ErrInvalidInput, counter)
	}
	if delta < 0 {
		return fmt.Errorf("%w: negative delta for %s", domain.ErrInvalidInput, counter)
	}
	if _, err := exec.Exec(ctx, stmt, userID, delta); err != nil {
		return fmt.Errorf("failed to increment %s: %w", counter, err)
	}
	return nil
}

// IncrementPlant upserts a per-(user, plant type) counter
func IncrementPlant(ctx context.Context, exec Execer, userID int64, plantType string, counter PlantCounter, delta int64) error {
	stmt, ok := plantStatements[counter]
	if !ok {
		return fmt.Errorf("%w: unknown plant counter %q", domain.ErrInvalidInput, counter)
	}
	if delta < 0 {
		return fmt.Errorf("%w: negative delta for %s", domain.ErrInvalidInput, counter)
	}
	if _, err := exec.Exec(ctx, stmt, userID, plantType, delta); err != nil {
		return fmt.Errorf("failed to increment %s: %w", counter, err)
	}
	return nil
}

const (
	selectUserCounts = `
		SELECT water_count, give_count, trade_count, revive_count,
		       immortalize_count, max_plant_lifetime, deaths_total
		FROM user_achievement_counts
		WHERE user_id = $1`

	selectPlantCounts = `
		SELECT plant_type, plant_count, plant_death_count, max_plant_nourishment
		FROM plant_achievement_counts
		WHERE user_id = $1
		ORDER BY plant_type`
)

// Get reads both counter tables for a user. Users without rows get zeros.
func Get(ctx context.Context, q Querier, userID int64) (*domain.Achievements, error) {
	out := &domain.Achievements{
		User:   domain.UserAchievements{UserID: userID},
		Plants: []domain.PlantAchievements{},
	}

	u := &out.User
	err := q.QueryRow(ctx, selectUserCounts, userID).Scan(
		&u.WaterCount, &u.GiveCount, &u.TradeCount, &u.ReviveCount,
		&u.ImmortalizeCount, &u.MaxPlantLifetime, &u.DeathsTotal,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user achievements: %w", err)
	}

	rows, err := q.Query(ctx, selectPlantCounts, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plant achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := domain.PlantAchievements{UserID: userID}
		if err := rows.Scan(&p.PlantType, &p.PlantCount, &p.PlantDeathCount, &p.MaxPlantNourishment); err != nil {
			return nil, fmt.Errorf("failed to scan plant achievements: %w", err)
		}
		out.Plants = append(out.Plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plant achievements: %w", err)
	}
	return out, nil
}
