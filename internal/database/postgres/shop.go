package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// ShopRepository implements repository.Shop for PostgreSQL
type ShopRepository struct {
	*UserRepository
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{
		UserRepository: NewUserRepository(db),
		db:             db,
	}
}

// BeginTx starts a shop transaction
func (r *ShopRepository) BeginTx(ctx context.Context) (repository.ShopTx, error) {
	return beginTx(ctx, r.db)
}

// GetRoster locks and returns the user's roster, or nil if none was generated yet
func (t *gardenTx) GetRoster(ctx context.Context, userID int64) (*domain.ShopRoster, error) {
	roster := domain.ShopRoster{UserID: userID}
	var levels [domain.PlantLevelCount]pgtype.Text

	err := t.tx.QueryRow(ctx, queryGetRoster, userID).Scan(
		&roster.LastShopTimestamp,
		&levels[0], &levels[1], &levels[2], &levels[3], &levels[4], &levels[5], &levels[6],
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRoster, err)
	}
	for i, l := range levels {
		roster.PlantLevels[i] = l.String
	}
	return &roster, nil
}

// SaveRoster upserts the user's roster
func (t *gardenTx) SaveRoster(ctx context.Context, roster domain.ShopRoster) error {
	if _, err := t.tx.Exec(ctx, queryUpsertRoster, rosterArgs(roster)...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveRoster, err)
	}
	return nil
}

// InsertRosterIfAbsent stores roster unless a concurrent view already did and
// returns whichever roster is stored
func (t *gardenTx) InsertRosterIfAbsent(ctx context.Context, roster domain.ShopRoster) (*domain.ShopRoster, error) {
	if _, err := t.tx.Exec(ctx, queryInsertRosterIfAbsent, rosterArgs(roster)...); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveRoster, err)
	}
	stored, err := t.GetRoster(ctx, roster.UserID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("%s: roster vanished after insert", ErrMsgFailedToSaveRoster)
	}
	return stored, nil
}

func rosterArgs(r domain.ShopRoster) []any {
	args := []any{r.UserID, utc(r.LastShopTimestamp)}
	for _, name := range r.PlantLevels {
		args = append(args, pgtype.Text{String: name, Valid: name != ""})
	}
	return args
}
