package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/repository"
)

// TradeRepository implements repository.Trade for PostgreSQL
type TradeRepository struct {
	*UserRepository
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{
		UserRepository: NewUserRepository(db),
		db:             db,
	}
}

// BeginTx starts a swap commit transaction
func (r *TradeRepository) BeginTx(ctx context.Context) (repository.TradeTx, error) {
	return beginTx(ctx, r.db)
}
