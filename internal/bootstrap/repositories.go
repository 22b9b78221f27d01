package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/database/postgres"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Garden    repository.Garden
	Shop      repository.Shop
	Trade     repository.Trade
	Lifecycle repository.Lifecycle
}

// InitializeRepositories creates all repository implementations on one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Garden:    postgres.NewGardenRepository(dbPool),
		Shop:      postgres.NewShopRepository(dbPool),
		Trade:     postgres.NewTradeRepository(dbPool),
		Lifecycle: postgres.NewLifecycleRepository(dbPool),
	}
}
