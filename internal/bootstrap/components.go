package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GardenBot_Go/internal/capability"
	"github.com/osse101/GardenBot_Go/internal/catalog"
	"github.com/osse101/GardenBot_Go/internal/compositor"
	"github.com/osse101/GardenBot_Go/internal/compositor/store"
	"github.com/osse101/GardenBot_Go/internal/concurrency"
	"github.com/osse101/GardenBot_Go/internal/config"
	"github.com/osse101/GardenBot_Go/internal/cooldown"
	"github.com/osse101/GardenBot_Go/internal/database"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/lifecycle"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/scheduler"
	"github.com/osse101/GardenBot_Go/internal/shop"
	"github.com/osse101/GardenBot_Go/internal/trade"
	"github.com/osse101/GardenBot_Go/internal/worker"
)

// Components holds every engine and background worker of the API process
type Components struct {
	Catalog    *catalog.Catalog
	Capability capability.Checker
	Garden     garden.Service
	Shop       shop.Service
	Trade      *trade.Manager
	Lifecycle  *lifecycle.Job

	JobPool    *worker.Pool
	RenderPool *worker.Pool
	Scheduler  *scheduler.Scheduler

	// redisCache is closed on shutdown when the shared cache is in use
	redisCache *capability.RedisCache
}

// ConnectDatabase opens the pgx pool and applies pending migrations when enabled
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}
	return pool, nil
}

// Timings converts the YAML game settings into state machine durations
func Timings(game config.GameConfig) plant.Timings {
	return plant.Timings{
		WaterCooldown:    game.Plants.WaterCooldown,
		DeathTimeout:     game.Plants.DeathTimeout,
		NotificationTime: game.Plants.NotificationTime,
	}
}

// ItemPrices maps the fixed shop items to their configured prices
func ItemPrices(game config.GameConfig) map[string]int {
	return map[string]int{
		domain.ItemRevivalToken:       game.Plants.RevivalTokenPrice,
		domain.ItemRefreshToken:       game.Plants.RefreshTokenPrice,
		domain.ItemImmortalPlantJuice: game.Plants.ImmortalPlantJuicePrice,
	}
}

// NewSpriteStore selects the filesystem or S3 sprite backend
func NewSpriteStore(ctx context.Context, cfg *config.Config) (store.BlobStore, error) {
	slog.Info(LogMsgSpriteStoreSelected, "backend", cfg.SpriteStore)
	if cfg.SpriteStore != config.SpriteStoreS3 {
		return store.NewFSStore(cfg.AssetsDir), nil
	}

	s3Store, err := store.NewS3Store(ctx, store.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSpriteStore, err)
	}
	return s3Store, nil
}

// InitializeComponents loads the catalog and builds every engine. Background
// workers are created but not started; call Start.
func InitializeComponents(ctx context.Context, cfg *config.Config, repos *Repositories, publisher event.Publisher) (*Components, error) {
	cat, err := catalog.Load(ctx, cfg.AssetsDir, ItemPrices(cfg.Game))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded,
		"plant_types", len(cat.ListVisible()),
		"available", len(cat.ListAvailable()))

	blobs, err := NewSpriteStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := &Components{
		Catalog:    cat,
		JobPool:    worker.NewPool(JobPoolName, JobPoolWorkers, JobPoolQueueSize),
		RenderPool: worker.NewPool(RenderPoolName, cfg.RenderWorkers, cfg.RenderQueueSize),
	}
	c.Scheduler = scheduler.New(c.JobPool)

	var cache capability.Cache
	if cfg.RedisURL != "" {
		redisCache, err := capability.NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCapabilityRedis, err)
		}
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCapabilityRedis, err)
		}
		c.redisCache = redisCache
		cache = redisCache
		slog.Info(LogMsgCapabilityCache, "backend", "redis")
	} else {
		cache = capability.NewLRUCache(CapabilityCacheSize)
		slog.Info(LogMsgCapabilityCache, "backend", "lru")
	}
	c.Capability = capability.NewChecker(capability.Config{
		PremiumURL: cfg.PremiumAPIURL,
		VoteURL:    cfg.VoteAPIURL,
		VoteToken:  cfg.VoteAPIToken,
		Timeout:    cfg.CapabilityTimeout,
	}, cache)

	timings := Timings(cfg.Game)
	renderer := compositor.NewService(compositor.New(blobs, compositor.DefaultCacheSize, compositor.DefaultCacheTTL), c.RenderPool)
	cooldowns := cooldown.NewService(repos.Garden, cooldown.Config{
		DevMode: cfg.DevMode,
		Cooldowns: map[string]time.Duration{
			cooldown.ActionGuestWater: cfg.Game.Plants.GuestWaterCooldown,
		},
	})

	c.Garden = garden.NewService(repos.Garden, cat, renderer, c.Capability, cooldowns, publisher, timings)
	c.Shop = shop.NewService(repos.Shop, cat, c.Capability, concurrency.NewLockManager(), publisher, shop.Config{
		PurchaseCooldown: cfg.Game.Plants.WaterCooldown,
		HardPlantCap:     cfg.Game.Plants.HardPlantCap,
		NonSubscriberCap: cfg.Game.Plants.NonSubscriberPlantCap,
		IsPrivileged:     cfg.IsPrivileged,
	})
	c.Trade = trade.NewManager(repos.Trade, timings, publisher, trade.DefaultConfig())
	c.Lifecycle = lifecycle.NewJob(repos.Lifecycle, timings, publisher)

	return c, nil
}

// Start launches the worker pools and schedules the lifecycle tick, running
// one immediately
func (c *Components) Start() {
	c.JobPool.Start()
	c.RenderPool.Start()
	c.Scheduler.ScheduleImmediate(domain.LifecycleTickEvery, c.Lifecycle)
	slog.Info(LogMsgSchedulerStarted, "interval", domain.LifecycleTickEvery)
}
