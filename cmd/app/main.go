// @title GardenBot API
// @version 1.0
// @description Plant lifecycle, shop and trade API for the GardenBot chat game.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/osse101/GardenBot_Go/docs"
	"github.com/osse101/GardenBot_Go/internal/bootstrap"
	"github.com/osse101/GardenBot_Go/internal/config"
	"github.com/osse101/GardenBot_Go/internal/handler"
	"github.com/osse101/GardenBot_Go/internal/server"
	"github.com/osse101/GardenBot_Go/internal/sse"
)

const shutdownTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load()

	if err := config.ValidateEnv(); err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to setup logger", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		slog.Error("Database initialization failed", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	hub := sse.NewHub()
	hub.Start()
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		SSEHub:   hub,
	})

	repos := bootstrap.InitializeRepositories(dbPool)
	components, err := bootstrap.InitializeComponents(ctx, cfg, repos, publisher)
	if err != nil {
		slog.Error("Component initialization failed", "error", err)
		bootstrap.GracefulShutdown(context.Background(), bootstrap.ShutdownComponents{
			SSEHub:             hub,
			ResilientPublisher: publisher,
			DBPool:             dbPool,
		})
		os.Exit(1)
	}
	components.Start()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, dbPool, server.Services{
		Garden:     components.Garden,
		Shop:       components.Shop,
		Trade:      components.Trade,
		Capability: components.Capability,
		Events:     hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Components:         components,
		SSEHub:             hub,
		ResilientPublisher: publisher,
		DBPool:             dbPool,
	})
}
