package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GardenBot_Go/internal/database"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/sse"
)

// httpServer is the part of server.Server the shutdown sequence needs
type httpServer interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             httpServer
	Components         *Components
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	DBPool             database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. Notification streams, then the HTTP server
// 2. Scheduler, then worker pools (no new lifecycle ticks or renders)
// 3. Trade manager (cancel timers, abort open trades)
// 4. Event publisher (flush pending events)
// 5. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Streams never go idle, so they are closed before the server waits on connections
	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c := components.Components; c != nil {
		c.Scheduler.Stop()
		c.JobPool.Stop()
		c.RenderPool.Stop()

		shutdownService(ctx, ComponentTradeManager, c.Trade)

		if c.redisCache != nil {
			if err := c.redisCache.Close(); err != nil {
				slog.Error(LogMsgCloseFailed, "component", ComponentCapabilityCache, "error", err)
			}
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

// shutdownService shuts down a service and logs any errors
func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
