// Package server wires the HTTP facade: middleware stack, routes and the
// http.Server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/GardenBot_Go/internal/capability"
	"github.com/osse101/GardenBot_Go/internal/database"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/handler"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/metrics"
	"github.com/osse101/GardenBot_Go/internal/shop"
	"github.com/osse101/GardenBot_Go/internal/sse"
	"github.com/osse101/GardenBot_Go/internal/trade"
)

// Config configures the listener and the middleware stack
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration
}

// Services are the engines the facade exposes
type Services struct {
	Garden     garden.Service
	Shop       shop.Service
	Trade      trade.Service
	Capability capability.Checker
	// Events is optional; without it the notification stream is not routed
	Events     *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, dbPool, svc),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with every route and middleware
func NewRouter(cfg Config, dbPool database.Pool, svc Services) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	guard := NewClientGuard(cfg.RateLimit, cfg.RateWindow)

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, guard))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, guard))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/plants", func(r chi.Router) {
			r.Get("/", handler.HandleListPlants(svc.Garden))
			r.Get("/image", handler.HandlePlantImage(svc.Garden))
			r.Post("/water", handler.HandleWater(svc.Garden))
			r.Post("/rename", handler.HandleRename(svc.Garden))
			r.Post("/delete", handler.HandleDelete(svc.Garden))
			r.Post("/immortalize", handler.HandleImmortalize(svc.Garden))
			r.Post("/revive", handler.HandleRevive(svc.Garden))
		})
		r.Get("/garden/image", handler.HandleGardenImage(svc.Garden))
		r.Post("/items/give", handler.HandleGiveItem(svc.Garden))
		r.Get("/inventory", handler.HandleInventory(svc.Garden))
		r.Get("/achievements", handler.HandleAchievements(svc.Garden))

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleViewShop(svc.Shop))
			r.Post("/plant", handler.HandlePurchasePlant(svc.Shop))
			r.Post("/item", handler.HandlePurchaseItem(svc.Shop))
			r.Post("/pot", handler.HandlePurchasePot(svc.Shop))
			r.Post("/refresh", handler.HandleRefreshShop(svc.Shop))
		})

		tradeHandler := handler.NewTradeHandler(svc.Trade)
		r.Route("/trade", func(r chi.Router) {
			r.Post("/offer", tradeHandler.HandleOffer)
			r.Get("/{id}", tradeHandler.HandleGet)
			r.Post("/{id}/accept", tradeHandler.HandleAccept)
			r.Post("/{id}/decline", tradeHandler.HandleDecline)
			r.Post("/{id}/select", tradeHandler.HandleSelect)
			r.Post("/{id}/confirm", tradeHandler.HandleConfirm)
			r.Post("/{id}/cancel", tradeHandler.HandleCancel)
		})

		r.Route("/herbiary", func(r chi.Router) {
			r.Get("/", handler.HandleHerbiary(svc.Garden))
			r.Get("/{name}", handler.HandleHerbiaryEntry(svc.Garden))
			r.Get("/{name}/image", handler.HandleHerbiaryImage(svc.Garden))
		})

		r.Route("/keys", func(r chi.Router) {
			r.Get("/", handler.HandleListKeys(svc.Garden))
			r.Post("/give", handler.HandleGiveKey(svc.Garden))
			r.Post("/revoke", handler.HandleRevokeKey(svc.Garden))
		})

		r.Post("/capability/refresh", handler.HandleRefreshCapability(svc.Capability))

		if svc.Events != nil {
			r.Get("/events", sse.Handler(svc.Events))
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func isQuietPath(path string) bool {
	for _, prefix := range quietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// loggingMiddleware tags the request context with a request ID (reusing an
// incoming X-Request-ID) and logs start and completion
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Start serves until Stop is called; it returns nil after a graceful stop
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
