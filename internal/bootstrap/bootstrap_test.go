package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/osse101/GardenBot_Go/internal/config"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/scheduler"
	"github.com/osse101/GardenBot_Go/internal/sse"
	"github.com/osse101/GardenBot_Go/internal/trade"
	"github.com/osse101/GardenBot_Go/internal/worker"
)

type mockServer struct{ mock.Mock }

func (m *mockServer) Stop(ctx context.Context) error { return m.Called(ctx).Error(0) }

type mockPool struct{ mock.Mock }

func (m *mockPool) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *mockPool) Close()                         { m.Called() }

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event_deadletter.jsonl"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "event_deadletter.jsonl")
	assert.Contains(t, names, "session_2024-01-12_00-00-00.log")
	assert.NotContains(t, names, "session_2024-01-03_00-00-00.log")
	assert.Contains(t, names, "session_2024-01-04_00-00-00.log")
}

func TestCleanupLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_a.log"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	_, err := os.Stat(filepath.Join(dir, "session_a.log"))
	assert.NoError(t, err)
}

func TestSetupLogger_CreatesSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	cfg := &config.Config{LogDir: dir, LogLevel: "debug", LogFormat: "json", Environment: "test", Version: "v1"}

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, dir, filepath.Dir(f.Name()))
	assert.Regexp(t, `^session_.*\.log$`, filepath.Base(f.Name()))
}

func TestTimingsAndPrices(t *testing.T) {
	game := config.DefaultGameConfig()
	game.Plants.WaterCooldown = 5 * time.Minute
	game.Plants.RevivalTokenPrice = 123

	assert.Equal(t, plant.Timings{
		WaterCooldown:    5 * time.Minute,
		DeathTimeout:     domain.DefaultDeathTimeout,
		NotificationTime: domain.DefaultNotificationTime,
	}, Timings(game))

	prices := ItemPrices(game)
	assert.Equal(t, 123, prices[domain.ItemRevivalToken])
	assert.Equal(t, domain.DefaultRefreshTokenPrice, prices[domain.ItemRefreshToken])
	assert.Equal(t, domain.DefaultImmortalJuicePrice, prices[domain.ItemImmortalPlantJuice])
	assert.NotContains(t, prices, domain.ItemPlantPot)
}

func TestInitializeEventSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deadletter.jsonl")
	bus, publisher, err := InitializeEventSystem(&config.Config{EventDeadLetterPath: path})
	require.NoError(t, err)
	require.NotNil(t, bus)
	defer publisher.Shutdown(context.Background())

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestGracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := &mockServer{}
	srv.On("Stop", mock.Anything).Return(assert.AnError)
	db := &mockPool{}
	db.On("Close").Return()

	jobs := worker.NewPool(JobPoolName, 1, 1)
	renders := worker.NewPool(RenderPoolName, 1, 1)
	jobs.Start()
	renders.Start()
	sched := scheduler.New(jobs)
	sched.Schedule(time.Hour, worker.JobFunc(func(context.Context) error { return nil }))

	hub := sse.NewHub()
	hub.Start()

	components := &Components{
		JobPool:    jobs,
		RenderPool: renders,
		Scheduler:  sched,
		Trade:      trade.NewManager(nil, plant.DefaultTimings(), event.NopPublisher{}, trade.DefaultConfig()),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// A failing server stop must not abort the remaining steps
	GracefulShutdown(ctx, ShutdownComponents{
		Server:     srv,
		Components: components,
		SSEHub:     hub,
		DBPool:     db,
	})

	srv.AssertExpectations(t)
	db.AssertExpectations(t)
	assert.Equal(t, 0, hub.ClientCount())
	assert.ErrorIs(t, jobs.Enqueue(ctx, worker.JobFunc(func(context.Context) error { return nil })), worker.ErrPoolStopped)
}

func TestGracefulShutdown_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
