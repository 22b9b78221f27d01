// Package lifecycle kills neglected plants and warns owners before it happens.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/metrics"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/repository"
	"github.com/osse101/GardenBot_Go/internal/worker"
)

// Report is the outcome of one tick
type Report struct {
	Died    []domain.DeadPlant
	Wilting []domain.UserPlant
}

// Job runs one lifecycle tick per Process call
type Job struct {
	repo      repository.Lifecycle
	timings   plant.Timings
	publisher event.Publisher
	now       func() time.Time
}

var _ worker.Job = (*Job)(nil)

// NewJob creates the lifecycle job
func NewJob(repo repository.Lifecycle, timings plant.Timings, publisher event.Publisher) *Job {
	return &Job{
		repo:      repo,
		timings:   timings,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Process runs a tick and publishes its events
func (j *Job) Process(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.LifecycleTickDuration.Observe(time.Since(start).Seconds())
	}()

	_, err := j.Tick(ctx)
	return err
}

// Tick kills overdue plants, records their deaths, folds living plants into
// max_plant_lifetime and flags the ones about to die, all in one
// transaction. Events go out only after the commit.
func (j *Job) Tick(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)
	now := j.now()
	log.Debug(LogMsgTickStarted, "now", now)

	tx, err := j.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	timing := repository.Timing{
		Now:              now,
		DeathTimeout:     j.timings.DeathTimeout,
		NotificationTime: j.timings.NotificationTime,
	}

	died, err := tx.KillOverdue(ctx, timing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgKillOverdueFailed, err)
	}
	for _, d := range died {
		if err := tx.IncrementPlantAchievement(ctx, d.UserID, d.PlantType, achievement.PlantDeathCount, 1); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
		}
		if err := tx.IncrementAchievement(ctx, d.UserID, achievement.DeathsTotal, 1); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
		}
	}

	if err := tx.UpdateMaxLifetimes(ctx, now); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMaxLifetimeFailed, err)
	}

	wilting, err := tx.MarkWilting(ctx, timing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarkWiltingFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	for _, d := range died {
		log.Info(LogMsgPlantDied, "userID", d.UserID, "plantID", d.PlantID, "plantName", d.Name)
		j.publish(ctx, event.NewPlantDiedEvent(d))
	}
	for _, p := range wilting {
		j.publish(ctx, event.NewPlantWiltingEvent(p, j.timings.DiesAt(p)))
	}

	log.Info(LogMsgTickCompleted, "died", len(died), "wilting", len(wilting))
	return &Report{Died: died, Wilting: wilting}, nil
}

func (j *Job) publish(ctx context.Context, evt event.Event) {
	if j.publisher == nil {
		return
	}
	if err := j.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "eventType", evt.Type, "error", err)
	}
}
