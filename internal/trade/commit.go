package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// commit swaps the two selected plants in one transaction. Both rows are
// re-read under lock and must still be alive.
func (m *Manager) commit(ctx context.Context, t domain.Trade) (*domain.TradeCommitResult, error) {
	tx, err := m.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	a, b := t.Initiator, t.Recipient
	first, second := a.UserID, b.UserID
	if first > second {
		first, second = second, first
	}
	for _, id := range []int64{first, second} {
		if _, err := tx.GetUserForUpdate(ctx, id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
		}
	}

	fromA, err := lockAlivePlant(ctx, tx, a)
	if err != nil {
		return nil, err
	}
	fromB, err := lockAlivePlant(ctx, tx, b)
	if err != nil {
		return nil, err
	}

	for _, id := range []int64{fromA.ID, fromB.ID} {
		if err := tx.DeletePlant(ctx, id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgDeletePlantFailed, err)
		}
	}

	now := m.clock.Now()
	toB := m.handOver(*fromA, b.UserID, now)
	toA := m.handOver(*fromB, a.UserID, now)
	for _, p := range []*domain.UserPlant{&toB, &toA} {
		if err := insertSwapped(ctx, tx, p); err != nil {
			return nil, err
		}
	}

	for _, id := range []int64{a.UserID, b.UserID} {
		if err := tx.IncrementAchievement(ctx, id, achievement.TradeCount, 1); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	return &domain.TradeCommitResult{
		TradeID:       t.ID,
		InitiatorID:   a.UserID,
		InitiatorGets: toA,
		RecipientID:   b.UserID,
		RecipientGets: toB,
		CommittedAt:   now,
	}, nil
}

func lockAlivePlant(ctx context.Context, tx repository.TradeTx, side domain.TradeSide) (*domain.UserPlant, error) {
	p, err := tx.GetPlantForUpdate(ctx, side.UserID, side.PlantName)
	if err != nil {
		return nil, err
	}
	if !p.IsAlive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlantNotAlive, p.Name)
	}
	return p, nil
}

// handOver is p as re-adopted by newOwner. Origin, immortality and pot hue
// travel with the plant; the watering clock restarts unless still cooling down.
func (m *Manager) handOver(p domain.UserPlant, newOwner int64, now time.Time) domain.UserPlant {
	p.ID = 0
	p.UserID = newOwner
	p.AdoptionTime = now
	p.LastWaterTime = m.timings.TradeWaterTime(p, now)
	p.NotificationSent = false
	return p
}

func insertSwapped(ctx context.Context, tx repository.TradeTx, p *domain.UserPlant) error {
	taken, err := tx.PlantNameTaken(ctx, p.UserID, p.Name, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCheckNameFailed, err)
	}
	if taken {
		return fmt.Errorf("%w: %s", domain.ErrNameCollisionAfterSwap, p.Name)
	}
	if err := tx.InsertPlant(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNameCollision) {
			return fmt.Errorf("%w: %s", domain.ErrNameCollisionAfterSwap, p.Name)
		}
		return fmt.Errorf("%s: %w", ErrMsgInsertPlantFailed, err)
	}
	return nil
}
