package garden

import (
	"context"
	"fmt"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/catalog"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// Rename gives a plant a new name. Only the plant's original owner may
// rename it; changing only the case of the current name is allowed.
func (s *service) Rename(ctx context.Context, userID int64, plantName, newName string) (*domain.UserPlant, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRenameCalled, "userID", userID, "plantName", plantName, "newName", newName)

	validated, err := catalog.ValidatePlantName(newName)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetPlantForUpdate(ctx, userID, plantName)
	if err != nil {
		return nil, err
	}
	if p.OriginalOwnerID != userID {
		return nil, domain.ErrNotOriginalOwner
	}

	taken, err := tx.PlantNameTaken(ctx, userID, validated, p.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetPlantFailed, err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrNameCollision, validated)
	}

	oldName := p.Name
	p.Name = validated
	if err := tx.SavePlant(ctx, *p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSavePlantFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgPlantRenamed, "userID", userID, "oldName", oldName, "newName", p.Name)
	return p, nil
}

// Delete removes a plant permanently
func (s *service) Delete(ctx context.Context, userID int64, plantName string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDeleteCalled, "userID", userID, "plantName", plantName)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetPlantForUpdate(ctx, userID, plantName)
	if err != nil {
		return err
	}
	if err := tx.DeletePlant(ctx, p.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeletePlantFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgPlantDeleted, "userID", userID, "plantName", p.Name, "plantID", p.ID)
	return nil
}

// Immortalize spends one immortal_plant_juice to exempt a plant from death
func (s *service) Immortalize(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgImmortalizeCalled, "userID", userID, "plantName", plantName)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	p, err := tx.GetPlantForUpdate(ctx, userID, plantName)
	if err != nil {
		return nil, err
	}
	if err := plant.Immortalize(p); err != nil {
		return nil, err
	}
	if err := tx.ConsumeInventory(ctx, userID, domain.ItemImmortalPlantJuice, 1); err != nil {
		return nil, err
	}
	if err := tx.SavePlant(ctx, *p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSavePlantFailed, err)
	}
	if err := tx.IncrementAchievement(ctx, userID, achievement.ImmortalizeCount, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgPlantImmortalized, "userID", userID, "plantName", p.Name)
	return p, nil
}

// Revive spends one revival_token to return a dead plant to Seeded
func (s *service) Revive(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReviveCalled, "userID", userID, "plantName", plantName)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	p, err := tx.GetPlantForUpdate(ctx, userID, plantName)
	if err != nil {
		return nil, err
	}
	if err := s.timings.Revive(p, s.now()); err != nil {
		return nil, err
	}
	if err := tx.ConsumeInventory(ctx, userID, domain.ItemRevivalToken, 1); err != nil {
		return nil, err
	}
	if err := tx.SavePlant(ctx, *p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSavePlantFailed, err)
	}
	if err := tx.IncrementAchievement(ctx, userID, achievement.ReviveCount, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgPlantRevived, "userID", userID, "plantName", p.Name)
	s.publish(ctx, event.NewPlantRevivedEvent(userID, p.Name))
	return p, nil
}

// GiveItem moves one consumable from one user to another
func (s *service) GiveItem(ctx context.Context, fromID, toID int64, itemName string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGiveItemCalled, "fromID", fromID, "toID", toID, "item", itemName)

	if fromID == toID {
		return domain.ErrSelfTarget
	}
	item, err := s.catalog.Item(itemName)
	if err != nil {
		return err
	}
	if item.Name == domain.ItemPlantPot {
		return fmt.Errorf("%w: %q", domain.ErrUnknownItem, itemName)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock both users in id order so opposite gifts cannot deadlock.
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	for _, id := range []int64{first, second} {
		if _, err := tx.GetUserForUpdate(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
		}
	}

	if err := tx.ConsumeInventory(ctx, fromID, item.Name, 1); err != nil {
		return err
	}
	if err := tx.AddInventory(ctx, toID, item.Name, 1); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInventoryFailed, err)
	}
	if err := tx.IncrementAchievement(ctx, fromID, achievement.GiveCount, 1); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgItemGiven, "fromID", fromID, "toID", toID, "item", item.Name)
	return nil
}
