package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/catalog"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// PurchasePlant adopts a plant from this month's roster under givenName
func (s *service) PurchasePlant(ctx context.Context, userID int64, plantName, givenName string) (*domain.UserPlant, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchasePlantCalled, "userID", userID, "plantName", plantName, "givenName", givenName)

	name, err := catalog.ValidatePlantName(givenName)
	if err != nil {
		return nil, err
	}
	pt, err := s.catalog.Get(plantName)
	if err != nil {
		return nil, err
	}
	premium := s.capability.HasPremium(ctx, userID)

	unlock := s.lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	user.HasPremium = premium

	now := s.now()
	roster, err := tx.GetRoster(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRosterFailed, err)
	}
	if roster == nil || IsStale(*roster, now) || !roster.Contains(pt.Name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotInRoster, pt.DisplayName)
	}

	if !s.privileged(userID) {
		if remaining := user.LastPlantShopTime.Add(s.cfg.PurchaseCooldown).Sub(now); remaining > 0 {
			return nil, fmt.Errorf("%w: %w", domain.ErrPurchaseCooldown, domain.CooldownError{Remaining: remaining})
		}
	}

	price := pt.RequiredExperience
	if user.Experience < price {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientExperience, price, user.Experience)
	}

	count, err := tx.CountPlants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCountPlantsFailed, err)
	}
	if count >= min(user.PlantLimit, s.effectiveCap(*user)) {
		return nil, domain.ErrPlantLimitReached
	}

	taken, err := tx.PlantNameTaken(ctx, userID, name, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCheckNameFailed, err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrNameCollision, name)
	}

	user.LastPlantShopTime = now
	if err := tx.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateUserFailed, err)
	}
	if err := tx.AddExperience(ctx, userID, -price); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAddExperienceFailed, err)
	}

	p := &domain.UserPlant{
		UserID:          userID,
		Name:            name,
		PlantType:       pt.Name,
		PlantVariant:    domain.DefaultPlantVariant,
		Nourishment:     0,
		LastWaterTime:   domain.SentinelPast,
		OriginalOwnerID: userID,
		PlantPotHue:     user.PlantPotHue,
		AdoptionTime:    now,
	}
	if err := tx.InsertPlant(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNameCollision) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgInsertPlantFailed, err)
	}
	if err := tx.IncrementPlantAchievement(ctx, userID, pt.Name, achievement.PlantCount, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgPlantPurchased, "userID", userID, "plantType", pt.Name, "plantName", p.Name, "price", price)
	s.publish(ctx, event.NewPlantPurchasedEvent(userID, p.Name, p.PlantType, price))
	return p, nil
}

// PurchaseItem debits the item's price and adds one to the inventory
func (s *service) PurchaseItem(ctx context.Context, userID int64, itemName string) (*Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseItemCalled, "userID", userID, "itemName", itemName)

	item, err := s.catalog.Item(itemName)
	if err != nil {
		return nil, err
	}
	if item.Name == domain.ItemPlantPot {
		return s.PurchasePot(ctx, userID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	if user.Experience < item.Price {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientExperience, item.Price, user.Experience)
	}
	if err := tx.AddExperience(ctx, userID, -item.Price); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAddExperienceFailed, err)
	}
	if err := tx.AddInventory(ctx, userID, item.Name, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInventoryFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgItemPurchased, "userID", userID, "itemName", item.Name, "price", item.Price)
	s.publish(ctx, event.NewItemPurchasedEvent(userID, item.Name, item.Price))
	return &Receipt{
		ItemName:            item.Name,
		Price:               item.Price,
		RemainingExperience: user.Experience - item.Price,
		PlantLimit:          user.PlantLimit,
	}, nil
}

// PurchasePot raises plant_limit by one at PotPrice of the current limit
func (s *service) PurchasePot(ctx context.Context, userID int64) (*Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchasePotCalled, "userID", userID)

	premium := s.capability.HasPremium(ctx, userID)

	unlock := s.lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	user.HasPremium = premium

	limit := user.PlantLimit
	if limit >= s.effectiveCap(*user) {
		return nil, fmt.Errorf("%w: %d", domain.ErrPotCapReached, limit)
	}
	price := PotPrice(limit)
	if user.Experience < price {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientExperience, price, user.Experience)
	}

	user.PlantLimit = limit + 1
	if err := tx.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateUserFailed, err)
	}
	if err := tx.AddExperience(ctx, userID, -price); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAddExperienceFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgPotPurchased, "userID", userID, "plantLimit", user.PlantLimit, "price", price)
	s.publish(ctx, event.NewItemPurchasedEvent(userID, domain.ItemPlantPot, price))
	return &Receipt{
		ItemName:            domain.ItemPlantPot,
		Price:               price,
		RemainingExperience: user.Experience - price,
		PlantLimit:          user.PlantLimit,
	}, nil
}

// RefreshShop consumes a refresh token and backdates the roster so that the
// next view draws a new one. A user with no roster yet keeps the token.
func (s *service) RefreshShop(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRefreshShopCalled, "userID", userID)

	unlock := s.lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	roster, err := tx.GetRoster(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGetRosterFailed, err)
	}
	if roster == nil {
		return domain.ErrShopNotViewed
	}
	if err := tx.ConsumeInventory(ctx, userID, domain.ItemRefreshToken, 1); err != nil {
		if errors.Is(err, domain.ErrInsufficientInventory) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgInventoryFailed, err)
	}

	roster.LastShopTimestamp = domain.SentinelPast
	if err := tx.SaveRoster(ctx, *roster); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSaveRosterFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}
	log.Info(LogMsgRosterForced, "userID", userID)
	return nil
}
