// Package shop runs the monthly plant roster and every experience purchase.
package shop

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/GardenBot_Go/internal/capability"
	"github.com/osse101/GardenBot_Go/internal/catalog"
	"github.com/osse101/GardenBot_Go/internal/concurrency"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// Config holds the shop's limits
type Config struct {
	PurchaseCooldown time.Duration
	HardPlantCap     int
	NonSubscriberCap int
	// IsPrivileged users skip the plant purchase cooldown
	IsPrivileged func(userID int64) bool
}

// Receipt summarises an item or pot purchase
type Receipt struct {
	ItemName            string `json:"item_name"`
	Price               int    `json:"price"`
	RemainingExperience int    `json:"remaining_experience"`
	PlantLimit          int    `json:"plant_limit"`
}

// Service defines the shop operations
type Service interface {
	ViewShop(ctx context.Context, userID int64) (*domain.ShopState, error)
	PurchasePlant(ctx context.Context, userID int64, plantName, givenName string) (*domain.UserPlant, error)
	// PurchaseItem buys one catalog item; plant_pot is routed to PurchasePot
	PurchaseItem(ctx context.Context, userID int64, itemName string) (*Receipt, error)
	PurchasePot(ctx context.Context, userID int64) (*Receipt, error)
	// RefreshShop spends a refresh token to force a new roster on the next view
	RefreshShop(ctx context.Context, userID int64) error
}

type service struct {
	repo       repository.Shop
	catalog    *catalog.Catalog
	capability capability.Checker
	locks      *concurrency.LockManager
	publisher  event.Publisher
	cfg        Config
	now        func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a new shop service
func NewService(
	repo repository.Shop,
	cat *catalog.Catalog,
	checker capability.Checker,
	locks *concurrency.LockManager,
	publisher event.Publisher,
	cfg Config,
) Service {
	if cfg.PurchaseCooldown <= 0 {
		cfg.PurchaseCooldown = DefaultPurchaseCooldown
	}
	if cfg.HardPlantCap <= 0 {
		cfg.HardPlantCap = domain.DefaultHardPlantCap
	}
	if cfg.NonSubscriberCap <= 0 {
		cfg.NonSubscriberCap = domain.DefaultNonSubscriberCap
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:       repo,
		catalog:    cat,
		capability: checker,
		locks:      locks,
		publisher:  publisher,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *service) privileged(userID int64) bool {
	return s.cfg.IsPrivileged != nil && s.cfg.IsPrivileged(userID)
}

func (s *service) effectiveCap(user domain.UserInfo) int {
	return user.EffectivePlantCap(s.cfg.HardPlantCap, s.cfg.NonSubscriberCap)
}

func (s *service) generate(userID int64, previous *domain.ShopRoster, now time.Time) domain.ShopRoster {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return GenerateRoster(userID, s.catalog.ListAvailable(), previous, now, s.rng)
}

func (s *service) lock(userID int64) func() {
	return s.locks.Lock(shopLockPrefix + strconv.FormatInt(userID, 10))
}

// ViewShop returns the user's shop, drawing a new roster when the stored one
// is absent or from an earlier month
func (s *service) ViewShop(ctx context.Context, userID int64) (*domain.ShopState, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgViewShopCalled, "userID", userID)

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
	if user.HasPremium != premium {
		log.Info(LogMsgPremiumChanged, "userID", userID, "premium", premium)
		user.HasPremium = premium
		if err := tx.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgUpdateUserFailed, err)
		}
	}

	now := s.now()
	roster, err := s.currentRoster(ctx, tx, userID, now)
	if err != nil {
		return nil, err
	}
	count, err := tx.CountPlants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCountPlantsFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	return s.buildState(ctx, *user, *roster, count, now), nil
}

func (s *service) currentRoster(ctx context.Context, tx repository.ShopTx, userID int64, now time.Time) (*domain.ShopRoster, error) {
	log := logger.FromContext(ctx)

	stored, err := tx.GetRoster(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRosterFailed, err)
	}
	if stored != nil && !IsStale(*stored, now) {
		return stored, nil
	}

	fresh := s.generate(userID, stored, now)
	if stored == nil {
		// A concurrent first view may win the insert; the stored roster is authoritative.
		roster, err := tx.InsertRosterIfAbsent(ctx, fresh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgSaveRosterFailed, err)
		}
		log.Info(LogMsgRosterGenerated, "userID", userID, "plants", roster.Names())
		return roster, nil
	}

	if err := tx.SaveRoster(ctx, fresh); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSaveRosterFailed, err)
	}
	log.Info(LogMsgRosterRotated, "userID", userID, "plants", fresh.Names())
	return &fresh, nil
}

func (s *service) buildState(ctx context.Context, user domain.UserInfo, roster domain.ShopRoster, count int, now time.Time) *domain.ShopState {
	limitCap := s.effectiveCap(user)

	offers := make([]domain.ShopOffer, 0, domain.VisibleRosterLevels)
	for level, name := range roster.PlantLevels[:domain.VisibleRosterLevels] {
		if name == "" {
			continue
		}
		pt, ok := s.catalog.Lookup(name)
		if !ok {
			logger.FromContext(ctx).Warn(LogMsgRosterUnknownPlant, "userID", user.UserID, "plantType", name)
			continue
		}
		offers = append(offers, domain.ShopOffer{Level: level, Plant: pt, Price: pt.RequiredExperience})
	}

	reported := user
	reported.PlantLimit = min(user.PlantLimit, limitCap)

	return &domain.ShopState{
		User:           reported,
		PlantCount:     count,
		Offers:         offers,
		Items:          s.catalog.Items(),
		PotPrice:       PotPrice(user.PlantLimit),
		PotPurchasable: user.PlantLimit < limitCap,
		NextRotation:   NextRotation(now),
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "eventType", evt.Type, "error", err)
	}
}
