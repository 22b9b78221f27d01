// Package garden implements watering and every plant management operation
// that does not go through the shop or a trade.
package garden

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/GardenBot_Go/internal/capability"
	"github.com/osse101/GardenBot_Go/internal/catalog"
	"github.com/osse101/GardenBot_Go/internal/compositor"
	"github.com/osse101/GardenBot_Go/internal/cooldown"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/repository"
	"github.com/osse101/GardenBot_Go/internal/utils"
)

// PlantStatus is a plant as shown to its owner
type PlantStatus struct {
	domain.UserPlant
	State       plant.State `json:"state"`
	DisplayName string      `json:"display_name"`
	NextWaterAt time.Time   `json:"next_water_at"`
	DiesAt      *time.Time  `json:"dies_at,omitempty"`
}

// HerbiaryEntry is a catalog entry with its sprite credits
type HerbiaryEntry struct {
	Plant  domain.PlantType `json:"plant"`
	Artist *domain.Artist   `json:"artist,omitempty"`
}

// Service defines watering and plant management
type Service interface {
	// Water waters ownerID's plant on behalf of userID. Guests need a key.
	Water(ctx context.Context, userID, ownerID int64, plantName string) (*domain.WaterResult, error)

	Rename(ctx context.Context, userID int64, plantName, newName string) (*domain.UserPlant, error)
	Delete(ctx context.Context, userID int64, plantName string) error
	Immortalize(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error)
	Revive(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error)
	GiveItem(ctx context.Context, fromID, toID int64, itemName string) error

	ListPlants(ctx context.Context, userID int64) ([]PlantStatus, error)
	DisplayPlant(ctx context.Context, userID int64, plantName string) ([]byte, error)
	DisplayGarden(ctx context.Context, userID int64) ([]byte, error)
	Herbiary(ctx context.Context) []domain.PlantType
	HerbiaryEntry(ctx context.Context, plantName string) (*HerbiaryEntry, error)
	HerbiaryImage(ctx context.Context, plantName string) ([]byte, error)
	Inventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error)
	Achievements(ctx context.Context, userID int64) (*domain.Achievements, error)

	GiveKey(ctx context.Context, ownerID, guestID int64) error
	RevokeKey(ctx context.Context, ownerID, guestID int64) error
	ListKeys(ctx context.Context, ownerID int64) ([]int64, error)
}

type service struct {
	repo       repository.Garden
	catalog    *catalog.Catalog
	renderer   compositor.Service
	capability capability.Checker
	cooldowns  cooldown.Service
	publisher  event.Publisher
	timings    plant.Timings
	now        func() time.Time
	rollExp    func(min, max int) int
}

// NewService creates a new garden service
func NewService(
	repo repository.Garden,
	cat *catalog.Catalog,
	renderer compositor.Service,
	checker capability.Checker,
	cooldowns cooldown.Service,
	publisher event.Publisher,
	timings plant.Timings,
) Service {
	return &service{
		repo:       repo,
		catalog:    cat,
		renderer:   renderer,
		capability: checker,
		cooldowns:  cooldowns,
		publisher:  publisher,
		timings:    timings,
		now:        func() time.Time { return time.Now().UTC() },
		rollExp:    utils.RandomInt,
	}
}

// plantType resolves a stored row's type. A row pointing at a type the
// catalog does not know is an internal inconsistency and surfaces as ErrFatal.
func (s *service) plantType(ctx context.Context, p *domain.UserPlant) (domain.PlantType, error) {
	pt, ok := s.catalog.Lookup(p.PlantType)
	if !ok {
		logger.FromContext(ctx).Error(LogMsgUnknownRowType, "plantID", p.ID, "plantType", p.PlantType)
		return domain.PlantType{}, fmt.Errorf("%w: %s %q", domain.ErrFatal, ErrMsgUnknownRowType, p.PlantType)
	}
	return pt, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "eventType", evt.Type, "error", err)
	}
}
