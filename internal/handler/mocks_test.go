package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GardenBot_Go/internal/capability"
	"github.com/osse101/GardenBot_Go/internal/database"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/shop"
	"github.com/osse101/GardenBot_Go/internal/trade"
)

// MockGardenService mocks garden.Service
type MockGardenService struct {
	mock.Mock
}

var _ garden.Service = (*MockGardenService)(nil)

func (m *MockGardenService) Water(ctx context.Context, userID, ownerID int64, plantName string) (*domain.WaterResult, error) {
	args := m.Called(ctx, userID, ownerID, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaterResult), args.Error(1)
}

func (m *MockGardenService) Rename(ctx context.Context, userID int64, plantName, newName string) (*domain.UserPlant, error) {
	args := m.Called(ctx, userID, plantName, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPlant), args.Error(1)
}

func (m *MockGardenService) Delete(ctx context.Context, userID int64, plantName string) error {
	args := m.Called(ctx, userID, plantName)
	return args.Error(0)
}

func (m *MockGardenService) Immortalize(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error) {
	args := m.Called(ctx, userID, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPlant), args.Error(1)
}

func (m *MockGardenService) Revive(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error) {
	args := m.Called(ctx, userID, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPlant), args.Error(1)
}

func (m *MockGardenService) GiveItem(ctx context.Context, fromID, toID int64, itemName string) error {
	args := m.Called(ctx, fromID, toID, itemName)
	return args.Error(0)
}

func (m *MockGardenService) ListPlants(ctx context.Context, userID int64) ([]garden.PlantStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]garden.PlantStatus), args.Error(1)
}

func (m *MockGardenService) DisplayPlant(ctx context.Context, userID int64, plantName string) ([]byte, error) {
	args := m.Called(ctx, userID, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGardenService) DisplayGarden(ctx context.Context, userID int64) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGardenService) Herbiary(ctx context.Context) []domain.PlantType {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.PlantType)
}

func (m *MockGardenService) HerbiaryEntry(ctx context.Context, plantName string) (*garden.HerbiaryEntry, error) {
	args := m.Called(ctx, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*garden.HerbiaryEntry), args.Error(1)
}

func (m *MockGardenService) HerbiaryImage(ctx context.Context, plantName string) ([]byte, error) {
	args := m.Called(ctx, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGardenService) Inventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockGardenService) Achievements(ctx context.Context, userID int64) (*domain.Achievements, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievements), args.Error(1)
}

func (m *MockGardenService) GiveKey(ctx context.Context, ownerID, guestID int64) error {
	args := m.Called(ctx, ownerID, guestID)
	return args.Error(0)
}

func (m *MockGardenService) RevokeKey(ctx context.Context, ownerID, guestID int64) error {
	args := m.Called(ctx, ownerID, guestID)
	return args.Error(0)
}

func (m *MockGardenService) ListKeys(ctx context.Context, ownerID int64) ([]int64, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockShopService mocks shop.Service
type MockShopService struct {
	mock.Mock
}

var _ shop.Service = (*MockShopService)(nil)

func (m *MockShopService) ViewShop(ctx context.Context, userID int64) (*domain.ShopState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopState), args.Error(1)
}

func (m *MockShopService) PurchasePlant(ctx context.Context, userID int64, plantName, givenName string) (*domain.UserPlant, error) {
	args := m.Called(ctx, userID, plantName, givenName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPlant), args.Error(1)
}

func (m *MockShopService) PurchaseItem(ctx context.Context, userID int64, itemName string) (*shop.Receipt, error) {
	args := m.Called(ctx, userID, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Receipt), args.Error(1)
}

func (m *MockShopService) PurchasePot(ctx context.Context, userID int64) (*shop.Receipt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Receipt), args.Error(1)
}

func (m *MockShopService) RefreshShop(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTradeService mocks trade.Service
type MockTradeService struct {
	mock.Mock
}

var _ trade.Service = (*MockTradeService)(nil)

func (m *MockTradeService) Offer(ctx context.Context, initiatorID, recipientID int64) (*domain.Trade, error) {
	args := m.Called(ctx, initiatorID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Accept(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Decline(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Select(ctx context.Context, tradeID string, userID int64, plantName string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID, userID, plantName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Confirm(ctx context.Context, tradeID string, userID int64) (*domain.Trade, *domain.TradeCommitResult, error) {
	args := m.Called(ctx, tradeID, userID)
	var t *domain.Trade
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.Trade)
	}
	var res *domain.TradeCommitResult
	if args.Get(1) != nil {
		res = args.Get(1).(*domain.TradeCommitResult)
	}
	return t, res, args.Error(2)
}

func (m *MockTradeService) Cancel(ctx context.Context, tradeID string, userID int64) error {
	args := m.Called(ctx, tradeID, userID)
	return args.Error(0)
}

func (m *MockTradeService) Get(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockChecker mocks capability.Checker
type MockChecker struct {
	mock.Mock
}

var _ capability.Checker = (*MockChecker)(nil)

func (m *MockChecker) HasPremium(ctx context.Context, userID int64) bool {
	return m.Called(ctx, userID).Bool(0)
}

func (m *MockChecker) VotedRecently(ctx context.Context, userID int64) bool {
	return m.Called(ctx, userID).Bool(0)
}

func (m *MockChecker) Refresh(ctx context.Context, userID int64) {
	m.Called(ctx, userID)
}

// MockDBPool mocks database.Pool
type MockDBPool struct {
	mock.Mock
}

var _ database.Pool = (*MockDBPool)(nil)

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
