package garden

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/compositor"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// MockRepository implements repository.Garden for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserInfo), args.Error(1)
}

func (m *MockRepository) GetInventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockRepository) GetAchievements(ctx context.Context, userID int64) (*domain.Achievements, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievements), args.Error(1)
}

func (m *MockRepository) ListPlants(ctx context.Context, userID int64) ([]domain.UserPlant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPlant), args.Error(1)
}

func (m *MockRepository) GetPlant(ctx context.Context, userID int64, name string) (*domain.UserPlant, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPlant), args.Error(1)
}

func (m *MockRepository) HasKey(ctx context.Context, ownerID, guestID int64) (bool, error) {
	args := m.Called(ctx, ownerID, guestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GrantKey(ctx context.Context, ownerID, guestID int64) error {
	return m.Called(ctx, ownerID, guestID).Error(0)
}

func (m *MockRepository) RevokeKey(ctx context.Context, ownerID, guestID int64) error {
	return m.Called(ctx, ownerID, guestID).Error(0)
}

func (m *MockRepository) ListKeys(ctx context.Context, ownerID int64) ([]domain.GardenKey, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GardenKey), args.Error(1)
}

func (m *MockRepository) GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error) {
	args := m.Called(ctx, userID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.GardenTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.GardenTx), args.Error(1)
}

// MockTx implements repository.GardenTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) GetUserForUpdate(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserInfo), args.Error(1)
}

func (m *MockTx) UpdateUser(ctx context.Context, user domain.UserInfo) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockTx) AddExperience(ctx context.Context, userID int64, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockTx) AddInventory(ctx context.Context, userID int64, itemName string, amount int) error {
	return m.Called(ctx, userID, itemName, amount).Error(0)
}

func (m *MockTx) ConsumeInventory(ctx context.Context, userID int64, itemName string, amount int) error {
	return m.Called(ctx, userID, itemName, amount).Error(0)
}

func (m *MockTx) IncrementAchievement(ctx context.Context, userID int64, counter achievement.Counter, delta int64) error {
	return m.Called(ctx, userID, counter, delta).Error(0)
}

func (m *MockTx) IncrementPlantAchievement(ctx context.Context, userID int64, plantType string, counter achievement.PlantCounter, delta int64) error {
	return m.Called(ctx, userID, plantType, counter, delta).Error(0)
}

func (m *MockTx) GetPlantForUpdate(ctx context.Context, userID int64, name string) (*domain.UserPlant, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPlant), args.Error(1)
}

func (m *MockTx) InsertPlant(ctx context.Context, p *domain.UserPlant) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockTx) SavePlant(ctx context.Context, p domain.UserPlant) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockTx) DeletePlant(ctx context.Context, plantID int64) error {
	return m.Called(ctx, plantID).Error(0)
}

func (m *MockTx) PlantNameTaken(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) CountPlants(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) GetCooldown(ctx context.Context, userID int64, action string) (*time.Time, error) {
	args := m.Called(ctx, userID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockTx) SetCooldown(ctx context.Context, userID int64, action string, at time.Time) error {
	return m.Called(ctx, userID, action, at).Error(0)
}

// Ensure the mocks implement the interfaces
var (
	_ repository.Garden   = (*MockRepository)(nil)
	_ repository.GardenTx = (*MockTx)(nil)
)

// MockChecker implements capability.Checker for testing
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) HasPremium(ctx context.Context, userID int64) bool {
	return m.Called(ctx, userID).Bool(0)
}

func (m *MockChecker) VotedRecently(ctx context.Context, userID int64) bool {
	return m.Called(ctx, userID).Bool(0)
}

func (m *MockChecker) Refresh(ctx context.Context, userID int64) {
	m.Called(ctx, userID)
}

// MockRenderer implements compositor.Service for testing
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderPNG(ctx context.Context, req compositor.RenderRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderGrowthGIF(ctx context.Context, pt *domain.PlantType, potType string, potHue, frameDurationMS int) ([]byte, error) {
	args := m.Called(ctx, pt, potType, potHue, frameDurationMS)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderGarden(ctx context.Context, reqs []compositor.RenderRequest, seed int64) ([]byte, error) {
	args := m.Called(ctx, reqs, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []event.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	r.events = append(r.events, evt)
	return nil
}
