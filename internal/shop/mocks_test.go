package shop

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// MockRepository implements repository.Shop for testing
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

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ShopTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ShopTx), args.Error(1)
}

// MockTx implements repository.ShopTx for testing
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

func (m *MockTx) GetRoster(ctx context.Context, userID int64) (*domain.ShopRoster, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopRoster), args.Error(1)
}

func (m *MockTx) SaveRoster(ctx context.Context, roster domain.ShopRoster) error {
	return m.Called(ctx, roster).Error(0)
}

func (m *MockTx) InsertRosterIfAbsent(ctx context.Context, roster domain.ShopRoster) (*domain.ShopRoster, error) {
	args := m.Called(ctx, roster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopRoster), args.Error(1)
}

// Ensure the mocks implement the interfaces
var (
	_ repository.Shop   = (*MockRepository)(nil)
	_ repository.ShopTx = (*MockTx)(nil)
	_ repository.Shop   = (*memStore)(nil)
	_ repository.ShopTx = (*memStore)(nil)
)

// staticChecker answers capability lookups from fixed flags
type staticChecker struct {
	premium bool
	voted   bool
}

func (c *staticChecker) HasPremium(context.Context, int64) bool    { return c.premium }
func (c *staticChecker) VotedRecently(context.Context, int64) bool { return c.voted }
func (c *staticChecker) Refresh(context.Context, int64)            {}

// memStore is a stateful single-connection stand-in for the shop tables.
// Its transaction is itself; Rollback discards nothing.
type memStore struct {
	users   map[int64]*domain.UserInfo
	rosters map[int64]domain.ShopRoster
	plants  map[int64][]domain.UserPlant
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]*domain.UserInfo{},
		rosters: map[int64]domain.ShopRoster{},
		plants:  map[int64][]domain.UserPlant{},
	}
}

func (s *memStore) user(userID int64) *domain.UserInfo {
	u, ok := s.users[userID]
	if !ok {
		fresh := domain.NewUserInfo(userID)
		u = &fresh
		s.users[userID] = u
	}
	return u
}

func (s *memStore) GetUser(_ context.Context, userID int64) (*domain.UserInfo, error) {
	u := *s.user(userID)
	return &u, nil
}

func (s *memStore) GetInventory(context.Context, int64) ([]domain.InventoryEntry, error) {
	return nil, nil
}

func (s *memStore) GetAchievements(_ context.Context, userID int64) (*domain.Achievements, error) {
	return &domain.Achievements{User: domain.UserAchievements{UserID: userID}}, nil
}

func (s *memStore) ListPlants(_ context.Context, userID int64) ([]domain.UserPlant, error) {
	return append([]domain.UserPlant(nil), s.plants[userID]...), nil
}

func (s *memStore) GetPlant(_ context.Context, userID int64, name string) (*domain.UserPlant, error) {
	for _, p := range s.plants[userID] {
		if strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, domain.ErrPlantNotFound
}

func (s *memStore) BeginTx(context.Context) (repository.ShopTx, error) { return s, nil }
func (s *memStore) Commit(context.Context) error                       { return nil }
func (s *memStore) Rollback(context.Context) error                     { return nil }

func (s *memStore) GetUserForUpdate(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	return s.GetUser(ctx, userID)
}

func (s *memStore) UpdateUser(_ context.Context, user domain.UserInfo) error {
	s.users[user.UserID] = &user
	return nil
}

func (s *memStore) AddExperience(_ context.Context, userID int64, delta int) error {
	u := s.user(userID)
	if u.Experience+delta < 0 {
		return domain.ErrInsufficientExperience
	}
	u.Experience += delta
	return nil
}

func (s *memStore) AddInventory(context.Context, int64, string, int) error     { return nil }
func (s *memStore) ConsumeInventory(context.Context, int64, string, int) error { return nil }

func (s *memStore) IncrementAchievement(context.Context, int64, achievement.Counter, int64) error {
	return nil
}

func (s *memStore) IncrementPlantAchievement(context.Context, int64, string, achievement.PlantCounter, int64) error {
	return nil
}

func (s *memStore) GetPlantForUpdate(ctx context.Context, userID int64, name string) (*domain.UserPlant, error) {
	return s.GetPlant(ctx, userID, name)
}

func (s *memStore) InsertPlant(ctx context.Context, p *domain.UserPlant) error {
	if taken, _ := s.PlantNameTaken(ctx, p.UserID, p.Name, 0); taken {
		return domain.ErrNameCollision
	}
	s.nextID++
	p.ID = s.nextID
	s.plants[p.UserID] = append(s.plants[p.UserID], *p)
	return nil
}

func (s *memStore) SavePlant(context.Context, domain.UserPlant) error { return nil }
func (s *memStore) DeletePlant(context.Context, int64) error          { return nil }

func (s *memStore) PlantNameTaken(_ context.Context, userID int64, name string, excludeID int64) (bool, error) {
	for _, p := range s.plants[userID] {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CountPlants(_ context.Context, userID int64) (int, error) {
	return len(s.plants[userID]), nil
}

func (s *memStore) GetRoster(_ context.Context, userID int64) (*domain.ShopRoster, error) {
	r, ok := s.rosters[userID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) SaveRoster(_ context.Context, roster domain.ShopRoster) error {
	s.rosters[roster.UserID] = roster
	return nil
}

func (s *memStore) InsertRosterIfAbsent(ctx context.Context, roster domain.ShopRoster) (*domain.ShopRoster, error) {
	if _, ok := s.rosters[roster.UserID]; !ok {
		s.rosters[roster.UserID] = roster
	}
	return s.GetRoster(ctx, roster.UserID)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []event.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	r.events = append(r.events, evt)
	return nil
}
