package trade

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// fakeClock fires timers synchronously from Advance
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// memStore is a transactional in-memory plant table. BeginTx snapshots the
// plants; Rollback without Commit restores them.
type memStore struct {
	mu         sync.Mutex
	plants     map[int64][]domain.UserPlant
	trades     map[int64]int64
	nextID     int64
	snapshot   map[int64][]domain.UserPlant
	failCommit error
}

func newMemStore() *memStore {
	return &memStore{plants: map[int64][]domain.UserPlant{}, trades: map[int64]int64{}, nextID: 100}
}

func (s *memStore) add(p domain.UserPlant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.plants[p.UserID] = append(s.plants[p.UserID], p)
}

func (s *memStore) find(userID int64, name string) *domain.UserPlant {
	for i := range s.plants[userID] {
		if strings.EqualFold(s.plants[userID][i].Name, name) {
			return &s.plants[userID][i]
		}
	}
	return nil
}

func (s *memStore) plant(userID int64, name string) (domain.UserPlant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.find(userID, name); p != nil {
		return *p, true
	}
	return domain.UserPlant{}, false
}

func (s *memStore) GetUser(_ context.Context, userID int64) (*domain.UserInfo, error) {
	u := domain.NewUserInfo(userID)
	return &u, nil
}

func (s *memStore) GetInventory(context.Context, int64) ([]domain.InventoryEntry, error) {
	return nil, nil
}

func (s *memStore) GetAchievements(_ context.Context, userID int64) (*domain.Achievements, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &domain.Achievements{User: domain.UserAchievements{UserID: userID, TradeCount: s.trades[userID]}}, nil
}

func (s *memStore) ListPlants(_ context.Context, userID int64) ([]domain.UserPlant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.UserPlant(nil), s.plants[userID]...), nil
}

func (s *memStore) GetPlant(_ context.Context, userID int64, name string) (*domain.UserPlant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.find(userID, name); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPlantNotFound
}

func (s *memStore) BeginTx(context.Context) (repository.TradeTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = make(map[int64][]domain.UserPlant, len(s.plants))
	for id, ps := range s.plants {
		s.snapshot[id] = append([]domain.UserPlant(nil), ps...)
	}
	return s, nil
}

func (s *memStore) Commit(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCommit != nil {
		return s.failCommit
	}
	s.snapshot = nil
	return nil
}

func (s *memStore) Rollback(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		s.plants = s.snapshot
		s.snapshot = nil
	}
	return nil
}

func (s *memStore) GetUserForUpdate(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	return s.GetUser(ctx, userID)
}

func (s *memStore) UpdateUser(context.Context, domain.UserInfo) error          { return nil }
func (s *memStore) AddExperience(context.Context, int64, int) error            { return nil }
func (s *memStore) AddInventory(context.Context, int64, string, int) error     { return nil }
func (s *memStore) ConsumeInventory(context.Context, int64, string, int) error { return nil }
func (s *memStore) SavePlant(context.Context, domain.UserPlant) error          { return nil }
func (s *memStore) CountPlants(context.Context, int64) (int, error)            { return 0, nil }

func (s *memStore) GetPlantForUpdate(ctx context.Context, userID int64, name string) (*domain.UserPlant, error) {
	return s.GetPlant(ctx, userID, name)
}

func (s *memStore) IncrementAchievement(_ context.Context, userID int64, counter achievement.Counter, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if counter == achievement.TradeCount {
		s.trades[userID] += delta
	}
	return nil
}

func (s *memStore) IncrementPlantAchievement(context.Context, int64, string, achievement.PlantCounter, int64) error {
	return nil
}

func (s *memStore) InsertPlant(_ context.Context, p *domain.UserPlant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(p.UserID, p.Name) != nil {
		return domain.ErrNameCollision
	}
	s.nextID++
	p.ID = s.nextID
	s.plants[p.UserID] = append(s.plants[p.UserID], *p)
	return nil
}

func (s *memStore) DeletePlant(_ context.Context, plantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, ps := range s.plants {
		for i, p := range ps {
			if p.ID == plantID {
				s.plants[userID] = append(ps[:i:i], ps[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrPlantNotFound
}

func (s *memStore) PlantNameTaken(_ context.Context, userID int64, name string, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(userID, name)
	return p != nil && p.ID != excludeID, nil
}

var (
	_ repository.Trade   = (*memStore)(nil)
	_ repository.TradeTx = (*memStore)(nil)
)

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingPublisher) last() event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return event.Event{}
	}
	return r.events[len(r.events)-1]
}
