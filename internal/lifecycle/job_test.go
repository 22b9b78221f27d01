package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/repository"
	"github.com/osse101/GardenBot_Go/internal/worker"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// MockRepository implements repository.Lifecycle for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.LifecycleTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LifecycleTx), args.Error(1)
}

// MockTx implements repository.LifecycleTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockTx) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

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

func (m *MockTx) KillOverdue(ctx context.Context, t repository.Timing) ([]domain.DeadPlant, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeadPlant), args.Error(1)
}

func (m *MockTx) UpdateMaxLifetimes(ctx context.Context, now time.Time) error {
	return m.Called(ctx, now).Error(0)
}

func (m *MockTx) MarkWilting(ctx context.Context, t repository.Timing) ([]domain.UserPlant, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPlant), args.Error(1)
}

var (
	_ repository.Lifecycle   = (*MockRepository)(nil)
	_ repository.LifecycleTx = (*MockTx)(nil)
)

type recordingPublisher struct {
	events []event.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	r.events = append(r.events, evt)
	return nil
}

func newJob(repo *MockRepository, pub *recordingPublisher) *Job {
	j := NewJob(repo, plant.DefaultTimings(), pub)
	j.now = func() time.Time { return testNow }
	return j
}

func expectedTiming() repository.Timing {
	t := plant.DefaultTimings()
	return repository.Timing{Now: testNow, DeathTimeout: t.DeathTimeout, NotificationTime: t.NotificationTime}
}

func TestTick_KillsRecordsAndWarns(t *testing.T) {
	repo, tx, pub := new(MockRepository), new(MockTx), &recordingPublisher{}
	dead := []domain.DeadPlant{
		{PlantID: 1, UserID: 10, Name: "Rose", PlantType: "rose", Nourishment: -5},
		{PlantID: 2, UserID: 10, Name: "Lily", PlantType: "lily", Nourishment: -2},
	}
	wilting := []domain.UserPlant{
		{ID: 3, UserID: 11, Name: "Fern", Nourishment: 4, LastWaterTime: testNow.Add(-71*time.Hour - 30*time.Minute)},
	}

	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("KillOverdue", mock.Anything, expectedTiming()).Return(dead, nil)
	tx.On("IncrementPlantAchievement", mock.Anything, int64(10), "rose", achievement.PlantDeathCount, int64(1)).Return(nil).Once()
	tx.On("IncrementPlantAchievement", mock.Anything, int64(10), "lily", achievement.PlantDeathCount, int64(1)).Return(nil).Once()
	tx.On("IncrementAchievement", mock.Anything, int64(10), achievement.DeathsTotal, int64(1)).Return(nil).Twice()
	tx.On("UpdateMaxLifetimes", mock.Anything, testNow).Return(nil)
	tx.On("MarkWilting", mock.Anything, expectedTiming()).Return(wilting, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	report, err := newJob(repo, pub).Tick(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Died, 2)
	assert.Len(t, report.Wilting, 1)

	require.Len(t, pub.events, 3)
	assert.Equal(t, event.PlantDied, pub.events[0].Type)
	assert.Equal(t, event.PlantDied, pub.events[1].Type)
	assert.Equal(t, event.PlantWilting, pub.events[2].Type)
	payload, ok := pub.events[2].Payload.(event.PlantWiltingPayloadV1)
	require.True(t, ok)
	assert.Equal(t, testNow.Add(30*time.Minute), payload.DiesAt)
	tx.AssertExpectations(t)
}

func TestTick_NothingToDo(t *testing.T) {
	repo, tx, pub := new(MockRepository), new(MockTx), &recordingPublisher{}
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("KillOverdue", mock.Anything, mock.Anything).Return([]domain.DeadPlant{}, nil)
	tx.On("UpdateMaxLifetimes", mock.Anything, testNow).Return(nil)
	tx.On("MarkWilting", mock.Anything, mock.Anything).Return([]domain.UserPlant{}, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	report, err := newJob(repo, pub).Tick(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Died)
	assert.Empty(t, pub.events)
	tx.AssertNotCalled(t, "IncrementAchievement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_FailureRollsBackWithoutEvents(t *testing.T) {
	repo, tx, pub := new(MockRepository), new(MockTx), &recordingPublisher{}
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("KillOverdue", mock.Anything, mock.Anything).Return([]domain.DeadPlant{{PlantID: 1, UserID: 10, PlantType: "rose"}}, nil)
	tx.On("IncrementPlantAchievement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	tx.On("IncrementAchievement", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	tx.On("UpdateMaxLifetimes", mock.Anything, testNow).Return(errors.New("deadlock detected"))
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := newJob(repo, pub).Tick(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgMaxLifetimeFailed)
	assert.Empty(t, pub.events)
	tx.AssertCalled(t, "Rollback", mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTick_BeginFails(t *testing.T) {
	repo := new(MockRepository)
	repo.On("BeginTx", mock.Anything).Return(nil, errors.New("pool closed"))

	_, err := newJob(repo, &recordingPublisher{}).Tick(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgBeginTxFailed)
}

func TestProcess_RunsOnWorkerPool(t *testing.T) {
	repo, tx, pub := new(MockRepository), new(MockTx), &recordingPublisher{}
	done := make(chan struct{})
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("KillOverdue", mock.Anything, mock.Anything).Return([]domain.DeadPlant{}, nil)
	tx.On("UpdateMaxLifetimes", mock.Anything, testNow).Return(nil)
	tx.On("MarkWilting", mock.Anything, mock.Anything).Return([]domain.UserPlant{}, nil)
	tx.On("Commit", mock.Anything).Return(nil).Run(func(mock.Arguments) { close(done) })
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	pool := worker.NewPool(worker.PoolLifecycle, 1, 1)
	pool.Start()
	defer pool.Stop()

	require.NoError(t, pool.Enqueue(context.Background(), newJob(repo, pub)))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lifecycle job did not run")
	}
}
