package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenBot_Go/internal/catalog"
	"github.com/osse101/GardenBot_Go/internal/config"
	"github.com/osse101/GardenBot_Go/internal/cooldown"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

const (
	ownerID int64 = 100
	guestID int64 = 200
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	fern := domain.PlantType{
		Name:                     "fern",
		DisplayName:              "Fern",
		Visible:                  true,
		Available:                true,
		Artist:                   "ana",
		Stages:                   2,
		NourishmentDisplayLevels: map[int]int{1: 1, 10: 2},
		PlantLevel:               1,
		RequiredExperience:       200,
		ExperienceGain:           domain.ExperienceRange{Min: 30, Max: 80},
	}
	hidden := domain.PlantType{
		Name:           "ghost_orchid",
		DisplayName:    "Ghost Orchid",
		Stages:         1,
		ExperienceGain: domain.ExperienceRange{Min: 10, Max: 25},
	}
	c, err := catalog.New(
		[]domain.PlantType{fern, hidden},
		[]domain.Artist{{ID: "ana", Name: "Ana"}},
		config.DefaultGameConfig().Plants.ItemPrices(),
	)
	require.NoError(t, err)
	return c
}

type fixture struct {
	repo      *MockRepository
	tx        *MockTx
	checker   *MockChecker
	renderer  *MockRenderer
	publisher *recordingPublisher
	now       time.Time
	svc       *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:      new(MockRepository),
		tx:        new(MockTx),
		checker:   new(MockChecker),
		renderer:  new(MockRenderer),
		publisher: &recordingPublisher{},
		now:       testNow,
	}
	cooldowns := cooldown.NewService(f.repo, cooldown.Config{})

	f.svc = NewService(f.repo, testCatalog(t), f.renderer, f.checker, cooldowns, f.publisher, plant.DefaultTimings()).(*service)
	f.svc.now = func() time.Time { return f.now }
	f.svc.rollExp = func(min, max int) int { return 50 }

	f.tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) expectTx() {
	f.repo.On("BeginTx", mock.Anything).Return(f.tx, nil)
}

func (f *fixture) noBonuses(userID int64) {
	f.checker.On("HasPremium", mock.Anything, userID).Return(false)
	f.checker.On("VotedRecently", mock.Anything, userID).Return(false)
}

// seededFern returns a freshly bought fern owned by ownerID
func seededFern() domain.UserPlant {
	return domain.UserPlant{
		ID:              7,
		UserID:          ownerID,
		Name:            "Fernando",
		PlantType:       "fern",
		Nourishment:     0,
		LastWaterTime:   domain.SentinelPast,
		OriginalOwnerID: ownerID,
		PlantPotHue:     40,
		AdoptionTime:    testNow.Add(-time.Hour),
	}
}

func ptr[T any](v T) *T { return &v }
