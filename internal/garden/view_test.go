package garden

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenBot_Go/internal/compositor"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

func TestListPlants(t *testing.T) {
	f := newFixture(t)

	seeded := seededFern()
	growing := seededFern()
	growing.Name, growing.Nourishment, growing.LastWaterTime = "Grow", 4, testNow.Add(-time.Hour)
	wilting := seededFern()
	wilting.Name, wilting.Nourishment, wilting.LastWaterTime = "Wilt", 4, testNow.Add(-71*time.Hour-time.Minute)
	dead := seededFern()
	dead.Name, dead.Nourishment = "Dead", -4

	f.repo.On("ListPlants", mock.Anything, ownerID).Return([]domain.UserPlant{seeded, growing, wilting, dead}, nil)

	got, err := f.svc.ListPlants(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, plant.StateSeeded, got[0].State)
	assert.Nil(t, got[0].DiesAt)
	assert.Equal(t, "Fern", got[0].DisplayName)

	assert.Equal(t, plant.StateGrowing, got[1].State)
	require.NotNil(t, got[1].DiesAt)
	assert.Equal(t, growing.LastWaterTime.Add(72*time.Hour), *got[1].DiesAt)
	assert.Equal(t, growing.LastWaterTime.Add(15*time.Minute), got[1].NextWaterAt)

	assert.Equal(t, plant.StateWilting, got[2].State)
	assert.Equal(t, plant.StateDead, got[3].State)
}

func TestDisplayPlant(t *testing.T) {
	f := newFixture(t)
	p := seededFern()
	p.Nourishment = 9
	user := domain.NewUserInfo(ownerID)

	f.repo.On("GetUser", mock.Anything, ownerID).Return(&user, nil)
	f.repo.On("GetPlant", mock.Anything, ownerID, "Fernando").Return(&p, nil)
	f.renderer.On("RenderPNG", mock.Anything, mock.MatchedBy(func(req compositor.RenderRequest) bool {
		return req.PlantType.Name == "fern" && req.Nourishment == 9 && req.PotHue == 40 && req.PotType == domain.PotTypeClay
	})).Return([]byte("png"), nil)

	img, err := f.svc.DisplayPlant(context.Background(), ownerID, "Fernando")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), img)
}

func TestDisplayGarden(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newFixture(t)
		user := domain.NewUserInfo(ownerID)
		f.repo.On("GetUser", mock.Anything, ownerID).Return(&user, nil)
		f.repo.On("ListPlants", mock.Anything, ownerID).Return([]domain.UserPlant{}, nil)

		_, err := f.svc.DisplayGarden(context.Background(), ownerID)
		assert.ErrorIs(t, err, domain.ErrPlantNotFound)
	})

	t.Run("renders every plant", func(t *testing.T) {
		f := newFixture(t)
		user := domain.NewUserInfo(ownerID)
		a, b := seededFern(), seededFern()
		b.Name = "Second"
		f.repo.On("GetUser", mock.Anything, ownerID).Return(&user, nil)
		f.repo.On("ListPlants", mock.Anything, ownerID).Return([]domain.UserPlant{a, b}, nil)
		f.renderer.On("RenderGarden", mock.Anything, mock.MatchedBy(func(reqs []compositor.RenderRequest) bool {
			return len(reqs) == 2
		}), mock.Anything).Return([]byte("strip"), nil)

		img, err := f.svc.DisplayGarden(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Equal(t, []byte("strip"), img)
	})
}

func TestHerbiary(t *testing.T) {
	f := newFixture(t)

	visible := f.svc.Herbiary(context.Background())
	require.Len(t, visible, 1)
	assert.Equal(t, "fern", visible[0].Name)

	entry, err := f.svc.HerbiaryEntry(context.Background(), "fern")
	require.NoError(t, err)
	require.NotNil(t, entry.Artist)
	assert.Equal(t, "Ana", entry.Artist.Name)

	_, err = f.svc.HerbiaryEntry(context.Background(), "fren")
	assert.ErrorIs(t, err, domain.ErrUnknownPlantType)

	f.renderer.On("RenderPNG", mock.Anything, mock.MatchedBy(func(req compositor.RenderRequest) bool {
		return req.Nourishment == domain.MaxNourishmentLevel
	})).Return([]byte("preview"), nil)
	img, err := f.svc.HerbiaryImage(context.Background(), "fern")
	require.NoError(t, err)
	assert.Equal(t, []byte("preview"), img)
}

func TestKeys(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.svc.GiveKey(context.Background(), ownerID, ownerID), domain.ErrSelfTarget)

	f.repo.On("GrantKey", mock.Anything, ownerID, guestID).Return(nil)
	require.NoError(t, f.svc.GiveKey(context.Background(), ownerID, guestID))

	f.repo.On("ListKeys", mock.Anything, ownerID).Return([]domain.GardenKey{
		{OwnerID: ownerID, GuestID: guestID},
		{OwnerID: ownerID, GuestID: 300},
	}, nil)
	guests, err := f.svc.ListKeys(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, []int64{guestID, 300}, guests)

	f.repo.On("RevokeKey", mock.Anything, ownerID, guestID).Return(nil)
	require.NoError(t, f.svc.RevokeKey(context.Background(), ownerID, guestID))
}
