package garden

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GardenBot_Go/internal/achievement"
	"github.com/osse101/GardenBot_Go/internal/cooldown"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// Bonuses are the conditions that scale watering experience
type Bonuses struct {
	Premium          bool
	QuickWater       bool
	NotOriginalOwner bool
	Voted            bool
	Mature           bool
	Immortal         bool
}

// Multipliers lists the factors that apply, in their fixed order
func (b Bonuses) Multipliers() []domain.Multiplier {
	out := make([]domain.Multiplier, 0, 6)
	add := func(on bool, name string, factor float64) {
		if on {
			out = append(out, domain.Multiplier{Name: name, Factor: factor})
		}
	}
	add(b.Premium, domain.MultiplierPremium, FactorPremium)
	add(b.QuickWater, domain.MultiplierQuickWater, FactorQuickWater)
	add(b.NotOriginalOwner, domain.MultiplierGuest, FactorGuest)
	add(b.Voted, domain.MultiplierVoted, FactorVoted)
	add(b.Mature, domain.MultiplierMature, FactorMature)
	add(b.Immortal, domain.MultiplierImmortal, FactorImmortal)
	return out
}

// ApplyMultipliers scales base by every factor and floors once at the end
func ApplyMultipliers(base int, multipliers []domain.Multiplier) int {
	v := float64(base)
	for _, m := range multipliers {
		v *= m.Factor
	}
	return int(math.Floor(v + floorEpsilon))
}

// Water waters a plant. When userID differs from ownerID the caller is a
// guest: they need a key and are limited by the per-plant guest cooldown.
func (s *service) Water(ctx context.Context, userID, ownerID int64, plantName string) (*domain.WaterResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWaterCalled, "userID", userID, "ownerID", ownerID, "plantName", plantName)

	guest := userID != ownerID
	if guest {
		ok, err := s.repo.HasKey(ctx, ownerID, userID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgCheckKeyFailed, err)
		}
		if !ok {
			return nil, domain.ErrNotAuthorizedGuest
		}
	}

	// Fail fast outside the transaction; everything is re-checked under lock.
	p, err := s.repo.GetPlant(ctx, ownerID, plantName)
	if err != nil {
		return nil, err
	}
	pt, err := s.plantType(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.timings.CanWater(*p, s.now()); err != nil {
		return nil, err
	}

	var guestAction string
	if guest {
		guestAction = cooldown.GuestWaterAction(p.ID)
		onCooldown, remaining, err := s.cooldowns.CheckCooldown(ctx, userID, guestAction, s.now())
		if err != nil {
			return nil, err
		}
		if onCooldown {
			return nil, domain.CooldownError{Remaining: remaining}
		}
	}

	premium, voted := s.lookupBonuses(ctx, userID)

	result, watered, err := s.waterTx(ctx, userID, ownerID, plantName, pt, guestAction, premium, voted)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgPlantWatered, "userID", userID, "plantName", watered.Name,
		"nourishment", result.NewNourishment, "gainedExperience", result.GainedExperience)
	s.publish(ctx, event.NewPlantWateredEvent(userID, watered, *result))
	return result, nil
}

// lookupBonuses fetches the premium and vote flags concurrently
func (s *service) lookupBonuses(ctx context.Context, userID int64) (premium, voted bool) {
	var g errgroup.Group
	g.Go(func() error {
		premium = s.capability.HasPremium(ctx, userID)
		return nil
	})
	g.Go(func() error {
		voted = s.capability.VotedRecently(ctx, userID)
		return nil
	})
	_ = g.Wait()
	return premium, voted
}

// waterTx applies the watering under the user and plant row locks. A non-empty
// guestAction is claimed in the same transaction.
func (s *service) waterTx(ctx context.Context, userID, ownerID int64, plantName string, pt domain.PlantType, guestAction string, premium, voted bool) (*domain.WaterResult, domain.UserPlant, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	p, err := tx.GetPlantForUpdate(ctx, ownerID, plantName)
	if err != nil {
		return nil, domain.UserPlant{}, err
	}

	now := s.now()
	if _, err := s.timings.CanWater(*p, now); err != nil {
		return nil, domain.UserPlant{}, err
	}
	if guestAction != "" {
		if err := s.cooldowns.Consume(ctx, tx, userID, guestAction, now); err != nil {
			return nil, domain.UserPlant{}, err
		}
	}

	bonuses := Bonuses{
		Premium:          premium,
		QuickWater:       s.timings.QuickWater(*p, now),
		NotOriginalOwner: p.OriginalOwnerID != userID,
		Voted:            voted,
		Mature:           now.Sub(p.AdoptionTime) >= domain.MaturePlantAge,
		Immortal:         p.Immortal,
	}
	multipliers := bonuses.Multipliers()
	base := s.rollExp(pt.ExperienceGain.Min, pt.ExperienceGain.Max)
	gained := ApplyMultipliers(base, multipliers)

	plant.Water(p, now)
	if err := tx.SavePlant(ctx, *p); err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgSavePlantFailed, err)
	}
	if err := tx.AddExperience(ctx, userID, gained); err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgAddExperienceFailed, err)
	}
	if err := tx.IncrementAchievement(ctx, userID, achievement.WaterCount, 1); err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
	}
	if err := tx.IncrementPlantAchievement(ctx, ownerID, p.PlantType, achievement.MaxPlantNourishment, int64(p.Nourishment)); err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgAchievementFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.UserPlant{}, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}

	return &domain.WaterResult{
		Success:            true,
		PlantName:          p.Name,
		NewNourishment:     p.Nourishment,
		OriginalExperience: base,
		GainedExperience:   gained,
		Multipliers:        multipliers,
	}, *p, nil
}

// nextWaterAt is when the owner may water p again
func (s *service) nextWaterAt(p domain.UserPlant) time.Time {
	if p.IsSeeded() {
		return p.LastWaterTime
	}
	return p.LastWaterTime.Add(s.timings.WaterCooldown)
}
