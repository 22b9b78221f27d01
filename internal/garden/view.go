package garden

import (
	"context"
	"fmt"

	"github.com/osse101/GardenBot_Go/internal/compositor"
	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

func (s *service) ListPlants(ctx context.Context, userID int64) ([]PlantStatus, error) {
	plants, err := s.repo.ListPlants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListPlantsFailed, err)
	}

	now := s.now()
	out := make([]PlantStatus, 0, len(plants))
	for i := range plants {
		p := plants[i]
		pt, err := s.plantType(ctx, &p)
		if err != nil {
			return nil, err
		}
		status := PlantStatus{
			UserPlant:   p,
			State:       s.timings.StateOf(p, now),
			DisplayName: pt.DisplayName,
			NextWaterAt: s.nextWaterAt(p),
		}
		if status.State == plant.StateGrowing || status.State == plant.StateWilting {
			diesAt := s.timings.DiesAt(p)
			status.DiesAt = &diesAt
		}
		out = append(out, status)
	}
	return out, nil
}

func (s *service) renderRequest(ctx context.Context, p *domain.UserPlant, potType string) (compositor.RenderRequest, error) {
	pt, err := s.plantType(ctx, p)
	if err != nil {
		return compositor.RenderRequest{}, err
	}
	return compositor.RenderRequest{
		PlantType:   &pt,
		Variant:     p.PlantVariant,
		Nourishment: p.Nourishment,
		PotType:     potType,
		PotHue:      p.PlantPotHue,
	}, nil
}

// DisplayPlant renders one plant in its pot as PNG
func (s *service) DisplayPlant(ctx context.Context, userID int64, plantName string) ([]byte, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	p, err := s.repo.GetPlant(ctx, userID, plantName)
	if err != nil {
		return nil, err
	}
	req, err := s.renderRequest(ctx, p, user.PotType)
	if err != nil {
		return nil, err
	}
	img, err := s.renderer.RenderPNG(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRenderFailed, err)
	}
	return img, nil
}

// DisplayGarden renders all of a user's plants side by side as PNG
func (s *service) DisplayGarden(ctx context.Context, userID int64) ([]byte, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	plants, err := s.repo.ListPlants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListPlantsFailed, err)
	}
	if len(plants) == 0 {
		return nil, fmt.Errorf("%w: garden is empty", domain.ErrPlantNotFound)
	}

	reqs := make([]compositor.RenderRequest, 0, len(plants))
	for i := range plants {
		req, err := s.renderRequest(ctx, &plants[i], user.PotType)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	seed := userID ^ s.now().Truncate(GardenSeedWindow).Unix()
	img, err := s.renderer.RenderGarden(ctx, reqs, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRenderFailed, err)
	}
	return img, nil
}

// Herbiary lists every visible plant type
func (s *service) Herbiary(context.Context) []domain.PlantType {
	return s.catalog.ListVisible()
}

func (s *service) HerbiaryEntry(_ context.Context, plantName string) (*HerbiaryEntry, error) {
	pt, err := s.catalog.Get(plantName)
	if err != nil {
		return nil, err
	}
	entry := &HerbiaryEntry{Plant: pt}
	if artist, ok := s.catalog.Artist(pt.Artist); ok {
		entry.Artist = &artist
	}
	return entry, nil
}

// HerbiaryImage renders a fully grown preview in the default pot
func (s *service) HerbiaryImage(ctx context.Context, plantName string) ([]byte, error) {
	pt, err := s.catalog.Get(plantName)
	if err != nil {
		return nil, err
	}
	img, err := s.renderer.RenderPNG(ctx, compositor.RenderRequest{
		PlantType:   &pt,
		Variant:     domain.DefaultPlantVariant,
		Nourishment: domain.MaxNourishmentLevel,
		PotType:     domain.PotTypeClay,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRenderFailed, err)
	}
	return img, nil
}

func (s *service) Inventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	return s.repo.GetInventory(ctx, userID)
}

func (s *service) Achievements(ctx context.Context, userID int64) (*domain.Achievements, error) {
	return s.repo.GetAchievements(ctx, userID)
}
