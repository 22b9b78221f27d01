package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/validation"
)

// Asset layout
const (
	PlantsDir    = "plants"
	PackFile     = "pack.json"
	ArtistsFile  = "artists.json"
	packSchema   = "plant_pack"
	artistSchema = "artists"
)

// Sentinel errors for the pack loader
var (
	ErrNoPlants    = errors.New("no plant packs found")
	ErrInvalidPack = errors.New("invalid plant pack")
)

//go:embed schemas/plant_pack.schema.json
var packSchemaJSON []byte

//go:embed schemas/artists.schema.json
var artistsSchemaJSON []byte

// pack is the on-disk pack.json format
type pack struct {
	Name                     string         `json:"name"`
	DisplayName              string         `json:"display_name"`
	SoilHue                  int            `json:"soil_hue"`
	Visible                  *bool          `json:"visible"`
	Available                *bool          `json:"available"`
	Artist                   string         `json:"artist"`
	Stages                   int            `json:"stages"`
	PlantLevel               int            `json:"plant_level"`
	NourishmentDisplayLevels map[string]int `json:"nourishment_display_levels"`
}

// Loader reads plant packs and the artist directory from an asset tree
type Loader struct {
	assets    fs.FS
	validator validation.SchemaValidator
}

// NewLoader creates a loader over an asset directory
func NewLoader(assetsDir string) (*Loader, error) {
	return NewLoaderFS(os.DirFS(assetsDir))
}

// NewLoaderFS creates a loader over any fs.FS laid out like the assets directory
func NewLoaderFS(assets fs.FS) (*Loader, error) {
	v := validation.NewSchemaValidator()
	if err := v.Register(packSchema, packSchemaJSON); err != nil {
		return nil, err
	}
	if err := v.Register(artistSchema, artistsSchemaJSON); err != nil {
		return nil, err
	}
	return &Loader{assets: assets, validator: v}, nil
}

// Load builds the catalog. Any failure is fatal for startup and wraps ErrFatal.
func Load(ctx context.Context, assetsDir string, itemPrices map[string]int) (*Catalog, error) {
	loader, err := NewLoader(assetsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFatal, err)
	}
	return loader.Load(ctx, itemPrices)
}

// Load scans plants/*/pack.json concurrently and reads artists.json
func (l *Loader) Load(ctx context.Context, itemPrices map[string]int) (*Catalog, error) {
	plants, err := l.LoadPlants(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFatal, err)
	}
	artists, err := l.LoadArtists()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFatal, err)
	}

	known := make(map[string]bool, len(artists))
	for _, a := range artists {
		known[a.ID] = true
	}
	for _, p := range plants {
		if p.Artist != "" && !known[p.Artist] {
			slog.Warn("Plant pack references unknown artist", "plantType", p.Name, "artist", p.Artist)
		}
	}

	c, err := New(plants, artists, itemPrices)
	if err != nil {
		return nil, err
	}
	slog.Info("Plant catalog loaded", "plants", len(plants), "available", len(c.ListAvailable()), "artists", len(artists))
	return c, nil
}

// LoadPlants decodes every pack under plants/
func (l *Loader) LoadPlants(ctx context.Context) ([]domain.PlantType, error) {
	packPaths, err := fs.Glob(l.assets, path.Join(PlantsDir, "*", PackFile))
	if err != nil {
		return nil, fmt.Errorf("failed to scan plant packs: %w", err)
	}
	if len(packPaths) == 0 {
		return nil, ErrNoPlants
	}

	plants := make([]domain.PlantType, len(packPaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, packPath := range packPaths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := l.loadPack(packPath)
			if err != nil {
				return err
			}
			plants[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plants, nil
}

func (l *Loader) loadPack(packPath string) (domain.PlantType, error) {
	dirName := path.Base(path.Dir(packPath))

	data, err := fs.ReadFile(l.assets, packPath)
	if err != nil {
		return domain.PlantType{}, fmt.Errorf("failed to read %s: %w", packPath, err)
	}
	if err := l.validator.ValidateBytes(packSchema, data); err != nil {
		return domain.PlantType{}, fmt.Errorf("%w %s: %w", ErrInvalidPack, packPath, err)
	}

	var raw pack
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.PlantType{}, fmt.Errorf("%w %s: %w", ErrInvalidPack, packPath, err)
	}
	if raw.Name == "" {
		raw.Name = dirName
	}
	if raw.Name != dirName {
		return domain.PlantType{}, fmt.Errorf("%w %s: name %q does not match directory %q", ErrInvalidPack, packPath, raw.Name, dirName)
	}

	return buildPlantType(raw)
}

func buildPlantType(raw pack) (domain.PlantType, error) {
	level, ok := LevelStats(raw.PlantLevel)
	if !ok {
		return domain.PlantType{}, fmt.Errorf("%w %s: plant_level %d out of range", ErrInvalidPack, raw.Name, raw.PlantLevel)
	}

	displayLevels := DefaultDisplayLevels(raw.Stages)
	if len(raw.NourishmentDisplayLevels) > 0 {
		displayLevels = make(map[int]int, len(raw.NourishmentDisplayLevels))
		for key, stage := range raw.NourishmentDisplayLevels {
			n, err := strconv.Atoi(key)
			if err != nil || n < 1 || n > domain.MaxNourishmentLevel {
				return domain.PlantType{}, fmt.Errorf("%w %s: bad nourishment key %q", ErrInvalidPack, raw.Name, key)
			}
			if stage < 1 || stage > raw.Stages {
				return domain.PlantType{}, fmt.Errorf("%w %s: display level %d outside 1..%d", ErrInvalidPack, raw.Name, stage, raw.Stages)
			}
			displayLevels[n] = stage
		}
	}

	displayName := raw.DisplayName
	if displayName == "" {
		displayName = DisplayName(raw.Name)
	}

	return domain.PlantType{
		Name:                     raw.Name,
		DisplayName:              displayName,
		SoilHue:                  raw.SoilHue,
		Visible:                  boolOr(raw.Visible, true),
		Available:                boolOr(raw.Available, true),
		Artist:                   raw.Artist,
		Stages:                   raw.Stages,
		NourishmentDisplayLevels: displayLevels,
		PlantLevel:               raw.PlantLevel,
		RequiredExperience:       level.RequiredExperience,
		ExperienceGain:           level.ExperienceGain,
	}, nil
}

// LoadArtists reads artists.json; a missing file yields an empty directory
func (l *Loader) LoadArtists() ([]domain.Artist, error) {
	data, err := fs.ReadFile(l.assets, ArtistsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ArtistsFile, err)
	}
	if err := l.validator.ValidateBytes(artistSchema, data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ArtistsFile, err)
	}

	var artists []domain.Artist
	if err := json.Unmarshal(data, &artists); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ArtistsFile, err)
	}
	return artists, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
