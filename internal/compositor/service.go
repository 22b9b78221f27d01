package compositor

import (
	"context"
	"image"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/metrics"
	"github.com/osse101/GardenBot_Go/internal/worker"
)

// DefaultFrameDuration is the growth GIF frame length in milliseconds
const DefaultFrameDuration = 250

// Service runs renders on a bounded worker pool so CPU-heavy compositing
// never runs on request goroutines.
type Service interface {
	RenderPNG(ctx context.Context, req RenderRequest) ([]byte, error)
	RenderGrowthGIF(ctx context.Context, pt *domain.PlantType, potType string, potHue, frameDurationMS int) ([]byte, error)
	RenderGarden(ctx context.Context, reqs []RenderRequest, seed int64) ([]byte, error)
}

type service struct {
	compositor *Compositor
	pool       *worker.Pool
}

// NewService creates a render service. The pool must be started by the caller.
func NewService(c *Compositor, pool *worker.Pool) Service {
	return &service{compositor: c, pool: pool}
}

type renderResult struct {
	img *image.NRGBA
	err error
}

// render runs one composite on the pool and waits for it or ctx
func (s *service) render(ctx context.Context, req RenderRequest) (*image.NRGBA, error) {
	results := make(chan renderResult, 1)
	job := worker.JobFunc(func(context.Context) error {
		if err := ctx.Err(); err != nil {
			results <- renderResult{err: err}
			return nil
		}
		img, err := s.compositor.Render(ctx, req)
		results <- renderResult{img: img, err: err}
		return nil
	})

	if err := s.pool.Enqueue(ctx, job); err != nil {
		return nil, err
	}
	select {
	case res := <-results:
		return res.img, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// renderAll renders every request concurrently, preserving order
func (s *service) renderAll(ctx context.Context, reqs []RenderRequest) ([]image.Image, error) {
	frames := make([]image.Image, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			img, err := s.render(gctx, req)
			if err != nil {
				return err
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func observe(kind string, start time.Time) {
	metrics.Renders.WithLabelValues(kind).Inc()
	metrics.RenderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// RenderPNG renders a single plant
func (s *service) RenderPNG(ctx context.Context, req RenderRequest) ([]byte, error) {
	defer observe(metrics.RenderKindPNG, time.Now())

	img, err := s.render(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to render plant", "error", err)
		return nil, err
	}
	return EncodePNG(img)
}

// RenderGrowthGIF animates a plant type from seed to fully grown, one frame per display stage
func (s *service) RenderGrowthGIF(ctx context.Context, pt *domain.PlantType, potType string, potHue, frameDurationMS int) ([]byte, error) {
	defer observe(metrics.RenderKindGIF, time.Now())

	if frameDurationMS <= 0 {
		frameDurationMS = DefaultFrameDuration
	}
	reqs := []RenderRequest{{PlantType: pt, Nourishment: 0, PotType: potType, PotHue: potHue}}
	for _, n := range GrowthFrames(pt) {
		reqs = append(reqs, RenderRequest{PlantType: pt, Nourishment: n, PotType: potType, PotHue: potHue})
	}

	frames, err := s.renderAll(ctx, reqs)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to render growth frames", "plantType", pt.Name, "error", err)
		return nil, err
	}
	return EncodeGIF(frames, frameDurationMS)
}

// RenderGarden renders plants side by side; seed drives the random mirroring
func (s *service) RenderGarden(ctx context.Context, reqs []RenderRequest, seed int64) ([]byte, error) {
	defer observe(metrics.RenderKindGarden, time.Now())

	frames, err := s.renderAll(ctx, reqs)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to render garden", "plants", len(reqs), "error", err)
		return nil, err
	}
	return EncodePNG(Tile(frames, rand.New(rand.NewSource(seed))))
}

// GrowthFrames returns the lowest nourishment for each distinct display stage, ascending
func GrowthFrames(pt *domain.PlantType) []int {
	var out []int
	last := 0
	for n := 1; n <= domain.MaxNourishmentLevel; n++ {
		if level := pt.DisplayLevel(n); level != last {
			out = append(out, n)
			last = level
		}
	}
	return out
}
