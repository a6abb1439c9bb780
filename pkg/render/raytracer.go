package render

import (
	"context"
	"fmt"
	"image/color"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/taigrr/lumen/pkg/trace"
	"golang.org/x/sync/errgroup"
)

// Raytracer renders a scene through a camera into a framebuffer, one primary
// ray per pixel.
type Raytracer struct {
	Scene      trace.Scene
	Camera     *Camera
	Background trace.Color
	Workers    int // Maximum concurrent rows; 0 means GOMAXPROCS
}

// Stats summarizes a finished render.
type Stats struct {
	Rays     int64         // Primary rays traced
	Hits     int64         // Primary rays that struck geometry
	Duration time.Duration // Wall time of the render
}

func (s Stats) String() string {
	return fmt.Sprintf("%d rays, %d hits in %v", s.Rays, s.Hits, s.Duration.Round(time.Millisecond))
}

// NewRaytracer creates a raytracer for scene viewed through camera.
func NewRaytracer(scene trace.Scene, camera *Camera) *Raytracer {
	return &Raytracer{
		Scene:  scene,
		Camera: camera,
	}
}

// Render traces every pixel of fb. Rows are distributed across a bounded
// pool of goroutines; each pixel depends only on the scene and camera, so the
// image is identical for any worker count. Render stops early and returns
// the context error if ctx is canceled.
func (r *Raytracer) Render(ctx context.Context, fb *Framebuffer) (Stats, error) {
	if r.Scene == nil || r.Camera == nil {
		return Stats{}, fmt.Errorf("render: scene and camera are required")
	}
	if fb.Width <= 0 || fb.Height <= 0 {
		return Stats{}, nil
	}

	start := time.Now()
	var rays, hits atomic.Int64

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	background := r.Background.RGBA()
	for y := range fb.Height {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := r.traceRow(fb.Row(y), y, fb.Width, fb.Height, background)
			rays.Add(int64(fb.Width))
			hits.Add(n)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	stats := Stats{
		Rays:     rays.Load(),
		Hits:     hits.Load(),
		Duration: time.Since(start),
	}
	if err != nil {
		return stats, fmt.Errorf("render: %w", err)
	}
	return stats, nil
}

func (r *Raytracer) traceRow(row []color.RGBA, y, width, height int, background color.RGBA) int64 {
	var hits int64
	for x := range width {
		c, ok := trace.Trace(r.Scene, r.Camera.Ray(x, y, width, height))
		if !ok {
			row[x] = background
			continue
		}
		row[x] = c.RGBA()
		hits++
	}
	return hits
}
