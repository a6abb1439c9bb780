package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

type renderOptions struct {
	output  string
	width   int
	height  int
	workers int
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{
		output: "out.png",
		width:  800,
		height: 600,
	}
	cmd := &cobra.Command{
		Use:   "render <scene.json>",
		Short: "Render a scene to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", opts.output, "output PNG path")
	flags.IntVarP(&opts.width, "width", "w", opts.width, "image width in pixels")
	flags.IntVarP(&opts.height, "height", "H", opts.height, "image height in pixels")
	flags.IntVar(&opts.workers, "workers", 0, "rows traced concurrently (0 = GOMAXPROCS)")
	return cmd
}

func runRender(ctx context.Context, path string, opts renderOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", opts.width, opts.height)
	}

	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	log.Printf("loaded %s: %d primitives, %d lights", path, len(s.World.Geometries()), len(s.World.Lights()))

	fb := render.NewFramebuffer(opts.width, opts.height)
	rt := s.Raytracer(s.Camera(float64(opts.width) / float64(opts.height)))
	rt.Workers = opts.workers

	stats, err := rt.Render(ctx, fb)
	if err != nil {
		return err
	}
	if err := fb.SavePNG(opts.output); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d): %v", opts.output, opts.width, opts.height, stats)
	return nil
}
