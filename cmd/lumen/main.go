// lumen - analytic ray tracer for spheres, triangles and glTF meshes.
//
// Usage:
//
//	lumen render <scene.json> -o out.png [-w 800] [-H 600]
//	lumen view <scene.json> [--fps 30]
//
// Viewer controls:
//
//	A/D or ←/→  - Orbit left/right
//	W/S or ↑/↓  - Orbit up/down
//	+/-         - Zoom in/out
//	Space       - Random spin
//	R           - Reset view
//	Esc/Q       - Quit
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("lumen: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lumen",
		Short: "Ray trace spheres, triangles and glTF meshes",
		Long: "lumen traces one primary ray per pixel against analytic spheres and triangles,\n" +
			"shading hits with ambient light and attenuated point lights gated by shadow rays.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newViewCmd())
	return root
}
