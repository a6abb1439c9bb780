package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

func newViewCmd() *cobra.Command {
	fps := 30
	cmd := &cobra.Command{
		Use:   "view <scene.json>",
		Short: "Orbit a scene interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			return runView(cmd.Context(), args[0], fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", fps, "target frames per second")
	return cmd
}

// OrbitAxis tracks an orbit angle and its angular velocity. The velocity
// decays toward zero through a critically damped spring.
type OrbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewOrbitAxis creates an axis at the given angle.
func NewOrbitAxis(fps int, position float64) OrbitAxis {
	return OrbitAxis{
		Position: position,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *OrbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Orbit is the viewer's camera rig: yaw and pitch around the scene target
// at a zoomable distance.
type Orbit struct {
	Yaw, Pitch OrbitAxis
	Distance   float64

	fps                  int
	homeYaw, homePitch   float64
	homeDistance         float64
	minDistance, maxDist float64
}

// maxPitch keeps the camera off the poles, where yaw is undefined.
const maxPitch = math.Pi/2 - 0.05

// NewOrbit starts the rig at the scene's own viewpoint.
func NewOrbit(fps int, s *scene.Scene) *Orbit {
	offset := s.Eye.Sub(s.Target)
	dist := offset.Len()
	o := &Orbit{
		fps:          fps,
		homeYaw:      math.Atan2(offset.X, offset.Z),
		homePitch:    math.Asin(offset.Y / dist),
		homeDistance: dist,
		minDistance:  dist * 0.1,
		maxDist:      dist * 10,
	}
	o.Reset()
	return o
}

// Reset returns to the scene's viewpoint and stops any spin.
func (o *Orbit) Reset() {
	o.Yaw = NewOrbitAxis(o.fps, o.homeYaw)
	o.Pitch = NewOrbitAxis(o.fps, o.homePitch)
	o.Distance = o.homeDistance
}

// ApplyImpulse adds angular velocity.
func (o *Orbit) ApplyImpulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Zoom scales the distance by factor within limits.
func (o *Orbit) Zoom(factor float64) {
	o.Distance = math.Max(o.minDistance, math.Min(o.maxDist, o.Distance*factor))
}

// Update advances one frame.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	if math.Abs(o.Pitch.Position) > maxPitch {
		o.Pitch.Position = math.Copysign(maxPitch, o.Pitch.Position)
		o.Pitch.Velocity = 0
	}
}

func runView(ctx context.Context, path string, fps int) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}

	var frames, rays int64
	start := time.Now()
	defer func() {
		// Runs after the terminal is restored so the summary stays visible.
		elapsed := time.Since(start)
		log.Printf("%d frames, %d rays in %v (%.1f fps)", frames, rays, elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds())
	}()

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	fbWidth, fbHeight := render.FramebufferSize(width, height)
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	camera := s.Camera(float64(fbWidth) / float64(fbHeight))
	rt := s.Raytracer(camera)
	orbit := NewOrbit(fps, s)

	const spin = 0.02

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := term.Events()
	targetDuration := time.Second / time.Duration(fps)

	for {
		// Drain input before each frame so the loop owns all view state.
	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					cancel()
					break drain
				}
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					fbWidth, fbHeight = render.FramebufferSize(width, height)
					fb = render.NewFramebuffer(fbWidth, fbHeight)
					camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

				case uv.KeyPressEvent:
					switch {
					case ev.MatchString("escape", "q", "ctrl+c"):
						cancel()
					case ev.MatchString("a", "left"):
						orbit.ApplyImpulse(-spin, 0)
					case ev.MatchString("d", "right"):
						orbit.ApplyImpulse(spin, 0)
					case ev.MatchString("w", "up"):
						orbit.ApplyImpulse(0, spin)
					case ev.MatchString("s", "down"):
						orbit.ApplyImpulse(0, -spin)
					case ev.MatchString("+", "="):
						orbit.Zoom(0.9)
					case ev.MatchString("-", "_"):
						orbit.Zoom(1 / 0.9)
					case ev.MatchString("space"):
						orbit.ApplyImpulse((rand.Float64()-0.5)*0.2, (rand.Float64()-0.5)*0.1)
					case ev.MatchString("r"):
						orbit.Reset()
					}
				}
			default:
				break drain
			}
		}

		now := time.Now()
		orbit.Update()
		camera.Orbit(s.Target, orbit.Distance, orbit.Yaw.Position, orbit.Pitch.Position)

		stats, err := rt.Render(ctx, fb)
		if errors.Is(err, context.Canceled) {
			break
		}
		if err != nil {
			return err
		}
		frames++
		rays += stats.Rays

		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
	return nil
}
