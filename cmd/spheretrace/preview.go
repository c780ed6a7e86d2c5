package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/spheretrace/pkg/math3d"
	"github.com/taigrr/spheretrace/pkg/render"
	"github.com/taigrr/spheretrace/pkg/scene"
	"github.com/taigrr/spheretrace/pkg/shading"
)

// OrbitAxis tracks position and velocity for one light axis with spring decay
type OrbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewOrbitAxis creates an axis with harmonica spring for smooth velocity decay
func NewOrbitAxis(fps int, pos float64) OrbitAxis {
	return OrbitAxis{
		Position: pos,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *OrbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// LightRig moves the light on a cylinder around the scene's vertical axis.
type LightRig struct {
	Azimuth OrbitAxis // Angle around the y axis, radians
	Height  OrbitAxis // World y
	Radius  float64   // Distance from the y axis
	Color   math3d.Color

	fps  int
	home shading.PointLight
}

// NewLightRig starts the rig at the given light.
func NewLightRig(fps int, l shading.PointLight) *LightRig {
	r := &LightRig{fps: fps, home: l}
	r.Reset()
	return r
}

// Reset returns the light to where the rig started.
func (r *LightRig) Reset() {
	p := r.home.Position
	r.Azimuth = NewOrbitAxis(r.fps, math.Atan2(p.Z, p.X))
	r.Height = NewOrbitAxis(r.fps, p.Y)
	r.Radius = math.Hypot(p.X, p.Z)
	r.Color = r.home.Intensity
}

// ApplyImpulse nudges the orbit and height velocities.
func (r *LightRig) ApplyImpulse(azimuth, height float64) {
	r.Azimuth.Velocity += azimuth
	r.Height.Velocity += height
}

// Update advances both axes by one frame.
func (r *LightRig) Update() {
	r.Azimuth.Update()
	r.Height.Update()
}

// Light returns the rig's current point light.
func (r *LightRig) Light() shading.PointLight {
	a := r.Azimuth.Position
	pos := math3d.Point(r.Radius*math.Cos(a), r.Height.Position, r.Radius*math.Sin(a))
	return shading.NewPointLight(pos, r.Color)
}

// Zoom eases the camera distance toward a target with a spring.
type Zoom struct {
	Distance float64
	Target   float64
	vel      float64
	spring   harmonica.Spring
}

const (
	minZoom     = 1.5
	maxZoom     = 20.0
	defaultZoom = 5.0
)

// NewZoom creates a zoom resting at distance.
func NewZoom(fps int, distance float64) Zoom {
	return Zoom{
		Distance: distance,
		Target:   distance,
		// Slightly underdamped so zooming settles with a little give
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.8),
	}
}

// Step moves the target by delta, clamped to the allowed range.
func (z *Zoom) Step(delta float64) {
	z.Target = math.Max(minZoom, math.Min(maxZoom, z.Target+delta))
}

// Update advances the spring by one frame.
func (z *Zoom) Update() {
	z.Distance, z.vel = z.spring.Update(z.Distance, z.vel, z.Target)
}

// HUD tracks frame rate for the status line
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Status returns the status line text.
func (h *HUD) Status(l shading.PointLight, shapes int) string {
	p := l.Position
	return fmt.Sprintf(" %.0f FPS | %d shapes | light (%.1f, %.1f, %.1f) | A/D orbit  W/S height  +/- zoom  R reset  Esc quit ",
		h.fps, shapes, p.X, p.Y, p.Z)
}

// Status line colors
var (
	statusFg = color.RGBA{230, 230, 230, 255}
	statusBg = color.RGBA{20, 20, 28, 255}
)

// drawText writes s on row y starting at column 0, clipped to width.
func drawText(scr uv.Screen, y, width int, s string) {
	x := 0
	for _, r := range s {
		if x >= width {
			return
		}
		scr.SetCell(x, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: statusFg, Bg: statusBg},
		})
		x++
	}
}

// preview runs the interactive terminal view until the user quits or ctx is
// cancelled.
func preview(ctx context.Context, sc *scene.Scene, fps int) error {
	if fps <= 0 {
		fps = 30
	}

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

	camera := render.NewCamera()
	renderer := &render.Renderer{Scene: sc, Projector: camera, Workers: *workers}
	canvas := render.NewCanvas(render.TerminalSize(width, height))

	rig := NewLightRig(fps, sc.Light())
	zoom := NewZoom(fps, defaultZoom)
	hud := NewHUD()

	const (
		orbitImpulse  = 0.04
		heightImpulse = 0.3
		zoomStep      = 0.5
	)

	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				canvas = render.NewCanvas(render.TerminalSize(width, height))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					return nil
				case ev.MatchString("a", "left"):
					rig.ApplyImpulse(-orbitImpulse, 0)
				case ev.MatchString("d", "right"):
					rig.ApplyImpulse(orbitImpulse, 0)
				case ev.MatchString("w", "up"):
					rig.ApplyImpulse(0, heightImpulse)
				case ev.MatchString("s", "down"):
					rig.ApplyImpulse(0, -heightImpulse)
				case ev.MatchString("+", "="):
					zoom.Step(-zoomStep)
				case ev.MatchString("-", "_"):
					zoom.Step(zoomStep)
				case ev.MatchString("r"):
					rig.Reset()
					zoom = NewZoom(fps, defaultZoom)
				}
			}

		case <-ticker.C:
			rig.Update()
			zoom.Update()

			sc.SetLight(rig.Light())
			camera.SetPosition(math3d.Point(0, 0, -zoom.Distance))

			if err := renderer.Render(ctx, canvas); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return fmt.Errorf("render: %w", err)
			}

			canvas.Draw(term, uv.Rect(0, 0, width, height))
			hud.UpdateFPS()
			drawText(term, height-1, width, hud.Status(sc.Light(), sc.Len()))

			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
