// spheretrace - Ray-traced spheres, to a file or your terminal
// Renders a Phong-lit sphere (or the spheres of a glTF scene) as PPM or PNG,
// or shows it live in the terminal with a movable light.
//
// Preview controls:
//
//	A/D         - Orbit the light left/right
//	W/S         - Raise/lower the light
//	+/-         - Zoom in/out
//	R           - Reset light and zoom
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/taigrr/spheretrace/pkg/geometry"
	"github.com/taigrr/spheretrace/pkg/math3d"
	"github.com/taigrr/spheretrace/pkg/render"
	"github.com/taigrr/spheretrace/pkg/scene"
	"github.com/taigrr/spheretrace/pkg/shading"
)

var (
	outPath     = flag.String("o", "sphere.ppm", "Output image path (.ppm or .png)")
	canvasSize  = flag.Int("size", 400, "Canvas width and height in pixels")
	sphereColor = flag.String("color", "#ff33ff", "Sphere color for the default scene (hex)")
	lightPos    = flag.String("light", "-10,10,-10", "Light position (x,y,z)")
	cameraKind  = flag.String("camera", "wall", "Projection: wall or pinhole")
	workers     = flag.Int("workers", 0, "Render workers (0 = one per CPU)")
	binaryPPM   = flag.Bool("binary", false, "Write raw (P6) PPM instead of plain text")
	view        = flag.Bool("view", false, "Show an interactive preview in the terminal")
	targetFPS   = flag.Int("fps", 30, "Target FPS for the preview")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spheretrace - Ray-traced spheres\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spheretrace [options] [scene.gltf|scene.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPreview controls (-view):\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Orbit the light\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Raise/lower the light\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string) error {
	light, err := parseVec3(*lightPos)
	if err != nil {
		return fmt.Errorf("parse -light: %w", err)
	}

	sc, err := loadScene(scenePath, *sphereColor, light)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *view {
		return preview(ctx, sc, *targetFPS)
	}

	projector, err := newProjector(*cameraKind)
	if err != nil {
		return err
	}
	if *canvasSize <= 0 {
		return fmt.Errorf("invalid -size %d", *canvasSize)
	}

	canvas := render.NewCanvas(*canvasSize, *canvasSize)
	renderer := &render.Renderer{Scene: sc, Projector: projector, Workers: *workers}

	start := time.Now()
	if err := renderer.Render(ctx, canvas); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	elapsed := time.Since(start)

	if err := canvas.Save(*outPath, *binaryPPM); err != nil {
		return err
	}

	fmt.Printf("Rendered %dx%d (%d shapes) in %v to %s\n",
		canvas.Width, canvas.Height, sc.Len(), elapsed.Round(time.Millisecond), *outPath)
	return nil
}

// loadScene builds the default single-sphere scene, or imports path when it
// is set. light positions the light unless the imported file supplies one.
func loadScene(path, hexColor string, light math3d.Tuple) (*scene.Scene, error) {
	if path == "" {
		col, err := math3d.ParseHex(hexColor)
		if err != nil {
			return nil, fmt.Errorf("parse -color: %w", err)
		}
		return defaultScene(col, light)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .gltf or .glb)", ext)
	}

	imp, err := scene.LoadGLTF(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	if !imp.LightFound {
		imp.Scene.SetLight(shading.NewPointLight(light, math3d.White()))
	}

	fmt.Printf("Loaded: %s (%d spheres)\n", filepath.Base(path), imp.Scene.Len())
	if len(imp.Skipped) > 0 {
		fmt.Printf("Skipped %d node(s) with singular transforms: %s\n",
			len(imp.Skipped), strings.Join(imp.Skipped, ", "))
	}
	if imp.Scene.Len() == 0 {
		return nil, errors.New("load scene: no mesh nodes to render")
	}
	return imp.Scene, nil
}

// defaultScene is a single unit sphere at the origin.
func defaultScene(col math3d.Color, light math3d.Tuple) (*scene.Scene, error) {
	sc := scene.New(shading.NewPointLight(light, math3d.White()))

	s := geometry.NewSphere()
	s.SetMaterial(shading.DefaultMaterial().WithColor(col))
	if _, err := sc.AddSphere(s); err != nil {
		return nil, err
	}
	return sc, nil
}

func newProjector(kind string) (render.Projector, error) {
	switch kind {
	case "wall":
		return render.DefaultWall(), nil
	case "pinhole":
		return render.NewCamera(), nil
	default:
		return nil, fmt.Errorf("unknown -camera %q (use wall or pinhole)", kind)
	}
}

// parseVec3 parses "x,y,z" into a point.
func parseVec3(s string) (math3d.Tuple, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Tuple{}, fmt.Errorf("want x,y,z, got %q", s)
	}

	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return math3d.Tuple{}, fmt.Errorf("component %d: %w", i+1, err)
		}
		v[i] = f
	}
	return math3d.Point(v[0], v[1], v[2]), nil
}
