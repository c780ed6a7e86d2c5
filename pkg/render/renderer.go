package render

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/spheretrace/pkg/scene"
)

// Renderer traces one primary ray per pixel.
type Renderer struct {
	Scene     *scene.Scene
	Projector Projector

	// Workers bounds the number of rows traced at once. Zero means one per
	// CPU.
	Workers int
}

// NewRenderer creates a renderer using one worker per CPU.
func NewRenderer(sc *scene.Scene, p Projector) *Renderer {
	return &Renderer{Scene: sc, Projector: p}
}

// Render fills canvas with the scene as seen through the projector.
//
// Rows are traced in parallel. Each row is owned by exactly one worker, so
// the canvas needs no locking. Render stops early and returns the context's
// error if ctx is cancelled; rows already traced are left in place.
func (r *Renderer) Render(ctx context.Context, canvas *Canvas) error {
	if r.Scene == nil || r.Projector == nil {
		return errors.New("render: scene and projector are required")
	}
	if p, ok := r.Projector.(preparer); ok {
		p.prepare()
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := 0; y < canvas.Height; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.RenderRow(canvas, y)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// A cancellation that lands after the last row was queued is still
	// reported.
	return ctx.Err()
}

// RenderRow traces every pixel of row y.
func (r *Renderer) RenderRow(canvas *Canvas, y int) {
	row := canvas.row(y)
	for x := range row {
		ray := r.Projector.RayFor(x, y, canvas.Width, canvas.Height)
		row[x] = r.Scene.ColorAt(ray)
	}
}
