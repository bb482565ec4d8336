// Package exporter renders a single high resolution frame on its own
// graphics context and writes it as a PNG.
package exporter

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/richinsley/goshadergradient/graphics"
	"github.com/richinsley/goshadergradient/hud"
	"github.com/richinsley/goshadergradient/output"
	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/ramp"
	"github.com/richinsley/goshadergradient/renderer"
)

// ErrBusy is returned while a previous export is still running.
var ErrBusy = errors.New("export already in progress")

// Exporter owns the export control. Only one export runs at a time.
type Exporter struct {
	factory  graphics.Factory
	template string
	status   *hud.Status
	dir      string
	now      func() time.Time

	busy atomic.Bool
	wg   sync.WaitGroup
}

// New returns an exporter creating contexts with factory and writing into dir.
func New(factory graphics.Factory, template string, status *hud.Status, dir string) *Exporter {
	return &Exporter{
		factory:  factory,
		template: template,
		status:   status,
		dir:      dir,
		now:      time.Now,
	}
}

// Busy reports whether an export is in flight.
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Wait blocks until pending encodes have finished.
func (e *Exporter) Wait() { e.wg.Wait() }

// Size returns the export dimensions for p at the given aspect ratio.
func (e *Exporter) Size(p *params.ShaderParameters, aspect float64) (int, int) {
	return output.ExportSize(p.ExportResolution, aspect)
}

// Render draws p at time t and frame index on a fresh context and returns
// the top-down, ramp mapped pixels. Nothing from the live renderer is
// reused. On return no export context is current.
func (e *Exporter) Render(p params.ShaderParameters, aspect, t float64, frame int) ([]byte, int, int, error) {
	w, h := e.Size(&p, aspect)
	ctx, err := e.factory(w, h)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", renderer.ErrContextUnavailable, err)
	}
	defer ctx.Shutdown()

	prog, err := renderer.Build(e.template, p, ctx.IsGLES())
	if err != nil {
		return nil, 0, 0, err
	}
	defer prog.Delete()

	target, err := renderer.NewTarget(w, h)
	if err != nil {
		return nil, 0, 0, err
	}
	defer target.Delete()

	raw, err := prog.Draw(target, &p, renderer.FrameInputs{Time: t, Frame: frame})
	if err != nil {
		return nil, 0, 0, err
	}
	pix := make([]byte, len(raw))
	if err := ramp.Apply(pix, raw, w, h, ramp.Build(p.GradientColors)); err != nil {
		return nil, 0, 0, err
	}
	return pix, w, h, nil
}

// Export renders synchronously, then encodes and writes the file in the
// background. aspect is the live view's width over height. restore is called once the GL work is done, success or not,
// to make the caller's context current again. The returned error covers
// the render; encode failures are reported through the status line.
func (e *Exporter) Export(snap params.Snapshot, aspect, t float64, frame int, restore func()) error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	e.status.Set("Export in progress...")

	pix, w, h, err := e.Render(snap.ShaderParameters, aspect, t, frame)
	if restore != nil {
		restore()
	}
	if err != nil {
		log.Printf("Export failed: %v", err)
		e.status.Set(fmt.Sprintf("Export failed: %v", err))
		e.busy.Store(false)
		return err
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.busy.Store(false)
		path, err := output.WritePNG(e.dir, pix, w, h, e.now())
		if err != nil {
			log.Printf("Export failed: %v", err)
			e.status.Set(fmt.Sprintf("Export failed: %v", err))
			return
		}
		log.Printf("Exported %s", path)
		e.status.Set(fmt.Sprintf("Export succeeded: %dx%dpx", w, h))
	}()
	return nil
}
