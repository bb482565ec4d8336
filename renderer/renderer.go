// Package renderer compiles gradient programs and drives the live render
// loop, recordings and one-shot offscreen frames.
package renderer

import (
	"context"
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadergradient/clock"
	"github.com/richinsley/goshadergradient/graphics"
	"github.com/richinsley/goshadergradient/hud"
	"github.com/richinsley/goshadergradient/output"
	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/ramp"
)

// Renderer owns the live program and the graphics context it was built on.
// All methods must be called on the thread that owns that context.
type Renderer struct {
	context  graphics.Context
	store    *params.Store
	clock    *clock.Clock
	status   *hud.Status
	template string

	program *Program
	target  *Target
	present *presenter

	lut        *ramp.LUT
	lutVersion uint64
	lutValid   bool
	frame      []byte

	rebuildPending bool
	tasks          []func()
	lastErr        string
}

// New builds the initial program on ctx. A build failure is fatal: there
// is nothing to render without a program. When present is false frames
// are only read back, as for recordings.
func New(ctx graphics.Context, store *params.Store, clk *clock.Clock, status *hud.Status, template string, present bool) (*Renderer, error) {
	if ctx == nil {
		return nil, ErrContextUnavailable
	}
	ctx.MakeCurrent()

	r := &Renderer{
		context:  ctx,
		store:    store,
		clock:    clk,
		status:   status,
		template: template,
	}

	snap := store.Snapshot()
	prog, err := Build(template, snap.ShaderParameters, ctx.IsGLES())
	if err != nil {
		return nil, fmt.Errorf("failed to build gradient program: %w", err)
	}
	r.program = prog
	log.Printf("Built gradient program (mode %s)", prog.Mode)

	w, h := ctx.GetFramebufferSize()
	r.target, err = NewTarget(max(w, 1), max(h, 1))
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create render target: %w", err)
	}

	if present {
		r.present, err = newPresenter(ctx.IsGLES())
		if err != nil {
			r.target.Delete()
			r.program.Delete()
			return nil, fmt.Errorf("failed to create present pass: %w", err)
		}
	}
	return r, nil
}

// Shutdown releases GL resources. The context itself is left to the caller.
func (r *Renderer) Shutdown() {
	r.context.MakeCurrent()
	if r.present != nil {
		r.present.delete()
	}
	r.target.Delete()
	r.program.Delete()
}

// Context returns the context the renderer draws with.
func (r *Renderer) Context() graphics.Context { return r.context }

// Clock returns the live clock.
func (r *Renderer) Clock() *clock.Clock { return r.clock }

// Store returns the live parameter store.
func (r *Renderer) Store() *params.Store { return r.store }

// Mode returns the movement mode of the program currently drawing.
func (r *Renderer) Mode() params.MovementMode { return r.program.Mode }

// RequestRebuild schedules a program rebuild before the next frame.
func (r *Renderer) RequestRebuild() { r.rebuildPending = true }

// Defer queues fn to run on the render thread before the next frame.
func (r *Renderer) Defer(fn func()) { r.tasks = append(r.tasks, fn) }

// Rebuild compiles a new program from the current parameters. On failure
// the previous program keeps drawing and the error is returned.
func (r *Renderer) Rebuild() error {
	r.rebuildPending = false
	snap := r.store.Snapshot()
	prog, err := Build(r.template, snap.ShaderParameters, r.context.IsGLES())
	if err != nil {
		return err
	}
	r.program.Delete()
	r.program = prog
	log.Printf("Rebuilt gradient program (mode %s)", prog.Mode)
	return nil
}

func (r *Renderer) currentLUT(snap *params.Snapshot) *ramp.LUT {
	if !r.lutValid || snap.Version != r.lutVersion {
		r.lut = ramp.Build(snap.GradientColors)
		r.lutVersion = snap.Version
		r.lutValid = true
	}
	return r.lut
}

// RenderInto draws one frame at the target size and writes it top-down,
// color ramp applied, into dst.
func (r *Renderer) RenderInto(dst []byte, in FrameInputs) error {
	snap := r.store.Snapshot()
	pix, err := r.program.Draw(r.target, &snap.ShaderParameters, in)
	if err != nil {
		return err
	}
	return ramp.Apply(dst, pix, r.target.Width, r.target.Height, r.currentLUT(&snap))
}

// Resize sets the size frames are rendered at.
func (r *Renderer) Resize(width, height int) error {
	return r.target.Resize(width, height)
}

// Size returns the current render size.
func (r *Renderer) Size() (int, int) { return r.target.Width, r.target.Height }

func (r *Renderer) report(err error) {
	r.reportf("%v", err)
}

// reportf logs and publishes a status message once per distinct text.
func (r *Renderer) reportf(format string, args ...any) {
	if msg := fmt.Sprintf(format, args...); msg != r.lastErr {
		log.Printf("Render error: %s", msg)
		r.status.Set(msg)
		r.lastErr = msg
	}
}

// Step runs one iteration of the live loop: a pending rebuild, deferred
// work, one frame, present. Deferred work observes the rebuilt program.
func (r *Renderer) Step() {
	if r.rebuildPending {
		if err := r.Rebuild(); err != nil {
			r.reportf("Shader rebuild failed: %v", err)
		}
	}

	tasks := r.tasks
	r.tasks = nil
	for _, fn := range tasks {
		fn()
	}
	r.context.MakeCurrent()

	fbWidth, fbHeight := r.context.GetFramebufferSize()
	if fbWidth == 0 || fbHeight == 0 {
		// minimized
		r.context.EndFrame()
		return
	}
	if err := r.target.Resize(fbWidth, fbHeight); err != nil {
		r.report(err)
		r.context.EndFrame()
		return
	}

	t, frame := r.clock.Tick()
	in := FrameInputs{Time: t, Frame: frame, Mouse: r.context.GetMouseInput()}
	size := fbWidth * fbHeight * 4
	if len(r.frame) != size {
		r.frame = make([]byte, size)
	}
	if err := r.RenderInto(r.frame, in); err != nil {
		r.report(err)
		r.context.EndFrame()
		return
	}

	if r.present != nil {
		if img, err := output.Image(r.frame, fbWidth, fbHeight); err == nil {
			r.status.Draw(img)
		}
		r.present.draw(r.frame, fbWidth, fbHeight, fbWidth, fbHeight)
	}
	r.context.EndFrame()
}

// Run drives Step once per display refresh until the window closes or ctx
// is cancelled.
func (r *Renderer) Run(ctx context.Context) {
	gl.ClearColor(0, 0, 0, 1)
	for !r.context.ShouldClose() && ctx.Err() == nil {
		r.Step()
	}
}
