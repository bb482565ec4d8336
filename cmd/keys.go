package main

import (
	"fmt"
	"log"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshadergradient/exporter"
	"github.com/richinsley/goshadergradient/glfwcontext"
	"github.com/richinsley/goshadergradient/hud"
	"github.com/richinsley/goshadergradient/output"
	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/renderer"
)

var posterizeSteps = []float64{256, 16, 8, 4, 2}

func nextPosterize(cur float64) float64 {
	for i, v := range posterizeSteps {
		if cur >= v {
			return posterizeSteps[(i+1)%len(posterizeSteps)]
		}
	}
	return posterizeSteps[0]
}

// bindKeys wires the keyboard to the parameter store, the clock and the
// exporter. Callbacks run on the render thread during event polling.
func bindKeys(win *glfwcontext.Context, r *renderer.Renderer, exp *exporter.Exporter, status *hud.Status) {
	store := r.Store()

	// The title names the mode of the program actually drawing. Mode and
	// reset keys defer the update past the pending rebuild.
	updateTitle := func() {
		state := "running"
		if r.Clock().Paused() {
			state = "paused"
		}
		win.SetTitle(fmt.Sprintf("goshadergradient - %s - %s", r.Mode(), state))
	}

	applied := func(name string, rebuild bool, err error) {
		if err != nil {
			log.Printf("Error setting %s: %v", name, err)
			return
		}
		if rebuild {
			r.RequestRebuild()
		}
		got, _ := store.Get(name)
		status.Set(fmt.Sprintf("%s = %.4g", name, got))
	}
	set := func(name string, v float64) {
		rebuild, err := store.Set(name, v)
		applied(name, rebuild, err)
	}
	adjust := func(name string, delta float64) func() {
		return func() {
			rebuild, err := store.Adjust(name, delta)
			applied(name, rebuild, err)
		}
	}
	toggle := func(name string, on float64) func() {
		return func() {
			if cur, _ := store.Get(name); cur != 0 {
				set(name, 0)
			} else {
				set(name, on)
			}
		}
	}

	win.RegisterKeyCallback(glfw.KeySpace, func() {
		if r.Clock().Toggle() {
			status.Set("Paused")
		} else {
			status.Set("Resumed")
		}
		updateTitle()
	})

	modeKeys := []glfw.Key{glfw.Key0, glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5, glfw.Key6, glfw.Key7}
	for i, key := range modeKeys {
		mode := params.MovementMode(i)
		win.RegisterKeyCallback(key, func() {
			set("movementMode", float64(mode))
			status.Set(fmt.Sprintf("Movement: %s", mode))
			r.Defer(updateTitle)
		})
	}

	win.RegisterKeyCallback(glfw.KeyR, func() {
		if store.Reset() {
			r.RequestRebuild()
		}
		status.Set("Parameters reset")
		r.Defer(updateTitle)
	})

	win.RegisterKeyCallback(glfw.KeyLeftBracket, adjust("hue", -15))
	win.RegisterKeyCallback(glfw.KeyRightBracket, adjust("hue", 15))
	win.RegisterKeyCallback(glfw.KeyMinus, adjust("contrast", -0.1))
	win.RegisterKeyCallback(glfw.KeyEqual, adjust("contrast", 0.1))
	win.RegisterKeyCallback(glfw.KeyComma, adjust("brightness", -0.1))
	win.RegisterKeyCallback(glfw.KeyPeriod, adjust("brightness", 0.1))
	win.RegisterKeyCallback(glfw.KeyG, toggle("grainAmount", 1))
	win.RegisterKeyCallback(glfw.KeyL, toggle("scanlines", 0.5))
	win.RegisterKeyCallback(glfw.KeyP, func() {
		cur, _ := store.Get("posterize")
		set("posterize", nextPosterize(cur))
	})

	win.RegisterKeyCallback(glfw.KeyX, func() {
		if exp.Busy() {
			status.Set(exporter.ErrBusy.Error())
			return
		}
		// Exports switch contexts; run between frames, not inside polling.
		r.Defer(func() {
			clk := r.Clock()
			snap := store.Snapshot()
			aspect := output.Aspect(r.Size())
			if err := exp.Export(snap, aspect, clk.Elapsed(), clk.Frame(), win.MakeCurrent); err != nil {
				log.Printf("Export failed: %v", err)
			}
		})
	})

	updateTitle()
}
