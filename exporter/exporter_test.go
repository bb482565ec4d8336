package exporter

import (
	"errors"
	"strings"
	"testing"

	"github.com/richinsley/goshadergradient/graphics"
	"github.com/richinsley/goshadergradient/hud"
	"github.com/richinsley/goshadergradient/output"
	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/renderer"
	"github.com/richinsley/goshadergradient/shader"
)

func noContext(w, h int) (graphics.Context, error) {
	return nil, errors.New("no display")
}

func TestExportContextUnavailable(t *testing.T) {
	status := hud.NewStatus(0)
	e := New(noContext, shader.FlowFieldTemplate(), status, t.TempDir())

	restored := false
	s, _ := params.NewStore(params.Defaults())
	err := e.Export(s.Snapshot(), 16.0/9.0, 1.5, 90, func() { restored = true })
	if !errors.Is(err, renderer.ErrContextUnavailable) {
		t.Fatalf("err = %v, want ErrContextUnavailable", err)
	}
	if !restored {
		t.Error("restore was not called after a failed export")
	}
	if e.Busy() {
		t.Error("export control still disabled after failure")
	}
	if !strings.HasPrefix(status.Text(), "Export failed") {
		t.Errorf("status = %q", status.Text())
	}
}

func TestExportBusy(t *testing.T) {
	e := New(noContext, shader.FlowFieldTemplate(), hud.NewStatus(0), t.TempDir())
	e.busy.Store(true)
	s, _ := params.NewStore(params.Defaults())
	if err := e.Export(s.Snapshot(), 16.0/9.0, 0, 0, nil); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
}

func TestSize(t *testing.T) {
	e := New(noContext, "", hud.NewStatus(0), "")
	p := params.Defaults()
	p.ExportResolution = 1024
	if w, h := e.Size(&p, 16.0/9.0); w != 1024 || h != 576 {
		t.Errorf("Size = %dx%d, want 1024x576", w, h)
	}
}

func TestExportFollowsLiveAspect(t *testing.T) {
	tests := []struct {
		name         string
		liveW, liveH int
		wantW, wantH int
	}{
		{"square window", 800, 800, 4096, 4096},
		{"portrait window", 600, 1200, 2048, 4096},
		{"wide window", 1280, 720, 4096, 2304},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotW, gotH int
			factory := func(w, h int) (graphics.Context, error) {
				gotW, gotH = w, h
				return nil, errors.New("no display")
			}
			e := New(factory, shader.FlowFieldTemplate(), hud.NewStatus(0), t.TempDir())
			s, _ := params.NewStore(params.Defaults())
			e.Export(s.Snapshot(), output.Aspect(tt.liveW, tt.liveH), 0, 0, nil)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("export context %dx%d, want %dx%d", gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}
