package translator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/shader"
)

func TestTranslateEveryMode(t *testing.T) {
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator unavailable: %v", err)
	}
	for m := 0; m < params.NumModes; m++ {
		p := params.Defaults()
		p.MovementMode = params.MovementMode(m)
		src, err := shader.Build(shader.FlowFieldTemplate(), p)
		if err != nil {
			t.Fatalf("mode %d: Build: %v", m, err)
		}
		for _, gles := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/gles=%v", p.MovementMode, gles), func(t *testing.T) {
				vs, err := Translate(src.Vertex, "vertex", gles)
				if err != nil {
					t.Fatalf("vertex: %v", err)
				}
				if !strings.Contains(vs.Code, "gl_Position") {
					t.Error("vertex output lacks gl_Position")
				}

				fs, err := Translate(src.Fragment, "fragment", gles)
				if err != nil {
					t.Fatalf("fragment: %v", err)
				}
				if strings.TrimSpace(fs.Code) == "" {
					t.Fatal("empty fragment output")
				}
				for _, name := range []string{"uScale", "uMovementMode", "uBrightness", "iResolution"} {
					if _, ok := fs.Mapped[name]; !ok {
						t.Errorf("uniform %s not reported", name)
					}
				}
			})
		}
	}
}

func TestTranslateRejectsUnconditionalHighp(t *testing.T) {
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator unavailable: %v", err)
	}
	src := "precision highp float;\nvoid main() { gl_FragColor = vec4(1.0); }\n"
	if _, err := Translate(src, "fragment", false); err == nil {
		t.Error("translator accepted highp in an ES 1.00 fragment shader")
	}
}

func TestMappedNameFallback(t *testing.T) {
	tr := &Translated{Mapped: map[string]string{"uScale": "_uuScale", "empty": ""}}
	if got := tr.MappedName("uScale"); got != "_uuScale" {
		t.Errorf("MappedName(uScale) = %q", got)
	}
	if got := tr.MappedName("empty"); got != "empty" {
		t.Errorf("MappedName(empty) = %q", got)
	}
	if got := tr.MappedName("missing"); got != "missing" {
		t.Errorf("MappedName(missing) = %q", got)
	}
}
