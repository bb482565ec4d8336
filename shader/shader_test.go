package shader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/richinsley/goshadergradient/params"
)

func transformDefault(t *testing.T) string {
	t.Helper()
	out, err := Transform(FlowFieldTemplate(), params.Defaults())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return out
}

func TestTransformBranchesPerMode(t *testing.T) {
	out := transformDefault(t)
	for m := 0; m < params.NumModes; m++ {
		needle := fmt.Sprintf("uMovementMode == %d)", m)
		if got := strings.Count(out, needle); got != 2 {
			t.Errorf("mode %d: %d branches, want 2", m, got)
		}
	}
	if strings.Contains(out, "uMovementMode == 8)") {
		t.Error("branch for nonexistent mode 8")
	}
}

func TestTransformStripsConstants(t *testing.T) {
	out := transformDefault(t)
	for _, ident := range []string{"velocity_x", "velocity_y", "mode_1_detail", "mode_1_twist", "mode_2_speed"} {
		if strings.Contains(out, ident) {
			t.Errorf("%s survived the transform", ident)
		}
	}
	if regexp.MustCompile(`\bscale\b`).MatchString(out) {
		t.Error("bare scale survived the transform")
	}
	if !strings.Contains(out, "p *= uScale;") {
		t.Error("scale was not rewritten to uScale")
	}
	if !strings.Contains(out, "(uMode1Twist*0.01)*t + g*(1./uMode1Detail)") {
		t.Error("loop step does not read the detail/twist uniforms")
	}
}

func TestTransformKeepsUnrelatedConstants(t *testing.T) {
	out := transformDefault(t)
	for _, keep := range []string{"const float arrow_density", "const bool show_arrows = false", "const int iterations = 20"} {
		if !strings.Contains(out, keep) {
			t.Errorf("missing %q", keep)
		}
	}
}

func TestTransformGuardsNormalize(t *testing.T) {
	out := transformDefault(t)
	if strings.Contains(out, "normalize(t)*m") {
		t.Error("unguarded normalize remains")
	}
	if !strings.Contains(out, "(length(t) > 0.001 ? normalize(t) : vec2(0.0)) * m") {
		t.Error("normalize guard missing")
	}
}

func TestGrainSampling(t *testing.T) {
	out := transformDefault(t)
	if !strings.Contains(out, "grain(texCoord, resolution / s, t * 0.1, s);") {
		t.Error("grain must sample at a tenth of shader time with grain size as multiplier")
	}
	if !strings.Contains(out, "applyGrain(col, uv, iResolution.xy, uGrainAmount, uGrainSize, time);") {
		t.Error("grain stage does not pass shader time")
	}
}

func TestTransformOrdering(t *testing.T) {
	out := transformDefault(t)
	helpers := strings.Index(out, "vec3 rgb2hsl(")
	mainImage := strings.Index(out, "void mainImage(")
	if helpers < 0 || mainImage < 0 || helpers > mainImage {
		t.Fatalf("helpers at %d, mainImage at %d", helpers, mainImage)
	}

	final := strings.Index(out, "fragColor = vec4(col,1.0);")
	if final < 0 {
		t.Fatal("final color write missing")
	}
	prev := mainImage
	for _, st := range GradeStages() {
		i := strings.Index(out, "// "+st.Name)
		if i < prev || i > final {
			t.Errorf("stage %q at %d, want between %d and %d", st.Name, i, prev, final)
		}
		prev = i
	}
}

func TestTransformAnchorMiss(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(string) string
	}{
		{"missing const", func(s string) string { return strings.Replace(s, "const float mode_1_twist = 50.;", "", 1) }},
		{"missing field function", func(s string) string { return strings.Replace(s, "float f(in vec2 p)", "float g(in vec2 p)", 1) }},
		{"missing loop drift", func(s string) string { return strings.Replace(s, "sin( time*mode_2_speed/10.)/10.;", "0.0;", 1) }},
		{"missing final write", func(s string) string { return strings.Replace(s, "fragColor = vec4(col,1.0);", "fragColor = vec4(1.0);", 1) }},
		{"missing normalize", func(s string) string { return strings.Replace(s, "normalize(t)*m", "t*m", 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform(tt.mutate(FlowFieldTemplate()), params.Defaults())
			if !errors.Is(err, ErrTransformInvariant) {
				t.Errorf("err = %v, want ErrTransformInvariant", err)
			}
		})
	}
}

func TestTransformRejectsBadMode(t *testing.T) {
	p := params.Defaults()
	p.MovementMode = 12
	if _, err := Transform(FlowFieldTemplate(), p); err == nil {
		t.Error("invalid mode accepted")
	}
}

func TestBuildFragment(t *testing.T) {
	p := params.Defaults()
	p.MovementMode = params.ModeFlow
	src, err := Build(FlowFieldTemplate(), p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if src.Mode != params.ModeFlow {
		t.Errorf("mode = %v", src.Mode)
	}
	frag := src.Fragment
	if !strings.HasPrefix(frag, "#ifdef GL_FRAGMENT_PRECISION_HIGH\n") {
		t.Error("fragment must start with the precision guard")
	}
	if !strings.Contains(frag, "#else\nprecision mediump float;\n#endif") {
		t.Error("mediump fallback missing")
	}
	for _, name := range params.UniformNames() {
		if !strings.Contains(frag, " "+name+";") {
			t.Errorf("uniform %s not declared", name)
		}
	}
	if !strings.Contains(frag, "uniform int uMovementMode;") {
		t.Error("movement mode must be an int uniform")
	}
	if !strings.Contains(frag, "void mainImage_compat(vec2 fragCoord)") {
		t.Error("entry point not renamed")
	}
	if regexp.MustCompile(`\bfragColor\b`).MatchString(frag) {
		t.Error("fragColor left unrewritten")
	}
	if !strings.Contains(frag, "_fragColorResult.rgb *= uBrightness;") {
		t.Error("brightness not applied in main")
	}
	if !strings.Contains(frag, "gl_FragColor = _fragColorResult;") {
		t.Error("result not written to gl_FragColor")
	}
	if !strings.Contains(src.Vertex, "attribute vec2 aPosition;") {
		t.Error("vertex shader lacks aPosition")
	}
}

func TestCompatRewrites(t *testing.T) {
	body := `void mainImage( out vec4 fragColor, in vec2 fragCoord )
{
    fragColor = texture(iChannel0, fragCoord);
    fragColor.rg = fragColor.gr;
    fragColor *= 0.5;
    vec3 c = fragColor.rgb;
}
`
	out, err := Compat(body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"vec4 _fragColorResult;",
		"_fragColorResult = texture2D(iChannel0, fragCoord);",
		"_fragColorResult.rg = _fragColorResult.gr;",
		"_fragColorResult *= 0.5;",
		"vec3 c = _fragColorResult.rgb;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}

	if _, err := Compat("void main() {}"); !errors.Is(err, ErrTransformInvariant) {
		t.Errorf("err = %v, want ErrTransformInvariant", err)
	}
}

func TestBlitFlipsRows(t *testing.T) {
	for _, gles := range []bool{false, true} {
		if src := BlitFragmentShader(gles); !strings.Contains(src, "1.0 - frag_uv.y") {
			t.Errorf("gles=%v: blit does not flip", gles)
		}
	}
}

func TestQuadVertices(t *testing.T) {
	if len(QuadVertices) != 8 {
		t.Fatalf("got %d floats, want 8", len(QuadVertices))
	}
}
