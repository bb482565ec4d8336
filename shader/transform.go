package shader

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/richinsley/goshadergradient/params"
)

// ErrTransformInvariant is returned when a transform stage cannot find the
// source shape it rewrites. The template and the stages are out of sync.
var ErrTransformInvariant = errors.New("shader transform invariant violated")

//go:embed flowfield.frag
var flowFieldSource string

//go:embed glsl/helpers.glsl
var helpersSource string

//go:embed glsl/field.tmpl
var fieldTemplateSource string

//go:embed glsl/loop.tmpl
var loopTemplateSource string

//go:embed glsl/grading.tmpl
var gradingTemplateSource string

var (
	fieldTemplate   = template.Must(template.New("field").Parse(fieldTemplateSource))
	loopTemplate    = template.Must(template.New("loop").Parse(loopTemplateSource))
	gradingTemplate = template.Must(template.New("grading").Parse(gradingTemplateSource))
)

// FlowFieldTemplate returns the embedded reference template.
func FlowFieldTemplate() string {
	return flowFieldSource
}

// constantUniforms maps template constants to the uniforms that replace
// them, in substitution order. scale must stay last so that no longer
// identifier is clobbered before its own rule runs.
var constantUniforms = []struct {
	Const   string
	Uniform string
}{
	{"velocity_x", "uPhaseX"},
	{"velocity_y", "uVelocity"},
	{"mode_1_detail", "uMode1Detail"},
	{"mode_1_twist", "uMode1Twist"},
	{"mode_2_speed", "uMode2Speed"},
	{"scale", "uScale"},
}

var (
	reFieldFunc  = regexp.MustCompile(`float\s+f\s*\(\s*in\s+vec2\s+p\s*\)\s*\{[^}]*\}`)
	reNormalize  = regexp.MustCompile(`normalize\(\s*t\s*\)\s*\*\s*m`)
	reLoopDrift  = regexp.MustCompile(`(?m)^([ \t]*)p\.x\s*=\s*p\.x\s*\+\s*sin\(\s*time\s*\*\s*mode_2_speed\s*/\s*10\.0?\s*\)\s*/\s*10\.0?\s*;[ \t]*\r?\n[ \t]*p\.y\s*=\s*p\.y\s*\+\s*cos\(\s*time\s*\*\s*mode_2_speed\s*/\s*10\.0?\s*\)\s*/\s*10\.0?\s*;[ \t]*\r?\n`)
	reMainImage  = regexp.MustCompile(`(?m)^void\s+mainImage\s*\(`)
	reFinalColor = regexp.MustCompile(`(?m)^[ \t]*fragColor\s*=\s*vec4\(\s*col\s*,\s*1\.0?\s*\)\s*;`)
	reModeTest   = regexp.MustCompile(`uMovementMode == (\d+)\)`)
)

// Stage is one ordered rewrite of the template.
type Stage struct {
	Name  string
	Apply func(src string) (string, error)
}

// Stages returns the transform pipeline in application order.
func Stages() []Stage {
	return []Stage{
		{"strip constants", stripConstants},
		{"guard normalize", guardNormalize},
		{"field modes", injectFieldModes},
		{"loop modes", injectLoopModes},
		{"uniform substitution", substituteUniforms},
		{"helpers", injectHelpers},
		{"grading", injectGrading},
	}
}

// Transform rewrites the reference template into a parameterized fragment
// body that still exposes mainImage. Only the movement mode of p is
// recorded; every other parameter is read from uniforms at draw time.
func Transform(src string, p params.ShaderParameters) (string, error) {
	if !p.MovementMode.Valid() {
		return "", fmt.Errorf("transform: invalid movement mode %d", p.MovementMode)
	}
	var err error
	for _, st := range Stages() {
		src, err = st.Apply(src)
		if err != nil {
			return "", fmt.Errorf("transform stage %q: %w", st.Name, err)
		}
	}
	if err := Verify(src); err != nil {
		return "", err
	}
	return fmt.Sprintf("// movement mode at build: %s\n%s", p.MovementMode, src), nil
}

// Verify checks the postconditions of a transformed body: no template
// constant survives, both decision points branch once per mode, and every
// uniform but brightness is referenced.
func Verify(src string) error {
	for _, cu := range constantUniforms {
		if wordRegexp(cu.Const).MatchString(src) {
			return fmt.Errorf("%w: constant %s still referenced", ErrTransformInvariant, cu.Const)
		}
	}
	counts := make(map[int]int)
	for _, m := range reModeTest.FindAllStringSubmatch(src, -1) {
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		counts[n]++
	}
	for m := 0; m < params.NumModes; m++ {
		if counts[m] != 2 {
			return fmt.Errorf("%w: mode %d has %d branches, want 2", ErrTransformInvariant, m, counts[m])
		}
	}
	if len(counts) != params.NumModes {
		return fmt.Errorf("%w: unexpected mode branches %v", ErrTransformInvariant, counts)
	}
	for _, name := range params.UniformNames() {
		if name == "uBrightness" {
			continue
		}
		if !wordRegexp(name).MatchString(src) {
			return fmt.Errorf("%w: uniform %s never referenced", ErrTransformInvariant, name)
		}
	}
	return nil
}

func wordRegexp(ident string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\b`)
}

func missing(anchor string) error {
	return fmt.Errorf("%w: anchor %s not found", ErrTransformInvariant, anchor)
}

func stripConstants(src string) (string, error) {
	for _, cu := range constantUniforms {
		re := regexp.MustCompile(`(?m)^[ \t]*const\s+float\s+` + regexp.QuoteMeta(cu.Const) + `\s*=\s*[^;]*;[ \t]*\r?\n?`)
		loc := re.FindStringIndex(src)
		if loc == nil {
			return "", missing("const " + cu.Const)
		}
		src = src[:loc[0]] + src[loc[1]:]
	}
	return src, nil
}

func guardNormalize(src string) (string, error) {
	loc := reNormalize.FindStringIndex(src)
	if loc == nil {
		return "", missing("normalize(t)*m")
	}
	return src[:loc[0]] + "(length(t) > 0.001 ? normalize(t) : vec2(0.0)) * m" + src[loc[1]:], nil
}

func injectFieldModes(src string) (string, error) {
	loc := reFieldFunc.FindStringIndex(src)
	if loc == nil {
		return "", missing("float f(in vec2 p)")
	}
	var buf bytes.Buffer
	if err := fieldTemplate.Execute(&buf, modeBranches); err != nil {
		return "", err
	}
	return src[:loc[0]] + strings.TrimRight(buf.String(), "\n") + src[loc[1]:], nil
}

func injectLoopModes(src string) (string, error) {
	m := reLoopDrift.FindStringSubmatchIndex(src)
	if m == nil {
		return "", missing("mode 2 loop drift")
	}
	var buf bytes.Buffer
	err := loopTemplate.Execute(&buf, struct {
		Indent   string
		Branches []ModeBranch
	}{src[m[2]:m[3]], modeBranches})
	if err != nil {
		return "", err
	}
	return src[:m[0]] + buf.String() + src[m[1]:], nil
}

func substituteUniforms(src string) (string, error) {
	for _, cu := range constantUniforms {
		src = wordRegexp(cu.Const).ReplaceAllLiteralString(src, cu.Uniform)
	}
	return src, nil
}

func injectHelpers(src string) (string, error) {
	loc := reMainImage.FindStringIndex(src)
	if loc == nil {
		return "", missing("void mainImage(")
	}
	return src[:loc[0]] + helpersSource + "\n" + src[loc[0]:], nil
}

func injectGrading(src string) (string, error) {
	loc := reFinalColor.FindStringIndex(src)
	if loc == nil {
		return "", missing("fragColor = vec4(col,1.0)")
	}
	var buf bytes.Buffer
	if err := gradingTemplate.Execute(&buf, gradeStages); err != nil {
		return "", err
	}
	return src[:loc[0]] + strings.TrimLeft(buf.String(), "\n") + src[loc[0]:], nil
}
