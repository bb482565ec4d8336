package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/richinsley/goshadergradient/params"
)

// Source is a vertex/fragment pair ready for translation and compilation.
type Source struct {
	Vertex   string
	Fragment string
	Mode     params.MovementMode
}

// QuadVertices is the fullscreen triangle strip bound to aPosition.
var QuadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// PositionAttribute is the vertex attribute fed with QuadVertices.
const PositionAttribute = "aPosition"

const vertexSource = `attribute vec2 aPosition;
varying vec2 vTexCoord;

void main() {
    vTexCoord = (aPosition + 1.0) * 0.5;
    gl_Position = vec4(aPosition, 0.0, 1.0);
}
`

const entryPoint = `
void main() {
    vec2 fragCoord = vTexCoord * iResolution;
    _fragColorResult = vec4(0.0, 0.0, 0.0, 1.0);
    mainImage_compat(fragCoord);
    _fragColorResult.rgb *= uBrightness;
    gl_FragColor = _fragColorResult;
}
`

var reMainImageSignature = regexp.MustCompile(`void\s+mainImage\s*\(\s*out\s+vec4\s+fragColor\s*,\s*in\s+vec2\s+fragCoord\s*\)`)

// compatRewrites run in order after the signature rewrite. Swizzled reads
// and component writes go first so the bare identifier rule only sees
// whole-vector uses.
var compatRewrites = []struct {
	name string
	re   *regexp.Regexp
	repl string
}{
	{"texture lookups", regexp.MustCompile(`\btexture\s*\(`), "texture2D("},
	{"swizzles", regexp.MustCompile(`\bfragColor\.([rgbaxyzw]{1,4})\b`), "_fragColorResult.$1"},
	{"compound assignment", regexp.MustCompile(`\bfragColor(\s*[-+*/]=)`), "_fragColorResult$1"},
	{"output", regexp.MustCompile(`\bfragColor\b`), "_fragColorResult"},
}

// VertexSource returns the fullscreen quad vertex shader.
func VertexSource() string {
	return vertexSource
}

// precisionPreamble picks highp only where the fragment stage supports it.
const precisionPreamble = `#ifdef GL_FRAGMENT_PRECISION_HIGH
precision highp float;
#else
precision mediump float;
#endif
`

// Header declares the precision, the standard inputs and one uniform per
// tunable parameter.
func Header() string {
	var b strings.Builder
	b.WriteString(precisionPreamble)
	b.WriteString("\n")
	b.WriteString("uniform vec2 iResolution;\n")
	b.WriteString("uniform float iTime;\n")
	b.WriteString("uniform int iFrame;\n")
	b.WriteString("uniform vec4 iMouse;\n")
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, "uniform sampler2D iChannel%d;\n", i)
	}
	b.WriteString("uniform vec3 iChannelResolution[4];\n\n")
	for _, f := range params.UniformFields() {
		typ := "float"
		if f.Kind == params.KindInt {
			typ = "int"
		}
		fmt.Fprintf(&b, "uniform %s %s;\n", typ, f.Uniform)
	}
	b.WriteString("\nvarying vec2 vTexCoord;\n")
	return b.String()
}

// Compat wraps a transformed body that defines mainImage into a complete
// ES 1.00 fragment shader.
func Compat(body string) (string, error) {
	loc := reMainImageSignature.FindStringIndex(body)
	if loc == nil {
		return "", missing("mainImage(out vec4 fragColor, in vec2 fragCoord)")
	}
	body = body[:loc[0]] + "vec4 _fragColorResult;\n\nvoid mainImage_compat(vec2 fragCoord)" + body[loc[1]:]
	for _, rw := range compatRewrites {
		body = rw.re.ReplaceAllString(body, rw.repl)
	}
	return Header() + "\n" + body + entryPoint, nil
}

// Build transforms the template for p and wraps it for compilation.
func Build(template string, p params.ShaderParameters) (Source, error) {
	body, err := Transform(template, p)
	if err != nil {
		return Source{}, err
	}
	frag, err := Compat(body)
	if err != nil {
		return Source{}, fmt.Errorf("compat: %w", err)
	}
	return Source{
		Vertex:   vertexSource,
		Fragment: frag,
		Mode:     p.MovementMode,
	}, nil
}
