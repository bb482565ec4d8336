package params

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Effect describes what a change to a field requires before it is visible.
type Effect int

const (
	// EffectUniform fields are pushed as uniforms on the next frame.
	EffectUniform Effect = iota
	// EffectRebuild fields require the shader to be transformed and
	// compiled again.
	EffectRebuild
	// EffectPostProcess fields are consumed by the CPU color ramp.
	EffectPostProcess
	// EffectExportOnly fields are read by the export pipeline only.
	EffectExportOnly
)

func (e Effect) String() string {
	switch e {
	case EffectUniform:
		return "uniform"
	case EffectRebuild:
		return "rebuild"
	case EffectPostProcess:
		return "post-process"
	case EffectExportOnly:
		return "export-only"
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Kind is the shader type used when a field is bound as a uniform.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindStops
)

// Field is one row of the capability table.
type Field struct {
	Name    string
	Uniform string
	Kind    Kind
	Effect  Effect
	Min     float64
	Max     float64

	get func(*ShaderParameters) float64
	set func(*ShaderParameters, float64)
}

// Get reads the field from p. Stop lists report their length.
func (f Field) Get(p *ShaderParameters) float64 {
	if f.get == nil {
		return float64(len(p.GradientColors))
	}
	return f.get(p)
}

// Fields enumerates every parameter. Order matches the declaration order in
// ShaderParameters.
var Fields = []Field{
	floatField("scale", "uScale", 0.5, 20, func(p *ShaderParameters) *float64 { return &p.Scale }),
	floatField("phaseX", "uPhaseX", 0, 2*math.Pi, func(p *ShaderParameters) *float64 { return &p.PhaseX }),
	floatField("velocity", "uVelocity", 0, 2, func(p *ShaderParameters) *float64 { return &p.Velocity }),
	floatField("mode1Detail", "uMode1Detail", 1, 500, func(p *ShaderParameters) *float64 { return &p.Mode1Detail }),
	floatField("mode1Twist", "uMode1Twist", 0, 100, func(p *ShaderParameters) *float64 { return &p.Mode1Twist }),
	floatField("mode2Speed", "uMode2Speed", 0, 10, func(p *ShaderParameters) *float64 { return &p.Mode2Speed }),
	{
		Name:    "movementMode",
		Uniform: "uMovementMode",
		Kind:    KindInt,
		Effect:  EffectRebuild,
		Min:     0,
		Max:     NumModes - 1,
		get:     func(p *ShaderParameters) float64 { return float64(p.MovementMode) },
		set:     func(p *ShaderParameters, v float64) { p.MovementMode = MovementMode(int(math.Round(v))) },
	},

	floatField("brightness", "uBrightness", 0, 2, func(p *ShaderParameters) *float64 { return &p.Brightness }),
	floatField("hue", "uHue", 0, 360, func(p *ShaderParameters) *float64 { return &p.Hue }),
	floatField("saturation", "uSaturation", 0, 2, func(p *ShaderParameters) *float64 { return &p.Saturation }),
	floatField("vibrance", "uVibrance", -1, 1, func(p *ShaderParameters) *float64 { return &p.Vibrance }),
	floatField("contrast", "uContrast", 0, 2, func(p *ShaderParameters) *float64 { return &p.Contrast }),
	floatField("rgbMultiplierR", "uRgbMultiplierR", 0, 2, func(p *ShaderParameters) *float64 { return &p.RGBMultiplierR }),
	floatField("rgbMultiplierG", "uRgbMultiplierG", 0, 2, func(p *ShaderParameters) *float64 { return &p.RGBMultiplierG }),
	floatField("rgbMultiplierB", "uRgbMultiplierB", 0, 2, func(p *ShaderParameters) *float64 { return &p.RGBMultiplierB }),
	floatField("colorOffset", "uColorOffset", -1, 1, func(p *ShaderParameters) *float64 { return &p.ColorOffset }),

	floatField("grainAmount", "uGrainAmount", 0, 2, func(p *ShaderParameters) *float64 { return &p.GrainAmount }),
	floatField("grainSize", "uGrainSize", 0.1, 10, func(p *ShaderParameters) *float64 { return &p.GrainSize }),
	floatField("posterize", "uPosterize", 2, 256, func(p *ShaderParameters) *float64 { return &p.Posterize }),
	floatField("scanlines", "uScanlines", 0, 1, func(p *ShaderParameters) *float64 { return &p.Scanlines }),
	floatField("scanlineWidth", "uScanlineWidth", 0.1, 10, func(p *ShaderParameters) *float64 { return &p.ScanlineWidth }),

	{
		Name:   "gradientColors",
		Kind:   KindStops,
		Effect: EffectPostProcess,
	},
	{
		Name:   "exportResolution",
		Kind:   KindInt,
		Effect: EffectExportOnly,
		Min:    64,
		Max:    16384,
		get:    func(p *ShaderParameters) float64 { return float64(p.ExportResolution) },
		set:    func(p *ShaderParameters, v float64) { p.ExportResolution = int(math.Round(v)) },
	},
}

func floatField(name, uniform string, lo, hi float64, ref func(*ShaderParameters) *float64) Field {
	return Field{
		Name:    name,
		Uniform: uniform,
		Kind:    KindFloat,
		Effect:  EffectUniform,
		Min:     lo,
		Max:     hi,
		get:     func(p *ShaderParameters) float64 { return *ref(p) },
		set:     func(p *ShaderParameters, v float64) { *ref(p) = v },
	}
}

// Lookup finds a field by name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// UniformFields returns the fields bound as shader uniforms, in table order.
func UniformFields() []Field {
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if f.Uniform != "" {
			out = append(out, f)
		}
	}
	return out
}

// UniformNames lists the uniform identifiers introduced by the transformer.
func UniformNames() []string {
	fields := UniformFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Uniform
	}
	return names
}

func Clamp[N constraints.Integer | constraints.Float](n, lo, hi N) N {
	n = min(n, hi)
	n = max(n, lo)
	return n
}

func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}
