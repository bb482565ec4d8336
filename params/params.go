// Package params holds the parameter record that drives the gradient shader,
// its documented defaults and ranges, and the table that says which fields
// are live uniforms and which ones force a shader rebuild.
package params

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MovementMode selects one of the alternate time evolutions of the field.
type MovementMode int

const (
	ModeCircular MovementMode = iota
	ModeLinear
	ModeVortex
	ModeResonance
	ModeChaotic
	ModeBurst
	ModeFlow
	ModeStatic

	NumModes = 8
)

var modeNames = [NumModes]string{
	"circular",
	"linear",
	"vortex",
	"resonance",
	"chaotic",
	"burst",
	"flow",
	"static",
}

func (m MovementMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m MovementMode) Valid() bool {
	return m >= 0 && m < NumModes
}

// ShaderParameters is the full set of user controls.
type ShaderParameters struct {
	// Motion
	Scale        float64
	PhaseX       float64
	Velocity     float64
	Mode1Detail  float64
	Mode1Twist   float64
	Mode2Speed   float64
	MovementMode MovementMode

	// Grading
	Brightness     float64
	Hue            float64
	Saturation     float64
	Vibrance       float64
	Contrast       float64
	RGBMultiplierR float64
	RGBMultiplierG float64
	RGBMultiplierB float64
	ColorOffset    float64

	// Texture
	GrainAmount   float64
	GrainSize     float64
	Posterize     float64
	Scanlines     float64
	ScanlineWidth float64

	// GradientColors are the color ramp stops in insertion order. Empty
	// disables the ramp.
	GradientColors []colorful.Color

	// ExportResolution is the longest-edge target for exports.
	ExportResolution int
}

// Defaults returns the documented startup values.
func Defaults() ShaderParameters {
	return ShaderParameters{
		Scale:        6.0,
		PhaseX:       0.1,
		Velocity:     0.2,
		Mode1Detail:  200.0,
		Mode1Twist:   0.0,
		Mode2Speed:   2.5,
		MovementMode: ModeCircular,

		Brightness:     1.0,
		Hue:            33.0,
		Saturation:     1.0,
		Vibrance:       0.0,
		Contrast:       1.0,
		RGBMultiplierR: 1.0,
		RGBMultiplierG: 1.0,
		RGBMultiplierB: 1.0,
		ColorOffset:    0.0,

		GrainAmount:   0.0,
		GrainSize:     2.0,
		Posterize:     256.0,
		Scanlines:     0.0,
		ScanlineWidth: 1.0,

		GradientColors:   nil,
		ExportResolution: 4096,
	}
}

// Clone returns a deep copy; the stop slice is not shared.
func (p ShaderParameters) Clone() ShaderParameters {
	out := p
	if p.GradientColors != nil {
		out.GradientColors = make([]colorful.Color, len(p.GradientColors))
		copy(out.GradientColors, p.GradientColors)
	}
	return out
}

// Validate checks that every numeric field is finite and the movement mode
// is one of the defined variants.
func (p *ShaderParameters) Validate() error {
	for _, f := range Fields {
		if f.get == nil {
			continue
		}
		v := f.get(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %s is not finite: %v", f.Name, v)
		}
	}
	if !p.MovementMode.Valid() {
		return fmt.Errorf("movement mode %d out of range", int(p.MovementMode))
	}
	for i, c := range p.GradientColors {
		for _, v := range []float64{c.R, c.G, c.B} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("gradient stop %d is not finite", i)
			}
		}
	}
	return nil
}
