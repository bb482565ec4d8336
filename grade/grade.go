// Package grade is a CPU reference of the color grading applied in the
// fragment shader. Functions follow GLSL semantics (mod, clamp, mix) so the
// results match what the GPU produces for the same inputs.
package grade

import (
	"math"

	"github.com/richinsley/goshadergradient/params"
)

// RGB is a linear color with channels nominally in [0,1].
type RGB struct{ R, G, B float64 }

// Rec. 601 luma weights, shared with the color ramp.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Mod is GLSL mod: x - y*floor(x/y).
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

func clamp01(v float64) float64 { return params.Clamp(v, 0, 1) }

func mix(a, b, t float64) float64 { return params.Lerp(a, b, t) }

// Luminance returns the weighted luma of c.
func Luminance(c RGB) float64 {
	return c.R*LumaR + c.G*LumaG + c.B*LumaB
}

// RGBToHSL converts to hue, saturation, lightness, each in [0,1].
func RGBToHSL(c RGB) (h, s, l float64) {
	maxc := math.Max(math.Max(c.R, c.G), c.B)
	minc := math.Min(math.Min(c.R, c.G), c.B)
	l = (maxc + minc) * 0.5
	delta := maxc - minc
	if delta <= 0.0001 {
		return 0, 0, l
	}
	if l < 0.5 {
		s = delta / (maxc + minc)
	} else {
		s = delta / (2 - maxc - minc)
	}
	switch maxc {
	case c.R:
		h = Mod((c.G-c.B)/delta, 6)
	case c.G:
		h = (c.B-c.R)/delta + 2
	default:
		h = (c.R-c.G)/delta + 4
	}
	return h / 6, s, l
}

// HSLToRGB is the inverse of RGBToHSL.
func HSLToRGB(h, s, l float64) RGB {
	chroma := (1 - math.Abs(2*l-1)) * s
	ch := func(off float64) float64 {
		k := clamp01(math.Abs(Mod(h*6+off, 6)-3) - 1)
		return l + chroma*(k-0.5)
	}
	return RGB{ch(0), ch(4), ch(2)}
}

// RotateHue shifts the hue by degrees.
func RotateHue(c RGB, degrees float64) RGB {
	h, s, l := RGBToHSL(c)
	return HSLToRGB(Mod(h+degrees/360, 1), s, l)
}

// Contrast scales around mid gray.
func Contrast(c RGB, k float64) RGB {
	f := func(v float64) float64 { return (v-0.5)*k + 0.5 }
	return RGB{f(c.R), f(c.G), f(c.B)}
}

// Saturation mixes toward the luma gray; 0 is grayscale, 1 unchanged.
func Saturation(c RGB, amount float64) RGB {
	g := Luminance(c)
	return RGB{mix(g, c.R, amount), mix(g, c.G, amount), mix(g, c.B, amount)}
}

// Vibrance boosts saturation more for muted colors than for vivid ones.
func Vibrance(c RGB, v float64) RGB {
	luma := Luminance(c)
	colorfulness := math.Sqrt((c.R-luma)*(c.R-luma) + (c.G-luma)*(c.G-luma) + (c.B-luma)*(c.B-luma))
	factor := 1 + v*(1-colorfulness)
	return RGB{mix(luma, c.R, factor), mix(luma, c.G, factor), mix(luma, c.B, factor)}
}

// Posterize quantizes each channel to levels evenly spaced values spanning
// [0,1]. levels >= 256 leaves c untouched.
func Posterize(c RGB, levels float64) RGB {
	if levels >= 256 {
		return c
	}
	n := math.Max(2, levels)
	q := func(v float64) float64 {
		return math.Min(math.Floor(clamp01(v)*n), n-1) / (n - 1)
	}
	return RGB{q(c.R), q(c.G), q(c.B)}
}

// Scanline returns the multiplier applied to a pixel at fragment row y.
func Scanline(y, height, width, amount float64) float64 {
	if amount <= 0 {
		return 1
	}
	freq := height / math.Max(width, 0.1)
	s := math.Pow(math.Sin(y/height*freq*3.14159)*0.5+0.5, 10)
	return mix(1, s*0.8+0.2, amount)
}
