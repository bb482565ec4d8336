// Package ramp recolors a rendered frame through a luminance keyed color
// gradient.
package ramp

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Size is the number of LUT entries.
const Size = 256

// LUT maps a quantized luminance to an RGB color.
type LUT [Size][3]uint8

// Build samples the piecewise linear gradient through stops at Size evenly
// spaced positions. Stops are used in the order given. It returns nil when
// stops is empty, meaning the ramp is disabled.
func Build(stops []colorful.Color) *LUT {
	n := len(stops)
	if n == 0 {
		return nil
	}
	var lut LUT
	for i := range lut {
		pos := float64(i) / (Size - 1) * float64(n-1)
		i0 := int(math.Floor(pos))
		if i0 > n-1 {
			i0 = n - 1
		}
		i1 := min(i0+1, n-1)
		c := stops[i0].BlendRgb(stops[i1], pos-float64(i0)).Clamped()
		r, g, b := c.RGB255()
		lut[i] = [3]uint8{r, g, b}
	}
	return &lut
}

// Index returns the LUT slot for an 8 bit RGB pixel: floor(luminance*255)
// with Rec. 601 weights, computed in integers so white lands on 255.
func Index(r, g, b uint8) int {
	lum := (299*int(r) + 587*int(g) + 114*int(b)) / 1000
	return min(lum, Size-1)
}

// Apply copies the bottom-up RGBA frame src into dst top-down, remapping
// each pixel through lut when it is non-nil. Alpha is preserved. dst and
// src must not overlap.
func Apply(dst, src []byte, width, height int, lut *LUT) error {
	stride := width * 4
	if width <= 0 || height <= 0 {
		return fmt.Errorf("ramp: invalid frame size %dx%d", width, height)
	}
	if len(src) < stride*height || len(dst) < stride*height {
		return fmt.Errorf("ramp: buffer too small for %dx%d", width, height)
	}
	for y := 0; y < height; y++ {
		in := src[(height-1-y)*stride : (height-y)*stride]
		out := dst[y*stride : (y+1)*stride]
		if lut == nil {
			copy(out, in)
			continue
		}
		for x := 0; x < stride; x += 4 {
			c := lut[Index(in[x], in[x+1], in[x+2])]
			out[x] = c[0]
			out[x+1] = c[1]
			out[x+2] = c[2]
			out[x+3] = in[x+3]
		}
	}
	return nil
}
