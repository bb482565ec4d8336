package grade

import (
	"math"
	"strings"
	"testing"

	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/shader"
)

func closeRGB(a, b RGB, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func TestHSLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
	}{
		{"black", RGB{0, 0, 0}},
		{"white", RGB{1, 1, 1}},
		{"red", RGB{1, 0, 0}},
		{"mid gray", RGB{0.5, 0.5, 0.5}},
		{"teal", RGB{0.1, 0.6, 0.55}},
		{"violet", RGB{0.55, 0.2, 0.9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := RGBToHSL(tt.in)
			if got := HSLToRGB(h, s, l); !closeRGB(got, tt.in, 1e-4) {
				t.Errorf("round trip = %+v, want %+v", got, tt.in)
			}
		})
	}
}

func TestRotateHue(t *testing.T) {
	got := RotateHue(RGB{1, 0, 0}, 120)
	if !closeRGB(got, RGB{0, 1, 0}, 1e-9) {
		t.Errorf("red +120 = %+v, want green", got)
	}
	got = RotateHue(RGB{1, 0, 0}, 360)
	if !closeRGB(got, RGB{1, 0, 0}, 1e-9) {
		t.Errorf("red +360 = %+v, want red", got)
	}
}

func TestMod(t *testing.T) {
	if got := Mod(-1, 6); got != 5 {
		t.Errorf("Mod(-1, 6) = %v, want 5", got)
	}
}

func TestPosterizeTwoLevels(t *testing.T) {
	seen := map[float64]bool{}
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		seen[Posterize(RGB{v, v, v}, 2).R] = true
	}
	if len(seen) != 2 {
		t.Errorf("got %d distinct values, want 2: %v", len(seen), seen)
	}
}

func TestPosterizeNoop(t *testing.T) {
	c := RGB{0.123, 0.456, 0.789}
	if Posterize(c, 256) != c {
		t.Error("256 levels must leave color untouched")
	}
}

func TestSaturationZeroIsGray(t *testing.T) {
	got := Saturation(RGB{0.9, 0.2, 0.1}, 0)
	if got.R != got.G || got.G != got.B {
		t.Errorf("not gray: %+v", got)
	}
}

func TestVibranceZeroIsIdentity(t *testing.T) {
	c := RGB{0.3, 0.6, 0.2}
	if got := Vibrance(c, 0); !closeRGB(got, c, 1e-12) {
		t.Errorf("Vibrance(c, 0) = %+v", got)
	}
}

func TestContrastPivot(t *testing.T) {
	if got := Contrast(RGB{0.5, 0.5, 0.5}, 2); got != (RGB{0.5, 0.5, 0.5}) {
		t.Errorf("mid gray moved: %+v", got)
	}
}

func TestScanlineDisabled(t *testing.T) {
	if Scanline(10, 100, 1, 0) != 1 {
		t.Error("zero amount must not darken")
	}
	if s := Scanline(10, 100, 1, 1); s < 0.2-1e-9 || s > 1+1e-9 {
		t.Errorf("scanline out of range: %v", s)
	}
}

// The fragment shader runs the GLSL form of these functions; the table pins
// the expressions each Go mirror transcribes.
func TestMirrorsFragmentSource(t *testing.T) {
	src, err := shader.Build(shader.FlowFieldTemplate(), params.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		mirror string
		glsl   []string
	}{
		{"Luminance", []string{"return dot(c, vec3(0.299, 0.587, 0.114));"}},
		{"RGBToHSL", []string{
			"if (delta > 0.0001) {",
			"s = l < 0.5 ? delta / (maxc + minc) : delta / (2.0 - maxc - minc);",
			"h = mod((c.g - c.b) / delta, 6.0);",
			"h = (c.b - c.r) / delta + 2.0;",
			"h = (c.r - c.g) / delta + 4.0;",
		}},
		{"HSLToRGB", []string{
			"vec3 rgb = clamp(abs(mod(hsl.x * 6.0 + vec3(0.0, 4.0, 2.0), 6.0) - 3.0) - 1.0, 0.0, 1.0);",
			"float chroma = (1.0 - abs(2.0 * hsl.z - 1.0)) * hsl.y;",
			"return hsl.z + chroma * (rgb - 0.5);",
		}},
		{"RotateHue", []string{"hsl.x = mod(hsl.x + uHue / 360.0, 1.0);"}},
		{"Contrast", []string{"col = (col - 0.5) * uContrast + 0.5;"}},
		{"Saturation", []string{"col = mix(vec3(getLuminance(col)), col, uSaturation);"}},
		{"Vibrance", []string{"float factor = 1.0 + vibrance * (1.0 - colorfulness);"}},
		{"Posterize", []string{
			"if (uPosterize < 256.0) {",
			"float levels = max(2.0, uPosterize);",
			"col = min(floor(clamp(col, 0.0, 1.0) * levels), levels - 1.0) / (levels - 1.0);",
		}},
		{"Scanline", []string{
			"float frequency = iResolution.y / max(uScanlineWidth, 0.1);",
			"float scanline = pow(sin(fragCoord.y / iResolution.y * frequency * 3.14159) * 0.5 + 0.5, 10.0);",
			"col *= mix(1.0, scanline * 0.8 + 0.2, uScanlines);",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.mirror, func(t *testing.T) {
			for _, line := range tt.glsl {
				if !strings.Contains(src.Fragment, line) {
					t.Errorf("fragment no longer contains %q", line)
				}
			}
		})
	}
}
