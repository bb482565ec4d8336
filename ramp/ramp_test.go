package ramp

import (
	"bytes"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// 2x2 bottom-up frame: bottom row red, green; top row blue, white.
var frame2x2 = []byte{
	255, 0, 0, 255, 0, 255, 0, 200,
	0, 0, 255, 255, 255, 255, 255, 100,
}

func TestApplyEmptyIsFlip(t *testing.T) {
	dst := make([]byte, len(frame2x2))
	if err := Apply(dst, frame2x2, 2, 2, Build(nil)); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0, 0, 255, 255, 255, 255, 255, 100,
		255, 0, 0, 255, 0, 255, 0, 200,
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("got %v, want %v", dst, want)
	}
}

func TestApplySingleStopUniform(t *testing.T) {
	lut := Build([]colorful.Color{{R: 0.2, G: 0.4, B: 0.6}})
	dst := make([]byte, len(frame2x2))
	if err := Apply(dst, frame2x2, 2, 2, lut); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 51 || dst[i+1] != 102 || dst[i+2] != 153 {
			t.Errorf("pixel %d = %v", i/4, dst[i:i+3])
		}
	}
	// alpha comes through in flipped row order
	if dst[3] != 255 || dst[7] != 100 || dst[11] != 255 || dst[15] != 200 {
		t.Errorf("alpha not preserved: %v", dst)
	}
}

func TestBuildEndpoints(t *testing.T) {
	lut := Build([]colorful.Color{{R: 1}, {B: 1}})
	if lut[0] != [3]uint8{255, 0, 0} {
		t.Errorf("lut[0] = %v", lut[0])
	}
	if lut[Size-1] != [3]uint8{0, 0, 255} {
		t.Errorf("lut[255] = %v", lut[Size-1])
	}
}

func TestBuildMonotonic(t *testing.T) {
	lut := Build([]colorful.Color{{R: 1}, {B: 1}})
	for i := 1; i < Size; i++ {
		if lut[i][0] > lut[i-1][0] || lut[i][2] < lut[i-1][2] {
			t.Fatalf("not monotonic at %d: %v -> %v", i, lut[i-1], lut[i])
		}
	}
}

func TestStopOrderMatters(t *testing.T) {
	red, blue := colorful.Color{R: 1}, colorful.Color{B: 1}
	a := Build([]colorful.Color{red, blue})
	b := Build([]colorful.Color{blue, red})
	if *a == *b {
		t.Error("red->blue and blue->red ramps are identical")
	}

	src := []byte{255, 255, 255, 255}
	da, db := make([]byte, 4), make([]byte, 4)
	Apply(da, src, 1, 1, a)
	Apply(db, src, 1, 1, b)
	if bytes.Equal(da, db) {
		t.Error("outputs for reversed stops are identical")
	}
}

func TestIndex(t *testing.T) {
	if Index(0, 0, 0) != 0 {
		t.Error("black should map to 0")
	}
	if Index(255, 255, 255) != Size-1 {
		t.Error("white should map to the last entry")
	}
}

func TestApplyRejectsShortBuffers(t *testing.T) {
	if err := Apply(make([]byte, 4), make([]byte, 4), 2, 2, nil); err == nil {
		t.Error("short buffers accepted")
	}
}
