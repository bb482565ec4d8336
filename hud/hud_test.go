package hud

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"
)

func fill(img draw.Image, c color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func TestStatusExpires(t *testing.T) {
	s := NewStatus(time.Millisecond)
	s.Set("Export in progress...")
	s.at = time.Now().Add(-time.Second)
	if got := s.Text(); got != "" {
		t.Errorf("Text() = %q, want expired", got)
	}

	s = NewStatus(0)
	s.Set("Export succeeded: 1024x576px")
	s.at = time.Now().Add(-time.Hour)
	if got := s.Text(); got != "Export succeeded: 1024x576px" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDrawTextTouchesBottomLeftOnly(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 60))
	fill(img, color.NRGBA{0, 0, 0, 255})
	DrawText(img, "paused")

	if img.NRGBAAt(199, 0) != (color.NRGBA{0, 0, 0, 255}) {
		t.Error("top-right pixel changed")
	}
	lit := false
	for y := 40; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if img.NRGBAAt(x, y).R > 128 {
				lit = true
			}
		}
	}
	if !lit {
		t.Error("no light ink drawn on a dark frame")
	}
}

func TestDrawTextDarkInkOnLight(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 60))
	fill(img, color.NRGBA{255, 255, 255, 255})
	DrawText(img, "paused")

	dark := false
	for y := 40; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if img.NRGBAAt(x, y).R < 64 {
				dark = true
			}
		}
	}
	if !dark {
		t.Error("no dark ink drawn on a light frame")
	}
}

func TestDrawTextTinyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	DrawText(img, "status")
}
