// Package hud keeps the status line and draws it onto presented frames.
package hud

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/richinsley/goshadergradient/grade"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const margin = 6

// Status is the latest user-facing message. It is written from the export
// goroutine and read by the render loop.
type Status struct {
	mu   sync.Mutex
	text string
	at   time.Time
	ttl  time.Duration
}

// NewStatus returns a Status whose messages expire after ttl. A zero ttl
// keeps messages until replaced.
func NewStatus(ttl time.Duration) *Status {
	return &Status{ttl: ttl}
}

// Set replaces the status text.
func (s *Status) Set(text string) {
	s.mu.Lock()
	s.text = text
	s.at = time.Now()
	s.mu.Unlock()
}

// Text returns the current message, or "" once it has expired.
func (s *Status) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl > 0 && time.Since(s.at) > s.ttl {
		return ""
	}
	return s.text
}

// Draw renders the status text in the bottom-left corner of img.
func (s *Status) Draw(img draw.Image) {
	if text := s.Text(); text != "" {
		DrawText(img, text)
	}
}

// DrawText renders text in the bottom-left corner of img on a translucent
// band, picking black or white ink against the band's background.
func DrawText(img draw.Image, text string) {
	face := basicfont.Face7x13
	b := img.Bounds()
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	band := image.Rect(b.Min.X, b.Max.Y-height-2*margin, b.Min.X+width+2*margin, b.Max.Y).Intersect(b)
	if band.Empty() {
		return
	}

	ink, shade := color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 120}
	if averageLuminance(img, band) > 0.6 {
		ink, shade = color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 120}
	}
	draw.Draw(img, band, image.NewUniform(shade), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + margin),
			Y: fixed.I(b.Max.Y - margin - face.Metrics().Descent.Ceil()),
		},
	}
	d.DrawString(text)
}

func averageLuminance(img image.Image, r image.Rectangle) float64 {
	var sum float64
	var n int
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x += 2 {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			sum += grade.Luminance(grade.RGB{
				R: float64(cr) / 0xffff,
				G: float64(cg) / 0xffff,
				B: float64(cb) / 0xffff,
			})
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
