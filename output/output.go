// Package output resolves export dimensions and writes exported frames.
package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultAspect is used when no aspect ratio is given.
const DefaultAspect = 16.0 / 9.0

// ExportSize fits aspect into a resolution x resolution box, keeping the
// long edge at resolution.
func ExportSize(resolution int, aspect float64) (int, int) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = DefaultAspect
	}
	w := resolution
	h := int(math.Round(float64(w) / aspect))
	if h > resolution {
		h = resolution
		w = int(math.Round(float64(h) * aspect))
	}
	return max(w, 1), max(h, 1)
}

// Aspect returns width over height, or DefaultAspect for an empty surface.
func Aspect(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return DefaultAspect
	}
	return float64(width) / float64(height)
}

// ParseAspect accepts "W:H" or a decimal ratio.
func ParseAspect(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultAspect, nil
	}
	if a, b, ok := strings.Cut(s, ":"); ok {
		w, err1 := strconv.ParseFloat(strings.TrimSpace(a), 64)
		h, err2 := strconv.ParseFloat(strings.TrimSpace(b), 64)
		if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
			return 0, fmt.Errorf("invalid aspect ratio %q", s)
		}
		return w / h, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r <= 0 || math.IsInf(r, 0) {
		return 0, fmt.Errorf("invalid aspect ratio %q", s)
	}
	return r, nil
}

// Filename returns the export file name for a frame of w x h taken at t.
func Filename(w, h int, t time.Time) string {
	return fmt.Sprintf("gradient_%dx%d_%d.png", w, h, t.UnixMilli())
}

// Image wraps a top-down, non-premultiplied RGBA buffer without copying.
func Image(pix []byte, width, height int) (*image.NRGBA, error) {
	if len(pix) < width*height*4 {
		return nil, fmt.Errorf("pixel buffer holds %d bytes, need %d", len(pix), width*height*4)
	}
	return &image.NRGBA{
		Pix:    pix[:width*height*4],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// EncodePNG writes a top-down RGBA frame as a maximally compressed PNG.
func EncodePNG(w io.Writer, pix []byte, width, height int) error {
	img, err := Image(pix, width, height)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// WritePNG encodes the frame into dir and returns the file path. The file
// only appears under its final name once fully written.
func WritePNG(dir string, pix []byte, width, height int, t time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(width, height, t))
	tmp, err := os.CreateTemp(dir, ".export-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodePNG(tmp, pix, width, height); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to finalize export file: %w", err)
	}
	return path, nil
}
