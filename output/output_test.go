package output

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportSize(t *testing.T) {
	tests := []struct {
		res    int
		aspect float64
		w, h   int
	}{
		{1024, 16.0 / 9.0, 1024, 576},
		{4096, 16.0 / 9.0, 4096, 2304},
		{1000, 1, 1000, 1000},
		{1000, 9.0 / 16.0, 563, 1000},
		{1000, 0, 1000, 563},
	}
	for _, tt := range tests {
		w, h := ExportSize(tt.res, tt.aspect)
		if w != tt.w || h != tt.h {
			t.Errorf("ExportSize(%d, %v) = %dx%d, want %dx%d", tt.res, tt.aspect, w, h, tt.w, tt.h)
		}
	}
}

func TestAspect(t *testing.T) {
	if got := Aspect(800, 800); got != 1 {
		t.Errorf("Aspect(800, 800) = %v, want 1", got)
	}
	if got := Aspect(600, 1200); got != 0.5 {
		t.Errorf("Aspect(600, 1200) = %v, want 0.5", got)
	}
	if got := Aspect(800, 0); got != DefaultAspect {
		t.Errorf("Aspect(800, 0) = %v, want DefaultAspect", got)
	}
}

func TestParseAspect(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"16:9", 16.0 / 9.0, false},
		{" 4 : 3 ", 4.0 / 3.0, false},
		{"2.35", 2.35, false},
		{"", DefaultAspect, false},
		{"0:9", 0, true},
		{"wide", 0, true},
		{"-1", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAspect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	if got := Filename(1024, 576, ts); got != "gradient_1024x576_1700000000123.png" {
		t.Errorf("Filename = %q", got)
	}
}

func TestEncodePNG(t *testing.T) {
	pix := []byte{
		255, 0, 0, 255, 0, 255, 0, 255, 0, 0, 255, 255,
		10, 20, 30, 255, 40, 50, 60, 255, 70, 80, 90, 128,
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, pix, 3, 2); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("top-left = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = img.At(0, 1).RGBA()
	if r>>8 != 10 {
		t.Errorf("bottom-left red = %d, want 10", r>>8)
	}

	if err := EncodePNG(&buf, pix[:4], 3, 2); err == nil {
		t.Error("short buffer accepted")
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	pix := make([]byte, 4*4*4)
	ts := time.UnixMilli(42)
	path, err := WritePNG(dir, pix, 4, 4, ts)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "gradient_4x4_42.png" {
		t.Errorf("path = %s", path)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir holds %d files, want 1", len(entries))
	}
}
