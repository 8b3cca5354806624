package image

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/jmylchreest/cullax/internal/colour"
)

func TestNewPreprocessor(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		filter  Filter
		wantErr bool
	}{
		{name: "default", size: DefaultResolution, filter: FilterLinear},
		{name: "empty filter means linear", size: 64, filter: ""},
		{name: "lanczos", size: 512, filter: FilterLanczos},
		{name: "too small", size: 8, filter: FilterBox, wantErr: true},
		{name: "too large", size: 4096, filter: FilterBox, wantErr: true},
		{name: "unknown filter", size: 64, filter: "bicubic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPreprocessor(tt.size, tt.filter)
			if tt.wantErr {
				if !errors.Is(err, colour.ErrConfiguration) {
					t.Errorf("NewPreprocessor() error = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPreprocessor() error = %v", err)
			}
			if p.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", p.Size(), tt.size)
			}
		})
	}
}

func TestPreprocessResizesToSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 120))
	for y := range 120 {
		for x := range 300 {
			src.SetRGBA(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}

	for _, f := range ValidFilters() {
		t.Run(string(f), func(t *testing.T) {
			p, err := NewPreprocessor(32, f)
			if err != nil {
				t.Fatalf("NewPreprocessor() error = %v", err)
			}
			out, err := p.Preprocess(src)
			if err != nil {
				t.Fatalf("Preprocess() error = %v", err)
			}
			if b := out.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
				t.Errorf("bounds = %v, want 32x32", b)
			}
		})
	}
}

func TestPreprocessNearestKeepsSolidColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for y := range 5 {
		for x := range 5 {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	p, err := NewPreprocessor(16, FilterNearest)
	if err != nil {
		t.Fatalf("NewPreprocessor() error = %v", err)
	}
	out, err := p.Preprocess(src)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}

	avg, err := colour.Average(out)
	if err != nil {
		t.Fatalf("Average() error = %v", err)
	}
	if avg != (colour.RGB{R: 255}) {
		t.Errorf("average after resize = %v, want (255,0,0)", avg)
	}
}

func TestPreprocessDropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 64})
		}
	}

	for _, filter := range []Filter{FilterNearest, FilterLinear} {
		t.Run(string(filter), func(t *testing.T) {
			p, err := NewPreprocessor(16, filter)
			if err != nil {
				t.Fatalf("NewPreprocessor() error = %v", err)
			}
			out, err := p.Preprocess(src)
			if err != nil {
				t.Fatalf("Preprocess() error = %v", err)
			}
			if !out.Opaque() {
				t.Error("preprocessed image is not opaque")
			}
			if got := colour.ToRGB(out.At(5, 5)); got != (colour.RGB{R: 200, G: 100, B: 50}) {
				t.Errorf("pixel = %v, want 200,100,50", got)
			}
		})
	}
}

func TestPreprocessEmpty(t *testing.T) {
	p, err := NewPreprocessor(16, FilterBox)
	if err != nil {
		t.Fatalf("NewPreprocessor() error = %v", err)
	}
	if _, err := p.Preprocess(image.NewRGBA(image.Rectangle{})); !errors.Is(err, colour.ErrExtraction) {
		t.Errorf("Preprocess(empty) error = %v, want ErrExtraction", err)
	}
	if _, err := p.Preprocess(nil); !errors.Is(err, colour.ErrExtraction) {
		t.Errorf("Preprocess(nil) error = %v, want ErrExtraction", err)
	}
}
