package image

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/jmylchreest/cullax/internal/colour"
)

// Filter names a resampling filter used when downsampling.
type Filter string

const (
	FilterNearest    Filter = "nearest"
	FilterBox        Filter = "box"
	FilterLinear     Filter = "linear"
	FilterCatmullRom Filter = "catmull-rom"
	FilterLanczos    Filter = "lanczos"
)

const (
	// DefaultResolution is the square edge length images are resized to.
	DefaultResolution = 256

	// MinResolution and MaxResolution bound the configurable resolution.
	MinResolution = 16
	MaxResolution = 1024
)

// ValidFilters returns the supported resampling filters.
func ValidFilters() []Filter {
	return []Filter{FilterNearest, FilterBox, FilterLinear, FilterCatmullRom, FilterLanczos}
}

func (f Filter) resample() (transform.ResampleFilter, bool) {
	switch f {
	case FilterNearest:
		return transform.NearestNeighbor, true
	case FilterBox:
		return transform.Box, true
	case FilterLinear, "":
		return transform.Linear, true
	case FilterCatmullRom:
		return transform.CatmullRom, true
	case FilterLanczos:
		return transform.Lanczos, true
	default:
		return transform.ResampleFilter{}, false
	}
}

// ValidateFilter checks the filter name.
func ValidateFilter(f Filter) error {
	if _, ok := f.resample(); !ok {
		return &colour.ConfigurationError{Field: "filter", Value: f, Reason: fmt.Sprintf("valid filters: %v", ValidFilters())}
	}
	return nil
}

// ValidateResolution checks that size lies within [MinResolution, MaxResolution].
func ValidateResolution(size int) error {
	if size < MinResolution || size > MaxResolution {
		return &colour.ConfigurationError{
			Field:  "resolution",
			Value:  size,
			Reason: fmt.Sprintf("must be between %d and %d", MinResolution, MaxResolution),
		}
	}
	return nil
}

// Preprocessor downsamples images to a fixed square resolution.
type Preprocessor struct {
	size   int
	filter transform.ResampleFilter
}

// NewPreprocessor creates a Preprocessor for the given resolution and filter.
func NewPreprocessor(size int, filter Filter) (*Preprocessor, error) {
	if err := ValidateResolution(size); err != nil {
		return nil, err
	}
	rf, ok := filter.resample()
	if !ok {
		return nil, ValidateFilter(filter)
	}
	return &Preprocessor{size: size, filter: rf}, nil
}

// Size returns the output edge length.
func (p *Preprocessor) Size() int {
	return p.size
}

// Preprocess resizes img to a Size x Size opaque RGBA image. Alpha is dropped
// before resampling, so translucent pixels keep their colour. The source image
// is not modified.
func (p *Preprocessor) Preprocess(img image.Image) (*image.RGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &colour.ExtractionError{Reason: "image has zero pixels"}
	}
	return transform.Resize(colour.Opaque(img), p.size, p.size, p.filter), nil
}
