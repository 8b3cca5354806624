package colour

import "image"

// AverageExtractor implements the average strategy: the arithmetic mean of all pixels.
type AverageExtractor struct{}

// NewAverageExtractor creates a new AverageExtractor.
func NewAverageExtractor() *AverageExtractor {
	return &AverageExtractor{}
}

// Extract returns the mean colour of the image as the sole candidate.
// The count parameter is validated but otherwise unused.
func (e *AverageExtractor) Extract(img image.Image, count int) (Candidates, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	avg, err := Average(img)
	if err != nil {
		return nil, err
	}
	return Candidates{{Colour: avg, Weight: 1}}, nil
}

// Average returns the arithmetic mean of every pixel, rounded to the nearest integer.
func Average(img image.Image) (RGB, error) {
	points, err := readPoints(img)
	if err != nil {
		return RGB{}, err
	}

	var sum point3D
	for _, p := range points {
		sum.R += p.R
		sum.G += p.G
		sum.B += p.B
	}
	n := float64(len(points))
	return point3D{R: sum.R / n, G: sum.G / n, B: sum.B / n}.rgb(), nil
}

// readPoints reads every pixel as an 8-bit RGB point, dropping alpha.
func readPoints(img image.Image) ([]point3D, error) {
	if img == nil {
		return nil, &ExtractionError{Reason: "image is nil"}
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, &ExtractionError{Reason: "image has zero pixels"}
	}

	rgba := Opaque(img)
	rb := rgba.Bounds()
	points := make([]point3D, 0, rb.Dx()*rb.Dy())
	for y := rb.Min.Y; y < rb.Max.Y; y++ {
		row := rgba.Pix[rgba.PixOffset(rb.Min.X, y):]
		for x := 0; x < rb.Dx(); x++ {
			o := x * 4
			points = append(points, point3D{
				R: float64(row[o]),
				G: float64(row[o+1]),
				B: float64(row[o+2]),
			})
		}
	}
	return points, nil
}
