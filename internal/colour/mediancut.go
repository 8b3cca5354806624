package colour

import (
	"image"
	"sort"
)

// quantizationBits is the per-channel precision of the colour histogram.
const quantizationBits = 5

// MedianCutExtractor implements the quantize strategy with median-cut quantisation.
type MedianCutExtractor struct{}

// NewMedianCutExtractor creates a new MedianCutExtractor.
func NewMedianCutExtractor() *MedianCutExtractor {
	return &MedianCutExtractor{}
}

// Extract quantises the image to at most count colours and returns them
// ranked by population, most populous first.
func (e *MedianCutExtractor) Extract(img image.Image, count int) (Candidates, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	points, err := readPoints(img)
	if err != nil {
		return nil, err
	}

	bins := buildColourBins(points)
	boxes := buildBoxes(bins, count)

	candidates := make(Candidates, 0, len(boxes))
	total := float64(len(points))
	for _, box := range boxes {
		candidates = append(candidates, Candidate{
			Colour: box.mean(),
			Weight: float64(box.population) / total,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})

	return candidates, nil
}

// colourBin is one cell of the quantised histogram. The channel sums keep
// full precision so box means are not biased toward bin corners.
type colourBin struct {
	rq, gq, bq       uint8
	rSum, gSum, bSum int
	count            int
}

type colourBox struct {
	bins       []colourBin
	population int
	min, max   [3]uint8
}

// buildColourBins builds a sparse histogram, ordered by bin index.
func buildColourBins(points []point3D) []colourBin {
	shift := 8 - quantizationBits
	index := make(map[int]int)
	var bins []colourBin

	for _, p := range points {
		r, g, b := int(p.R), int(p.G), int(p.B)
		rq, gq, bq := r>>shift, g>>shift, b>>shift
		key := rq<<(2*quantizationBits) | gq<<quantizationBits | bq

		i, ok := index[key]
		if !ok {
			i = len(bins)
			index[key] = i
			bins = append(bins, colourBin{rq: uint8(rq), gq: uint8(gq), bq: uint8(bq)})
		}
		bins[i].rSum += r
		bins[i].gSum += g
		bins[i].bSum += b
		bins[i].count++
	}

	sort.Slice(bins, func(i, j int) bool {
		return binKey(bins[i]) < binKey(bins[j])
	})
	return bins
}

func binKey(b colourBin) int {
	return int(b.rq)<<(2*quantizationBits) | int(b.gq)<<quantizationBits | int(b.bq)
}

// buildBoxes splits the histogram until targetCount boxes exist or no box can be split.
// The most populous splittable box is split first.
func buildBoxes(bins []colourBin, targetCount int) []colourBox {
	boxes := []colourBox{newColourBox(bins)}

	for len(boxes) < targetCount {
		pick := -1
		for i, box := range boxes {
			if !box.canSplit() {
				continue
			}
			if pick < 0 || box.population > boxes[pick].population {
				pick = i
			}
		}
		if pick < 0 {
			break
		}

		left, right, ok := splitColourBox(boxes[pick])
		if !ok {
			break
		}
		boxes[pick] = left
		boxes = append(boxes, right)
	}

	return boxes
}

func newColourBox(bins []colourBin) colourBox {
	box := colourBox{bins: bins}
	if len(bins) == 0 {
		return box
	}

	box.min = [3]uint8{255, 255, 255}
	for _, bin := range bins {
		box.population += bin.count
		for axis := range 3 {
			v := axisValue(bin, axis)
			if v < box.min[axis] {
				box.min[axis] = v
			}
			if v > box.max[axis] {
				box.max[axis] = v
			}
		}
	}
	return box
}

func (b colourBox) canSplit() bool {
	return len(b.bins) > 1
}

// longestAxis returns the channel with the widest range; ties favour R, then G.
func (b colourBox) longestAxis() int {
	axis := 0
	for i := 1; i < 3; i++ {
		if b.max[i]-b.min[i] > b.max[axis]-b.min[axis] {
			axis = i
		}
	}
	return axis
}

// splitColourBox cuts a box at the population median of its longest axis.
func splitColourBox(box colourBox) (colourBox, colourBox, bool) {
	if !box.canSplit() {
		return colourBox{}, colourBox{}, false
	}

	axis := box.longestAxis()
	ordered := append([]colourBin(nil), box.bins...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return axisValue(ordered[i], axis) < axisValue(ordered[j], axis)
	})

	half := box.population / 2
	cumulative := 0
	split := -1
	for i, bin := range ordered {
		cumulative += bin.count
		if cumulative >= half {
			split = i + 1
			break
		}
	}
	if split <= 0 || split >= len(ordered) {
		split = len(ordered) / 2
	}

	return newColourBox(ordered[:split]), newColourBox(ordered[split:]), true
}

func axisValue(bin colourBin, axis int) uint8 {
	switch axis {
	case 0:
		return bin.rq
	case 1:
		return bin.gq
	default:
		return bin.bq
	}
}

// mean returns the population-weighted mean colour of the box.
func (b colourBox) mean() RGB {
	var r, g, bl int
	for _, bin := range b.bins {
		r += bin.rSum
		g += bin.gSum
		bl += bin.bSum
	}
	n := float64(b.population)
	return point3D{R: float64(r) / n, G: float64(g) / n, B: float64(bl) / n}.rgb()
}
