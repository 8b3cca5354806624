package colour

import (
	"math"
	"sort"
)

// hueName is a named reference hue in HSV space.
type hueName struct {
	name string
	hue  float64
}

// referenceHues are sorted by hue.
var referenceHues = func() []hueName {
	refs := []struct {
		name string
		rgb  RGB
	}{
		{"red", RGB{R: 230, G: 26, B: 26}},
		{"orange", RGB{R: 230, G: 128, B: 26}},
		{"yellow", RGB{R: 230, G: 230, B: 26}},
		{"green", RGB{R: 26, G: 230, B: 26}},
		{"cyan", RGB{R: 26, G: 204, B: 230}},
		{"blue", RGB{R: 26, G: 26, B: 230}},
		{"purple", RGB{R: 128, G: 26, B: 230}},
		{"magenta", RGB{R: 230, G: 26, B: 230}},
	}

	out := make([]hueName, len(refs))
	for i, r := range refs {
		out[i] = hueName{name: r.name, hue: RGBToHSV(r.rgb).H}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].hue < out[j].hue })
	return out
}()

// NearestHueName returns the reference hue name closest to h, measured
// around the hue circle. Ties go to the lower reference hue.
func NearestHueName(h float64) string {
	h = wrapHue(h)
	best := referenceHues[0]
	bestDist := math.Inf(1)
	for _, ref := range referenceHues {
		d := math.Abs(h - ref.hue)
		d = math.Min(d, 1-d)
		if d < bestDist {
			best, bestDist = ref, d
		}
	}
	return best.name
}

// Describe returns a human name for a colour: "grey" for achromatic
// colours, otherwise the nearest reference hue.
func Describe(rgb RGB) string {
	hsv := RGBToHSV(rgb)
	if hsv.S < DefaultRuleSet().MonochromeEpsilon {
		return "grey"
	}
	return NearestHueName(hsv.H)
}
