package colour

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/lucasb-eyer/go-colorful"
)

// HLS is a colour in the hue/lightness/saturation model.
// All components are normalised to [0, 1]; hue is a fraction of a full rotation.
type HLS struct {
	H float64 `json:"h"`
	L float64 `json:"l"`
	S float64 `json:"s"`
}

// HSV is a colour in the hue/saturation/value model, normalised to [0, 1].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// toColorful converts an 8-bit RGB value to go-colorful's float representation.
func toColorful(rgb RGB) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// wrapHue folds a hue into [0, 1).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 1.0)
	if h < 0 {
		h += 1.0
	}
	return h
}

// RGBToHLS converts an 8-bit RGB colour to normalised HLS.
func RGBToHLS(rgb RGB) HLS {
	h, s, l := toColorful(rgb).Hsl()
	return HLS{H: wrapHue(h / 360.0), L: l, S: s}
}

// HLSToRGB converts normalised HLS to unclamped RGB floats in nominal [0, 1].
// Achromatic input (S == 0) always yields r == g == b.
func HLSToRGB(hls HLS) (r, g, b float64) {
	c := colorful.Hsl(wrapHue(hls.H)*360.0, hls.S, hls.L)
	return c.R, c.G, c.B
}

// RGBToHSV converts an 8-bit RGB colour to normalised HSV.
func RGBToHSV(rgb RGB) HSV {
	h, s, v := toColorful(rgb).Hsv()
	return HSV{H: wrapHue(h / 360.0), S: s, V: v}
}

// HSVToRGB converts normalised HSV to a clamped 8-bit RGB colour.
func HSVToRGB(hsv HSV) RGB {
	c := colorful.Hsv(wrapHue(hsv.H)*360.0, hsv.S, hsv.V)
	return EncodeFloat(c.R, c.G, c.B)
}

// Encode converts an HLS tuple to a clamped 8-bit RGB colour.
func Encode(hls HLS) RGB {
	return EncodeFloat(HLSToRGB(hls))
}

// EncodeFloat clamps each channel independently to [0, 1] and rounds it to 0-255.
func EncodeFloat(r, g, b float64) RGB {
	return RGB{R: encodeChannel(r), G: encodeChannel(g), B: encodeChannel(b)}
}

func encodeChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255.0))
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	rf := gammaCorrect(float64(r>>8) / 255.0)
	gf := gammaCorrect(float64(g>>8) / 255.0)
	bf := gammaCorrect(float64(b>>8) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
func ContrastRatio(c1, c2 color.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// RGBToColor converts an RGB value to a color.Color (RGBA).
func RGBToColor(rgb RGB) color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, dropping alpha. Channels are read
// unpremultiplied, so a translucent pixel keeps its colour.
func ToRGB(c color.Color) RGB {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Opaque returns img as an RGBA image with every alpha set to 255 and the
// unpremultiplied colour channels kept. An already opaque *image.RGBA is
// returned as is.
func Opaque(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Opaque() {
		return rgba
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	parallel.Line(bounds.Dy(), func(start, end int) {
		for y := start; y < end; y++ {
			row := dst.Pix[y*dst.Stride:]
			for x := 0; x < bounds.Dx(); x++ {
				c := ToRGB(img.At(bounds.Min.X+x, bounds.Min.Y+y))
				o := x * 4
				row[o], row[o+1], row[o+2], row[o+3] = c.R, c.G, c.B, 255
			}
		}
	})
	return dst
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
