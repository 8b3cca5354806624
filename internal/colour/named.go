package colour

import (
	"math"
	"strings"
)

// NamedColour is a terminal colour name and its typical RGB value.
type NamedColour struct {
	Name     string
	R, G, B  uint8
	Aliases  []string
	IsBright bool
}

// Standard ANSI palette (xterm basic 16) plus common web names.
// Actual terminals may vary slightly.
var namedColours = []NamedColour{
	// Normal (0-7).
	{Name: "black", R: 0, G: 0, B: 0, Aliases: []string{"color0"}},
	{Name: "red", R: 205, G: 49, B: 49, Aliases: []string{"color1"}},
	{Name: "green", R: 13, G: 188, B: 121, Aliases: []string{"color2"}},
	{Name: "yellow", R: 229, G: 229, B: 16, Aliases: []string{"color3"}},
	{Name: "blue", R: 36, G: 114, B: 200, Aliases: []string{"color4"}},
	{Name: "magenta", R: 188, G: 63, B: 188, Aliases: []string{"color5", "purple"}},
	{Name: "cyan", R: 17, G: 168, B: 205, Aliases: []string{"color6"}},
	{Name: "white", R: 229, G: 229, B: 229, Aliases: []string{"color7", "gray", "grey"}},

	// Bright (8-15).
	{Name: "brightblack", R: 102, G: 102, B: 102, Aliases: []string{"color8", "darkgray", "darkgrey", "brightBlack"}, IsBright: true},
	{Name: "brightred", R: 241, G: 76, B: 76, Aliases: []string{"color9", "brightRed"}, IsBright: true},
	{Name: "brightgreen", R: 35, G: 209, B: 139, Aliases: []string{"color10", "brightGreen"}, IsBright: true},
	{Name: "brightyellow", R: 245, G: 245, B: 67, Aliases: []string{"color11", "brightYellow"}, IsBright: true},
	{Name: "brightblue", R: 59, G: 142, B: 234, Aliases: []string{"color12", "brightBlue"}, IsBright: true},
	{Name: "brightmagenta", R: 214, G: 112, B: 214, Aliases: []string{"color13", "brightpurple", "brightPurple", "brightMagenta"}, IsBright: true},
	{Name: "brightcyan", R: 41, G: 184, B: 219, Aliases: []string{"color14", "brightCyan"}, IsBright: true},
	{Name: "brightwhite", R: 255, G: 255, B: 255, Aliases: []string{"color15", "brightWhite"}, IsBright: true},

	// Extended names.
	{Name: "orange", R: 255, G: 165, B: 0, Aliases: []string{}},
	{Name: "pink", R: 255, G: 192, B: 203, Aliases: []string{}},
	{Name: "brown", R: 165, G: 42, B: 42, Aliases: []string{}},
	{Name: "lime", R: 0, G: 255, B: 0, Aliases: []string{}},
	{Name: "navy", R: 0, G: 0, B: 128, Aliases: []string{"darkblue"}},
	{Name: "teal", R: 0, G: 128, B: 128, Aliases: []string{"darkcyan"}},
	{Name: "maroon", R: 128, G: 0, B: 0, Aliases: []string{"darkred"}},
	{Name: "olive", R: 128, G: 128, B: 0, Aliases: []string{"darkyellow"}},
	{Name: "violet", R: 238, G: 130, B: 238, Aliases: []string{}},
	{Name: "indigo", R: 75, G: 0, B: 130, Aliases: []string{}},
}

func normaliseName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(name), " ", ""), "-", ""))
}

// LookupNamedColour resolves a colour name or alias, case-insensitively.
// Spaces and dashes are ignored, so "bright red" matches "brightred".
func LookupNamedColour(name string) (NamedColour, bool) {
	n := normaliseName(name)
	for _, nc := range namedColours {
		if nc.Name == n {
			return nc, true
		}
		for _, alias := range nc.Aliases {
			if strings.ToLower(alias) == n {
				return nc, true
			}
		}
	}
	return NamedColour{}, false
}

// RGB returns the colour value.
func (nc NamedColour) RGB() RGB {
	return RGB{R: nc.R, G: nc.G, B: nc.B}
}

// ClosestNamedColour returns the named colour nearest to rgb.
func ClosestNamedColour(rgb RGB) NamedColour {
	best := namedColours[0]
	minDistance := math.MaxFloat64
	for _, nc := range namedColours {
		if d := colourDistance(rgb, nc.RGB()); d < minDistance {
			minDistance = d
			best = nc
		}
	}
	return best
}

// colourDistance is a weighted Euclidean distance in RGB space that
// emphasises green, roughly following eye sensitivity.
func colourDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(2*dr*dr + 4*dg*dg + 3*db*db)
}

// NamedColourNames returns every supported colour name and alias.
func NamedColourNames() []string {
	names := make([]string, 0, len(namedColours)*2)
	for _, nc := range namedColours {
		names = append(names, nc.Name)
		names = append(names, nc.Aliases...)
	}
	return names
}
