// Package colour provides colour extraction, colour space conversion and palette derivation.
package colour

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Triplet returns the canonical comma-joined form, e.g. "128,64,32".
func (rgb RGB) Triplet() string {
	return strconv.Itoa(int(rgb.R)) + "," + strconv.Itoa(int(rgb.G)) + "," + strconv.Itoa(int(rgb.B))
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Sum returns R+G+B, the crude brightness measure used to pick the darkest swatch.
func (rgb RGB) Sum() int {
	return int(rgb.R) + int(rgb.G) + int(rgb.B)
}

// ParseTriplet parses a comma-joined decimal triplet such as "128,64,32".
func ParseTriplet(s string) (RGB, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("invalid triplet %q: want three comma-separated values", s)
	}

	var channels [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return RGB{}, fmt.Errorf("invalid triplet %q: %w", s, err)
		}
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("invalid triplet %q: channel %d out of range 0-255", s, v)
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// ParseHex parses a hex colour with or without the leading '#'.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ParseColour accepts a triplet ("r,g,b"), a colour name ("navy") or a hex colour.
func ParseColour(s string) (RGB, error) {
	if strings.Contains(s, ",") {
		return ParseTriplet(s)
	}
	if nc, ok := LookupNamedColour(s); ok {
		return nc.RGB(), nil
	}
	return ParseHex(s)
}

// Role names a slot in a derived palette.
type Role string

const (
	RolePanelBackground  Role = "panel_background"
	RoleForeground       Role = "foreground"
	RoleMidlight         Role = "midlight"
	RoleHighlight        Role = "highlight"
	RoleFocusDecoration  Role = "focus_decoration"
	RoleWindowDecoration Role = "window_decoration"
	RoleClockHands       Role = "clock_hands"
)

// Roles returns every role a palette must carry, in display order.
func Roles() []Role {
	return []Role{
		RolePanelBackground,
		RoleForeground,
		RoleMidlight,
		RoleHighlight,
		RoleFocusDecoration,
		RoleWindowDecoration,
		RoleClockHands,
	}
}

// IsValidRole checks if the given role name belongs to the closed role set.
func IsValidRole(role Role) bool {
	for _, r := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Palette is the complete mapping of roles to colours.
// A Palette is built once by a Deriver and never modified afterwards.
type Palette struct {
	colours map[Role]RGB
	tuples  map[Role]HLS
	branch  Branch
	mono    bool
}

// newPalette encodes a complete set of derived tuples. Callers guarantee
// that tuples holds every role.
func newPalette(tuples map[Role]HLS, branch Branch, mono bool) *Palette {
	p := &Palette{
		colours: make(map[Role]RGB, len(tuples)),
		tuples:  make(map[Role]HLS, len(tuples)),
		branch:  branch,
		mono:    mono,
	}
	for _, role := range Roles() {
		hls := tuples[role]
		p.tuples[role] = hls
		p.colours[role] = Encode(hls)
	}
	return p
}

// Get returns the colour for a role.
func (p *Palette) Get(role Role) (RGB, bool) {
	c, ok := p.colours[role]
	return c, ok
}

// HLS returns the derived (pre-encoding) HLS tuple for a role.
func (p *Palette) HLS(role Role) (HLS, bool) {
	t, ok := p.tuples[role]
	return t, ok
}

// Branch returns the tone branch that produced the palette.
func (p *Palette) Branch() Branch {
	return p.branch
}

// Monochrome reports whether the monochrome gate was taken.
func (p *Palette) Monochrome() bool {
	return p.mono
}

// Triplets returns a copy of the palette as role name -> "r,g,b".
func (p *Palette) Triplets() map[string]string {
	out := make(map[string]string, len(p.colours))
	for role, c := range p.colours {
		out[string(role)] = c.Triplet()
	}
	return out
}

// FocusHex returns the focus decoration colour in hex form, used for
// decoration template substitution.
func (p *Palette) FocusHex() string {
	return p.colours[RoleFocusDecoration].Hex()
}

// All returns an iterator over roles and colours in display order.
func (p *Palette) All() func(func(Role, RGB) bool) {
	return func(yield func(Role, RGB) bool) {
		for _, role := range Roles() {
			if !yield(role, p.colours[role]) {
				return
			}
		}
	}
}

// ColourJSON represents a palette entry in JSON output format.
type ColourJSON struct {
	Triplet string `json:"triplet"`
	Hex     string `json:"hex"`
	RGB     RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Branch     string                `json:"branch"`
	Monochrome bool                  `json:"monochrome"`
	Roles      map[string]ColourJSON `json:"roles"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	roles := make(map[string]ColourJSON, len(p.colours))
	for role, c := range p.colours {
		roles[string(role)] = ColourJSON{Triplet: c.Triplet(), Hex: c.Hex(), RGB: c}
	}
	return json.MarshalIndent(PaletteJSON{
		Branch:     p.branch.String(),
		Monochrome: p.mono,
		Roles:      roles,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette (%s", p.branch)
	if p.mono {
		sb.WriteString(", monochrome")
	}
	sb.WriteString("):\n")
	for role, c := range p.All() {
		fmt.Fprintf(&sb, "  %-18s %-12s %s\n", role, c.Triplet(), c.Hex())
	}
	return sb.String()
}
