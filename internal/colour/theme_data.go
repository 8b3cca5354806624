package colour

import "strings"

// ThemeData is the standard data structure passed to all output templates.
type ThemeData struct {
	palette *Palette

	// WallpaperPath is the source image, empty when the palette was derived from a colour.
	WallpaperPath string

	// ThemeName is the name written into theme metadata.
	ThemeName string
}

// NewThemeData creates a new ThemeData instance for the given palette.
func NewThemeData(palette *Palette, wallpaperPath, themeName string) *ThemeData {
	return &ThemeData{
		palette:       palette,
		WallpaperPath: wallpaperPath,
		ThemeName:     themeName,
	}
}

// Triplet returns the "r,g,b" form of a role, or an empty string for an unknown role.
func (td *ThemeData) Triplet(role string) string {
	c, ok := td.palette.Get(Role(role))
	if !ok {
		return ""
	}
	return c.Triplet()
}

// Hex returns the hex form of a role, or an empty string for an unknown role.
func (td *ThemeData) Hex(role string) string {
	c, ok := td.palette.Get(Role(role))
	if !ok {
		return ""
	}
	return c.Hex()
}

// HexBare returns the hex form of a role without the leading '#'.
func (td *ThemeData) HexBare(role string) string {
	return strings.TrimPrefix(td.Hex(role), "#")
}

// FocusHex returns the focus decoration colour in hex form.
func (td *ThemeData) FocusHex() string {
	return td.palette.FocusHex()
}

// Branch returns "light" or "dark".
func (td *ThemeData) Branch() string {
	return td.palette.Branch().String()
}

// IsLight reports whether the palette was derived on the light branch.
func (td *ThemeData) IsLight() bool {
	return td.palette.Branch() == BranchLight
}

// Monochrome reports whether the palette is achromatic.
func (td *ThemeData) Monochrome() bool {
	return td.palette.Monochrome()
}

// Palette returns the underlying palette.
func (td *ThemeData) Palette() *Palette {
	return td.palette
}
