// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/cullax/internal/colour"
)

// TemplateFuncs returns standard template functions for all output plugins.
// These functions provide consistent colour access and formatting across all templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Role access.
		"get":     getRoleFunc,
		"has":     hasRoleFunc,
		"triplet": tripletRoleFunc,

		// Format conversion.
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,
		"rgbSpaces": rgbSpacesFunc,
		"decimal":   tripletFunc,

		// Naming.
		"ansi":     ansiFunc,
		"describe": colour.Describe,

		// Palette metadata.
		"branch":     branchFunc,
		"isLight":    isLightFunc,
		"monochrome": monochromeFunc,
		"allRoles":   allRolesFunc,

		// String manipulation (custom wrappers for pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// getRoleFunc returns a colour by role name.
// Returns an error for a role outside the closed role set (Go template convention).
func getRoleFunc(data *colour.ThemeData, roleName string) (colour.RGB, error) {
	c, ok := data.Palette().Get(colour.Role(roleName))
	if !ok {
		return colour.RGB{}, fmt.Errorf("role %q not found", roleName)
	}
	return c, nil
}

// hasRoleFunc checks if a role exists in the palette.
func hasRoleFunc(data *colour.ThemeData, roleName string) bool {
	_, ok := data.Palette().Get(colour.Role(roleName))
	return ok
}

// tripletRoleFunc returns a role directly in "r,g,b" form, the layout KDE colour schemes use.
func tripletRoleFunc(data *colour.ThemeData, roleName string) (string, error) {
	c, err := getRoleFunc(data, roleName)
	if err != nil {
		return "", err
	}
	return c.Triplet(), nil
}

func hexFunc(c colour.RGB) string {
	return c.Hex()
}

func hexNoHashFunc(c colour.RGB) string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// rgbFunc returns colour in CSS rgb(r,g,b) format.
func rgbFunc(c colour.RGB) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// rgbSpacesFunc returns colour in "r g b" space-separated format.
func rgbSpacesFunc(c colour.RGB) string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

func tripletFunc(c colour.RGB) string {
	return c.Triplet()
}

// ansiFunc returns the name of the closest terminal colour.
func ansiFunc(c colour.RGB) string {
	return colour.ClosestNamedColour(c).Name
}

func branchFunc(data *colour.ThemeData) string {
	return data.Branch()
}

func isLightFunc(data *colour.ThemeData) bool {
	return data.IsLight()
}

func monochromeFunc(data *colour.ThemeData) bool {
	return data.Monochrome()
}

// allRolesFunc returns all colour roles in display order.
func allRolesFunc() []colour.Role {
	return colour.Roles()
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
// Unlike strings.TrimPrefix, this takes prefix first so it works in pipes:
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// trimSuffixFunc removes a suffix from a string (pipe-friendly argument order).
func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
//
//	{{ value | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
