package colour

import (
	"encoding/json"
	"fmt"
	"os"
)

// Branch is the tone branch chosen from the base lightness.
type Branch int

const (
	// BranchDark is taken when the branch lightness is at or below the threshold.
	BranchDark Branch = iota
	// BranchLight is taken when the branch lightness exceeds the threshold.
	BranchLight
)

// String returns the branch name.
func (b Branch) String() string {
	if b == BranchLight {
		return "light"
	}
	return "dark"
}

// Source selects the input of a Formula.
type Source string

const (
	// SourceConst yields Value.
	SourceConst Source = "const"
	// SourceBase yields the base component scaled by Value.
	SourceBase Source = "base"
	// SourceMidlight yields the derived midlight saturation scaled by Value.
	SourceMidlight Source = "midlight"
	// SourceHighlight yields the derived highlight saturation scaled by Value.
	SourceHighlight Source = "highlight"
	// SourceToward moves the base component halfway toward Value when it lies
	// below Value, and keeps it otherwise.
	SourceToward Source = "toward"
)

// Formula computes one lightness or saturation component of a role.
type Formula struct {
	Source Source  `json:"source"`
	Value  float64 `json:"value"`
}

// Const returns a constant formula.
func Const(v float64) Formula { return Formula{Source: SourceConst, Value: v} }

// Base returns a formula scaling the base component.
func Base(scale float64) Formula { return Formula{Source: SourceBase, Value: scale} }

// Midlight returns a formula scaling the derived midlight saturation.
func Midlight(scale float64) Formula { return Formula{Source: SourceMidlight, Value: scale} }

// Highlight returns a formula scaling the derived highlight saturation.
func Highlight(scale float64) Formula { return Formula{Source: SourceHighlight, Value: scale} }

// Toward returns a formula pulling a low base component halfway to target.
func Toward(target float64) Formula { return Formula{Source: SourceToward, Value: target} }

func (f Formula) eval(base float64, p derivedParams) float64 {
	switch f.Source {
	case SourceBase:
		return base * f.Value
	case SourceMidlight:
		return p.sMidlight * f.Value
	case SourceHighlight:
		return p.sHighlight * f.Value
	case SourceToward:
		if base < f.Value {
			return (base + f.Value) / 2
		}
		return base
	default:
		return f.Value
	}
}

func (f Formula) validate() error {
	switch f.Source {
	case SourceConst, SourceToward:
		if f.Value < 0 || f.Value > 1 {
			return fmt.Errorf("%s value %v outside [0, 1]", f.Source, f.Value)
		}
	case SourceBase, SourceMidlight, SourceHighlight:
		if f.Value < 0 {
			return fmt.Errorf("%s scale %v is negative", f.Source, f.Value)
		}
	default:
		return fmt.Errorf("unknown formula source %q", f.Source)
	}
	return nil
}

// HueSource selects which hue a role is drawn at.
type HueSource string

const (
	HueBase      HueSource = "base"
	HueMidlight  HueSource = "midlight"
	HueHighlight HueSource = "highlight"
)

// Rule maps one role to its HLS formulas.
type Rule struct {
	Role       Role      `json:"role"`
	Hue        HueSource `json:"hue"`
	HueOffset  float64   `json:"hue_offset,omitempty"`
	Lightness  Formula   `json:"lightness"`
	Saturation Formula   `json:"saturation"`
}

// SaturationStep maps base saturations below Below to Value.
type SaturationStep struct {
	Below float64 `json:"below"`
	Value float64 `json:"value"`
}

// RuleSet is the complete, data-driven description of palette derivation.
type RuleSet struct {
	// LightThreshold selects the light branch when the branch lightness exceeds it.
	LightThreshold float64 `json:"light_threshold"`

	// MonochromeEpsilon is the saturation below which the palette is achromatic.
	MonochromeEpsilon float64 `json:"monochrome_epsilon"`

	// MidlightSaturationScale scales the base saturation into s_midlight.
	MidlightSaturationScale float64 `json:"midlight_saturation_scale"`

	// HighlightSaturation is an ascending ladder for s_highlight; base saturations
	// above every step take HighlightSaturationDefault.
	HighlightSaturation        []SaturationStep `json:"highlight_saturation"`
	HighlightSaturationDefault float64          `json:"highlight_saturation_default"`

	// Hue shifts for midlight and highlight, wrapped modulo 1.
	MidlightHueShift  float64 `json:"midlight_hue_shift"`
	HighlightHueShift float64 `json:"highlight_hue_shift"`

	// Light and Dark must each cover every role exactly once.
	Light []Rule `json:"light"`
	Dark  []Rule `json:"dark"`

	// Monochrome holds per-role overrides applied on top of the selected branch
	// when the monochrome gate is taken.
	Monochrome []Rule `json:"monochrome,omitempty"`
}

// DefaultRuleSet returns the built-in derivation table.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		LightThreshold:          0.69,
		MonochromeEpsilon:       0.011,
		MidlightSaturationScale: 1.0,
		HighlightSaturation: []SaturationStep{
			{Below: 0.08, Value: 0.1},
			{Below: 0.4, Value: 0.5},
		},
		HighlightSaturationDefault: 1.0,
		Light: []Rule{
			{Role: RolePanelBackground, Hue: HueBase, Lightness: Const(0.96), Saturation: Base(1)},
			{Role: RoleForeground, Hue: HueBase, Lightness: Const(0.25), Saturation: Const(0.05)},
			{Role: RoleMidlight, Hue: HueMidlight, Lightness: Const(0.8), Saturation: Const(0.5)},
			{Role: RoleHighlight, Hue: HueHighlight, Lightness: Const(0.6), Saturation: Const(0.5)},
			{Role: RoleFocusDecoration, Hue: HueHighlight, Lightness: Const(0.6), Saturation: Const(0.5)},
			{Role: RoleWindowDecoration, Hue: HueMidlight, Lightness: Const(0.8), Saturation: Const(0.5)},
			{Role: RoleClockHands, Hue: HueBase, Lightness: Const(0.64), Saturation: Const(0.05)},
		},
		Dark: []Rule{
			{Role: RolePanelBackground, Hue: HueBase, Lightness: Const(0.07), Saturation: Base(1)},
			{Role: RoleForeground, Hue: HueBase, Lightness: Const(0.98), Saturation: Const(0.95)},
			{Role: RoleMidlight, Hue: HueMidlight, Lightness: Toward(0.5), Saturation: Midlight(1)},
			{Role: RoleHighlight, Hue: HueHighlight, Lightness: Const(0.65), Saturation: Highlight(1)},
			{Role: RoleFocusDecoration, Hue: HueHighlight, Lightness: Const(0.75), Saturation: Highlight(0.6)},
			{Role: RoleWindowDecoration, Hue: HueMidlight, Lightness: Toward(0.5), Saturation: Midlight(1)},
			{Role: RoleClockHands, Hue: HueBase, Lightness: Const(0.95), Saturation: Const(0.7)},
		},
	}
}

// Validate checks thresholds and that each branch covers every role exactly once.
func (rs RuleSet) Validate() error {
	if rs.LightThreshold <= 0 || rs.LightThreshold >= 1 {
		return &ConfigurationError{Field: "light_threshold", Value: rs.LightThreshold, Reason: "must be inside (0, 1)"}
	}
	if rs.MonochromeEpsilon < 0 || rs.MonochromeEpsilon >= 1 {
		return &ConfigurationError{Field: "monochrome_epsilon", Value: rs.MonochromeEpsilon, Reason: "must be inside [0, 1)"}
	}
	if rs.MidlightSaturationScale < 0 {
		return &ConfigurationError{Field: "midlight_saturation_scale", Value: rs.MidlightSaturationScale, Reason: "must not be negative"}
	}

	prev := 0.0
	for i, step := range rs.HighlightSaturation {
		if step.Below <= prev || step.Below > 1 {
			return &ConfigurationError{Field: "highlight_saturation", Value: step.Below, Reason: fmt.Sprintf("step %d must ascend within (0, 1]", i)}
		}
		prev = step.Below
	}

	if err := validateBranch("light", rs.Light, true); err != nil {
		return err
	}
	if err := validateBranch("dark", rs.Dark, true); err != nil {
		return err
	}
	return validateBranch("monochrome", rs.Monochrome, false)
}

func validateBranch(name string, rules []Rule, complete bool) error {
	seen := make(map[Role]bool, len(rules))
	for _, rule := range rules {
		if !IsValidRole(rule.Role) {
			return &ConfigurationError{Field: name + " role", Value: rule.Role, Reason: "unknown role"}
		}
		if seen[rule.Role] {
			return &ConfigurationError{Field: name + " role", Value: rule.Role, Reason: "listed more than once"}
		}
		seen[rule.Role] = true

		switch rule.Hue {
		case HueBase, HueMidlight, HueHighlight:
		default:
			return &ConfigurationError{Field: name + " hue", Value: rule.Hue, Reason: "unknown hue source"}
		}
		if err := rule.Lightness.validate(); err != nil {
			return &ConfigurationError{Field: name + " lightness", Value: rule.Role, Reason: err.Error()}
		}
		if err := rule.Saturation.validate(); err != nil {
			return &ConfigurationError{Field: name + " saturation", Value: rule.Role, Reason: err.Error()}
		}
	}

	if complete {
		for _, role := range Roles() {
			if !seen[role] {
				return &ConfigurationError{Field: name + " branch", Value: role, Reason: "role has no rule"}
			}
		}
	}
	return nil
}

// LoadRuleSet reads a JSON rule table. Fields omitted from the file keep their
// default values; a branch present in the file replaces the default branch whole.
func LoadRuleSet(path string) (RuleSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified rule table, intended to be read
	if err != nil {
		return RuleSet{}, &ConfigurationError{Field: "rule table", Value: path, Reason: err.Error()}
	}
	return ParseRuleSet(data)
}

// ParseRuleSet parses and validates a JSON rule table.
func ParseRuleSet(data []byte) (RuleSet, error) {
	rs := DefaultRuleSet()
	if err := json.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, &ConfigurationError{Field: "rule table", Value: "json", Reason: err.Error()}
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs, nil
}
