package colour

import (
	"sync"
)

// maxSaturation caps every derived saturation before encoding.
const maxSaturation = 0.99

// BaseColor is the single input to palette derivation.
// It is built once and never modified.
type BaseColor struct {
	rgb       RGB
	hls       HLS
	reference *HLS
}

// NewBaseColor creates a BaseColor from an 8-bit colour.
func NewBaseColor(rgb RGB) BaseColor {
	return BaseColor{rgb: rgb, hls: RGBToHLS(rgb)}
}

// WithReference returns a copy whose branch lightness comes from ref
// (typically the image average) instead of the base itself.
func (b BaseColor) WithReference(ref RGB) BaseColor {
	hls := RGBToHLS(ref)
	b.reference = &hls
	return b
}

// RGB returns the base colour.
func (b BaseColor) RGB() RGB { return b.rgb }

// HLS returns the base colour in HLS.
func (b BaseColor) HLS() HLS { return b.hls }

// BranchLightness returns the lightness compared against the light threshold.
func (b BaseColor) BranchLightness() float64 {
	if b.reference != nil {
		return b.reference.L
	}
	return b.hls.L
}

// Monochrome reports whether the base saturation is below eps.
func (b BaseColor) Monochrome(eps float64) bool {
	return b.hls.S < eps
}

// derivedParams holds the hue and saturation values shared by several roles.
type derivedParams struct {
	sMidlight  float64
	sHighlight float64
	hMidlight  float64
	hHighlight float64
}

// Deriver maps base colours to palettes according to a RuleSet.
type Deriver struct {
	rules RuleSet
	light map[Role]Rule
	dark  map[Role]Rule
	mono  map[Role]Rule
}

// NewDeriver validates rs and indexes its branches.
func NewDeriver(rs RuleSet) (*Deriver, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &Deriver{
		rules: rs,
		light: indexRules(rs.Light),
		dark:  indexRules(rs.Dark),
		mono:  indexRules(rs.Monochrome),
	}, nil
}

func indexRules(rules []Rule) map[Role]Rule {
	m := make(map[Role]Rule, len(rules))
	for _, r := range rules {
		m[r.Role] = r
	}
	return m
}

// Rules returns the rule set the deriver was built from.
func (d *Deriver) Rules() RuleSet {
	return d.rules
}

// Derive builds the complete palette for base. It never fails and never
// returns a palette missing a role.
func (d *Deriver) Derive(base BaseColor) *Palette {
	hls := base.HLS()
	mono := base.Monochrome(d.rules.MonochromeEpsilon)
	p := d.params(hls, mono)

	branch := BranchDark
	rules := d.dark
	if base.BranchLightness() > d.rules.LightThreshold {
		branch = BranchLight
		rules = d.light
	}

	tuples := make(map[Role]HLS, len(rules))
	for _, role := range Roles() {
		rule := rules[role]
		if mono {
			if override, ok := d.mono[role]; ok {
				rule = override
			}
		}
		tuples[role] = d.apply(rule, hls, p, mono)
	}

	return newPalette(tuples, branch, mono)
}

func (d *Deriver) params(hls HLS, mono bool) derivedParams {
	if mono {
		return derivedParams{}
	}

	sHighlight := d.rules.HighlightSaturationDefault
	for _, step := range d.rules.HighlightSaturation {
		if hls.S < step.Below {
			sHighlight = step.Value
			break
		}
	}

	return derivedParams{
		sMidlight:  hls.S * d.rules.MidlightSaturationScale,
		sHighlight: sHighlight,
		hMidlight:  wrapHue(hls.H + d.rules.MidlightHueShift),
		hHighlight: wrapHue(hls.H + d.rules.HighlightHueShift),
	}
}

func (d *Deriver) apply(rule Rule, base HLS, p derivedParams, mono bool) HLS {
	l := clamp(rule.Lightness.eval(base.L, p), 0, 1)
	if mono {
		// Achromatic palette: hue carries no information once saturation is zero.
		return HLS{H: 0, L: l, S: 0}
	}

	var h float64
	switch rule.Hue {
	case HueMidlight:
		h = p.hMidlight
	case HueHighlight:
		h = p.hHighlight
	default:
		h = base.H
	}

	return HLS{
		H: wrapHue(h + rule.HueOffset),
		L: l,
		S: clamp(rule.Saturation.eval(base.S, p), 0, maxSaturation),
	}
}

var defaultDeriver = sync.OnceValue(func() *Deriver {
	d, err := NewDeriver(DefaultRuleSet())
	if err != nil {
		panic("colour: invalid default rule set: " + err.Error())
	}
	return d
})

// Derive builds a palette for base using the default rule set.
func Derive(base BaseColor) *Palette {
	return defaultDeriver().Derive(base)
}
