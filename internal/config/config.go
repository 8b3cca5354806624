// Package config resolves engine configuration from defaults, environment and flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/cullax/internal/colour"
	imgpkg "github.com/jmylchreest/cullax/internal/image"
)

// BranchSource selects which colour's lightness picks the light or dark rule branch.
type BranchSource string

const (
	// BranchOnBase uses the selected base colour.
	BranchOnBase BranchSource = "base"

	// BranchOnAverage uses the average colour of the preprocessed image.
	BranchOnAverage BranchSource = "average"
)

// ValidBranchSources returns the accepted branch sources.
func ValidBranchSources() []BranchSource {
	return []BranchSource{BranchOnBase, BranchOnAverage}
}

// Environment variables read by Builder.WithEnvConfig.
const (
	EnvStrategy   = "CULLAX_STRATEGY"
	EnvColours    = "CULLAX_COLOURS"
	EnvResolution = "CULLAX_RESOLUTION"
	EnvFilter     = "CULLAX_FILTER"
	EnvSeed       = "CULLAX_SEED"
	EnvSeedMode   = "CULLAX_SEED_MODE"
	EnvBranchOn   = "CULLAX_BRANCH_ON"
	EnvRules      = "CULLAX_RULES"
)

// Flag names registered by RegisterFlags.
const (
	FlagStrategy   = "strategy"
	FlagColours    = "colours"
	FlagResolution = "resolution"
	FlagFilter     = "filter"
	FlagSeed       = "seed"
	FlagSeedMode   = "seed-mode"
	FlagBranchOn   = "branch-on"
	FlagRules      = "rules"
)

// Config holds everything the engine needs to turn an image into a palette.
type Config struct {
	Strategy       colour.Strategy
	CandidateCount int
	Resolution     int
	Filter         imgpkg.Filter
	Seed           int64
	SeedMode       colour.SeedMode
	BranchOn       BranchSource

	// RulesPath is an optional JSON rule table overlaid on the defaults.
	RulesPath string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Strategy:       colour.StrategyDominantCluster,
		CandidateCount: 5,
		Resolution:     imgpkg.DefaultResolution,
		Filter:         imgpkg.FilterLinear,
		SeedMode:       colour.SeedModeManual,
		BranchOn:       BranchOnBase,
	}
}

// Validate checks every field and returns a *colour.ConfigurationError for the first bad one.
func (c Config) Validate() error {
	if err := (colour.ExtractorConfig{Strategy: c.Strategy, CandidateCount: c.CandidateCount}).Validate(); err != nil {
		return err
	}
	if err := imgpkg.ValidateResolution(c.Resolution); err != nil {
		return err
	}
	if err := imgpkg.ValidateFilter(c.Filter); err != nil {
		return err
	}
	if !isValidSeedMode(c.SeedMode) {
		return &colour.ConfigurationError{
			Field:  "seed mode",
			Value:  c.SeedMode,
			Reason: fmt.Sprintf("valid modes: %v", colour.ValidSeedModes()),
		}
	}
	switch c.BranchOn {
	case BranchOnBase, BranchOnAverage:
	default:
		return &colour.ConfigurationError{
			Field:  "branch source",
			Value:  c.BranchOn,
			Reason: fmt.Sprintf("valid sources: %v", ValidBranchSources()),
		}
	}
	return nil
}

func isValidSeedMode(m colour.SeedMode) bool {
	for _, valid := range colour.ValidSeedModes() {
		if m == valid {
			return true
		}
	}
	return false
}

// RegisterFlags registers the engine flags on a flag set with their default values.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.StringP(FlagStrategy, "s", string(d.Strategy), fmt.Sprintf("Extraction strategy %v", colour.ValidStrategies()))
	flags.IntP(FlagColours, "c", d.CandidateCount, "Number of candidate colours to extract (1-16)")
	flags.IntP(FlagResolution, "r", d.Resolution, fmt.Sprintf("Preprocessing resolution (%d-%d)", imgpkg.MinResolution, imgpkg.MaxResolution))
	flags.String(FlagFilter, string(d.Filter), fmt.Sprintf("Resize filter %v", imgpkg.ValidFilters()))
	flags.Int64(FlagSeed, d.Seed, "Random seed for k-means initialisation")
	flags.String(FlagSeedMode, string(d.SeedMode), fmt.Sprintf("Seed mode %v", colour.ValidSeedModes()))
	flags.String(FlagBranchOn, string(d.BranchOn), fmt.Sprintf("Colour whose lightness selects the rule branch %v", ValidBranchSources()))
	flags.String(FlagRules, d.RulesPath, "JSON rule table overlaid on the built-in rules")
}

// Builder provides a fluent interface for constructing a Config.
// Precedence is defaults, then environment, then changed flags.
type Builder struct {
	config Config
	useEnv bool
	flags  *pflag.FlagSet
}

// NewBuilder creates a new Config builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{config: Default()}
}

// WithConfig replaces the starting configuration.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from CULLAX_* environment variables.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithFlags applies every flag registered by RegisterFlags that was set on the command line.
func (b *Builder) WithFlags(flags *pflag.FlagSet) *Builder {
	b.flags = flags
	return b
}

// Build constructs and validates the Config.
func (b *Builder) Build() (Config, error) {
	config := b.config

	if b.useEnv {
		if err := applyEnv(&config); err != nil {
			return Config{}, err
		}
	}
	if b.flags != nil {
		if err := applyFlags(&config, b.flags); err != nil {
			return Config{}, err
		}
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func applyEnv(c *Config) error {
	if v, ok := lookupEnv(EnvStrategy); ok {
		c.Strategy = colour.Strategy(v)
	}
	if v, ok := lookupEnv(EnvFilter); ok {
		c.Filter = imgpkg.Filter(v)
	}
	if v, ok := lookupEnv(EnvSeedMode); ok {
		c.SeedMode = colour.SeedMode(v)
	}
	if v, ok := lookupEnv(EnvBranchOn); ok {
		c.BranchOn = BranchSource(v)
	}
	if v, ok := lookupEnv(EnvRules); ok {
		c.RulesPath = v
	}

	var err error
	if v, ok := lookupEnv(EnvColours); ok {
		if c.CandidateCount, err = parseInt(EnvColours, v); err != nil {
			return err
		}
	}
	if v, ok := lookupEnv(EnvResolution); ok {
		if c.Resolution, err = parseInt(EnvResolution, v); err != nil {
			return err
		}
	}
	if v, ok := lookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &colour.ConfigurationError{Field: EnvSeed, Value: v, Reason: "not an integer"}
		}
		c.Seed = seed
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func parseInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &colour.ConfigurationError{Field: key, Value: v, Reason: "not an integer"}
	}
	return n, nil
}

func applyFlags(c *Config, flags *pflag.FlagSet) error {
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	var err error
	if changed(FlagStrategy) {
		var v string
		if v, err = flags.GetString(FlagStrategy); err != nil {
			return err
		}
		c.Strategy = colour.Strategy(v)
	}
	if changed(FlagColours) {
		if c.CandidateCount, err = flags.GetInt(FlagColours); err != nil {
			return err
		}
	}
	if changed(FlagResolution) {
		if c.Resolution, err = flags.GetInt(FlagResolution); err != nil {
			return err
		}
	}
	if changed(FlagFilter) {
		var v string
		if v, err = flags.GetString(FlagFilter); err != nil {
			return err
		}
		c.Filter = imgpkg.Filter(v)
	}
	if changed(FlagSeed) {
		if c.Seed, err = flags.GetInt64(FlagSeed); err != nil {
			return err
		}
	}
	if changed(FlagSeedMode) {
		var v string
		if v, err = flags.GetString(FlagSeedMode); err != nil {
			return err
		}
		c.SeedMode = colour.SeedMode(v)
	}
	if changed(FlagBranchOn) {
		var v string
		if v, err = flags.GetString(FlagBranchOn); err != nil {
			return err
		}
		c.BranchOn = BranchSource(v)
	}
	if changed(FlagRules) {
		if c.RulesPath, err = flags.GetString(FlagRules); err != nil {
			return err
		}
	}
	return nil
}
