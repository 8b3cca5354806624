// Package engine runs the image to palette pipeline: load, preprocess,
// extract, select and derive.
package engine

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/config"
	imgpkg "github.com/jmylchreest/cullax/internal/image"
)

// Result is the outcome of a successful run. A failed run never yields a Result.
type Result struct {
	// Path is the image the palette was extracted from.
	Path string

	// Seed is the k-means seed actually used.
	Seed int64

	// Candidates are the representative colours in extractor rank order.
	Candidates colour.Candidates

	// Base is the candidate selected to seed derivation.
	Base colour.RGB

	// Reference is the image average when branch selection uses it, nil otherwise.
	Reference *colour.RGB

	Palette *colour.Palette
}

// Engine turns images into palettes. An Engine is safe for concurrent use;
// each Run allocates its own working state.
type Engine struct {
	cfg          config.Config
	logger       hclog.Logger
	loader       imgpkg.Loader
	preprocessor *imgpkg.Preprocessor
	deriver      *colour.Deriver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLoader replaces the image loader.
func WithLoader(loader imgpkg.Loader) Option {
	return func(e *Engine) {
		e.loader = loader
	}
}

// New validates cfg, loads the rule table and returns a ready Engine.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		logger: hclog.NewNullLogger(),
		loader: imgpkg.NewFileLoader(),
	}
	for _, opt := range opts {
		opt(e)
	}

	pre, err := imgpkg.NewPreprocessor(cfg.Resolution, cfg.Filter)
	if err != nil {
		return nil, err
	}
	e.preprocessor = pre

	rules := colour.DefaultRuleSet()
	if cfg.RulesPath != "" {
		if rules, err = colour.LoadRuleSet(cfg.RulesPath); err != nil {
			return nil, err
		}
		e.logger.Debug("loaded rule table", "path", cfg.RulesPath)
	}
	if e.deriver, err = colour.NewDeriver(rules); err != nil {
		return nil, err
	}

	return e, nil
}

// Config returns the validated configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Deriver returns the deriver built from the configured rule table.
func (e *Engine) Deriver() *colour.Deriver {
	return e.deriver
}

// Run loads the image at path and derives its palette.
func (e *Engine) Run(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := e.loader.Load(path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded image", "path", path, "bounds", img.Bounds().Size(), "elapsed", time.Since(start))

	return e.RunImage(ctx, img, path)
}

// RunImage derives a palette from an already decoded image. path is recorded in
// the result and feeds filepath seeding; it may be empty otherwise.
func (e *Engine) RunImage(ctx context.Context, img image.Image, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	small, err := e.preprocessor.Preprocess(img)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("preprocessed image", "size", e.preprocessor.Size(), "filter", e.cfg.Filter, "elapsed", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed, err := colour.ResolveSeed(e.cfg.SeedMode, e.cfg.Seed, small, absPath(path))
	if err != nil {
		return nil, err
	}

	extractor, err := colour.NewExtractor(e.cfg.Strategy, colour.ExtractorOptions{Seed: seed})
	if err != nil {
		return nil, err
	}

	extractLog := e.logger.Named("extract")
	start = time.Now()
	candidates, err := extractor.Extract(small, e.cfg.CandidateCount)
	if err != nil {
		return nil, err
	}
	extractLog.Debug("extracted candidates",
		"strategy", e.cfg.Strategy, "seed", seed, "candidates", candidates.Colours(), "elapsed", time.Since(start))

	base, err := colour.SelectBase(candidates)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseColour := colour.NewBaseColor(base)
	var reference *colour.RGB
	if e.cfg.BranchOn == config.BranchOnAverage {
		avg, err := colour.Average(small)
		if err != nil {
			return nil, err
		}
		reference = &avg
		baseColour = baseColour.WithReference(avg)
	}

	palette := e.deriver.Derive(baseColour)

	hls := baseColour.HLS()
	e.logger.Named("derive").Debug("derived palette",
		"base", base.Triplet(), "h", hls.H, "l", hls.L, "s", hls.S,
		"branch_lightness", baseColour.BranchLightness(),
		"branch", palette.Branch(), "monochrome", palette.Monochrome())

	return &Result{
		Path:       path,
		Seed:       seed,
		Candidates: candidates,
		Base:       base,
		Reference:  reference,
		Palette:    palette,
	}, nil
}

// DeriveColour derives a palette directly from a base colour, skipping extraction.
// A non-nil reference selects the branch by its lightness instead of the base's.
func (e *Engine) DeriveColour(base colour.RGB, reference *colour.RGB) *colour.Palette {
	bc := colour.NewBaseColor(base)
	if reference != nil {
		bc = bc.WithReference(*reference)
	}
	return e.deriver.Derive(bc)
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// String summarises a result for logs.
func (r *Result) String() string {
	return fmt.Sprintf("%s: base %s, %s branch", r.Path, r.Base.Triplet(), r.Palette.Branch())
}
