package colour

import (
	"image"
)

// Extractor defines the interface for colour extraction strategies.
type Extractor interface {
	// Extract reduces an image to a ranked set of representative colours.
	// The count parameter is the number of clusters or quantised colours to work with.
	Extract(img image.Image, count int) (Candidates, error)
}

// Strategy names a colour extraction strategy.
type Strategy string

const (
	// StrategyDominantCluster returns the centroid of the largest k-means cluster.
	StrategyDominantCluster Strategy = "dominant-cluster"

	// StrategyAverage returns the arithmetic mean of all pixels.
	StrategyAverage Strategy = "average"

	// StrategyQuantize returns every colour of a median-cut quantised palette.
	StrategyQuantize Strategy = "quantize"
)

const (
	// MinCandidateCount is the smallest accepted candidate count.
	MinCandidateCount = 1

	// MaxCandidateCount is the largest accepted candidate count.
	MaxCandidateCount = 16
)

// ValidStrategies returns a list of valid strategy names.
func ValidStrategies() []Strategy {
	return []Strategy{
		StrategyDominantCluster,
		StrategyAverage,
		StrategyQuantize,
	}
}

// IsValidStrategy checks if the given strategy name is valid.
func IsValidStrategy(s Strategy) bool {
	for _, valid := range ValidStrategies() {
		if s == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions holds tuning options shared by the strategies.
type ExtractorOptions struct {
	// Seed initialises the k-means random source. Runs with the same seed are reproducible.
	Seed int64

	// MaxIterations bounds k-means refinement. Zero selects the default.
	MaxIterations int

	// Epsilon is the average centroid movement (0-255 scale) below which k-means stops.
	// Zero selects the default.
	Epsilon float64
}

// NewExtractor creates a new Extractor for the specified strategy.
func NewExtractor(s Strategy, opts ExtractorOptions) (Extractor, error) {
	switch s {
	case StrategyDominantCluster:
		return NewKMeansExtractor(opts), nil
	case StrategyAverage:
		return NewAverageExtractor(), nil
	case StrategyQuantize:
		return NewMedianCutExtractor(), nil
	default:
		return nil, &ConfigurationError{
			Field:  "strategy",
			Value:  s,
			Reason: "unknown strategy (valid strategies: dominant-cluster, average, quantize)",
		}
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Strategy       Strategy
	CandidateCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Strategy:       StrategyDominantCluster,
		CandidateCount: 5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidStrategy(c.Strategy) {
		return &ConfigurationError{Field: "strategy", Value: c.Strategy, Reason: "unknown strategy"}
	}
	return validateCount(c.CandidateCount)
}

func validateCount(count int) error {
	if count < MinCandidateCount || count > MaxCandidateCount {
		return &ConfigurationError{
			Field:  "candidate count",
			Value:  count,
			Reason: "must be between 1 and 16",
		}
	}
	return nil
}

// Candidate is a representative colour with its share of the image.
type Candidate struct {
	Colour RGB     `json:"colour"`
	Weight float64 `json:"weight"`
}

// Candidates is an extractor-ranked sequence of representative colours.
type Candidates []Candidate

// Colours returns the candidate colours in rank order.
func (c Candidates) Colours() []RGB {
	out := make([]RGB, len(c))
	for i, cand := range c {
		out[i] = cand.Colour
	}
	return out
}

// SelectBase picks the base colour: the candidate with the smallest R+G+B.
// Ties go to the earlier candidate.
func SelectBase(c Candidates) (RGB, error) {
	if len(c) == 0 {
		return RGB{}, &ExtractionError{Reason: "no candidates to select from"}
	}
	best := c[0].Colour
	for _, cand := range c[1:] {
		if cand.Colour.Sum() < best.Sum() {
			best = cand.Colour
		}
	}
	return best, nil
}
