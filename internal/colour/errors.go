package colour

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes of the engine.
// Use errors.Is to classify an error returned from any stage.
var (
	ErrImageRead     = errors.New("image read error")
	ErrExtraction    = errors.New("extraction error")
	ErrConfiguration = errors.New("configuration error")
)

// ImageReadError reports an image that is missing, unreadable or cannot be decoded.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to read image: %v", e.Err)
	}
	return fmt.Sprintf("failed to read image %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ImageReadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrImageRead.
func (e *ImageReadError) Is(target error) bool { return target == ErrImageRead }

// ExtractionError reports a degenerate image, e.g. one without pixels.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "failed to extract colours: " + e.Reason
}

// Is reports whether target is ErrExtraction.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// ConfigurationError reports an invalid strategy configuration supplied by the caller.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
