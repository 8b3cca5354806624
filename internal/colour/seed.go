package colour

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"path/filepath"
)

// SeedMode selects how the k-means seed is derived.
type SeedMode string

const (
	// SeedModeManual uses the configured seed value as-is.
	SeedModeManual SeedMode = "manual"

	// SeedModeContent hashes the image pixels, so identical images cluster identically
	// wherever they live.
	SeedModeContent SeedMode = "content"

	// SeedModeFilepath hashes the absolute image path.
	SeedModeFilepath SeedMode = "filepath"
)

// ValidSeedModes returns the accepted seed modes.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedModeManual, SeedModeContent, SeedModeFilepath}
}

// ResolveSeed returns the seed for the given mode.
func ResolveSeed(mode SeedMode, manual int64, img image.Image, path string) (int64, error) {
	switch mode {
	case SeedModeManual, "":
		return manual, nil
	case SeedModeContent:
		return SeedFromImage(img), nil
	case SeedModeFilepath:
		return SeedFromPath(path), nil
	default:
		return 0, &ConfigurationError{Field: "seed mode", Value: mode, Reason: fmt.Sprintf("valid modes: %v", ValidSeedModes())}
	}
}

// SeedFromImage derives a deterministic seed from image dimensions and a
// grid sample of its pixels.
func SeedFromImage(img image.Image) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are non-negative
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115
	hasher.Write(dimBytes)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixel := make([]byte, 3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := ToRGB(img.At(x, y))
			pixel[0], pixel[1], pixel[2] = c.R, c.G, c.B
			hasher.Write(pixel)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- wraparound is fine for a seed
}

// SeedFromPath derives a deterministic seed from the absolute form of path.
func SeedFromPath(path string) int64 {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	hash := sha256.Sum256([]byte(path))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115
}
