// Package image loads wallpapers and prepares them for colour extraction.
package image

import (
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/cullax/internal/colour"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem. The file is opened
// read-only and never modified.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF.
// Every failure is reported as a *colour.ImageReadError.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, &colour.ImageReadError{Err: errors.New("image path cannot be empty")}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &colour.ImageReadError{Path: path, Err: fmt.Errorf("file not found: %w", err)}
		}
		return nil, &colour.ImageReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &colour.ImageReadError{Path: path, Err: errors.New("path is a directory, not a file")}
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, &colour.ImageReadError{Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &colour.ImageReadError{Path: path, Err: fmt.Errorf("failed to decode image (format: %s): %w", format, err)}
	}

	return img, nil
}

// ValidateImagePath checks that path is a directory or a file in a supported image format.
func ValidateImagePath(path string) error {
	if path == "" {
		return &colour.ImageReadError{Err: errors.New("image path cannot be empty")}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &colour.ImageReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return &colour.ImageReadError{Path: path, Err: err}
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return &colour.ImageReadError{Path: path, Err: fmt.Errorf("unsupported or invalid image format: %w", err)}
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages returns every supported image file directly inside dirPath.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, &colour.ImageReadError{Path: dirPath, Err: err}
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// Skip entries we can't stat (broken symlinks, permission issues).
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, &colour.ImageReadError{Path: dirPath, Err: errors.New("no supported image files in directory")}
	}

	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", errors.New("image path list is empty")
	}

	randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return imagePaths[randomIndex.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file or a slideshow directory.
// A directory resolves to a random image inside it; a file is returned as-is.
func ResolveImagePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &colour.ImageReadError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(imageFiles)
}
