package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// SavePNG writes an image to the given path, creating parent directories
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	return nil
}

// SavePreview writes a downscaled thumbnail of the image next to the full
// render, for quick inspection of animation output.
func SavePreview(img image.Image, path string, previewWidth uint) error {
	thumb := resize.Resize(previewWidth, 0, img, resize.Lanczos3)
	return SavePNG(thumb, path)
}

// FramePath returns the output path for an animation frame
func FramePath(outputDir string, frame int) string {
	return filepath.Join(outputDir, fmt.Sprintf("frame_%04d.png", frame))
}

// PreviewPath returns the thumbnail path matching a frame path
func PreviewPath(framePath string) string {
	ext := filepath.Ext(framePath)
	return framePath[:len(framePath)-len(ext)] + "_preview" + ext
}
