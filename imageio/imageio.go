// Package imageio loads screenshots and writes composite maps.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when an input file is missing or is not a
// decodable image.
var ErrDecode = errors.New("failed to decode image")

// Load decodes the image at path into an RGBA grid whose origin is (0,0).
// It also returns the format name reported by the decoder.
func Load(path string) (*image.RGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return ToRGBA(img), format, nil
}

// ToRGBA returns img as a zero-origin *image.RGBA, copying unless it
// already is one.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// SavePNG encodes img as PNG at path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// SavePreview writes a copy of img scaled down to width pixels, keeping the
// aspect ratio. Images already narrower than width are written unscaled.
// The output format follows the file extension.
func SavePreview(path string, img image.Image, width int) error {
	if width <= 0 {
		return fmt.Errorf("preview width must be positive, got %d", width)
	}
	var preview image.Image = img
	if img.Bounds().Dx() > width {
		preview = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(preview, path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}
