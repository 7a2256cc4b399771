package minimap

import (
	"fmt"
	"image"
	"image/color"
)

var (
	right = image.Pt(1, 0)
	down  = image.Pt(0, 1)
)

// FindCorner returns the top-left pixel of the minimap overlay: the first
// non-background pixel when walking row y over x in [0, y], rows from the
// top. The overlay is expected below the frame's diagonal (x <= y).
func FindCorner(img image.Image, cal Calibration) (image.Point, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return image.Point{}, fmt.Errorf("%w: empty image", ErrBoundsOverrun)
	}

	x, y := 0, 0
	for y < h {
		if !isBackground(img, b.Min.X+x, b.Min.Y+y, cal.BackgroundTolerance) {
			return image.Pt(b.Min.X+x, b.Min.Y+y), nil
		}
		x++
		if y < x || x >= w {
			y++
			x = 0
		}
	}
	return image.Point{}, fmt.Errorf("%w: no overlay pixel in %dx%d frame", ErrBoundsOverrun, w, h)
}

// MeasureExtent scans right and down from the minimap corner while pixels
// are not background. Each raw count is reduced by one: the returned
// extent is the offset of the last map pixel from the corner.
func MeasureExtent(img image.Image, corner image.Point, cal Calibration) (Extent, error) {
	if !corner.In(img.Bounds()) {
		return Extent{}, fmt.Errorf("%w: corner %v outside %v", ErrBoundsOverrun, corner, img.Bounds())
	}
	notBackground := func(c color.RGBA) bool {
		return !PixelsEqual(c, Background, cal.BackgroundTolerance)
	}

	width, err := runLength(img, corner, right, notBackground)
	if err != nil {
		return Extent{}, fmt.Errorf("%w: minimap reaches the right edge at y=%d", err, corner.Y)
	}
	height, err := runLength(img, corner, down, notBackground)
	if err != nil {
		return Extent{}, fmt.Errorf("%w: minimap reaches the bottom edge at x=%d", err, corner.X)
	}
	if width == 0 || height == 0 {
		return Extent{}, fmt.Errorf("%w: corner %v is background", ErrEmptyExtent, corner)
	}
	return Extent{Width: width - 1, Height: height - 1}, nil
}
