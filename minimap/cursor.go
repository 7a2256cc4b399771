package minimap

import (
	"fmt"
	"image"
	"image/color"
)

// FindCursor looks for the first pixel, column by column, whose colour
// differs from the minimap's top-left pixel by more than the cursor
// tolerance. The returned point is relative to corner. ok is false when the
// whole minimap matches the terrain colour.
func FindCursor(img image.Image, corner image.Point, extent Extent, cal Calibration) (rel image.Point, ok bool) {
	area := image.Rect(corner.X, corner.Y, corner.X+extent.Width, corner.Y+extent.Height).Intersect(img.Bounds())
	if area.Empty() {
		return image.Point{}, false
	}

	terrain := rgbAt(img, corner.X, corner.Y)
	for x := area.Min.X; x < area.Max.X; x++ {
		for y := area.Min.Y; y < area.Max.Y; y++ {
			if !PixelsEqual(rgbAt(img, x, y), terrain, cal.CursorTolerance) {
				return image.Pt(x, y).Sub(corner), true
			}
		}
	}
	return image.Point{}, false
}

// MeasureCursor measures the cursor blob starting at its absolute top-left
// pixel, scanning right and down while the colour stays within the cursor
// size tolerance. Rounded or occluded blobs measure short.
func MeasureCursor(img image.Image, at image.Point, cal Calibration) (Extent, error) {
	if !at.In(img.Bounds()) {
		return Extent{}, fmt.Errorf("%w: cursor %v outside %v", ErrBoundsOverrun, at, img.Bounds())
	}
	cursor := rgbAt(img, at.X, at.Y)
	sameColour := func(c color.RGBA) bool {
		return PixelsEqual(c, cursor, cal.CursorSizeTolerance)
	}

	width, err := runLength(img, at, right, sameColour)
	if err != nil {
		return Extent{}, fmt.Errorf("%w: cursor reaches the right edge", err)
	}
	height, err := runLength(img, at, down, sameColour)
	if err != nil {
		return Extent{}, fmt.Errorf("%w: cursor reaches the bottom edge", err)
	}
	return Extent{Width: width, Height: height}, nil
}
