package minimap

import (
	"fmt"
	"image"
)

// CursorTile converts the cursor's minimap-relative position into a tile
// index: (coord + pitch/2) / pitch on each axis, with integer division.
func CursorTile(rel image.Point, cursor Extent, cal Calibration) (TileIndex, error) {
	pitch := cal.Pitch(cursor)
	if pitch.Width <= 0 || pitch.Height <= 0 {
		return TileIndex{}, fmt.Errorf("%w: %v", ErrInvalidPitch, pitch)
	}
	return TileIndex{
		X: (rel.X + pitch.Width/2) / pitch.Width,
		Y: (rel.Y + pitch.Height/2) / pitch.Height,
	}, nil
}

// Dimensions returns how many tiles the minimap covers, assuming its
// extent is a whole multiple of the tile pitch.
func Dimensions(extent, cursor Extent, cal Calibration) (MapDimensions, error) {
	pitch := cal.Pitch(cursor)
	if pitch.Width <= 0 || pitch.Height <= 0 {
		return MapDimensions{}, fmt.Errorf("%w: %v", ErrInvalidPitch, pitch)
	}
	return MapDimensions{
		TilesWide: extent.Width / pitch.Width,
		TilesTall: extent.Height / pitch.Height,
	}, nil
}

// GridSize returns the number of cells needed to hold every tile index
// CursorTile can produce for a cursor inside extent. It is one more than
// the index of the last map pixel, so a cursor in a partial last column or
// row still has a cell; Dimensions floors those away.
func GridSize(extent, cursor Extent, cal Calibration) (MapDimensions, error) {
	last, err := CursorTile(image.Pt(extent.Width, extent.Height), cursor, cal)
	if err != nil {
		return MapDimensions{}, err
	}
	return MapDimensions{TilesWide: last.X + 1, TilesTall: last.Y + 1}, nil
}
