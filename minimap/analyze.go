package minimap

import (
	"fmt"
	"image"
)

// Analyze runs the detection pipeline on one screenshot: minimap corner,
// minimap extent, cursor position, cursor size and finally the tile the
// cursor sits on. img is only read. Failures are *StageError values.
func Analyze(img image.Image, cal Calibration) (*Analysis, error) {
	corner, err := FindCorner(img, cal)
	if err != nil {
		return nil, stageErr(StageCorner, err)
	}

	extent, err := MeasureExtent(img, corner, cal)
	if err != nil {
		return nil, stageErr(StageExtent, err)
	}

	rel, ok := FindCursor(img, corner, extent, cal)
	if !ok {
		return nil, stageErr(StageCursor, fmt.Errorf("%w: minimap %v at %v", ErrCursorNotFound, extent, corner))
	}

	size, err := MeasureCursor(img, corner.Add(rel), cal)
	if err != nil {
		return nil, stageErr(StageCursorSize, err)
	}

	tile, err := CursorTile(rel, size, cal)
	if err != nil {
		return nil, stageErr(StageTile, err)
	}
	dims, err := Dimensions(extent, size, cal)
	if err != nil {
		return nil, stageErr(StageTile, err)
	}
	grid, err := GridSize(extent, size, cal)
	if err != nil {
		return nil, stageErr(StageTile, err)
	}

	a := &Analysis{
		Corner:     corner,
		Extent:     extent,
		Cursor:     rel,
		CursorSize: size,
		Pitch:      cal.Pitch(size),
		Tile:       tile,
		Dimensions: dims,
		Grid:       grid,
	}

	mmLog().Debug().
		Int("cornerX", corner.X).
		Int("cornerY", corner.Y).
		Str("extent", extent.String()).
		Int("cursorX", rel.X).
		Int("cursorY", rel.Y).
		Str("cursorSize", size.String()).
		Str("tile", tile.String()).
		Str("dimensions", dims.String()).
		Str("grid", grid.String()).
		Msg("Minimap analysed")

	return a, nil
}
