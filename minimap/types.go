package minimap

import (
	"fmt"
	"image"
)

// Extent is a width/height pair in pixels.
type Extent struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// TileIndex identifies one cell of the output map grid.
type TileIndex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (t TileIndex) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// MapDimensions is the size of the output map in tiles.
type MapDimensions struct {
	TilesWide int `json:"tiles_wide"`
	TilesTall int `json:"tiles_tall"`
}

func (d MapDimensions) String() string {
	return fmt.Sprintf("%dx%d tiles", d.TilesWide, d.TilesTall)
}

// Contains reports whether t is a cell of the grid.
func (d MapDimensions) Contains(t TileIndex) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < d.TilesWide && t.Y < d.TilesTall
}

// Analysis holds everything the pipeline derives from one screenshot.
type Analysis struct {
	// Corner is the minimap's top-left pixel, in image coordinates.
	Corner image.Point `json:"corner"`
	Extent Extent      `json:"extent"`
	// Cursor is the cursor's top-left pixel relative to Corner.
	Cursor     image.Point   `json:"cursor"`
	CursorSize Extent        `json:"cursor_size"`
	Pitch      Extent        `json:"pitch"`
	Tile       TileIndex     `json:"tile"`
	Dimensions MapDimensions `json:"dimensions"`
	// Grid is the cell grid a canvas needs for this minimap; see GridSize.
	Grid MapDimensions `json:"grid"`
}

// MapRect returns the minimap's pixel rectangle, including the last map
// pixel on each axis.
func (a *Analysis) MapRect() image.Rectangle {
	return image.Rectangle{
		Min: a.Corner,
		Max: a.Corner.Add(image.Pt(a.Extent.Width+1, a.Extent.Height+1)),
	}
}

// CursorAbs returns the cursor's top-left pixel in image coordinates.
func (a *Analysis) CursorAbs() image.Point {
	return a.Corner.Add(a.Cursor)
}
