// Package minimaptest renders synthetic screenshots for tests: a black
// frame, a uniform minimap rectangle and a solid cursor rectangle.
package minimaptest

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	Terrain = color.RGBA{R: 60, G: 140, B: 60, A: 255}
	Cursor  = color.RGBA{R: 230, G: 40, B: 40, A: 255}
)

// Scene describes a synthetic screenshot.
type Scene struct {
	FrameW, FrameH int
	// Corner is the minimap's top-left pixel.
	Corner image.Point
	// MapW and MapH are the minimap's pixel counts, border excluded.
	MapW, MapH int
	// CursorAt is relative to Corner.
	CursorAt         image.Point
	CursorW, CursorH int
	TerrainColor     color.RGBA
	CursorColor      color.RGBA
}

// Default is a 120x100 frame holding a 37x19 minimap at (8,10) with a 4x5
// cursor at (18,9). With the default +5/+4 padding the pitch is 9x9, the map
// is 4x2 whole tiles, a canvas needs 5x3 cells and the cursor sits on tile
// (2,1).
func Default() Scene {
	return Scene{
		FrameW:       120,
		FrameH:       100,
		Corner:       image.Pt(8, 10),
		MapW:         37,
		MapH:         19,
		CursorAt:     image.Pt(18, 9),
		CursorW:      4,
		CursorH:      5,
		TerrainColor: Terrain,
		CursorColor:  Cursor,
	}
}

// Captured reproduces the geometry of a real 1152x1080 capture: a
// 288x144 minimap (extent 287x143) with a 13x14 cursor at (275,126),
// which sits in the partial last column and row. The frame is cropped
// tight around the minimap. The pitch is 18x18, the cursor is on tile
// (15,7), the minimap holds 15x7 whole tiles and a canvas needs 17x9 cells.
func Captured() Scene {
	return Scene{
		FrameW:       364,
		FrameH:       256,
		Corner:       image.Pt(72, 108),
		MapW:         288,
		MapH:         144,
		CursorAt:     image.Pt(275, 126),
		CursorW:      13,
		CursorH:      14,
		TerrainColor: Terrain,
		CursorColor:  Cursor,
	}
}

// WithCursor returns a copy of s with the cursor moved to rel.
func (s Scene) WithCursor(rel image.Point) Scene {
	s.CursorAt = rel
	return s
}

// Render draws the scene.
func (s Scene) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.FrameW, s.FrameH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{A: 255}}, image.Point{}, draw.Src)

	mapRect := image.Rectangle{Min: s.Corner, Max: s.Corner.Add(image.Pt(s.MapW, s.MapH))}
	draw.Draw(img, mapRect, &image.Uniform{C: s.TerrainColor}, image.Point{}, draw.Src)

	if s.CursorW > 0 && s.CursorH > 0 {
		at := s.Corner.Add(s.CursorAt)
		cursorRect := image.Rectangle{Min: at, Max: at.Add(image.Pt(s.CursorW, s.CursorH))}
		draw.Draw(img, cursorRect, &image.Uniform{C: s.CursorColor}, image.Point{}, draw.Src)
	}
	return img
}
