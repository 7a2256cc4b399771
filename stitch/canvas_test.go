package stitch

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestNewCanvas(t *testing.T) {
	c, err := NewCanvas(minimap.MapDimensions{TilesWide: 3, TilesTall: 2}, minimap.Extent{Width: 10, Height: 7}, CollisionError)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	if got := c.Image().Bounds(); got != image.Rect(0, 0, 30, 14) {
		t.Errorf("expected 30x14 canvas, got %v", got)
	}
	if got := c.Image().RGBAAt(29, 13); got != (color.RGBA{A: 255}) {
		t.Errorf("expected opaque black fill, got %v", got)
	}
	if c.Filled() != 0 {
		t.Errorf("expected empty canvas, got %d cells", c.Filled())
	}
}

func TestNewCanvas_Invalid(t *testing.T) {
	tests := []struct {
		name string
		dims minimap.MapDimensions
		tile minimap.Extent
	}{
		{"no columns", minimap.MapDimensions{TilesWide: 0, TilesTall: 2}, minimap.Extent{Width: 10, Height: 10}},
		{"no rows", minimap.MapDimensions{TilesWide: 2, TilesTall: 0}, minimap.Extent{Width: 10, Height: 10}},
		{"empty tile", minimap.MapDimensions{TilesWide: 2, TilesTall: 2}, minimap.Extent{Width: 0, Height: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCanvas(tc.dims, tc.tile, CollisionError); err == nil {
				t.Errorf("expected error for %v / %v", tc.dims, tc.tile)
			}
		})
	}
}

func TestCanvasPlace(t *testing.T) {
	c, err := NewCanvas(minimap.MapDimensions{TilesWide: 3, TilesTall: 2}, minimap.Extent{Width: 10, Height: 7}, CollisionError)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	red := color.RGBA{R: 255, A: 255}
	src := solid(10, 7, red)

	tile := minimap.TileIndex{X: 2, Y: 1}
	if err := c.Place(tile, src, src.Bounds(), "a.png"); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if got := c.CellRect(tile); got != image.Rect(20, 7, 30, 14) {
		t.Errorf("unexpected cell rect %v", got)
	}
	if got := c.Image().RGBAAt(20, 7); got != red {
		t.Errorf("expected cell origin to be red, got %v", got)
	}
	if got := c.Image().RGBAAt(29, 13); got != red {
		t.Errorf("expected cell corner to be red, got %v", got)
	}
	if got := c.Image().RGBAAt(19, 7); got != (color.RGBA{A: 255}) {
		t.Errorf("expected neighbour cell untouched, got %v", got)
	}
	if owner, ok := c.Owner(tile); !ok || owner != "a.png" {
		t.Errorf("expected owner a.png, got %q (%v)", owner, ok)
	}
}

func TestCanvasPlace_Rejects(t *testing.T) {
	dims := minimap.MapDimensions{TilesWide: 2, TilesTall: 2}
	size := minimap.Extent{Width: 10, Height: 10}
	src := solid(10, 10, color.RGBA{G: 255, A: 255})

	tests := []struct {
		name string
		tile minimap.TileIndex
		sr   image.Rectangle
		want error
	}{
		{"column outside grid", minimap.TileIndex{X: 2, Y: 0}, src.Bounds(), ErrCompositeOutOfBounds},
		{"negative row", minimap.TileIndex{X: 0, Y: -1}, src.Bounds(), ErrCompositeOutOfBounds},
		{"wrong region size", minimap.TileIndex{X: 0, Y: 0}, image.Rect(0, 0, 9, 10), ErrExtentMismatch},
		{"region outside source", minimap.TileIndex{X: 0, Y: 0}, image.Rect(5, 5, 15, 15), minimap.ErrBoundsOverrun},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCanvas(dims, size, CollisionError)
			if err != nil {
				t.Fatalf("NewCanvas failed: %v", err)
			}
			err = c.Place(tc.tile, src, tc.sr, "x.png")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if c.Filled() != 0 {
				t.Errorf("expected canvas unchanged, %d cells filled", c.Filled())
			}
		})
	}
}

func TestCanvasPlace_Collision(t *testing.T) {
	dims := minimap.MapDimensions{TilesWide: 1, TilesTall: 1}
	size := minimap.Extent{Width: 4, Height: 4}
	first := solid(4, 4, color.RGBA{R: 255, A: 255})
	second := solid(4, 4, color.RGBA{B: 255, A: 255})
	tile := minimap.TileIndex{}

	t.Run("error", func(t *testing.T) {
		c, _ := NewCanvas(dims, size, CollisionError)
		if err := c.Place(tile, first, first.Bounds(), "first"); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
		err := c.Place(tile, second, second.Bounds(), "second")
		if !errors.Is(err, ErrTileCollision) {
			t.Fatalf("expected ErrTileCollision, got %v", err)
		}
		if got := c.Image().RGBAAt(0, 0); got != first.RGBAAt(0, 0) {
			t.Errorf("expected first image kept, got %v", got)
		}
		if owner, _ := c.Owner(tile); owner != "first" {
			t.Errorf("expected owner first, got %q", owner)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		c, _ := NewCanvas(dims, size, CollisionOverwrite)
		if err := c.Place(tile, first, first.Bounds(), "first"); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
		if err := c.Place(tile, second, second.Bounds(), "second"); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
		if got := c.Image().RGBAAt(3, 3); got != second.RGBAAt(3, 3) {
			t.Errorf("expected last image written, got %v", got)
		}
		if owner, _ := c.Owner(tile); owner != "second" {
			t.Errorf("expected owner second, got %q", owner)
		}
		if c.Filled() != 1 {
			t.Errorf("expected 1 filled cell, got %d", c.Filled())
		}
	})
}
