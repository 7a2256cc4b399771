package stitch

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

// Canvas is the output map: a grid of equally sized cells, each written by
// at most one screenshot unless the collision policy allows overwrites.
type Canvas struct {
	img      *image.RGBA
	dims     minimap.MapDimensions
	tileSize minimap.Extent
	policy   CollisionPolicy
	owners   map[minimap.TileIndex]string
}

// NewCanvas allocates a dims.TilesWide*tileSize.Width by
// dims.TilesTall*tileSize.Height canvas, filled opaque black.
func NewCanvas(dims minimap.MapDimensions, tileSize minimap.Extent, policy CollisionPolicy) (*Canvas, error) {
	if dims.TilesWide <= 0 || dims.TilesTall <= 0 {
		return nil, fmt.Errorf("map must be at least one tile, got %v", dims)
	}
	if tileSize.Width <= 0 || tileSize.Height <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %v", tileSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, dims.TilesWide*tileSize.Width, dims.TilesTall*tileSize.Height))
	xdraw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{A: 255}}, image.Point{}, xdraw.Src)

	return &Canvas{
		img:      img,
		dims:     dims,
		tileSize: tileSize,
		policy:   policy,
		owners:   make(map[minimap.TileIndex]string),
	}, nil
}

// Image returns the composite. It is the canvas's own buffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Dimensions returns the grid size in tiles.
func (c *Canvas) Dimensions() minimap.MapDimensions { return c.dims }

// TileSize returns the pixel size of one cell.
func (c *Canvas) TileSize() minimap.Extent { return c.tileSize }

// Owner returns the source name that last wrote tile.
func (c *Canvas) Owner(tile minimap.TileIndex) (string, bool) {
	name, ok := c.owners[tile]
	return name, ok
}

// Filled returns the number of cells written so far.
func (c *Canvas) Filled() int { return len(c.owners) }

// CellRect returns the pixel rectangle of tile.
func (c *Canvas) CellRect(tile minimap.TileIndex) image.Rectangle {
	origin := image.Pt(tile.X*c.tileSize.Width, tile.Y*c.tileSize.Height)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(c.tileSize.Width, c.tileSize.Height))}
}

// Place copies the sr region of src into tile's cell. sr must be exactly
// one tile in size. On error the canvas is left unchanged.
func (c *Canvas) Place(tile minimap.TileIndex, src image.Image, sr image.Rectangle, source string) error {
	if !c.dims.Contains(tile) {
		return fmt.Errorf("%w: tile %v, grid is %v", ErrCompositeOutOfBounds, tile, c.dims)
	}
	if sr.Dx() != c.tileSize.Width || sr.Dy() != c.tileSize.Height {
		return fmt.Errorf("%w: region %dx%d, tile is %v", ErrExtentMismatch, sr.Dx(), sr.Dy(), c.tileSize)
	}
	if !sr.In(src.Bounds()) {
		return fmt.Errorf("%w: region %v outside source %v", minimap.ErrBoundsOverrun, sr, src.Bounds())
	}
	dst := c.CellRect(tile)
	if !dst.In(c.img.Bounds()) {
		return fmt.Errorf("%w: cell %v outside canvas %v", ErrCompositeOutOfBounds, dst, c.img.Bounds())
	}

	if prev, ok := c.owners[tile]; ok {
		if c.policy != CollisionOverwrite {
			return fmt.Errorf("%w: tile %v already holds %s", ErrTileCollision, tile, prev)
		}
		stLog().Warn().
			Str("tile", tile.String()).
			Str("previous", prev).
			Str("source", source).
			Msg("Overwriting tile")
	}

	xdraw.Copy(c.img, dst.Min, src, sr, xdraw.Src, nil)
	c.owners[tile] = source
	return nil
}
