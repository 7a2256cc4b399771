package stitch

import (
	"fmt"
	"image"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

// Reference is the calibration taken from the first image: it fixes the
// grid size and the pixel size of one tile for the whole run. Grid is the
// canvas grid; Dimensions is the whole-tile count reported by the minimap
// and is one smaller on an axis whose last tile is partial.
type Reference struct {
	Source     string                `json:"source"`
	Frame      minimap.Extent        `json:"frame"`
	Minimap    minimap.Extent        `json:"minimap"`
	Dimensions minimap.MapDimensions `json:"dimensions"`
	Grid       minimap.MapDimensions `json:"grid"`
	TileSize   minimap.Extent        `json:"tile_size"`
}

// NewReference derives the run calibration from the first analysed image.
func NewReference(source string, img image.Image, a *minimap.Analysis, tileSource TileSource) Reference {
	frame := minimap.Extent{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	tile := frame
	if tileSource == TileMinimap {
		r := a.MapRect()
		tile = minimap.Extent{Width: r.Dx(), Height: r.Dy()}
	}
	return Reference{
		Source:     source,
		Frame:      frame,
		Minimap:    a.Extent,
		Dimensions: a.Dimensions,
		Grid:       a.Grid,
		TileSize:   tile,
	}
}

// Compositor pastes analysed screenshots into a Canvas.
type Compositor struct {
	cal    minimap.Calibration
	opts   Options
	ref    Reference
	canvas *Canvas
}

// NewCompositor allocates the canvas described by ref.
func NewCompositor(cal minimap.Calibration, opts Options, ref Reference) (*Compositor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	canvas, err := NewCanvas(ref.Grid, ref.TileSize, opts.Collision)
	if err != nil {
		return nil, err
	}

	stLog().Info().
		Str("reference", ref.Source).
		Str("grid", ref.Grid.String()).
		Str("tileSize", ref.TileSize.String()).
		Str("tileSource", string(opts.TileSource)).
		Int("width", canvas.Image().Bounds().Dx()).
		Int("height", canvas.Image().Bounds().Dy()).
		Msg("Canvas allocated")

	return &Compositor{cal: cal, opts: opts, ref: ref, canvas: canvas}, nil
}

// Canvas returns the canvas being composited.
func (c *Compositor) Canvas() *Canvas { return c.canvas }

// Reference returns the run calibration.
func (c *Compositor) Reference() Reference { return c.ref }

// Add analyses img and composites it. The analysis is returned even when
// compositing fails so callers can report where the cursor was.
func (c *Compositor) Add(name string, img image.Image) (*minimap.Analysis, error) {
	a, err := minimap.Analyze(img, c.cal)
	if err != nil {
		return nil, NewImageError(name, minimap.StageCorner, err)
	}
	return a, c.Place(name, img, a)
}

// Place composites an already analysed image.
func (c *Compositor) Place(name string, img image.Image, a *minimap.Analysis) error {
	if err := c.check(img, a); err != nil {
		return &ImageError{Path: name, Stage: StageComposite, Err: err}
	}

	sr := img.Bounds()
	if c.opts.TileSource == TileMinimap {
		sr = image.Rectangle{
			Min: a.Corner,
			Max: a.Corner.Add(image.Pt(c.ref.TileSize.Width, c.ref.TileSize.Height)),
		}
	}
	if err := c.canvas.Place(a.Tile, img, sr, name); err != nil {
		return &ImageError{Path: name, Stage: StageComposite, Err: err}
	}

	stLog().Info().
		Str("source", name).
		Str("tile", a.Tile.String()).
		Msg("Tile composited")
	return nil
}

// check validates img against the calibration image.
func (c *Compositor) check(img image.Image, a *minimap.Analysis) error {
	tol := c.opts.ExtentTolerance
	if abs(a.Extent.Width-c.ref.Minimap.Width) > tol || abs(a.Extent.Height-c.ref.Minimap.Height) > tol {
		return fmt.Errorf("%w: minimap %v, calibrated %v (tolerance %d)", ErrExtentMismatch, a.Extent, c.ref.Minimap, tol)
	}
	if c.opts.TileSource == TileFrame {
		frame := minimap.Extent{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
		if frame != c.ref.Frame {
			return fmt.Errorf("%w: frame %v, calibrated %v", ErrExtentMismatch, frame, c.ref.Frame)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
