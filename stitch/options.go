package stitch

import "fmt"

// TileSource selects what is pasted into a map cell.
type TileSource string

const (
	// TileFrame pastes the whole screenshot; a cell is one screen.
	TileFrame TileSource = "frame"
	// TileMinimap pastes only the minimap crop.
	TileMinimap TileSource = "minimap"
)

// CollisionPolicy decides what happens when two images land on one cell.
type CollisionPolicy string

const (
	// CollisionError rejects the second image and keeps the first.
	CollisionError CollisionPolicy = "error"
	// CollisionOverwrite keeps the last image written.
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// Options controls how analysed screenshots are composited.
type Options struct {
	TileSource TileSource      `yaml:"tile_source" json:"tile_source"`
	Collision  CollisionPolicy `yaml:"collision" json:"collision"`
	// ExtentTolerance is how far, in pixels per axis, a minimap extent may
	// drift from the calibration image before the image is rejected.
	ExtentTolerance int `yaml:"extent_tolerance" json:"extent_tolerance"`
}

// DefaultOptions pastes full frames and refuses collisions.
func DefaultOptions() Options {
	return Options{
		TileSource:      TileFrame,
		Collision:       CollisionError,
		ExtentTolerance: 1,
	}
}

// Validate rejects unknown enum values and a negative tolerance.
func (o Options) Validate() error {
	switch o.TileSource {
	case TileFrame, TileMinimap:
	default:
		return fmt.Errorf("unknown tile source %q (supported: %s, %s)", o.TileSource, TileFrame, TileMinimap)
	}
	switch o.Collision {
	case CollisionError, CollisionOverwrite:
	default:
		return fmt.Errorf("unknown collision policy %q (supported: %s, %s)", o.Collision, CollisionError, CollisionOverwrite)
	}
	if o.ExtentTolerance < 0 {
		return fmt.Errorf("extent_tolerance must not be negative, got %d", o.ExtentTolerance)
	}
	return nil
}
