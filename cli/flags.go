package cli

import (
	"github.com/spf13/cobra"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/config"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/stitch"
)

// calibrationFlags holds the detection flags shared by stitch and analyze.
type calibrationFlags struct {
	backgroundTolerance int
	cursorTolerance     int
	cursorSizeTolerance int
	tilePadX            int
	tilePadY            int
}

func (f *calibrationFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.backgroundTolerance, "background-tolerance", minimap.BACKGROUND_TOLERANCE, "per-channel tolerance for the black background")
	cmd.Flags().IntVar(&f.cursorTolerance, "cursor-tolerance", minimap.CURSOR_TOLERANCE, "per-channel tolerance when searching for the cursor")
	cmd.Flags().IntVar(&f.cursorSizeTolerance, "cursor-size-tolerance", minimap.CURSOR_SIZE_TOLERANCE, "per-channel tolerance when measuring the cursor")
	cmd.Flags().IntVar(&f.tilePadX, "tile-pad-x", minimap.TILE_PAD_X, "pixels added to the cursor width to get the tile pitch")
	cmd.Flags().IntVar(&f.tilePadY, "tile-pad-y", minimap.TILE_PAD_Y, "pixels added to the cursor height to get the tile pitch")
}

// apply copies the flags the user actually set over cfg.
func (f *calibrationFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := map[string]struct {
		src *int
		dst *int
	}{
		"background-tolerance":  {&f.backgroundTolerance, &cfg.Calibration.BackgroundTolerance},
		"cursor-tolerance":      {&f.cursorTolerance, &cfg.Calibration.CursorTolerance},
		"cursor-size-tolerance": {&f.cursorSizeTolerance, &cfg.Calibration.CursorSizeTolerance},
		"tile-pad-x":            {&f.tilePadX, &cfg.Calibration.TilePadX},
		"tile-pad-y":            {&f.tilePadY, &cfg.Calibration.TilePadY},
	}
	for name, v := range set {
		if cmd.Flags().Changed(name) {
			*v.dst = *v.src
		}
	}
}

// stitchFlags holds the compositing flags of the stitch command.
type stitchFlags struct {
	tileSource      string
	collision       string
	extentTolerance int
}

func (f *stitchFlags) register(cmd *cobra.Command) {
	def := stitch.DefaultOptions()
	cmd.Flags().StringVar(&f.tileSource, "tile-source", string(def.TileSource), "what fills a map cell (frame, minimap)")
	cmd.Flags().StringVar(&f.collision, "collision", string(def.Collision), "when two images land on one tile (error, overwrite)")
	cmd.Flags().IntVar(&f.extentTolerance, "extent-tolerance", def.ExtentTolerance, "allowed minimap size drift from the first image, in pixels")
}

func (f *stitchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("tile-source") {
		cfg.Stitch.TileSource = stitch.TileSource(f.tileSource)
	}
	if cmd.Flags().Changed("collision") {
		cfg.Stitch.Collision = stitch.CollisionPolicy(f.collision)
	}
	if cmd.Flags().Changed("extent-tolerance") {
		cfg.Stitch.ExtentTolerance = f.extentTolerance
	}
}
