package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/config"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/imageio"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/stitch"
)

var (
	stitchOutput       string
	stitchPreview      string
	stitchPreviewWidth int
	stitchReport       string
	stitchStrict       bool

	stitchCal  calibrationFlags
	stitchOpts stitchFlags
)

var stitchCmd = &cobra.Command{
	Use:   "stitch <images...>",
	Short: "Stitch screenshots into one map image",
	Long: `Stitch analyses every screenshot in the given order and pastes it into the
map cell under the player cursor.

The first image calibrates the run: its minimap size decides how many tiles
the map has and its frame (or minimap, with --tile-source minimap) decides
the size of a cell. If the first image cannot be used the run fails. Later
images that cannot be placed are reported and skipped.

Environment variables:
  MAPSTITCH_STRICT=true   fail when any image is skipped

Examples:
  map-stitcher stitch shots/*.png -o world.png
  map-stitcher stitch shots/*.png --tile-source minimap --collision overwrite
  map-stitcher stitch shots/*.png --report run.json --preview preview.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStitch,
}

func init() {
	stitchCmd.Flags().StringVarP(&stitchOutput, "output", "o", "map.png", "output PNG path")
	stitchCmd.Flags().StringVar(&stitchPreview, "preview", "", "also write a downscaled preview PNG")
	stitchCmd.Flags().IntVar(&stitchPreviewWidth, "preview-width", 1024, "preview width in pixels")
	stitchCmd.Flags().StringVar(&stitchReport, "report", "", "write a JSON run report")
	stitchCmd.Flags().BoolVar(&stitchStrict, "strict", false, "fail when any image is skipped")
	stitchCal.register(stitchCmd)
	stitchOpts.register(stitchCmd)

	rootCmd.AddCommand(stitchCmd)
}

func runStitch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stitchCal.apply(cmd, cfg)
	stitchOpts.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info().
		Int("images", len(args)).
		Str("tileSource", string(cfg.Stitch.TileSource)).
		Str("collision", string(cfg.Stitch.Collision)).
		Msg("Stitching")

	res, runErr := stitch.Run(cmd.Context(), args, cfg.Calibration, cfg.Stitch)
	if runErr != nil && (res == nil || res.Canvas == nil) {
		return fmt.Errorf("stitch failed: %w", runErr)
	}
	if runErr != nil {
		// Interrupted after calibration: keep what was stitched so far.
		log.Warn().Err(runErr).Msg("Run interrupted, writing partial map")
	}

	if err := imageio.SavePNG(stitchOutput, res.Canvas.Image()); err != nil {
		return err
	}
	if stitchPreview != "" {
		if err := imageio.SavePreview(stitchPreview, res.Canvas.Image(), stitchPreviewWidth); err != nil {
			return err
		}
	}
	if stitchReport != "" {
		if err := stitch.NewReport(res, stitchOutput).WriteFile(stitchReport); err != nil {
			return err
		}
	}

	dims := res.Canvas.Dimensions()
	fmt.Fprintf(cmd.OutOrStdout(), "Stitched %d of %d images into %s (%d/%d tiles)\n",
		res.Stitched(), len(res.Images), stitchOutput, res.Canvas.Filled(), dims.TilesWide*dims.TilesTall)
	for _, img := range res.Images {
		if img.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %v\n", img.Err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if res.Failed() > 0 && (stitchStrict || config.GetEnvBool("MAPSTITCH_STRICT")) {
		return errors.New("some images could not be stitched")
	}
	return nil
}
