package maastitch

import (
	"fmt"

	"github.com/MaaXYZ/maa-framework-go/v4"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/pkg/maafocus"
)

// MinimapStitchAction captures a frame and stitches it into the session
// map. It fails when the frame could not be captured or placed.
type MinimapStitchAction struct{}

// Run implements maa.CustomActionRunner.
func (a *MinimapStitchAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	if stopping(ctx) {
		return true
	}

	param, err := parseStitchParam(arg.CustomActionParam)
	if err != nil {
		msLog().Error().Err(err).Str("task", arg.CurrentTaskName).Msg("Bad stitch param")
		return false
	}
	if param.Reset {
		if err := defaultSession.Reset(param.Calibration, param.Stitch); err != nil {
			msLog().Error().Err(err).Msg("Invalid session settings")
			return false
		}
		msLog().Info().
			Str("tileSource", string(param.Stitch.TileSource)).
			Str("collision", string(param.Stitch.Collision)).
			Msg("Session reset")
	}

	ctrl := ctx.GetTasker().GetController()
	ctrl.PostScreencap().Wait()
	img, err := ctrl.CacheImage()
	if err != nil || img == nil {
		msLog().Warn().Err(err).Msg("Screenshot failed")
		return false
	}

	analysis, err := defaultSession.Add(img)
	progress := defaultSession.Progress()
	if err != nil {
		msLog().Warn().
			Err(err).
			Int("frames", progress.Frames).
			Msg("Frame not stitched")
		return false
	}

	msLog().Info().
		Str("tile", analysis.Tile.String()).
		Int("tilesFilled", progress.TilesFilled).
		Int("tilesTotal", progress.TilesTotal).
		Msg("Frame stitched")

	if param.Notify {
		if err := maafocus.Progress(ctx, fmt.Sprintf("Map tile %s stitched", analysis.Tile), progress.TilesFilled, progress.TilesTotal); err != nil {
			msLog().Debug().Err(err).Msg("Focus message failed")
		}
	}
	return true
}

// MinimapSaveAction writes the session map to disk.
type MinimapSaveAction struct{}

// Run implements maa.CustomActionRunner.
func (a *MinimapSaveAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	param, err := parseSaveParam(arg.CustomActionParam)
	if err != nil {
		msLog().Error().Err(err).Str("task", arg.CurrentTaskName).Msg("Bad save param")
		return false
	}

	if err := defaultSession.Save(param.Path, param.Preview, param.PreviewWidth, param.Report); err != nil {
		msLog().Error().Err(err).Str("path", param.Path).Msg("Failed to save map")
		return false
	}

	progress := defaultSession.Progress()
	msLog().Info().
		Str("path", param.Path).
		Int("frames", progress.Frames).
		Int("tilesFilled", progress.TilesFilled).
		Msg("Map saved")

	if param.Reset {
		cal, opts := defaultSession.Settings()
		if err := defaultSession.Reset(cal, opts); err != nil {
			msLog().Warn().Err(err).Msg("Failed to reset session")
		}
	}
	return true
}

func stopping(ctx *maa.Context) bool {
	if ctx == nil {
		return true
	}
	t := ctx.GetTasker()
	if t == nil {
		return true
	}
	return t.Stopping() || !t.Running()
}
