package maastitch

import (
	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

// MinimapTileRecognition locates the minimap and the player cursor in the
// current frame. It hits when the whole pipeline succeeds; the box is the
// minimap and the detail is the analysis as JSON.
type MinimapTileRecognition struct{}

// Run implements maa.CustomRecognitionRunner.
func (r *MinimapTileRecognition) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	miss := &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}

	param, err := parseRecognitionParam(arg.CustomRecognitionParam)
	if err != nil {
		msLog().Error().
			Err(err).
			Str("recognition", arg.CustomRecognitionName).
			Msg("Bad recognition param")
		return miss, false
	}
	if arg.Img == nil {
		msLog().Warn().Str("recognition", arg.CustomRecognitionName).Msg("No image")
		return miss, false
	}

	a, err := minimap.Analyze(arg.Img, param.Calibration)
	if err != nil {
		msLog().Debug().Err(err).Msg("Minimap not recognised")
		return miss, false
	}

	detail, err := sonic.MarshalString(a)
	if err != nil {
		msLog().Error().Err(err).Msg("Failed to encode analysis")
		return miss, false
	}

	box := a.MapRect()
	return &maa.CustomRecognitionResult{
		Box:    maa.Rect{box.Min.X, box.Min.Y, box.Dx(), box.Dy()},
		Detail: detail,
	}, true
}
