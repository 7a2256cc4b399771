package maastitch

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/stitch"
)

// recognitionParam is custom_recognition_param of MinimapTileRecognition.
// Missing fields keep their defaults.
type recognitionParam struct {
	Calibration minimap.Calibration `json:"calibration"`
}

// stitchParam is custom_action_param of MinimapStitchAction. With Reset
// the session is restarted with Calibration and Stitch before the frame is
// captured.
type stitchParam struct {
	Reset       bool                `json:"reset"`
	Calibration minimap.Calibration `json:"calibration"`
	Stitch      stitch.Options      `json:"stitch"`
	Notify      bool                `json:"notify"`
}

// saveParam is custom_action_param of MinimapSaveAction.
type saveParam struct {
	Path         string `json:"path"`
	Preview      string `json:"preview"`
	PreviewWidth int    `json:"preview_width"`
	Report       string `json:"report"`
	Reset        bool   `json:"reset"`
}

func parseRecognitionParam(raw string) (recognitionParam, error) {
	p := recognitionParam{Calibration: minimap.DefaultCalibration()}
	if err := unmarshalParam(raw, &p); err != nil {
		return p, err
	}
	return p, p.Calibration.Validate()
}

func parseStitchParam(raw string) (stitchParam, error) {
	p := stitchParam{
		Calibration: minimap.DefaultCalibration(),
		Stitch:      LiveOptions(),
		Notify:      true,
	}
	if err := unmarshalParam(raw, &p); err != nil {
		return p, err
	}
	return p, nil
}

func parseSaveParam(raw string) (saveParam, error) {
	p := saveParam{
		Path:         "debug/map-stitcher/map.png",
		PreviewWidth: 1024,
	}
	if err := unmarshalParam(raw, &p); err != nil {
		return p, err
	}
	if strings.TrimSpace(p.Path) == "" {
		return p, fmt.Errorf("path is required")
	}
	return p, nil
}

// unmarshalParam decodes a custom param into v. Empty params and "{}"
// leave v untouched.
func unmarshalParam(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}
	if err := sonic.UnmarshalString(raw, v); err != nil {
		return fmt.Errorf("invalid param %q: %w", raw, err)
	}
	return nil
}
