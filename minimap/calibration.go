package minimap

import "fmt"

// Calibration collects the rendering parameters of the overlay. Every
// detection stage takes it explicitly; changing resolution or HUD scale
// means recalibrating these values.
type Calibration struct {
	BackgroundTolerance int `yaml:"background_tolerance" json:"background_tolerance"`
	CursorTolerance     int `yaml:"cursor_tolerance" json:"cursor_tolerance"`
	CursorSizeTolerance int `yaml:"cursor_size_tolerance" json:"cursor_size_tolerance"`
	TilePadX            int `yaml:"tile_pad_x" json:"tile_pad_x"`
	TilePadY            int `yaml:"tile_pad_y" json:"tile_pad_y"`
}

// DefaultCalibration returns the values measured on 1152x1080 captures.
func DefaultCalibration() Calibration {
	return Calibration{
		BackgroundTolerance: BACKGROUND_TOLERANCE,
		CursorTolerance:     CURSOR_TOLERANCE,
		CursorSizeTolerance: CURSOR_SIZE_TOLERANCE,
		TilePadX:            TILE_PAD_X,
		TilePadY:            TILE_PAD_Y,
	}
}

// Validate rejects tolerances outside [0, 255] and negative padding.
func (c Calibration) Validate() error {
	tolerances := []struct {
		name  string
		value int
	}{
		{"background_tolerance", c.BackgroundTolerance},
		{"cursor_tolerance", c.CursorTolerance},
		{"cursor_size_tolerance", c.CursorSizeTolerance},
	}
	for _, t := range tolerances {
		if t.value < 0 || t.value > 255 {
			return fmt.Errorf("%s must be within [0, 255], got %d", t.name, t.value)
		}
	}
	if c.TilePadX < 0 || c.TilePadY < 0 {
		return fmt.Errorf("tile padding must not be negative, got (%d, %d)", c.TilePadX, c.TilePadY)
	}
	return nil
}

// Pitch returns the padded cursor size used as the spacing between tiles.
func (c Calibration) Pitch(cursor Extent) Extent {
	return Extent{
		Width:  cursor.Width + c.TilePadX,
		Height: cursor.Height + c.TilePadY,
	}
}
