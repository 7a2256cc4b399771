package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/stitch"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MAPSTITCH_"

// EnvVar describes one environment override.
type EnvVar struct {
	Key  string
	Desc string
}

// EnvVars lists the supported overrides in the order they are applied.
var EnvVars = []EnvVar{
	{EnvPrefix + "BACKGROUND_TOLERANCE", "background colour tolerance"},
	{EnvPrefix + "CURSOR_TOLERANCE", "cursor colour tolerance"},
	{EnvPrefix + "CURSOR_SIZE_TOLERANCE", "cursor size colour tolerance"},
	{EnvPrefix + "TILE_PAD_X", "horizontal tile padding"},
	{EnvPrefix + "TILE_PAD_Y", "vertical tile padding"},
	{EnvPrefix + "TILE_SOURCE", "tile source (frame, minimap)"},
	{EnvPrefix + "COLLISION", "collision policy (error, overwrite)"},
	{EnvPrefix + "EXTENT_TOLERANCE", "minimap extent tolerance"},
}

// ApplyEnv overrides cfg with any MAPSTITCH_* variables that are set.
func ApplyEnv(cfg *Config) error {
	ints := map[string]*int{
		EnvPrefix + "BACKGROUND_TOLERANCE":  &cfg.Calibration.BackgroundTolerance,
		EnvPrefix + "CURSOR_TOLERANCE":      &cfg.Calibration.CursorTolerance,
		EnvPrefix + "CURSOR_SIZE_TOLERANCE": &cfg.Calibration.CursorSizeTolerance,
		EnvPrefix + "TILE_PAD_X":            &cfg.Calibration.TilePadX,
		EnvPrefix + "TILE_PAD_Y":            &cfg.Calibration.TilePadY,
		EnvPrefix + "EXTENT_TOLERANCE":      &cfg.Stitch.ExtentTolerance,
	}

	for _, ev := range EnvVars {
		value := strings.TrimSpace(os.Getenv(ev.Key))
		if value == "" {
			continue
		}
		if dst, ok := ints[ev.Key]; ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s: invalid integer %q", ev.Key, value)
			}
			*dst = n
			continue
		}
		switch ev.Key {
		case EnvPrefix + "TILE_SOURCE":
			cfg.Stitch.TileSource = stitch.TileSource(strings.ToLower(value))
		case EnvPrefix + "COLLISION":
			cfg.Stitch.Collision = stitch.CollisionPolicy(strings.ToLower(value))
		}
	}
	return nil
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is set to "true",
// "1" or "yes".
func GetEnvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}
