// Package config manages the stitcher's calibration and compositing
// settings.
package config

import (
	"fmt"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/stitch"
)

// Config represents the application configuration.
type Config struct {
	Calibration minimap.Calibration `yaml:"calibration" json:"calibration"`
	Stitch      stitch.Options      `yaml:"stitch" json:"stitch"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Calibration: minimap.DefaultCalibration(),
		Stitch:      stitch.DefaultOptions(),
	}
}

// Validate checks both sections.
func (c *Config) Validate() error {
	if err := c.Calibration.Validate(); err != nil {
		return fmt.Errorf("calibration: %w", err)
	}
	if err := c.Stitch.Validate(); err != nil {
		return fmt.Errorf("stitch: %w", err)
	}
	return nil
}
