package main

import (
	"github.com/rs/zerolog/log"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/maastitch"
)

func registerAll() {
	// Register all custom components from each package
	maastitch.Register()

	log.Info().
		Msg("All custom components registered successfully")
}
