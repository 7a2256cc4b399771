package minimap

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// mmLog returns the package logger, tagged module=minimap. It is derived on
// each call so it follows the global logger configured by the CLI.
func mmLog() *zerolog.Logger {
	l := log.With().Str("module", "minimap").Logger()
	return &l
}
