package maastitch

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// msLog returns the package logger, tagged module=maastitch.
func msLog() *zerolog.Logger {
	l := log.With().Str("module", "maastitch").Logger()
	return &l
}
