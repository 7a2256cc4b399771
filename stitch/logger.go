package stitch

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// stLog returns the package logger, tagged module=stitch.
func stLog() *zerolog.Logger {
	l := log.With().Str("module", "stitch").Logger()
	return &l
}
