package minimap

import (
	"errors"
	"fmt"
)

var (
	// ErrBoundsOverrun means a scan reached the edge of the image before
	// finding the pixel it was looking for.
	ErrBoundsOverrun = errors.New("scan ran out of image bounds")
	// ErrEmptyExtent means the minimap corner is itself a background pixel.
	ErrEmptyExtent = errors.New("minimap has zero extent")
	// ErrCursorNotFound means no pixel inside the minimap differs from the
	// terrain colour.
	ErrCursorNotFound = errors.New("cursor not found in minimap")
	// ErrInvalidPitch means the padded cursor size is not positive.
	ErrInvalidPitch = errors.New("tile pitch must be positive")
)

// Stage names one step of the detection pipeline.
type Stage string

const (
	StageCorner     Stage = "corner"
	StageExtent     Stage = "extent"
	StageCursor     Stage = "cursor"
	StageCursorSize Stage = "cursor-size"
	StageTile       Stage = "tile"
)

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
