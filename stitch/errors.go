package stitch

import (
	"errors"
	"fmt"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

var (
	// ErrNoInput means the batch was given no image paths.
	ErrNoInput = errors.New("no input images")
	// ErrCompositeOutOfBounds means the cursor's tile lies outside the
	// canvas grid.
	ErrCompositeOutOfBounds = errors.New("tile outside canvas")
	// ErrTileCollision means a cell was already written by another image.
	ErrTileCollision = errors.New("tile already composited")
	// ErrExtentMismatch means an image does not match the calibration
	// image's minimap extent or frame size.
	ErrExtentMismatch = errors.New("image does not match calibration")
)

// Stages added by the batch driver around the detection pipeline.
const (
	StageDecode    minimap.Stage = "decode"
	StageComposite minimap.Stage = "composite"
)

// ImageError reports a failure for one input image.
type ImageError struct {
	Path  string
	Stage minimap.Stage
	Err   error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// NewImageError attaches the path to err, taking the stage from a
// *minimap.StageError when there is one and fallback otherwise.
func NewImageError(path string, fallback minimap.Stage, err error) *ImageError {
	stage := fallback
	var se *minimap.StageError
	if errors.As(err, &se) {
		stage = se.Stage
		err = se.Err
	}
	return &ImageError{Path: path, Stage: stage, Err: err}
}
