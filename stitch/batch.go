package stitch

import (
	"context"
	"errors"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/imageio"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

// ImageResult is the outcome for one input image. Err is nil when the
// image was composited.
type ImageResult struct {
	Path     string
	Analysis *minimap.Analysis
	Err      *ImageError
}

// Result is the outcome of a batch run.
type Result struct {
	Reference Reference
	Canvas    *Canvas
	Images    []ImageResult
}

// Stitched returns how many images were composited.
func (r *Result) Stitched() int {
	n := 0
	for _, img := range r.Images {
		if img.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns how many images were rejected.
func (r *Result) Failed() int {
	return len(r.Images) - r.Stitched()
}

// Run stitches paths in order. The first image calibrates the run and
// sizes the canvas, so if it cannot be decoded or analysed Run returns its
// *ImageError. Every later failure is recorded in the result and the batch
// moves on. Cancelling ctx stops the run between two images; the partial
// result is returned with ctx's error.
func Run(ctx context.Context, paths []string, cal minimap.Calibration, opts Options) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	var comp *Compositor

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		img, _, err := imageio.Load(path)
		if err != nil {
			ie := &ImageError{Path: path, Stage: StageDecode, Err: err}
			if comp == nil {
				return res, ie
			}
			res.record(path, nil, ie)
			continue
		}

		if comp == nil {
			a, err := minimap.Analyze(img, cal)
			if err != nil {
				return res, NewImageError(path, minimap.StageCorner, err)
			}
			ref := NewReference(path, img, a, opts.TileSource)
			comp, err = NewCompositor(cal, opts, ref)
			if err != nil {
				return res, &ImageError{Path: path, Stage: StageComposite, Err: err}
			}
			res.Reference = ref
			res.Canvas = comp.Canvas()
			res.record(path, a, asImageError(comp.Place(path, img, a)))
			continue
		}

		a, err := comp.Add(path, img)
		res.record(path, a, asImageError(err))

		stLog().Debug().
			Int("index", i).
			Int("total", len(paths)).
			Str("path", path).
			Msg("Image processed")
	}

	stLog().Info().
		Int("stitched", res.Stitched()).
		Int("failed", res.Failed()).
		Int("tilesFilled", res.Canvas.Filled()).
		Msg("Batch finished")

	return res, nil
}

func (r *Result) record(path string, a *minimap.Analysis, err *ImageError) {
	if err != nil {
		stLog().Warn().
			Str("path", err.Path).
			Str("stage", string(err.Stage)).
			Err(err.Err).
			Msg("Image skipped")
	}
	r.Images = append(r.Images, ImageResult{Path: path, Analysis: a, Err: err})
}

func asImageError(err error) *ImageError {
	if err == nil {
		return nil
	}
	var ie *ImageError
	if errors.As(err, &ie) {
		return ie
	}
	return &ImageError{Stage: StageComposite, Err: err}
}
