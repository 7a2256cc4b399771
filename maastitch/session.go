package maastitch

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/imageio"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/stitch"
)

// ErrNoCanvas means nothing has been stitched since the session started.
var ErrNoCanvas = errors.New("no frame stitched yet")

// Progress is a snapshot of a live session.
type Progress struct {
	Frames      int `json:"frames"`
	Stitched    int `json:"stitched"`
	Failed      int `json:"failed"`
	TilesFilled int `json:"tiles_filled"`
	TilesTotal  int `json:"tiles_total"`
}

// Session composites frames captured during a task. The first frame that
// analyses cleanly calibrates the canvas; frames before it are counted as
// failed. Safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	cal    minimap.Calibration
	opts   stitch.Options
	comp   *stitch.Compositor
	frames int
	failed int
	images []stitch.ImageResult
}

// LiveOptions are the compositing defaults for live capture. The player
// walks back over visited tiles, so later frames replace earlier ones.
func LiveOptions() stitch.Options {
	opts := stitch.DefaultOptions()
	opts.Collision = stitch.CollisionOverwrite
	return opts
}

// NewSession returns an empty session.
func NewSession(cal minimap.Calibration, opts stitch.Options) *Session {
	return &Session{cal: cal, opts: opts}
}

// Reset discards the canvas and switches to new settings.
func (s *Session) Reset(cal minimap.Calibration, opts stitch.Options) error {
	if err := cal.Validate(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cal, s.opts = cal, opts
	s.comp = nil
	s.frames, s.failed = 0, 0
	s.images = nil
	return nil
}

// Settings returns the session's calibration and options.
func (s *Session) Settings() (minimap.Calibration, stitch.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cal, s.opts
}

// Add analyses img and composites it into the session canvas.
func (s *Session) Add(img image.Image) (*minimap.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	name := fmt.Sprintf("frame-%04d", s.frames)

	a, err := s.add(name, img)
	res := stitch.ImageResult{Path: name, Analysis: a}
	if err != nil {
		s.failed++
		var ie *stitch.ImageError
		if !errors.As(err, &ie) {
			ie = &stitch.ImageError{Path: name, Stage: stitch.StageComposite, Err: err}
		}
		res.Err = ie
	}
	s.images = append(s.images, res)
	return a, err
}

func (s *Session) add(name string, img image.Image) (*minimap.Analysis, error) {
	if s.comp != nil {
		return s.comp.Add(name, img)
	}

	a, err := minimap.Analyze(img, s.cal)
	if err != nil {
		return nil, stitch.NewImageError(name, minimap.StageCorner, err)
	}
	comp, err := stitch.NewCompositor(s.cal, s.opts, stitch.NewReference(name, img, a, s.opts.TileSource))
	if err != nil {
		return a, err
	}
	s.comp = comp
	return a, comp.Place(name, img, a)
}

// Progress returns the current counters.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Progress{
		Frames:   s.frames,
		Stitched: s.frames - s.failed,
		Failed:   s.failed,
	}
	if s.comp != nil {
		dims := s.comp.Canvas().Dimensions()
		p.TilesFilled = s.comp.Canvas().Filled()
		p.TilesTotal = dims.TilesWide * dims.TilesTall
	}
	return p
}

// Save writes the canvas as PNG, plus a preview and a JSON report when
// their paths are set.
func (s *Session) Save(path, previewPath string, previewWidth int, reportPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.comp == nil {
		return ErrNoCanvas
	}
	canvas := s.comp.Canvas()
	if err := imageio.SavePNG(path, canvas.Image()); err != nil {
		return err
	}
	if previewPath != "" {
		if err := imageio.SavePreview(previewPath, canvas.Image(), previewWidth); err != nil {
			return err
		}
	}
	if reportPath != "" {
		res := &stitch.Result{Reference: s.comp.Reference(), Canvas: canvas, Images: s.images}
		if err := stitch.NewReport(res, path).WriteFile(reportPath); err != nil {
			return err
		}
	}
	return nil
}

var defaultSession = NewSession(minimap.DefaultCalibration(), LiveOptions())
