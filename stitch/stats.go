package stitch

import (
	"gonum.org/v1/gonum/stat"
)

// Spread is the mean and sample standard deviation of one measurement.
type Spread struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Stats summarises the detections of a run. A wide spread in minimap
// extent or cursor size usually means the tolerances are off for the
// capture source.
type Stats struct {
	Samples      int    `json:"samples"`
	ExtentWidth  Spread `json:"extent_width"`
	ExtentHeight Spread `json:"extent_height"`
	CursorWidth  Spread `json:"cursor_width"`
	CursorHeight Spread `json:"cursor_height"`
}

// ComputeStats gathers every image that got through detection, whether or
// not it was composited.
func ComputeStats(images []ImageResult) Stats {
	var ew, eh, cw, ch []float64
	for _, img := range images {
		if img.Analysis == nil {
			continue
		}
		a := img.Analysis
		ew = append(ew, float64(a.Extent.Width))
		eh = append(eh, float64(a.Extent.Height))
		cw = append(cw, float64(a.CursorSize.Width))
		ch = append(ch, float64(a.CursorSize.Height))
	}
	return Stats{
		Samples:      len(ew),
		ExtentWidth:  spread(ew),
		ExtentHeight: spread(eh),
		CursorWidth:  spread(cw),
		CursorHeight: spread(ch),
	}
}

func spread(xs []float64) Spread {
	switch len(xs) {
	case 0:
		return Spread{}
	case 1:
		return Spread{Mean: xs[0]}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Spread{Mean: mean, StdDev: std}
}
