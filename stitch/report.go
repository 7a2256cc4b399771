package stitch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

// ImageReport is the JSON form of an ImageResult.
type ImageReport struct {
	Path     string             `json:"path"`
	Stitched bool               `json:"stitched"`
	Tile     *minimap.TileIndex `json:"tile,omitempty"`
	Owner    string             `json:"owner,omitempty"`
	Stage    string             `json:"stage,omitempty"`
	Error    string             `json:"error,omitempty"`
	Analysis *minimap.Analysis  `json:"analysis,omitempty"`
}

// Report describes a finished run.
type Report struct {
	Output      string         `json:"output,omitempty"`
	Reference   Reference      `json:"reference"`
	Canvas      minimap.Extent `json:"canvas"`
	TileSize    minimap.Extent `json:"tile_size"`
	TilesFilled int            `json:"tiles_filled"`
	TilesTotal  int            `json:"tiles_total"`
	Stitched    int            `json:"stitched"`
	Failed      int            `json:"failed"`
	Stats       Stats          `json:"stats"`
	Images      []ImageReport  `json:"images"`
}

// NewReport builds the report for res. output is the composite path, if
// one was written.
func NewReport(res *Result, output string) *Report {
	rep := &Report{
		Output:    output,
		Reference: res.Reference,
		Stitched:  res.Stitched(),
		Failed:    res.Failed(),
		Stats:     ComputeStats(res.Images),
		Images:    make([]ImageReport, 0, len(res.Images)),
	}
	if res.Canvas != nil {
		b := res.Canvas.Image().Bounds()
		dims := res.Canvas.Dimensions()
		rep.Canvas = minimap.Extent{Width: b.Dx(), Height: b.Dy()}
		rep.TileSize = res.Canvas.TileSize()
		rep.TilesFilled = res.Canvas.Filled()
		rep.TilesTotal = dims.TilesWide * dims.TilesTall
	}

	for _, img := range res.Images {
		ir := ImageReport{
			Path:     img.Path,
			Stitched: img.Err == nil,
			Analysis: img.Analysis,
		}
		if img.Analysis != nil {
			tile := img.Analysis.Tile
			ir.Tile = &tile
			if res.Canvas != nil {
				ir.Owner, _ = res.Canvas.Owner(tile)
			}
		}
		if img.Err != nil {
			ir.Stage = string(img.Err.Stage)
			ir.Error = img.Err.Err.Error()
		}
		rep.Images = append(rep.Images, ir)
	}
	return rep
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
