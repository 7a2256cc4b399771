package cli

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/imageio"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
)

var analyzeCal calibrationFlags

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Print the minimap analysis of one screenshot",
	Long: `Analyze runs detection on one screenshot and prints the result as JSON:
minimap corner and extent, cursor position and size, tile pitch, the tile
under the cursor and the map size in tiles.

Use it to check calibration values before stitching a batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCal.register(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	analyzeCal.apply(cmd, cfg)
	if err := cfg.Calibration.Validate(); err != nil {
		return err
	}

	img, format, err := imageio.Load(args[0])
	if err != nil {
		return err
	}

	a, err := minimap.Analyze(img, cfg.Calibration)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := struct {
		Path   string `json:"path"`
		Format string `json:"format"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
		*minimap.Analysis
	}{args[0], format, img.Bounds().Dx(), img.Bounds().Dy(), a}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
