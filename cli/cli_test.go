package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/config"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/imageio"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap"
	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/minimap/minimaptest"
)

// resetFlags puts every flag of cmd and its subcommands back to its
// default so one test's arguments do not leak into the next.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("failed to reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestSetVersion(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()

	SetVersion("1.2.3")
	if version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got '%s'", version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "map-stitcher" {
		t.Errorf("expected Use 'map-stitcher', got '%s'", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	for _, name := range []string{"config", "log-level", "log-file", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	want := map[string]bool{"stitch": false, "analyze": false, "config": false, "agent": false, "version": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestStitchCommandFlags(t *testing.T) {
	if stitchCmd.Use != "stitch <images...>" {
		t.Errorf("expected Use 'stitch <images...>', got '%s'", stitchCmd.Use)
	}
	flags := []string{
		"output", "preview", "preview-width", "report", "strict",
		"tile-source", "collision", "extent-tolerance",
		"background-tolerance", "cursor-tolerance", "cursor-size-tolerance", "tile-pad-x", "tile-pad-y",
	}
	for _, name := range flags {
		if stitchCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s", name)
		}
	}
	if f := stitchCmd.Flags().ShorthandLookup("o"); f == nil || f.Name != "output" {
		t.Error("expected -o shorthand for --output")
	}
}

func TestConfigCommand(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range configCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range []string{"show", "init", "path"} {
		if !names[name] {
			t.Errorf("expected config subcommand %q", name)
		}
	}
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "shot.png")
	if err := imageio.SavePNG(shot, minimaptest.Default().Render()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	out, err := execute(t, "analyze", "--config", filepath.Join(dir, "none.yaml"), shot)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var got struct {
		Format     string                `json:"format"`
		Width      int                   `json:"width"`
		Tile       minimap.TileIndex     `json:"tile"`
		Dimensions minimap.MapDimensions `json:"dimensions"`
		Grid       minimap.MapDimensions `json:"grid"`
	}
	if err := sonic.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Format != "png" || got.Width != 120 {
		t.Errorf("unexpected image info %+v", got)
	}
	if got.Tile != (minimap.TileIndex{X: 2, Y: 1}) {
		t.Errorf("expected tile (2,1), got %v", got.Tile)
	}
	if got.Dimensions != (minimap.MapDimensions{TilesWide: 4, TilesTall: 2}) {
		t.Errorf("expected 4x2 tiles, got %v", got.Dimensions)
	}
	if got.Grid != (minimap.MapDimensions{TilesWide: 5, TilesTall: 3}) {
		t.Errorf("expected 5x3 grid, got %v", got.Grid)
	}
}

func TestStitchCommand(t *testing.T) {
	dir := t.TempDir()
	var shots []string
	for i, at := range []struct{ x, y int }{{18, 9}, {2, 2}} {
		p := filepath.Join(dir, "shot"+string(rune('0'+i))+".png")
		scene := minimaptest.Default()
		scene.CursorAt.X, scene.CursorAt.Y = at.x, at.y
		if err := imageio.SavePNG(p, scene.Render()); err != nil {
			t.Fatalf("SavePNG failed: %v", err)
		}
		shots = append(shots, p)
	}

	output := filepath.Join(dir, "out", "map.png")
	report := filepath.Join(dir, "out", "report.json")
	preview := filepath.Join(dir, "out", "preview.png")
	args := append([]string{
		"stitch", "--config", filepath.Join(dir, "none.yaml"),
		"-o", output, "--report", report, "--preview", preview, "--preview-width", "120",
		"--tile-source", "minimap",
	}, shots...)

	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("stitch failed: %v", err)
	}
	if !strings.Contains(out, "Stitched 2 of 2 images") {
		t.Errorf("unexpected summary %q", out)
	}

	img, _, err := imageio.Load(output)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	if img.Bounds().Dx() != 185 || img.Bounds().Dy() != 57 {
		t.Errorf("expected 185x57 map, got %v", img.Bounds())
	}

	pv, _, err := imageio.Load(preview)
	if err != nil {
		t.Fatalf("failed to load preview: %v", err)
	}
	if pv.Bounds().Dx() != 120 {
		t.Errorf("expected 120 px preview, got %v", pv.Bounds())
	}

	if _, err := os.Stat(report); err != nil {
		t.Errorf("expected report file: %v", err)
	}
}

func TestStitchCommand_FlagsDoNotLeak(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "shot.png")
	if err := imageio.SavePNG(shot, minimaptest.Default().Render()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	cfg := filepath.Join(dir, "none.yaml")

	cropped := filepath.Join(dir, "cropped.png")
	if _, err := execute(t, "stitch", "--config", cfg, "-o", cropped, "--tile-source", "minimap", shot); err != nil {
		t.Fatalf("minimap stitch failed: %v", err)
	}
	if !stitchCmd.Flags().Changed("tile-source") {
		t.Fatal("expected --tile-source to be marked changed after the first run")
	}

	full := filepath.Join(dir, "full.png")
	if _, err := execute(t, "stitch", "--config", cfg, "-o", full, shot); err != nil {
		t.Fatalf("frame stitch failed: %v", err)
	}
	img, _, err := imageio.Load(full)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 300 {
		t.Errorf("expected frame-sized 600x300 map, got %v", img.Bounds())
	}
}

func TestConfigInitAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	out, err := execute(t, "config", "path", "--config", path)
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("expected %s, got %q", path, out)
	}

	if _, err := execute(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if _, err := execute(t, "config", "init", "--config", path); !errors.Is(err, config.ErrConfigExists) {
		t.Errorf("expected ErrConfigExists, got %v", err)
	}
	if _, err := execute(t, "config", "init", "--force", "--config", path); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}
}
