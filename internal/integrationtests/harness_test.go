package integrationtests

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/tileatlas/internal/app"
	"github.com/specialistvlad/tileatlas/internal/hcl"
	"github.com/specialistvlad/tileatlas/internal/testutil"
	"github.com/specialistvlad/tileatlas/internal/tile"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	Root      string
	Output    string
	LogOutput string
	Err       error
}

// runApp builds the atlas for cfg with the real HCL loader, rooted at root.
func runApp(t *testing.T, root string, cfg app.Config) *harnessResult {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}

	a := app.NewApp(out, logs, &cfg, hcl.NewLoader(root))
	err := a.Run(context.Background())

	if os.Getenv("TILEATLAS_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
	return &harnessResult{Root: root, Output: out.String(), LogOutput: logs.String(), Err: err}
}

// stockAssets lays out the demo asset tree the embedded manifest expects.
// The decoration sheet has 32 cells of which 20 are transparent; the fence
// sheet has 16 cells of which 4 are transparent.
func stockAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	tiles := filepath.Join(root, "demo", "assets", "Cute_Fantasy_Free", "Tiles")
	decor := filepath.Join(root, "demo", "assets", "Cute_Fantasy_Free", "Outdoor decoration")

	single := func(name string, c color.NRGBA) {
		testutil.WritePNG(t, filepath.Join(tiles, name), testutil.Tinted(16, c))
	}
	single("Grass_Middle.png", color.NRGBA{G: 200, A: 255})
	single("Path_Middle.png", color.NRGBA{R: 160, G: 130, B: 90, A: 255})
	single("Water_Middle.png", color.NRGBA{B: 220, A: 255})

	testutil.WritePNG(t, filepath.Join(tiles, "FarmLand_Tile.png"), testutil.Sheet(3, 3, 16, nil))
	testutil.WritePNG(t, filepath.Join(tiles, "Path_Tile.png"), testutil.Sheet(3, 6, 16, nil))
	testutil.WritePNG(t, filepath.Join(tiles, "Water_Tile.png"), testutil.Sheet(3, 6, 16, nil))
	testutil.WritePNG(t, filepath.Join(tiles, "Cliff_Tile.png"), testutil.Sheet(3, 6, 16, nil))
	testutil.WritePNG(t, filepath.Join(tiles, "Beach_Tile.png"), testutil.Sheet(5, 3, 16, nil))

	testutil.WritePNG(t, filepath.Join(decor, "Outdoor_Decor_Free.png"),
		testutil.Sheet(8, 4, 16, func(i int) bool { return i%8 >= 3 }))
	testutil.WritePNG(t, filepath.Join(decor, "Fences.png"),
		testutil.Sheet(4, 4, 16, func(i int) bool { return i%4 == 3 }))
	testutil.WritePNG(t, filepath.Join(decor, "Chest.png"), testutil.Tinted(16, color.NRGBA{R: 120, G: 70, A: 255}))

	return root
}

func decodeAtlas(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	return tile.ToNRGBA(testutil.ReadPNG(t, path))
}
