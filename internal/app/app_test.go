package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/tileatlas/internal/config"
	"github.com/specialistvlad/tileatlas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader hands out a prepared model and records the paths it was asked for.
type stubLoader struct {
	model *config.Model
	err   error
	paths []string
}

func (s *stubLoader) Load(_ context.Context, paths ...string) (*config.Model, error) {
	s.paths = paths
	return s.model, s.err
}

func TestRun_WritesAtlasPreviewAndIndex(t *testing.T) {
	dir := t.TempDir()
	grass := testutil.WritePNG(t, filepath.Join(dir, "grass.png"), testutil.Tinted(16, color.NRGBA{G: 255, A: 255}))
	farm := testutil.WritePNG(t, filepath.Join(dir, "farm.png"), testutil.Sheet(3, 3, 16, nil))

	model := config.New()
	model.Output = filepath.Join(dir, "out", "tileset.png")
	model.Preview = &config.Preview{Path: filepath.Join(dir, "out", "preview.png"), Scale: 2, Labels: true}
	model.Groups = []*config.Group{
		{Name: "Grass", Sources: []string{grass}, Expect: 1},
		{Name: "FarmLand", Sources: []string{farm}, Expect: 9},
	}
	loader := &stubLoader{model: model}

	out, logs := &bytes.Buffer{}, &testutil.SafeBuffer{}
	a := NewApp(out, logs, &Config{LogLevel: "info", LogFormat: "text"}, loader)

	require.NoError(t, a.Run(context.Background()))
	assert.Empty(t, loader.paths, "no manifest path selects the embedded manifest")

	atlasImg := testutil.ReadPNG(t, model.Output)
	assert.Equal(t, image.Rect(0, 0, 256, 16), atlasImg.Bounds())
	previewImg := testutil.ReadPNG(t, model.Preview.Path)
	assert.Equal(t, image.Rect(0, 0, 512, 32), previewImg.Bounds())

	report := out.String()
	assert.Contains(t, report, "Loading 2 groups...\n")
	assert.Contains(t, report, "  FarmLand: 9 tiles (total: 10)\n")
	assert.Contains(t, report, "Atlas: 16 cols x 1 rows = 256x16 px\n")
	assert.Contains(t, report, "Total tiles: 10\n")
	assert.Contains(t, report, "Saved: "+model.Output+"\n")
	assert.Contains(t, report, "Preview: "+model.Preview.Path+"\n")
	assert.Contains(t, report, "=== TILE INDEX MAP ===\n")
	assert.Contains(t, report, "  Grass: tiles 1..1\n  FarmLand: tiles 2..10\n")

	assert.Contains(t, logs.String(), "Atlas written.")
}

func TestRun_Overrides(t *testing.T) {
	dir := t.TempDir()
	odd := testutil.WritePNG(t, filepath.Join(dir, "odd.png"), testutil.Tinted(20, color.NRGBA{A: 255}))

	model := config.New()
	model.Output = filepath.Join(dir, "manifest-output.png")
	model.Groups = []*config.Group{{Name: "Odd", Sources: []string{odd}}}
	override := filepath.Join(dir, "override.png")

	loader := &stubLoader{model: model}
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{ManifestPath: "atlas.hcl", Output: override, Strict: true}, loader)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"atlas.hcl"}, loader.paths)
	assert.True(t, model.Strict)
	assert.Equal(t, override, model.Output)
	assert.NoFileExists(t, override)
	assert.NoFileExists(t, filepath.Join(dir, "manifest-output.png"))
}

func TestRun_LoaderError(t *testing.T) {
	loadErr := errors.New("boom")
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{}, &stubLoader{err: loadErr})

	err := a.Run(context.Background())
	require.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "failed to load manifest")
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{LogFormat: "json", LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = NewConfig(Config{LogFormat: "yaml"})
	assert.Error(t, err)
	_, err = NewConfig(Config{LogLevel: "verbose"})
	assert.Error(t, err)
}

func TestNewLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger("error", "json", buf)
	logger.Warn("hidden")
	logger.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger("", "", buf).Info("quiet by default")
	assert.Empty(t, buf.String())
}
