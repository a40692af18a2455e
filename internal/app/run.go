package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/tileatlas/internal/assemble"
	"github.com/specialistvlad/tileatlas/internal/atlas"
	"github.com/specialistvlad/tileatlas/internal/config"
	"github.com/specialistvlad/tileatlas/internal/ctxlog"
	"github.com/specialistvlad/tileatlas/internal/preview"
)

// Run loads the manifest, builds the atlas, writes it (and the optional
// preview) to disk and prints the tile index. Nothing is written unless
// every group was assembled successfully.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loadManifest(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Loading %d groups...\n", len(model.Groups))
	res, err := assemble.New(model, a.outW).Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to assemble tiles: %w", err)
	}

	total := len(res.Tiles)
	img := atlas.Compose(res.Tiles, model.Columns, model.TileSize)
	b := img.Bounds()
	fmt.Fprintf(a.outW, "\nAtlas: %d cols x %d rows = %dx%d px\n", model.Columns, atlas.Rows(total, model.Columns), b.Dx(), b.Dy())
	fmt.Fprintf(a.outW, "Total tiles: %d\n", total)

	if err := atlas.Save(model.Output, img); err != nil {
		return fmt.Errorf("failed to save atlas: %w", err)
	}
	a.logger.Info("Atlas written.", "path", model.Output, "tiles", total, "width", b.Dx(), "height", b.Dy())
	fmt.Fprintf(a.outW, "\nSaved: %s\n", model.Output)

	if p := model.Preview; p != nil {
		pv := preview.Render(img, preview.Options{
			Count:   total,
			Columns: model.Columns,
			Size:    model.TileSize,
			Scale:   p.Scale,
			Labels:  p.Labels,
		})
		if err := atlas.Save(p.Path, pv); err != nil {
			return fmt.Errorf("failed to save preview: %w", err)
		}
		a.logger.Info("Preview written.", "path", p.Path, "scale", p.Scale)
		fmt.Fprintf(a.outW, "Preview: %s\n", p.Path)
	}

	fmt.Fprintln(a.outW)
	if err := atlas.WriteIndex(a.outW, atlas.BuildIndex(res.Spans())); err != nil {
		return fmt.Errorf("failed to print tile index: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadManifest loads the configured manifest and applies CLI overrides.
func (a *App) loadManifest(ctx context.Context) (*config.Model, error) {
	var paths []string
	if a.config.ManifestPath != "" {
		paths = append(paths, a.config.ManifestPath)
	}

	model, err := a.loader.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	if a.config.Output != "" {
		model.Output = a.config.Output
	}
	if a.config.Strict {
		model.Strict = true
	}
	a.logger.Debug("Manifest loaded.", "groups", len(model.Groups), "output", model.Output, "strict", model.Strict)
	return model, nil
}
