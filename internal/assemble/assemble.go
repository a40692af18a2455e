package assemble

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/specialistvlad/tileatlas/internal/atlas"
	"github.com/specialistvlad/tileatlas/internal/config"
	"github.com/specialistvlad/tileatlas/internal/ctxlog"
	"github.com/specialistvlad/tileatlas/internal/tile"
)

var (
	// ErrRemainder reports a source sheet that is not a whole number of
	// tiles wide or high. Only returned in strict mode.
	ErrRemainder = errors.New("source size is not a multiple of the tile size")
	// ErrTileCountMismatch reports an unfiltered group whose extracted tile
	// count differs from its declared count. Only returned in strict mode.
	ErrTileCountMismatch = errors.New("tile count does not match declared count")
	// ErrEmptySequence reports a manifest whose groups produced no tiles.
	ErrEmptySequence = errors.New("no tiles to compose")
)

// GroupResult records what one group contributed.
type GroupResult struct {
	Group *config.Group
	// Raw is the tile count before filtering.
	Raw int
	// Kept is the tile count appended to the sequence.
	Kept int
}

// Slots is the number of index slots the group claims. Unfiltered groups
// with a declared count claim exactly that count; everything else claims
// what it actually contributed.
func (r GroupResult) Slots() int {
	if r.Group.Variable() {
		return r.Kept
	}
	return r.Group.Expect
}

// Result is the outcome of a successful assembly.
type Result struct {
	Tiles  []*image.NRGBA
	Groups []GroupResult
}

// Spans converts the per-group results into index spans, in group order.
func (r *Result) Spans() []atlas.Span {
	spans := make([]atlas.Span, 0, len(r.Groups))
	for _, g := range r.Groups {
		spans = append(spans, atlas.Span{Name: g.Group.Name, Count: g.Slots()})
	}
	return spans
}

// Assembler builds the tile sequence for a manifest.
type Assembler struct {
	model *config.Model
	out   io.Writer
}

// New returns an Assembler for model that writes progress lines to out.
func New(model *config.Model, out io.Writer) *Assembler {
	return &Assembler{model: model, out: out}
}

// Run processes every group in order. It stops at the first failing source;
// no partial result is returned.
func (a *Assembler) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembly started.", "groups", len(a.model.Groups))

	res := &Result{}
	for _, g := range a.model.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gctx, _ := ctxlog.With(ctx, "group", g.Name)
		tiles, raw, err := a.runGroup(gctx, g)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}

		res.Tiles = append(res.Tiles, tiles...)
		res.Groups = append(res.Groups, GroupResult{Group: g, Raw: raw, Kept: len(tiles)})
		a.progress(g, len(tiles), len(res.Tiles))
	}

	if len(res.Tiles) == 0 {
		return nil, ErrEmptySequence
	}
	logger.Debug("Assembly finished.", "tiles", len(res.Tiles))
	return res, nil
}

func (a *Assembler) runGroup(ctx context.Context, g *config.Group) ([]*image.NRGBA, int, error) {
	logger := ctxlog.FromContext(ctx)
	size := a.model.TileSize

	var tiles []*image.NRGBA
	for _, path := range g.Sources {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		img, format, err := tile.Decode(path)
		if err != nil {
			return nil, 0, err
		}

		if dx, dy := tile.Remainder(img.Bounds(), size); dx != 0 || dy != 0 {
			if a.model.Strict {
				return nil, 0, fmt.Errorf("%w: %s is %dx%d px", ErrRemainder, path, img.Bounds().Dx(), img.Bounds().Dy())
			}
			logger.Warn("Source size is not a multiple of the tile size; truncating.",
				"path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "tile_size", size)
		}

		extracted := tile.Extract(img, size)
		logger.Debug("Source extracted.", "path", path, "format", format, "tiles", len(extracted))
		tiles = append(tiles, extracted...)
	}

	raw := len(tiles)
	if g.FilterEmpty {
		tiles = tile.DropEmpty(tiles)
		logger.Debug("Empty tiles dropped.", "raw", raw, "kept", len(tiles))
	}

	if !g.FilterEmpty && g.Expect > 0 && raw != g.Expect {
		if a.model.Strict {
			return nil, 0, fmt.Errorf("%w: declared %d, extracted %d", ErrTileCountMismatch, g.Expect, raw)
		}
		logger.Warn("Extracted tile count differs from declared count; index uses the declared count.",
			"declared", g.Expect, "extracted", raw)
	}
	return tiles, raw, nil
}

func (a *Assembler) progress(g *config.Group, n, total int) {
	noun := "tiles"
	if n == 1 {
		noun = "tile"
	}
	if g.FilterEmpty {
		noun = "non-empty " + noun
	}
	fmt.Fprintf(a.out, "  %s: %d %s (total: %d)\n", g.Name, n, noun, total)
}
