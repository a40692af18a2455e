// Package preview renders an enlarged copy of an atlas for humans: pixels
// are scaled with nearest-neighbour sampling, cells are outlined, and each
// occupied cell can be labelled with its 1-based slot number.
package preview

import (
	"image"
	"image/color"
	"strconv"

	"github.com/specialistvlad/tileatlas/internal/atlas"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	gridColor   = image.NewUniform(color.NRGBA{R: 128, G: 128, B: 128, A: 160})
	labelColor  = image.NewUniform(color.NRGBA{R: 255, G: 255, B: 0, A: 255})
	shadowColor = image.NewUniform(color.NRGBA{A: 255})
)

// Options controls Render.
type Options struct {
	// Count is the number of occupied slots; only those are labelled.
	Count   int
	Columns int
	Size    int
	Scale   int
	Labels  bool
}

// Render returns src enlarged by opts.Scale with a cell grid drawn over it.
func Render(src image.Image, opts Options) *image.NRGBA {
	if opts.Scale <= 0 {
		panic("preview scale must be positive")
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*opts.Scale, b.Dy()*opts.Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	cell := opts.Size * opts.Scale
	drawGrid(dst, cell)

	if opts.Labels {
		for slot := 1; slot <= opts.Count; slot++ {
			r := atlas.SlotRect(slot, opts.Columns, opts.Size)
			label(dst, r.Min.Mul(opts.Scale), strconv.Itoa(slot))
		}
	}
	return dst
}

func drawGrid(dst *image.NRGBA, cell int) {
	b := dst.Bounds()
	if cell <= 1 {
		return
	}
	for x := b.Min.X; x < b.Max.X; x += cell {
		draw.Draw(dst, image.Rect(x, b.Min.Y, x+1, b.Max.Y), gridColor, image.Point{}, draw.Over)
	}
	for y := b.Min.Y; y < b.Max.Y; y += cell {
		draw.Draw(dst, image.Rect(b.Min.X, y, b.Max.X, y+1), gridColor, image.Point{}, draw.Over)
	}
}

// label writes text in the top-left corner of the cell starting at at, with
// a one-pixel drop shadow so it stays readable on light tiles.
func label(dst draw.Image, at image.Point, text string) {
	face := basicfont.Face7x13
	baseline := at.Y + 2 + face.Ascent

	shadow := font.Drawer{
		Dst:  dst,
		Src:  shadowColor,
		Face: face,
		Dot:  fixed.P(at.X+3, baseline+1),
	}
	shadow.DrawString(text)

	fg := font.Drawer{
		Dst:  dst,
		Src:  labelColor,
		Face: face,
		Dot:  fixed.P(at.X+2, baseline),
	}
	fg.DrawString(text)
}
