package atlas

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/specialistvlad/tileatlas/internal/tile"
)

// Rows returns how many grid rows n tiles occupy with the given column count.
func Rows(n, columns int) int {
	if columns <= 0 {
		panic("atlas column count must be positive")
	}
	return (n + columns - 1) / columns
}

// Bounds returns the pixel bounds of an atlas holding n tiles.
func Bounds(n, columns, size int) image.Rectangle {
	return image.Rect(0, 0, columns*size, Rows(n, columns)*size)
}

// Compose allocates a fully transparent canvas and copies tile i to cell
// (i % columns, i / columns). Cells past the last tile stay transparent.
// Tiles must be size×size.
func Compose(tiles []*image.NRGBA, columns, size int) *image.NRGBA {
	canvas := image.NewNRGBA(Bounds(len(tiles), columns, size))
	for i, t := range tiles {
		c, r := i%columns, i/columns
		tile.Copy(canvas, image.Pt(c*size, r*size), t, t.Bounds())
	}
	return canvas
}

// Cell returns the grid column and row of a 1-based slot. ok is false for
// slot 0, which has no cell.
func Cell(slot, columns int) (col, row int, ok bool) {
	if slot <= 0 {
		return 0, 0, false
	}
	i := slot - 1
	return i % columns, i / columns, true
}

// SlotRect returns the pixel rectangle backing a 1-based slot. Slot 0 yields
// the empty rectangle.
func SlotRect(slot, columns, size int) image.Rectangle {
	c, r, ok := Cell(slot, columns)
	if !ok {
		return image.Rectangle{}
	}
	return image.Rect(c*size, r*size, (c+1)*size, (r+1)*size)
}

// Save encodes img as PNG at path, creating parent directories as needed.
// A file left incomplete by a failed encode or close is removed.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
