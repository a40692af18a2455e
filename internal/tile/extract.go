package tile

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToNRGBA returns img as a non-premultiplied RGBA image whose bounds start at
// (0, 0). An *image.NRGBA already anchored at the origin is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src := img.(type) {
	case *image.NRGBA:
		Copy(dst, image.Point{}, src, b)
		return dst
	case *image.Paletted:
		copyPaletted(dst, src)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// copyPaletted expands the palette indices of src into dst. The PNG decoder
// keeps tRNS entries as color.NRGBA, so each entry is written unchanged;
// indices past the end of the palette become transparent black.
func copyPaletted(dst *image.NRGBA, src *image.Paletted) {
	pal := make([]color.NRGBA, len(src.Palette))
	for i, c := range src.Palette {
		pal[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}

	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(0, y-b.Min.Y)
		for x := 0; x < b.Dx(); x++ {
			var c color.NRGBA
			if idx := int(src.Pix[si+x]); idx < len(pal) {
				c = pal[idx]
			}
			dst.Pix[di+4*x] = c.R
			dst.Pix[di+4*x+1] = c.G
			dst.Pix[di+4*x+2] = c.B
			dst.Pix[di+4*x+3] = c.A
		}
	}
}

// Copy replaces the pixels of dst starting at at with the pixels of src inside
// r, byte for byte. Unlike draw.Src it never round-trips through
// premultiplied alpha, so semi-transparent pixels keep their exact values.
// The rectangle is clipped to both images.
func Copy(dst *image.NRGBA, at image.Point, src *image.NRGBA, r image.Rectangle) {
	r = r.Intersect(src.Bounds())
	dr := r.Sub(r.Min).Add(at).Intersect(dst.Bounds())
	if dr.Empty() {
		return
	}
	r = image.Rectangle{Min: r.Min.Add(dr.Min.Sub(at)), Max: r.Min.Add(dr.Max.Sub(at))}

	n := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		si := src.PixOffset(r.Min.X, r.Min.Y+y)
		di := dst.PixOffset(dr.Min.X, dr.Min.Y+y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
}

// Grid reports how many whole tiles of the given size fit across and down
// bounds. Remainder pixels are not counted.
func Grid(bounds image.Rectangle, size int) (cols, rows int) {
	if size <= 0 {
		panic("tile size must be positive")
	}
	return bounds.Dx() / size, bounds.Dy() / size
}

// Remainder reports the pixels left over on the right and bottom edges after
// slicing bounds into size×size tiles.
func Remainder(bounds image.Rectangle, size int) (dx, dy int) {
	if size <= 0 {
		panic("tile size must be positive")
	}
	return bounds.Dx() % size, bounds.Dy() % size
}

// Extract slices img into size×size tiles in row-major order: all columns of
// row 0 from left to right, then row 1, and so on. Pixels that do not fill a
// whole tile on the right or bottom edge are dropped. Every returned tile is
// a fresh copy anchored at (0, 0).
func Extract(img image.Image, size int) []*image.NRGBA {
	src := ToNRGBA(img)
	cols, rows := Grid(src.Bounds(), size)

	tiles := make([]*image.NRGBA, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := image.NewNRGBA(image.Rect(0, 0, size, size))
			Copy(t, image.Point{}, src, image.Rect(c*size, r*size, (c+1)*size, (r+1)*size))
			tiles = append(tiles, t)
		}
	}
	return tiles
}
