package tile

import "image"

// IsEmpty reports whether every pixel of t has zero alpha.
func IsEmpty(t *image.NRGBA) bool {
	b := t.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := t.Pix[t.PixOffset(b.Min.X, y):t.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0 {
				return false
			}
		}
	}
	return true
}

// DropEmpty returns the non-empty tiles of in, keeping their relative order.
func DropEmpty(in []*image.NRGBA) []*image.NRGBA {
	out := make([]*image.NRGBA, 0, len(in))
	for _, t := range in {
		if !IsEmpty(t) {
			out = append(out, t)
		}
	}
	return out
}
