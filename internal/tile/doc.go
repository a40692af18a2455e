// Package tile slices source images into fixed-size square tiles and answers
// whether a tile carries any visible pixels.
//
// Tiles are always *image.NRGBA values with their origin at (0, 0), so the
// alpha channel can be read directly from Pix regardless of the colour model
// the source file was stored in.
package tile
