// Package testutil holds fixtures shared by package tests: synthetic sprite
// sheets written to disk and a concurrency-safe log buffer.
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sheet builds a sprite sheet of cols×rows tiles of the given size. Every
// tile for which empty returns true is left fully transparent; every other
// tile is filled with an opaque colour derived from its row-major index, so
// tiles can be told apart after composition. A nil empty fills every tile.
func Sheet(cols, rows, size int, empty func(i int) bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols*size, rows*size))
	for i := 0; i < cols*rows; i++ {
		if empty != nil && empty(i) {
			continue
		}
		c := TileColor(i)
		x0, y0 := (i%cols)*size, (i/cols)*size
		for y := y0; y < y0+size; y++ {
			for x := x0; x < x0+size; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// TileColor is the fill colour Sheet uses for tile i.
func TileColor(i int) color.NRGBA {
	return color.NRGBA{R: uint8(i * 7), G: uint8(i * 13), B: uint8(i*29 + 1), A: 255}
}

// Tinted returns a single opaque size×size tile filled with c.
func Tinted(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// WritePNG encodes img to path, creating parent directories, and returns
// path for convenience.
func WritePNG(t *testing.T, path string, img image.Image) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

// ReadPNG decodes the PNG at path.
func ReadPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}
