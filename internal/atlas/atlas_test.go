package atlas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/tileatlas/internal/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solid returns n distinct opaque size×size tiles.
func solid(n, size int) []*image.NRGBA {
	tiles := make([]*image.NRGBA, n)
	for i := range tiles {
		t := image.NewNRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				t.SetNRGBA(x, y, color.NRGBA{R: uint8(i), G: uint8(x), B: uint8(y), A: 255})
			}
		}
		tiles[i] = t
	}
	return tiles
}

func TestRows(t *testing.T) {
	testCases := []struct{ n, want int }{
		{0, 0}, {1, 1}, {12, 1}, {16, 1}, {17, 2}, {32, 2}, {110, 7},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Rows(tc.n, 16), "n=%d", tc.n)
	}
}

func TestCompose_DimensionsAndTransparentTail(t *testing.T) {
	tiles := solid(12, 16)

	img := Compose(tiles, 16, 16)
	require.Equal(t, image.Rect(0, 0, 256, 16), img.Bounds())

	for slot := 13; slot <= 16; slot++ {
		cell := img.SubImage(SlotRect(slot, 16, 16)).(*image.NRGBA)
		assert.True(t, tile.IsEmpty(cell), "slot %d should be transparent", slot)
	}
}

func TestCompose_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 15, 16, 17, 40} {
		tiles := solid(n, 16)
		img := Compose(tiles, 16, 16)
		require.Equal(t, Rows(n, 16)*16, img.Bounds().Dy())

		back := tile.Extract(img, 16)
		require.GreaterOrEqual(t, len(back), n)
		for i := 0; i < n; i++ {
			require.Equal(t, tiles[i].Pix, back[i].Pix, "n=%d tile %d differs after round trip", n, i)
		}
		for i := n; i < len(back); i++ {
			assert.True(t, tile.IsEmpty(back[i]), "n=%d padding cell %d should be empty", n, i)
		}
	}
}

func TestCellAndSlotRect(t *testing.T) {
	_, _, ok := Cell(0, 16)
	assert.False(t, ok)
	assert.True(t, SlotRect(0, 16, 16).Empty())

	c, r, ok := Cell(1, 16)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{c, r})

	c, r, _ = Cell(17, 16)
	assert.Equal(t, [2]int{0, 1}, [2]int{c, r})

	assert.Equal(t, image.Rect(240, 16, 256, 32), SlotRect(32, 16, 16))
}

func TestBuildIndex(t *testing.T) {
	entries := BuildIndex([]Span{
		{"Grass", 1}, {"PathMid", 1}, {"WaterMid", 1}, {"FarmLand", 9}, {"Fences", 0}, {"Chest", 1},
	})

	want := []Entry{
		{"Grass", 1, 1},
		{"PathMid", 2, 1},
		{"WaterMid", 3, 1},
		{"FarmLand", 4, 9},
		{"Fences", 13, 0},
		{"Chest", 13, 1},
	}
	assert.Equal(t, want, entries)
	assert.Equal(t, 12, entries[3].Last())
	assert.Equal(t, 12, entries[4].Last())
}

func TestWriteIndex(t *testing.T) {
	var buf bytes.Buffer
	err := WriteIndex(&buf, BuildIndex([]Span{{"Grass", 1}, {"FarmLand", 9}}))
	require.NoError(t, err)

	want := "=== TILE INDEX MAP ===\n" +
		"(index 0 = empty, index 1 = first tile)\n" +
		"  Grass: tiles 1..1\n" +
		"  FarmLand: tiles 2..10\n"
	assert.Equal(t, want, buf.String())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tileset.png")
	img := Compose(solid(3, 16), 16, 16)

	require.NoError(t, Save(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	assert.Equal(t, img.Pix, tile.ToNRGBA(decoded).Pix)
}

func TestSave_EncodeFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tileset.png")

	err := Save(path, image.NewNRGBA(image.Rect(0, 0, 16, 0)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode")
	assert.NoFileExists(t, path)
}
