package tile

import (
	"fmt"
	"image"
	"os"

	// Source sheets are mostly PNG, but the decoders below let artists drop
	// in sheets exported from other tools without a conversion step.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode opens the file at path, decodes it with whichever registered format
// matches, and closes the file before returning.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, format, nil
}

// Load decodes the image at path and slices it into size×size tiles.
func Load(path string, size int) ([]*image.NRGBA, error) {
	img, _, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Extract(img, size), nil
}
