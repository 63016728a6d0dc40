package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // Register BMP decoder
)

// MaxDecodePixels bounds the pixel count the PPM and TGA decoders accept,
// 8192x8192.
const MaxDecodePixels = 1 << 26

// ErrImageTooLarge is returned when a file header declares more than
// MaxDecodePixels pixels.
var ErrImageTooLarge = errors.New("render: image too large")

// checkDimensions validates a decoded header size before anything is
// allocated for it.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bad image dimensions %dx%d", width, height)
	}
	if width > MaxDecodePixels/height {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}
	return nil
}

// decodeFile decodes an image file. TGA has no magic number, so it is
// chosen by extension; every other format is sniffed by image.Decode.
func decodeFile(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return DecodeTGA(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
