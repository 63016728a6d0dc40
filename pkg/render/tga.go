package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed      = 2  // Uncompressed true-color
	TGATypeGray              = 3  // Uncompressed grayscale
	TGATypeRLE               = 10 // RLE compressed true-color
	TGATypeRLEGray           = 11 // RLE compressed grayscale
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

var errTGATruncated = errors.New("TGA pixel data truncated")

// DecodeTGA decodes a TGA image file.
//
// Supports true-color (types 2 and 10, 24/32 bpp, stored as BGR(A)) and
// grayscale (types 3 and 11, 8 bpp) images, raw or RLE compressed. True-color
// images decode to *image.NRGBA, grayscale to *image.Gray.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	gray := false
	switch imageType {
	case TGATypeUncompressed, TGATypeRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d for true-color", bpp)
		}
	case TGATypeGray, TGATypeRLEGray:
		if bpp != 8 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d for grayscale", bpp)
		}
		gray = true
	default:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}

	if err := checkDimensions(width, height); err != nil {
		return nil, fmt.Errorf("TGA header: %w", err)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]
	bytesPerPixel := bpp / 8

	// Rows are stored bottom-up unless bit 5 of the descriptor is set.
	topToBottom := descriptor&tgaDescriptorTopToBottom != 0

	var (
		img image.Image
		put func(x, y int, px []byte)
	)
	if gray {
		g := image.NewGray(image.Rect(0, 0, width, height))
		put = func(x, y int, px []byte) {
			g.SetGray(x, y, color.Gray{Y: px[0]})
		}
		img = g
	} else {
		n := image.NewNRGBA(image.Rect(0, 0, width, height))
		put = func(x, y int, px []byte) {
			a := uint8(255)
			if len(px) == 4 {
				a = px[3]
			}
			n.SetNRGBA(x, y, color.NRGBA{R: px[2], G: px[1], B: px[0], A: a})
		}
		img = n
	}

	place := func(pixelIdx int, px []byte) {
		x := pixelIdx % width
		y := pixelIdx / width
		if !topToBottom {
			y = height - 1 - y
		}
		put(x, y, px)
	}

	if imageType == TGATypeRLE || imageType == TGATypeRLEGray {
		if err := decodeTGARLE(pixelData, width*height, bytesPerPixel, place); err != nil {
			return nil, err
		}
		return img, nil
	}

	if len(pixelData) < width*height*bytesPerPixel {
		return nil, errTGATruncated
	}
	for i := range width * height {
		place(i, pixelData[i*bytesPerPixel:(i+1)*bytesPerPixel])
	}
	return img, nil
}

// decodeTGARLE expands run-length packets, handing each pixel to place in
// file order.
func decodeTGARLE(pixelData []byte, pixelCount, bytesPerPixel int, place func(int, []byte)) error {
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return errTGATruncated
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet - repeat single pixel
			if dataIdx+bytesPerPixel > len(pixelData) {
				return errTGATruncated
			}
			px := pixelData[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				place(pixelIdx, px)
				pixelIdx++
			}
			continue
		}

		// Raw packet - read count pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return errTGATruncated
			}
			place(pixelIdx, pixelData[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return nil
}
