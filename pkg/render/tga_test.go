package render

import (
	"errors"
	"image"
	"testing"
)

// tgaFile builds a TGA with the given type, size, depth and descriptor.
func tgaFile(kind byte, w, h, bpp int, descriptor byte, body ...byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = kind
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = byte(bpp)
	hdr[17] = descriptor
	return append(hdr, body...)
}

func TestDecodeTGA(t *testing.T) {
	// 2x2 true color, bottom-up: file rows are bottom then top.
	bottomUp := tgaFile(TGATypeUncompressed, 2, 2, 24, 0,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)
	topDown := tgaFile(TGATypeUncompressed, 1, 2, 32, tgaDescriptorTopToBottom,
		1, 2, 3, 4,
		5, 6, 7, 8,
	)
	rle := tgaFile(TGATypeRLE, 3, 1, 24, tgaDescriptorTopToBottom,
		0x81, 0, 0, 255, // run of two reds
		0x00, 255, 0, 0, // one raw blue
	)
	gray := tgaFile(TGATypeGray, 2, 1, 8, tgaDescriptorTopToBottom, 10, 200)
	rleGray := tgaFile(TGATypeRLEGray, 3, 1, 8, tgaDescriptorTopToBottom, 0x82, 77)

	tests := []struct {
		name string
		data []byte
		x, y int
		want Color
	}{
		{"bottom-up top left", bottomUp, 0, 0, Color{B: 255, A: 255}},
		{"bottom-up top right", bottomUp, 1, 0, ColorWhite},
		{"bottom-up bottom left", bottomUp, 0, 1, ColorRed},
		{"bottom-up bottom right", bottomUp, 1, 1, ColorGreen},
		{"32 bit keeps alpha", topDown, 0, 0, Color{R: 3, G: 2, B: 1, A: 4}},
		{"top-down second row", topDown, 0, 1, Color{R: 7, G: 6, B: 5, A: 8}},
		{"rle run", rle, 1, 0, ColorRed},
		{"rle raw", rle, 2, 0, Color{B: 255, A: 255}},
		{"gray", gray, 1, 0, Color{R: 200, A: 255}},
		{"rle gray", rleGray, 2, 0, Color{R: 77, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeTGA(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			got, err := CanvasFromImage(img).At(tt.x, tt.y)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDecodeTGAImageTypes(t *testing.T) {
	img, err := DecodeTGA(tgaFile(TGATypeGray, 1, 1, 8, 0, 9))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("grayscale decoded to %T", img)
	}
	img, err = DecodeTGA(tgaFile(TGATypeUncompressed, 1, 1, 24, 0, 1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.NRGBA); !ok {
		t.Errorf("true color decoded to %T", img)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaFile(TGATypeUncompressed, 1, 1, 24, 0, 0, 0, 0)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", make([]byte, 10)},
		{"color mapped", colorMapped},
		{"unsupported type", tgaFile(1, 1, 1, 8, 0, 0)},
		{"16 bit color", tgaFile(TGATypeUncompressed, 1, 1, 16, 0, 0, 0)},
		{"24 bit gray", tgaFile(TGATypeGray, 1, 1, 24, 0, 0, 0, 0)},
		{"truncated raw", tgaFile(TGATypeUncompressed, 2, 2, 24, 0, 1, 2, 3)},
		{"truncated rle", tgaFile(TGATypeRLE, 4, 1, 24, 0, 0x81, 1, 2, 3)},
		{"rle missing run value", tgaFile(TGATypeRLE, 1, 1, 24, 0, 0x80, 1)},
		{"zero width", tgaFile(TGATypeUncompressed, 0, 1, 24, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeTGATooLarge(t *testing.T) {
	// A single RLE packet must not make the decoder allocate 65535x65535.
	data := tgaFile(TGATypeRLE, 65535, 65535, 32, 0, 0xFF, 1, 2, 3, 4)
	if _, err := DecodeTGA(data); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("DecodeTGA() = %v, want ErrImageTooLarge", err)
	}
}

func TestCheckDimensions(t *testing.T) {
	tests := []struct {
		w, h    int
		tooBig  bool
		wantErr bool
	}{
		{1, 1, false, false},
		{8192, 8192, false, false},
		{MaxDecodePixels, 1, false, false},
		{8193, 8192, true, true},
		{MaxDecodePixels + 1, 1, true, true},
		{0, 5, false, true},
		{5, -1, false, true},
	}
	for _, tt := range tests {
		err := checkDimensions(tt.w, tt.h)
		if (err != nil) != tt.wantErr || errors.Is(err, ErrImageTooLarge) != tt.tooBig {
			t.Errorf("checkDimensions(%d, %d) = %v", tt.w, tt.h, err)
		}
	}
}
