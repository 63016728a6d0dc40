package render

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testCanvas() *Canvas {
	c := NewCanvas(3, 2)
	for i := range c.Pix {
		c.Pix[i] = Color{R: uint8(10 * i), G: uint8(255 - i), B: uint8(i * i), A: uint8(i)}
	}
	return c
}

func TestWritePPMHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testCanvas()); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	header := "P6\n3 2\n255\n"
	if !strings.HasPrefix(string(data), header) {
		t.Fatalf("header = %q", data[:len(header)])
	}
	if len(data) != len(header)+3*2*3 {
		t.Errorf("file size = %d, want %d", len(data), len(header)+18)
	}
	// Second pixel, red channel first.
	if px := data[len(header)+3:]; px[0] != 10 || px[1] != 254 || px[2] != 1 {
		t.Errorf("second pixel bytes = %v", px[:3])
	}
}

func TestPPMRoundTrip(t *testing.T) {
	src := testCanvas()
	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := src.SavePPM(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := DecodePPM(f)
	if err != nil {
		t.Fatal(err)
	}

	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("size = %dx%d", got.Width, got.Height)
	}
	for i, want := range src.Pix {
		p := got.Pix[i]
		if p.R != want.R || p.G != want.G || p.B != want.B {
			t.Errorf("pixel %d = %v, want rgb of %v", i, p, want)
		}
		if p.A != 255 {
			t.Errorf("pixel %d alpha = %d, alpha is not stored", i, p.A)
		}
	}
}

func TestDecodePPMVariants(t *testing.T) {
	t.Run("comments", func(t *testing.T) {
		in := "P6\n# made by hand\n1 1\n# max\n255\n\x01\x02\x03"
		c, err := DecodePPM(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if c.Pix[0] != RGB(1, 2, 3) {
			t.Errorf("pixel = %v", c.Pix[0])
		}
	})

	bad := []struct {
		name string
		in   string
	}{
		{"ascii magic", "P3\n1 1\n255\n1 2 3\n"},
		{"short data", "P6\n2 2\n255\n\x00\x00"},
		{"deep color", "P6\n1 1\n65535\n\x00\x00\x00\x00\x00\x00"},
		{"bad width", "P6\nx 1\n255\n\x00\x00\x00"},
		{"empty", ""},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePPM(strings.NewReader(tt.in)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPPMRegisteredWithImage(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testCanvas()); err != nil {
		t.Fatal(err)
	}
	img, format, err := image.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if format != "ppm" || img.Bounds().Dx() != 3 {
		t.Errorf("decoded %q %v", format, img.Bounds())
	}
}

func TestDecodePPMHugeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"product overflows int", "P6\n4294967296 4294967296\n255\n"},
		{"too many pixels", "P6\n100000 100000\n255\n"},
		{"wide strip", "P6\n67108865 1\n255\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := DecodePPM(strings.NewReader(tt.in))
			if !errors.Is(err, ErrImageTooLarge) {
				t.Fatalf("DecodePPM() = %v, %v; want ErrImageTooLarge", c, err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "huge.ppm")
	if err := os.WriteFile(path, []byte(tests[0].in), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCanvas(path); err == nil {
		t.Error("LoadCanvas accepted an oversized PPM")
	}
}
