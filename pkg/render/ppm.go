package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// WritePPM encodes c as a binary PPM (P6): an ASCII header followed by
// three bytes per pixel, row-major, top row first. Alpha is dropped.
func WritePPM(w io.Writer, c *Canvas) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", c.Width, c.Height); err != nil {
		return err
	}
	row := make([]byte, 3*c.Width)
	for y := range c.Height {
		for x := range c.Width {
			p := c.Pix[y*c.Width+x]
			row[3*x], row[3*x+1], row[3*x+2] = p.R, p.G, p.B
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SavePPM writes c to path as a binary PPM.
func (c *Canvas) SavePPM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePPM(f, c); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// DecodePPM reads a binary PPM (P6) with a maximum value of 255. Decoded
// pixels are opaque.
func DecodePPM(r io.Reader) (*Canvas, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P6" {
		return nil, fmt.Errorf("unsupported PPM magic %q", magic)
	}

	var dims [3]int
	for i := range dims {
		tok, err := ppmToken(br)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Sscanf(tok, "%d", &dims[i]); err != nil {
			return nil, fmt.Errorf("bad PPM header field %q: %w", tok, err)
		}
	}
	width, height, maxVal := dims[0], dims[1], dims[2]
	if err := checkDimensions(width, height); err != nil {
		return nil, fmt.Errorf("PPM header: %w", err)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("unsupported PPM max value %d", maxVal)
	}

	c := NewCanvas(width, height)
	px := make([]byte, 3*width*height)
	if _, err := io.ReadFull(br, px); err != nil {
		return nil, fmt.Errorf("PPM pixel data: %w", err)
	}
	for i := range c.Pix {
		c.Pix[i] = Color{R: px[3*i], G: px[3*i+1], B: px[3*i+2], A: 255}
	}
	return c, nil
}

// ppmToken reads one whitespace separated header token, skipping comments.
// The single whitespace byte after the token is consumed.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			return "", fmt.Errorf("PPM header: %w", err)
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("PPM header: %w", err)
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

// ppmImage adapts DecodePPM to image.Decode.
func ppmImage(r io.Reader) (image.Image, error) {
	c, err := DecodePPM(r)
	if err != nil {
		return nil, err
	}
	return c.ToImage(), nil
}

func ppmConfig(r io.Reader) (image.Config, error) {
	c, err := DecodePPM(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: c.Width, Height: c.Height}, nil
}

func init() {
	image.RegisterFormat("ppm", "P6", ppmImage, ppmConfig)
}
