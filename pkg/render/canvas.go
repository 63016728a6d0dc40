// Package render implements the raster side of the renderer: pixel
// surfaces, image codecs, textures, the shading contract and the triangle
// rasterizer that ties them together.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Canvas is a surface of colors, the target of a render pass.
type Canvas struct {
	Surface[Color]
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{Surface: *NewSurface[Color](width, height)}
}

// Clear fills the canvas with a solid color.
func (c *Canvas) Clear(col Color) {
	c.Fill(col)
}

// Pixel returns the color at (x, y), or transparent black outside the
// canvas. Use At when the caller needs to know about the miss.
func (c *Canvas) Pixel(x, y int) Color {
	if !c.InBounds(x, y) {
		return Color{}
	}
	return c.Pix[y*c.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Points that fall outside the canvas are skipped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		_ = c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Resize returns a nearest-neighbour scaled copy of the canvas.
func (c *Canvas) Resize(width, height int) *Canvas {
	out := NewCanvas(width, height)
	if c.Width == 0 || c.Height == 0 {
		return out
	}
	for y := range height {
		sy := y * c.Height / height
		for x := range width {
			sx := x * c.Width / width
			out.Pix[y*width+x] = c.Pix[sy*c.Width+sx]
		}
	}
	return out
}

// ToImage converts the canvas to a standard Go image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pix[y*c.Width+x])
		}
	}
	return img
}

// SavePNG saves the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.ToImage())
}

// CanvasFromImage converts a decoded image into a canvas, remapping each
// source pixel channel by channel.
//
// Single channel images store their value in red, leaving green and blue at
// zero; specular maps read the exponent from red. Images without alpha are
// opaque.
func CanvasFromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), b.Dy())

	for y := range c.Height {
		for x := range c.Width {
			c.Pix[y*c.Width+x] = canonical(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return c
}

func canonical(src color.Color) Color {
	switch p := src.(type) {
	case color.Gray:
		return Color{R: p.Y, A: 255}
	case color.Gray16:
		return Color{R: uint8(p.Y >> 8), A: 255}
	case color.NRGBA:
		return Color{R: p.R, G: p.G, B: p.B, A: p.A}
	case color.RGBA:
		if p.A == 255 {
			return p
		}
	}
	n := color.NRGBAModel.Convert(src).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// LoadCanvas reads an image file into a canvas. TGA and PPM are decoded
// here, everything else goes through image.Decode.
func LoadCanvas(path string) (*Canvas, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return CanvasFromImage(img), nil
}
