package render

import (
	"math"

	"github.com/taigrr/softras/pkg/math3d"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapClamp  WrapMode = iota // Clamp to edge
	WrapRepeat                 // Tile the texture
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture samples a canvas by UV coordinates. The canvas is shared, not
// copied, and must outlive every render pass that reads it.
type Texture struct {
	*Canvas
	WrapU      WrapMode   // Horizontal wrap mode
	WrapV      WrapMode   // Vertical wrap mode
	FilterMode FilterMode // Sampling filter mode
}

// NewTexture wraps c with clamped nearest-neighbour sampling.
func NewTexture(c *Canvas) *Texture {
	return &Texture{Canvas: c}
}

// LoadTexture loads a texture from an image file.
func LoadTexture(path string) (*Texture, error) {
	c, err := LoadCanvas(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(c), nil
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	c := NewCanvas(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				c.Pix[y*width+x] = c1
			} else {
				c.Pix[y*width+x] = c2
			}
		}
	}
	return NewTexture(c)
}

// Sample samples the texture at UV coordinates (0-1 range). V grows upward,
// so v = 1 is the top row of the image.
func (t *Texture) Sample(uv math3d.Vec2) Color {
	if t == nil || t.Canvas == nil || t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	u := t.wrapCoord(uv.X, t.WrapU)
	v := t.wrapCoord(uv.Y, t.WrapV)

	// Flip V coordinate (image Y=0 at top, UV V=0 at bottom)
	v = 1.0 - v

	switch t.FilterMode {
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		return t.sampleNearest(u, v)
	}
}

// NormalAt decodes the texel at uv as a normal: each of red, green and blue
// maps [0, 255] to [-1, 1].
func (t *Texture) NormalAt(uv math3d.Vec2) math3d.Vec3 {
	c := t.Sample(uv)
	return math3d.V3(
		float64(c.R)/255*2-1,
		float64(c.G)/255*2-1,
		float64(c.B)/255*2-1,
	)
}

// SpecularAt returns the specular exponent stored in the red channel.
func (t *Texture) SpecularAt(uv math3d.Vec2) float64 {
	return float64(t.Sample(uv).R)
}

// wrapCoord applies the wrap mode to a coordinate.
func (t *Texture) wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord = coord - math.Floor(coord) // fmod to [0,1)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}

// sampleNearest returns the nearest pixel.
func (t *Texture) sampleNearest(u, v float64) Color {
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// Clamp to valid range
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixel(x, y)
}

// sampleBilinear returns bilinearly interpolated color.
func (t *Texture) sampleBilinear(u, v float64) Color {
	// Convert to pixel coordinates
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	// Fractional parts
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	// Wrap coordinates for sampling
	x0 = wrapPixelCoord(x0, t.Width, t.WrapU)
	x1 = wrapPixelCoord(x1, t.Width, t.WrapU)
	y0 = wrapPixelCoord(y0, t.Height, t.WrapV)
	y1 = wrapPixelCoord(y1, t.Height, t.WrapV)

	// Sample 4 pixels
	c00 := t.Pixel(x0, y0)
	c10 := t.Pixel(x1, y0)
	c01 := t.Pixel(x0, y1)
	c11 := t.Pixel(x1, y1)

	// Bilinear interpolation
	top := lerpColor(c00, c10, tx)
	bot := lerpColor(c01, c11, tx)
	return lerpColor(top, bot, ty)
}

// wrapPixelCoord wraps a pixel coordinate.
func wrapPixelCoord(x, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		x = x % size
		if x < 0 {
			x += size
		}
	case WrapClamp:
		if x < 0 {
			x = 0
		} else if x >= size {
			x = size - 1
		}
	}
	return x
}
