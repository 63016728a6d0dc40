package render

import (
	"image/color"
	"math"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorGray  = color.RGBA{160, 160, 160, 255}
	ColorLight = color.RGBA{192, 192, 192, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// PackColor serializes c into the 4-byte little endian layout R, G, B, A,
// which reads as 0xAABBGGRR when loaded as a uint32.
func PackColor(c Color) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// UnpackColor is the inverse of PackColor.
func UnpackColor(v uint32) Color {
	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// ChannelMode selects how out-of-range channel arithmetic is stored.
type ChannelMode int

const (
	// Saturate clamps every channel to [0, 255].
	Saturate ChannelMode = iota
	// Wrap keeps the low 8 bits of the truncated value, reproducing the
	// wraparound of plain byte arithmetic.
	Wrap
)

// String returns the config name of the mode.
func (m ChannelMode) String() string {
	if m == Wrap {
		return "wrap"
	}
	return "saturate"
}

// ParseChannelMode maps "saturate" or "wrap" to a mode.
func ParseChannelMode(s string) (ChannelMode, bool) {
	switch s {
	case "", "saturate", "clamp":
		return Saturate, true
	case "wrap":
		return Wrap, true
	}
	return Saturate, false
}

// Channel converts a computed channel value to a byte.
func (m ChannelMode) Channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	if m == Wrap {
		if math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
			return 0
		}
		return uint8(int64(v))
	}
	return uint8(math.Max(0, math.Min(255, v)))
}

// Shade builds an opaque color from three channel values.
func (m ChannelMode) Shade(r, g, b float64) Color {
	return Color{R: m.Channel(r), G: m.Channel(g), B: m.Channel(b), A: 255}
}

// Luminance returns the Rec. 601 luma of c in [0, 255].
func Luminance(c Color) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}
