package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned for pixel coordinates outside a surface.
var ErrOutOfBounds = errors.New("render: pixel out of bounds")

// Surface is a fixed-size row-major 2D buffer with its origin at the top
// left. Its dimensions never change after NewSurface.
type Surface[T any] struct {
	Width  int
	Height int
	Pix    []T // Row-major element data
}

// NewSurface allocates a zeroed width x height surface. Negative sizes,
// and sizes whose pixel count overflows int, yield an empty 0x0 surface.
func NewSurface[T any](width, height int) *Surface[T] {
	if width < 0 || height < 0 || (width > 0 && height > math.MaxInt/width) {
		width, height = 0, 0
	}
	return &Surface[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (s *Surface[T]) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// At returns the element at (x, y).
func (s *Surface[T]) At(x, y int) (T, error) {
	if !s.InBounds(x, y) {
		var zero T
		return zero, s.boundsErr(x, y)
	}
	return s.Pix[y*s.Width+x], nil
}

// Set stores v at (x, y).
func (s *Surface[T]) Set(x, y int, v T) error {
	if !s.InBounds(x, y) {
		return s.boundsErr(x, y)
	}
	s.Pix[y*s.Width+x] = v
	return nil
}

// Fill sets every element to v.
func (s *Surface[T]) Fill(v T) {
	if len(s.Pix) == 0 {
		return
	}
	s.Pix[0] = v
	for i := 1; i < len(s.Pix); i *= 2 {
		copy(s.Pix[i:], s.Pix[:i])
	}
}

// NBytes returns the size of the element data in bytes, or -1 when T has
// no fixed size.
func (s *Surface[T]) NBytes() int {
	var zero T
	size := binary.Size(zero)
	if size < 0 {
		return -1
	}
	return size * len(s.Pix)
}

func (s *Surface[T]) boundsErr(x, y int) error {
	return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, s.Width, s.Height)
}

// DepthBuffer stores one depth per pixel. Larger values are closer to the
// viewer.
type DepthBuffer struct {
	Surface[float64]
}

// NewDepthBuffer creates a depth buffer reset to the farthest depth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{Surface: *NewSurface[float64](width, height)}
	d.Reset()
	return d
}

// Reset fills the buffer with the lowest representable depth so that any
// finite fragment passes the first test.
func (d *DepthBuffer) Reset() {
	d.Fill(-math.MaxFloat64)
}

// Written reports whether a fragment has been stored at (x, y).
func (d *DepthBuffer) Written(x, y int) bool {
	z, err := d.At(x, y)
	return err == nil && z != -math.MaxFloat64
}
