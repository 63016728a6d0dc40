package shaders

import (
	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

// Flat paints every fragment one color and ignores the light.
type Flat struct {
	varyings
	Color render.Color
}

// NewFlat creates a flat shader. A zero color picks render.ColorGray.
func NewFlat(ctx *render.Context, c render.Color) *Flat {
	if c == (render.Color{}) {
		c = render.ColorGray
	}
	return &Flat{varyings: newVaryings(ctx), Color: c}
}

func (s *Flat) Fragment(math3d.Vec3) (render.Color, bool) {
	return s.Color, false
}

// Depth paints the interpolated NDC depth as gray: the far plane of the
// unit cube is black and the near plane white.
type Depth struct {
	varyings
}

func NewDepth(ctx *render.Context) *Depth {
	return &Depth{varyings: newVaryings(ctx)}
}

func (s *Depth) Fragment(bar math3d.Vec3) (render.Color, bool) {
	z := s.ndc.Transpose().MulVec(bar).Z
	g := (z + 1) / 2 * 255
	return s.ctx.Channels.Shade(g, g, g), false
}
