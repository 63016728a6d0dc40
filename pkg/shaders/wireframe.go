package shaders

import (
	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

// edgeThreshold is the largest corner weight still treated as an edge.
const edgeThreshold = 0.005

// Wireframe keeps only the fragments next to a triangle edge, where some
// barycentric weight is at most 0.005, and discards the interior. Unlike
// render.Wireframe it is depth tested, so hidden edges stay hidden behind
// nearer edges.
type Wireframe struct {
	varyings
	Color render.Color
}

// NewWireframe creates an edge shader. A zero color picks
// render.ColorLight.
func NewWireframe(ctx *render.Context, c render.Color) *Wireframe {
	if c == (render.Color{}) {
		c = render.ColorLight
	}
	return &Wireframe{varyings: newVaryings(ctx), Color: c}
}

func (s *Wireframe) Fragment(bar math3d.Vec3) (render.Color, bool) {
	if bar.X <= edgeThreshold || bar.Y <= edgeThreshold || bar.Z <= edgeThreshold {
		return s.Color, false
	}
	return render.Color{}, true
}
