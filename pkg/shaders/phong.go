package shaders

import (
	"fmt"

	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

// phongChannel is the channel value of a fully lit fragment, before
// ambient.
const phongChannel = 0xe0

// Phong lights a uniform gray surface with the interpolated normal:
// each channel is ambient + 0xe0 * max(0, n·l).
type Phong struct {
	varyings
}

func NewPhong(ctx *render.Context) *Phong {
	return &Phong{varyings: newVaryings(ctx)}
}

func (s *Phong) Fragment(bar math3d.Vec3) (render.Color, bool) {
	return s.shade(bar), false
}

func (s *Phong) shade(bar math3d.Vec3) render.Color {
	v := s.ctx.Ambient + phongChannel*s.diffuse(bar)
	return s.ctx.Channels.Shade(v, v, v)
}

// Axis names an object space coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis maps "x", "y" or "z" to an axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y", "":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisY, fmt.Errorf("shaders: unknown axis %q", s)
}

func (a Axis) String() string {
	if a < AxisX || a > AxisZ {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return [...]string{"x", "y", "z"}[a]
}

// Cutoff is Phong shading that discards every fragment whose object space
// coordinate on Axis is above Level, exposing the inside of the model.
type Cutoff struct {
	Phong
	Axis  Axis
	Level float64
}

// NewCutoff creates a cutoff shader.
func NewCutoff(ctx *render.Context, axis Axis, level float64) (*Cutoff, error) {
	if axis < AxisX || axis > AxisZ {
		return nil, fmt.Errorf("shaders: invalid cutoff axis %d", axis)
	}
	return &Cutoff{Phong: *NewPhong(ctx), Axis: axis, Level: level}, nil
}

func (s *Cutoff) Fragment(bar math3d.Vec3) (render.Color, bool) {
	if s.position(bar).At(int(s.Axis)) > s.Level {
		return render.Color{}, true
	}
	return s.shade(bar), false
}

// Textured modulates the diffuse map by the untransformed light: each
// channel is texel * (n·l) with the raw interpolated normal and light
// direction. Fragments facing away from the light are discarded.
type Textured struct {
	varyings
}

func NewTextured(ctx *render.Context) *Textured {
	return &Textured{varyings: newVaryings(ctx)}
}

func (s *Textured) Fragment(bar math3d.Vec3) (render.Color, bool) {
	n := s.nrm.Transpose().MulVec(bar)
	intensity := n.Dot(s.ctx.LightDir)
	if !(intensity > 0) {
		return render.Color{}, true
	}
	tex := s.ctx.Diffuse.Sample(s.texCoord(bar))
	return s.ctx.Channels.Shade(
		float64(tex.R)*intensity,
		float64(tex.G)*intensity,
		float64(tex.B)*intensity,
	), false
}
