package shaders

import (
	"errors"

	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

var errNoNormalMap = errors.New("shaders: normal map required")

// TangentNormal shades the diffuse map with a tangent space normal map
// and the specular map.
//
// For every fragment the tangent frame is rebuilt from the NDC edges of
// the face and the deltas of its texture coordinates; the sampled normal
// is carried from that frame into object space before lighting.
type TangentNormal struct {
	varyings
}

// NewTangentNormal creates a tangent space normal map shader. The context
// must carry a normal map; missing diffuse and specular maps read as zero.
func NewTangentNormal(ctx *render.Context) (*TangentNormal, error) {
	if ctx.Normal == nil {
		return nil, errNoNormalMap
	}
	return &TangentNormal{varyings: newVaryings(ctx)}, nil
}

func (s *TangentNormal) Fragment(bar math3d.Vec3) (render.Color, bool) {
	uv := s.texCoord(bar)
	n := s.normal(bar)

	a := math3d.Mat3FromRows(
		s.ndc.Row(1).Sub(s.ndc.Row(0)),
		s.ndc.Row(2).Sub(s.ndc.Row(0)),
		n,
	)
	ai := a.Invert()

	uv0, uv1, uv2 := s.uv.Row(0), s.uv.Row(1), s.uv.Row(2)
	i := ai.MulVec(math3d.V3(uv1.X-uv0.X, uv2.X-uv0.X, 0))
	j := ai.MulVec(math3d.V3(uv1.Y-uv0.Y, uv2.Y-uv0.Y, 0))

	var basis math3d.Mat3
	basis.SetCol(0, i.Normalize())
	basis.SetCol(1, j.Normalize())
	basis.SetCol(2, n)

	normal := basis.MulVec(s.ctx.Normal.NormalAt(uv)).Normalize()
	return s.litTexel(normal, uv), false
}

// ObjectNormal is TangentNormal lighting with a normal map that already
// stores object space normals.
type ObjectNormal struct {
	varyings
}

func NewObjectNormal(ctx *render.Context) (*ObjectNormal, error) {
	if ctx.Normal == nil {
		return nil, errNoNormalMap
	}
	return &ObjectNormal{varyings: newVaryings(ctx)}, nil
}

func (s *ObjectNormal) Fragment(bar math3d.Vec3) (render.Color, bool) {
	uv := s.texCoord(bar)
	normal := s.ctx.Normal.NormalAt(uv).Normalize()
	return s.litTexel(normal, uv), false
}
