// Package shaders provides the shader programs a render pass can run.
//
// Every shader reads its inputs from a *render.Context: the mesh, the
// camera matrices, the light and the texture maps. The vertex stage of all
// shaders is shared; they differ in how a fragment is colored.
package shaders

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

// ErrUnknownShader is returned by New for a name it does not know.
var ErrUnknownShader = errors.New("shaders: unknown shader")

// varyings holds the per-corner attributes of the face being drawn. Each
// row belongs to one corner. The scratch is overwritten by every face, so
// a shader value must not be shared between concurrent passes.
type varyings struct {
	ctx *render.Context

	obj math3d.Mat3   // Object space positions
	ndc math3d.Mat3   // Positions after M and the w divide
	nrm math3d.Mat3   // Object space normals
	uv  math3d.Mat3x2 // Texture coordinates
}

func newVaryings(ctx *render.Context) varyings {
	return varyings{ctx: ctx}
}

// Vertex records the attributes of one corner and returns its screen
// position before the w divide.
func (v *varyings) Vertex(face, corner int) math3d.Vec4 {
	mesh := v.ctx.Mesh
	v.obj.SetRow(corner, mesh.Position(face, corner))
	v.nrm.SetRow(corner, mesh.Normal(face, corner))
	v.uv.SetRow(corner, mesh.TexCoord(face, corner).Proj2())
	v.ndc.SetRow(corner, v.ctx.ClipPos(face, corner).WNormalize().Proj3())
	return v.ctx.ScreenPos(face, corner)
}

// position interpolates the object space position.
func (v *varyings) position(bar math3d.Vec3) math3d.Vec3 {
	return v.obj.Transpose().MulVec(bar)
}

// normal interpolates the object space normal and normalizes it.
func (v *varyings) normal(bar math3d.Vec3) math3d.Vec3 {
	return v.nrm.Transpose().MulVec(bar).Normalize()
}

func (v *varyings) texCoord(bar math3d.Vec3) math3d.Vec2 {
	return v.uv.Transpose().MulVec(bar)
}

// diffuse returns max(0, n·l) with the interpolated normal and the light
// both carried through the camera transform.
func (v *varyings) diffuse(bar math3d.Vec3) float64 {
	n := v.ctx.TransformNormal(v.normal(bar))
	return nonNegative(n.Dot(v.ctx.Light()))
}

// litTexel shades a texel with diffuse and specular terms for an object
// space normal. The viewer sits on +z after the transform, so the
// specular term reads the z of the reflected light.
func (v *varyings) litTexel(objNormal math3d.Vec3, uv math3d.Vec2) render.Color {
	ctx := v.ctx
	n := ctx.TransformNormal(objNormal)
	l := ctx.Light()
	r := l.Reflect(n).Negate().Normalize()

	diffuse := nonNegative(n.Dot(l))
	specular := nonNegative(math.Pow(r.Z, ctx.Specular.SpecularAt(uv)))
	k := diffuse + 0.6*specular

	tex := ctx.Diffuse.Sample(uv)
	return ctx.Channels.Shade(
		ctx.Ambient+float64(tex.R)*k,
		ctx.Ambient+float64(tex.G)*k,
		ctx.Ambient+float64(tex.B)*k,
	)
}

// nonNegative clamps x at zero; NaN also maps to zero.
func nonNegative(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Options carries the per-shader settings New passes on. Zero values pick
// each shader's defaults.
type Options struct {
	Color       render.Color // Flat and wireframe color
	Palette     Palette      // Posterize bands
	CutoffAxis  Axis         // Cutoff axis
	CutoffLevel float64      // Cutoff level, object space
}

type constructor func(ctx *render.Context, opts Options) (render.Shader, error)

var registry = map[string]constructor{
	"flat": func(ctx *render.Context, o Options) (render.Shader, error) {
		return NewFlat(ctx, o.Color), nil
	},
	"depth": func(ctx *render.Context, _ Options) (render.Shader, error) {
		return NewDepth(ctx), nil
	},
	"phong": func(ctx *render.Context, _ Options) (render.Shader, error) {
		return NewPhong(ctx), nil
	},
	"posterize": func(ctx *render.Context, o Options) (render.Shader, error) {
		return NewPosterize(ctx, o.Palette)
	},
	"wireframe": func(ctx *render.Context, o Options) (render.Shader, error) {
		return NewWireframe(ctx, o.Color), nil
	},
	"cutoff": func(ctx *render.Context, o Options) (render.Shader, error) {
		return NewCutoff(ctx, o.CutoffAxis, o.CutoffLevel)
	},
	"tangent": func(ctx *render.Context, _ Options) (render.Shader, error) {
		return NewTangentNormal(ctx)
	},
	"objectnormal": func(ctx *render.Context, _ Options) (render.Shader, error) {
		return NewObjectNormal(ctx)
	},
	"textured": func(ctx *render.Context, _ Options) (render.Shader, error) {
		return NewTextured(ctx), nil
	},
}

// New builds the shader registered under name for ctx.
func New(name string, ctx *render.Context, opts Options) (render.Shader, error) {
	if ctx == nil {
		return nil, errors.New("shaders: nil context")
	}
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownShader, name, Names())
	}
	return build(ctx, opts)
}

// Names lists the registered shader names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
