package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/softras/pkg/math3d"
)

// Shader is the programmable part of a render pass.
//
// Vertex is called for the three corners of a face in order and returns
// the corner's homogeneous screen position before the w divide. It may
// record per-corner attributes for the fragment stage.
//
// Fragment is called for every covered pixel that passes the depth test,
// with the barycentric weights of the three corners. It returns the pixel
// color, or discard = true to leave the pixel and its depth untouched.
type Shader interface {
	Vertex(face, corner int) math3d.Vec4
	Fragment(bar math3d.Vec3) (c Color, discard bool)
}

// MeshSource provides per-corner mesh attributes. This avoids importing
// the models package.
type MeshSource interface {
	FaceCount() int
	Position(face, corner int) math3d.Vec3
	Normal(face, corner int) math3d.Vec3
	TexCoord(face, corner int) math3d.Vec3
}

// ErrInvalidMesh is returned when a render pass is given unusable mesh data.
var ErrInvalidMesh = errors.New("render: invalid mesh")

// validator is implemented by meshes that can check their own index lists.
type validator interface {
	Validate() error
}

// Context bundles everything a render pass reads: the mesh, the camera
// matrices, the light and the texture maps. Shaders hold a pointer to the
// context of their pass; nothing is read from package state.
type Context struct {
	Mesh MeshSource

	ModelView  math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4

	LightDir math3d.Vec3 // Direction towards the light, object space
	Ambient  float64     // Added to every lit channel

	Diffuse  *Texture // Color map
	Normal   *Texture // Tangent or object space normal map
	Specular *Texture // Specular exponent map (red channel)

	Channels ChannelMode

	m, mit, screen math3d.Mat4
	light          math3d.Vec3
	prepared       bool
}

// NewContext returns a context with identity matrices and the default
// saturating channel mode.
func NewContext(mesh MeshSource) *Context {
	return &Context{
		Mesh:       mesh,
		ModelView:  math3d.Identity(),
		Projection: math3d.Identity(),
		Viewport:   math3d.Identity(),
		LightDir:   math3d.V3(0, 0, 1),
	}
}

// Prepare caches the combined matrices and the transformed light. It must
// be called again after a matrix or the light changes; Draw calls it at the
// start of every pass.
func (c *Context) Prepare() {
	c.m = c.Projection.Mul(c.ModelView)
	c.mit = c.m.InvertTranspose()
	c.screen = c.Viewport.Mul(c.m)
	c.light = c.m.MulVec(c.LightDir.Embed4(1)).Proj3().Normalize()
	c.prepared = true
}

func (c *Context) ensurePrepared() {
	if !c.prepared {
		c.Prepare()
	}
}

// M returns Projection * ModelView.
func (c *Context) M() math3d.Mat4 {
	c.ensurePrepared()
	return c.m
}

// MIT returns the inverse transpose of M, used to carry normals.
func (c *Context) MIT() math3d.Mat4 {
	c.ensurePrepared()
	return c.mit
}

// Screen returns Viewport * Projection * ModelView.
func (c *Context) Screen() math3d.Mat4 {
	c.ensurePrepared()
	return c.screen
}

// ClipPos returns M applied to a corner position, before the w divide.
func (c *Context) ClipPos(face, corner int) math3d.Vec4 {
	return c.M().MulVec(c.Mesh.Position(face, corner).Embed4(1))
}

// ScreenPos returns the full camera chain applied to a corner position,
// before the w divide.
func (c *Context) ScreenPos(face, corner int) math3d.Vec4 {
	return c.Screen().MulVec(c.Mesh.Position(face, corner).Embed4(1))
}

// Light returns the light direction carried through M and normalized.
func (c *Context) Light() math3d.Vec3 {
	c.ensurePrepared()
	return c.light
}

// TransformNormal carries an object space normal through MIT and
// normalizes it.
func (c *Context) TransformNormal(n math3d.Vec3) math3d.Vec3 {
	return c.MIT().MulVec(n.Embed4(1)).Proj3().Normalize()
}

// Validate checks that the context can drive a pass.
func (c *Context) Validate() error {
	if c.Mesh == nil {
		return fmt.Errorf("%w: no mesh", ErrInvalidMesh)
	}
	if v, ok := c.Mesh.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMesh, err)
		}
	}
	return nil
}
