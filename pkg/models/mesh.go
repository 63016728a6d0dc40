// Package models provides mesh storage and the OBJ and glTF loaders.
package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/softras/pkg/math3d"
)

// ErrMalformed is returned for model data that cannot be turned into a
// usable mesh.
var ErrMalformed = errors.New("models: malformed model")

// Mesh stores attributes in three independent lists and one index list per
// attribute. Corner c of face f uses Vertices[FaceVertices[3f+c]],
// TexCoords[FaceTexCoords[3f+c]] and Normals[FaceNormals[3f+c]].
type Mesh struct {
	Name string

	Vertices  []math3d.Vec3
	TexCoords []math3d.Vec3 // u, v, w
	Normals   []math3d.Vec3

	FaceVertices  []int
	FaceTexCoords []int
	FaceNormals   []int

	// Bounding box (updated by CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.FaceVertices) / 3
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Position returns the position of a face corner.
func (m *Mesh) Position(face, corner int) math3d.Vec3 {
	return m.Vertices[m.FaceVertices[3*face+corner]]
}

// Normal returns the normal of a face corner.
func (m *Mesh) Normal(face, corner int) math3d.Vec3 {
	return m.Normals[m.FaceNormals[3*face+corner]]
}

// TexCoord returns the texture coordinate of a face corner.
func (m *Mesh) TexCoord(face, corner int) math3d.Vec3 {
	return m.TexCoords[m.FaceTexCoords[3*face+corner]]
}

// Validate checks that the index lists describe whole triangles and only
// reference existing attributes.
func (m *Mesh) Validate() error {
	n := len(m.FaceVertices)
	if n == 0 {
		return fmt.Errorf("%w: no faces", ErrMalformed)
	}
	if n%3 != 0 {
		return fmt.Errorf("%w: %d vertex indices is not a whole number of triangles", ErrMalformed, n)
	}
	if len(m.FaceTexCoords) != n || len(m.FaceNormals) != n {
		return fmt.Errorf("%w: index lists differ in length (%d vertices, %d texcoords, %d normals)",
			ErrMalformed, n, len(m.FaceTexCoords), len(m.FaceNormals))
	}

	lists := []struct {
		name    string
		indices []int
		count   int
	}{
		{"vertex", m.FaceVertices, len(m.Vertices)},
		{"texcoord", m.FaceTexCoords, len(m.TexCoords)},
		{"normal", m.FaceNormals, len(m.Normals)},
	}
	for _, l := range lists {
		if l.count == 0 {
			return fmt.Errorf("%w: no %s data", ErrMalformed, l.name)
		}
		for i, idx := range l.indices {
			if idx < 0 || idx >= l.count {
				return fmt.Errorf("%w: face %d corner %d: %s index %d out of range [0, %d)",
					ErrMalformed, i/3, i%3, l.name, idx, l.count)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Lerp(m.BoundsMax, 0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Longest returns the largest distance of a position from the origin.
func (m *Mesh) Longest() float64 {
	longest := 0.0
	for _, v := range m.Vertices {
		longest = math.Max(longest, v.Len())
	}
	return longest
}

// FitUnit divides every position by k times the longest position norm, so
// the farthest point ends up at distance 1/k. A mesh at the origin is left
// alone.
func (m *Mesh) FitUnit(k float64) {
	longest := m.Longest()
	if longest == 0 || k == 0 {
		return
	}
	s := 1 / (k * longest)
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Scale(s)
	}
	m.CalculateBounds()
}

// Transform applies a matrix to all positions. Normals are carried by the
// inverse transpose.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulPoint(m.Vertices[i])
	}
	it := mat.InvertTranspose()
	for i := range m.Normals {
		m.Normals[i] = it.MulVec(m.Normals[i].Embed4(0)).Proj3().Normalize()
	}
	m.CalculateBounds()
}

// faceNormal returns the unit normal of face f from its winding.
func (m *Mesh) faceNormal(f int) math3d.Vec3 {
	v0, v1, v2 := m.Position(f, 0), m.Position(f, 1), m.Position(f, 2)
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// CalculateNormals replaces the normals with one flat normal per face.
func (m *Mesh) CalculateNormals() {
	n := m.FaceCount()
	m.Normals = make([]math3d.Vec3, n)
	m.FaceNormals = make([]int, 3*n)
	for f := range n {
		m.Normals[f] = m.faceNormal(f)
		m.FaceNormals[3*f], m.FaceNormals[3*f+1], m.FaceNormals[3*f+2] = f, f, f
	}
}

// CalculateSmoothNormals replaces the normals with one normal per
// position: the sum of the area weighted normals of the faces sharing it.
func (m *Mesh) CalculateSmoothNormals() {
	normals := make([]math3d.Vec3, len(m.Vertices))

	for f := range m.FaceCount() {
		v0, v1, v2 := m.Position(f, 0), m.Position(f, 1), m.Position(f, 2)
		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet
		for c := range 3 {
			i := m.FaceVertices[3*f+c]
			normals[i] = normals[i].Add(normal)
		}
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
	m.FaceNormals = append([]int(nil), m.FaceVertices...)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:          m.Name,
		Vertices:      append([]math3d.Vec3(nil), m.Vertices...),
		TexCoords:     append([]math3d.Vec3(nil), m.TexCoords...),
		Normals:       append([]math3d.Vec3(nil), m.Normals...),
		FaceVertices:  append([]int(nil), m.FaceVertices...),
		FaceTexCoords: append([]int(nil), m.FaceTexCoords...),
		FaceNormals:   append([]int(nil), m.FaceNormals...),
		BoundsMin:     m.BoundsMin,
		BoundsMax:     m.BoundsMax,
	}
}
