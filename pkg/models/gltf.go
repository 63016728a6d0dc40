package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg" // Embedded JPEG textures
	_ "image/png"  // Embedded PNG textures
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/softras/pkg/math3d"
)

// GLTFLoader loads glTF and GLB files into a Mesh.
type GLTFLoader struct {
	// SmoothNormals averages computed normals per position when the file
	// has none; otherwise every face gets its flat normal.
	SmoothNormals bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{SmoothNormals: true}
}

// LoadGLTF loads a glTF or GLB file with the default loader and returns
// the mesh plus the first embedded texture that decodes, or nil.
func LoadGLTF(path string) (*Mesh, image.Image, error) {
	return NewGLTFLoader().LoadWithTexture(path)
}

// Load loads the triangle primitives of every mesh in a glTF or GLB file
// into one Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	m, _, err := l.load(path, false)
	return m, err
}

// LoadWithTexture is Load that also decodes the first embedded or
// referenced image.
func (l *GLTFLoader) LoadWithTexture(path string) (*Mesh, image.Image, error) {
	return l.load(path, true)
}

func (l *GLTFLoader) load(path string, withTexture bool) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	var tex image.Image
	if withTexture {
		tex = firstTexture(doc, filepath.Dir(path))
	}
	return mesh, tex, nil
}

// FromDocument converts an already decoded document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	hasNormals := true
	hasUVs := true

	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			n, uv, err := addPrimitive(doc, prim, mesh)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			hasNormals = hasNormals && n
			hasUVs = hasUVs && uv
		}
	}
	if len(mesh.FaceVertices) == 0 {
		return nil, fmt.Errorf("%w: no triangle primitives", ErrMalformed)
	}

	// Attributes only some primitives carry are dropped for the whole
	// mesh so the index lists stay aligned.
	if !hasUVs {
		mesh.TexCoords = []math3d.Vec3{{}}
		mesh.FaceTexCoords = make([]int, len(mesh.FaceVertices))
	}
	if !hasNormals {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// addPrimitive appends one primitive's geometry. It reports whether the
// primitive carried normals and texture coordinates.
func addPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) (hasNormals, hasUVs bool, err error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Skip non-triangle primitives (lines, points, strips)
		return true, true, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return true, true, nil
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return false, false, fmt.Errorf("read positions: %w", err)
	}

	var normals []math3d.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = readVec3Accessor(doc, normIdx)
		if err != nil {
			return false, false, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs []math3d.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = readVec2Accessor(doc, uvIdx)
		if err != nil {
			return false, false, fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return false, false, fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}
	indices = indices[:len(indices)/3*3]

	base := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, positions...)
	for _, n := range normals {
		mesh.Normals = append(mesh.Normals, n.Normalize())
	}
	for _, uv := range uvs {
		// glTF puts v = 0 at the top of the image
		mesh.TexCoords = append(mesh.TexCoords, math3d.V3(uv.X, 1-uv.Y, 0))
	}

	for _, idx := range indices {
		if idx >= len(positions) {
			return false, false, fmt.Errorf("%w: index %d past %d positions", ErrMalformed, idx, len(positions))
		}
		mesh.FaceVertices = append(mesh.FaceVertices, base+idx)
		mesh.FaceNormals = append(mesh.FaceNormals, base+idx)
		mesh.FaceTexCoords = append(mesh.FaceTexCoords, base+idx)
	}

	hasNormals = len(normals) == len(positions)
	hasUVs = len(uvs) == len(positions)
	return hasNormals, hasUVs, nil
}

// readVec3Accessor reads Vec3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	floats, err := readFloatAccessor(doc, accessorIdx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(floats)/3)
	for i := range result {
		result[i] = math3d.V3(floats[3*i], floats[3*i+1], floats[3*i+2])
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a glTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	floats, err := readFloatAccessor(doc, accessorIdx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2, len(floats)/2)
	for i := range result {
		result[i] = math3d.V2(floats[2*i], floats[2*i+1])
	}
	return result, nil
}

// readFloatAccessor reads width float components per element.
func readFloatAccessor(doc *gltf.Document, accessorIdx int, typ gltf.AccessorType, width int) ([]float64, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d missing", ErrMalformed, accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != typ {
		return nil, fmt.Errorf("expected %v, got %v", typ, accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 4*width)
	if err != nil {
		return nil, err
	}
	result := make([]float64, accessor.Count*width)
	for i := range accessor.Count {
		for j := range width {
			bits := binary.LittleEndian.Uint32(data[i*stride+4*j:])
			result[i*width+j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}

// readIndices reads index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d missing", ErrMalformed, accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		default:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's bytes starting at its first
// element, and the element stride. The slice is checked to hold every
// element.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("%w: buffer view %d missing", ErrMalformed, *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("%w: buffer %d missing", ErrMalformed, view.Buffer)
	}

	// gltf.Open loads embedded and external buffers alike
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if start < 0 || end > len(data) || end > view.ByteOffset+view.ByteLength {
			return nil, 0, fmt.Errorf("%w: accessor reads past its buffer view", ErrMalformed)
		}
	}
	return data[start:], stride, nil
}

// firstTexture decodes the first image of the document that is embedded
// in a buffer view or stored next to the file.
func firstTexture(doc *gltf.Document, dir string) image.Image {
	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil && *img.BufferView < len(doc.BufferViews):
			bv := doc.BufferViews[*img.BufferView]
			if bv.Buffer < len(doc.Buffers) {
				buf := doc.Buffers[bv.Buffer].Data
				if end := bv.ByteOffset + bv.ByteLength; end <= len(buf) {
					data = buf[bv.ByteOffset:end]
				}
			}
		case img.URI != "" && !strings.HasPrefix(img.URI, "data:"):
			// External texture file
			data, _ = os.ReadFile(filepath.Join(dir, img.URI))
		}
		if len(data) == 0 {
			continue
		}
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return decoded
		}
	}
	return nil
}
