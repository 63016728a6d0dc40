package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/softras/pkg/math3d"
)

// triangleDoc builds a document with one indexed triangle. Normals and
// texture coordinates are included on request.
func triangleDoc(withNormals, withUVs bool) *gltf.Document {
	var buf bytes.Buffer
	put := func(vs ...float32) {
		for _, v := range vs {
			_ = binary.Write(&buf, binary.LittleEndian, v)
		}
	}

	doc := gltf.NewDocument()
	addView := func(start int) int {
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
			Buffer:     0,
			ByteOffset: start,
			ByteLength: buf.Len() - start,
		})
		return len(doc.BufferViews) - 1
	}
	addAccessor := func(view int, typ gltf.AccessorType, ct gltf.ComponentType, count int) int {
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    gltf.Index(view),
			ComponentType: ct,
			Type:          typ,
			Count:         count,
		})
		return len(doc.Accessors) - 1
	}

	attrs := map[string]int{}

	start := buf.Len()
	put(0, 0, 0, 1, 0, 0, 0, 1, 0)
	attrs[gltf.POSITION] = addAccessor(addView(start), gltf.AccessorVec3, gltf.ComponentFloat, 3)

	if withNormals {
		start = buf.Len()
		put(0, 0, 2, 0, 0, 2, 0, 0, 2)
		attrs[gltf.NORMAL] = addAccessor(addView(start), gltf.AccessorVec3, gltf.ComponentFloat, 3)
	}
	if withUVs {
		start = buf.Len()
		put(0, 0, 1, 0, 0, 0.25)
		attrs[gltf.TEXCOORD_0] = addAccessor(addView(start), gltf.AccessorVec2, gltf.ComponentFloat, 3)
	}

	start = buf.Len()
	for _, i := range []uint16{0, 1, 2} {
		_ = binary.Write(&buf, binary.LittleEndian, i)
	}
	indices := addAccessor(addView(start), gltf.AccessorScalar, gltf.ComponentUshort, 3)

	doc.Buffers = []*gltf.Buffer{{ByteLength: buf.Len(), Data: buf.Bytes()}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Indices:    gltf.Index(indices),
			Mode:       gltf.PrimitiveTriangles,
		}},
	}}
	return doc
}

func TestGLTFFromDocument(t *testing.T) {
	m, err := NewGLTFLoader().FromDocument(triangleDoc(true, true), "tri.glb")
	if err != nil {
		t.Fatal(err)
	}
	if m.FaceCount() != 1 || m.VertexCount() != 3 {
		t.Fatalf("got %d faces, %d vertices", m.FaceCount(), m.VertexCount())
	}
	if m.Position(0, 1) != math3d.V3(1, 0, 0) {
		t.Errorf("Position(0, 1) = %v", m.Position(0, 1))
	}
	if m.Normal(0, 2) != math3d.V3(0, 0, 1) {
		t.Errorf("normal not normalized: %v", m.Normal(0, 2))
	}
	// v is flipped: 0.25 becomes 0.75.
	if got := m.TexCoord(0, 2); math.Abs(got.Y-0.75) > 1e-7 || got.X != 0 {
		t.Errorf("TexCoord(0, 2) = %v", got)
	}
	if m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds max = %v", m.BoundsMax)
	}
}

func TestGLTFMissingAttributes(t *testing.T) {
	for _, smooth := range []bool{true, false} {
		l := &GLTFLoader{SmoothNormals: smooth}
		m, err := l.FromDocument(triangleDoc(false, false), "bare")
		if err != nil {
			t.Fatal(err)
		}
		if err := m.Validate(); err != nil {
			t.Fatal(err)
		}
		if !vec3Near(m.Normal(0, 0), math3d.V3(0, 0, 1), 1e-12) {
			t.Errorf("smooth=%v: computed normal = %v", smooth, m.Normal(0, 0))
		}
		if m.TexCoord(0, 1) != (math3d.Vec3{}) {
			t.Errorf("default texcoord = %v", m.TexCoord(0, 1))
		}
	}
}

func TestGLTFMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{"no meshes", func(doc *gltf.Document) { doc.Meshes = nil }},
		{"index past positions", func(doc *gltf.Document) {
			data := doc.Buffers[0].Data
			binary.LittleEndian.PutUint16(data[len(data)-2:], 9)
		}},
		{"accessor past view", func(doc *gltf.Document) { doc.Accessors[0].Count = 40 }},
		{"missing accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Indices = gltf.Index(17)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDoc(true, true)
			tt.mutate(doc)
			if _, err := NewGLTFLoader().FromDocument(doc, "bad"); !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestGLTFEmbeddedTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(1, 0, color.NRGBA{R: 9, A: 255})
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		t.Fatal(err)
	}

	doc := triangleDoc(false, false)
	buf := doc.Buffers[0]
	start := len(buf.Data)
	buf.Data = append(buf.Data, pngData.Bytes()...)
	buf.ByteLength = len(buf.Data)
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		ByteOffset: start,
		ByteLength: pngData.Len(),
	})
	doc.Images = []*gltf.Image{{MimeType: "image/png", BufferView: gltf.Index(len(doc.BufferViews) - 1)}}

	tex := firstTexture(doc, t.TempDir())
	if tex == nil {
		t.Fatal("no texture decoded")
	}
	if tex.Bounds().Dx() != 2 {
		t.Errorf("texture bounds = %v", tex.Bounds())
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
	if _, err := NewGLTFLoader().Load("/nonexistent/path.gltf"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
