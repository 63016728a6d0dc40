package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softras/pkg/math3d"
)

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// ParseOBJ reads OBJ geometry: v, vt, vn and f records. Faces with more
// than three corners are split into a fan around their first corner.
// Indices may be negative, counting back from the last element read.
//
// A corner without a texture coordinate gets (0, 0, 0); a corner without a
// normal gets the normal of its triangle. Materials, groups and smoothing
// records are skipped. A malformed v, vt, vn or f record fails the parse
// with its line number.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	p := objParser{mesh: NewMesh("")}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, p.line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	p.finish()
	if err := p.mesh.Validate(); err != nil {
		return nil, err
	}
	p.mesh.CalculateBounds()
	return p.mesh, nil
}

type objParser struct {
	mesh *Mesh
	line int

	// Normals computed for corners without one. They are appended after
	// the file's own normals once parsing ends, so relative indices in
	// later records still count file normals only.
	faceNormals []math3d.Vec3
}

// objCorner is one resolved face corner; tex and nrm are -1 when absent.
type objCorner struct {
	pos, tex, nrm int
}

func (p *objParser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	args := fields[1:]
	switch fields[0] {
	case "v":
		// x y z, optionally followed by w or r g b
		if len(args) < 3 || len(args) > 7 {
			return fmt.Errorf("v needs 3 coordinates, got %d", len(args))
		}
		v, err := parseFloats(args)
		if err != nil {
			return err
		}
		p.mesh.Vertices = append(p.mesh.Vertices, math3d.V3(v[0], v[1], v[2]))
	case "vt":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("vt needs 2 or 3 coordinates, got %d", len(args))
		}
		v, err := parseFloats(args)
		if err != nil {
			return err
		}
		uvw := math3d.V3(v[0], v[1], 0)
		if len(v) == 3 {
			uvw.Z = v[2]
		}
		p.mesh.TexCoords = append(p.mesh.TexCoords, uvw)
	case "vn":
		if len(args) != 3 {
			return fmt.Errorf("vn needs 3 coordinates, got %d", len(args))
		}
		v, err := parseFloats(args)
		if err != nil {
			return err
		}
		n := math3d.V3(v[0], v[1], v[2])
		if n.LenSq() == 0 {
			return fmt.Errorf("zero length normal")
		}
		p.mesh.Normals = append(p.mesh.Normals, n.Normalize())
	case "f":
		return p.parseFace(args)
	}
	// o, g, s, usemtl, mtllib, l, vp and unknown records are ignored.
	return nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 corners, got %d", len(args))
	}
	corners := make([]objCorner, len(args))
	for i, a := range args {
		c, err := p.parseCorner(a)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		p.addTriangle([3]objCorner{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

// parseCorner reads v, v/t, v//n or v/t/n.
func (p *objParser) parseCorner(s string) (objCorner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("bad face corner %q", s)
	}
	c := objCorner{tex: -1, nrm: -1}

	var err error
	if c.pos, err = resolveIndex(parts[0], len(p.mesh.Vertices)); err != nil {
		return c, fmt.Errorf("corner %q: vertex %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.tex, err = resolveIndex(parts[1], len(p.mesh.TexCoords)); err != nil {
			return c, fmt.Errorf("corner %q: texcoord %w", s, err)
		}
	}
	if len(parts) > 2 {
		if parts[2] == "" {
			return c, fmt.Errorf("corner %q: empty normal index", s)
		}
		if c.nrm, err = resolveIndex(parts[2], len(p.mesh.Normals)); err != nil {
			return c, fmt.Errorf("corner %q: normal %w", s, err)
		}
	}
	return c, nil
}

// resolveIndex turns a 1-based or negative OBJ index into a 0-based index
// into a list that currently holds n elements.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q is not an integer", s)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d defined)", i, n)
}

// addTriangle appends one triangle. Corners without a texcoord keep -1
// and corners without a normal get -2-k for the k-th computed normal until
// finish resolves them.
func (p *objParser) addTriangle(tri [3]objCorner) {
	m := p.mesh

	faceNormal := 0
	for _, c := range tri {
		if c.nrm < 0 && faceNormal == 0 {
			v0, v1, v2 := m.Vertices[tri[0].pos], m.Vertices[tri[1].pos], m.Vertices[tri[2].pos]
			n := v1.Sub(v0).Cross(v2.Sub(v0))
			if n.LenSq() > 0 {
				n = n.Normalize()
			}
			p.faceNormals = append(p.faceNormals, n)
			faceNormal = -1 - len(p.faceNormals)
		}
	}

	for _, c := range tri {
		if c.nrm < 0 {
			c.nrm = faceNormal
		}
		m.FaceVertices = append(m.FaceVertices, c.pos)
		m.FaceTexCoords = append(m.FaceTexCoords, c.tex)
		m.FaceNormals = append(m.FaceNormals, c.nrm)
	}
}

// finish appends the substituted attributes and points the placeholder
// indices at them.
func (p *objParser) finish() {
	m := p.mesh

	base := len(m.Normals)
	m.Normals = append(m.Normals, p.faceNormals...)
	for i, n := range m.FaceNormals {
		if n < 0 {
			m.FaceNormals[i] = base - 2 - n
		}
	}

	defaultTex := -1
	for i, t := range m.FaceTexCoords {
		if t >= 0 {
			continue
		}
		if defaultTex < 0 {
			m.TexCoords = append(m.TexCoords, math3d.Vec3{})
			defaultTex = len(m.TexCoords) - 1
		}
		m.FaceTexCoords[i] = defaultTex
	}
}
