package math3d

import "math"

// Mat4 is a 4x4 matrix stored as four rows.
//
// For an affine transform:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Row returns row i.
func (m Mat4) Row(i int) Vec4 {
	return Vec4{m[i][0], m[i][1], m[i][2], m[i][3]}
}

// SetRow replaces row i.
func (m *Mat4) SetRow(i int, v Vec4) {
	m[i] = [4]float64{v.X, v.Y, v.Z, v.W}
}

// Col returns column j.
func (m Mat4) Col(j int) Vec4 {
	return Vec4{m[0][j], m[1][j], m[2][j], m[3][j]}
}

// SetCol replaces column j.
func (m *Mat4) SetCol(j int, v Vec4) {
	m[0][j], m[1][j], m[2][j], m[3][j] = v.X, v.Y, v.Z, v.W
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := range 4 {
		for j := range 4 {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Mul returns the matrix product m * n.
// The result applies n first, then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for i := range 4 {
		for j := range 4 {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j] + m[i][3]*n[3][j]
		}
	}
	return out
}

// MulVec returns m * v with v as a column vector.
func (m Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v), m.Row(3).Dot(v)}
}

// MulPoint transforms a point (w = 1) and drops the resulting w without
// dividing by it.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.MulVec(p.Embed4(1)).Proj3()
}

// Scale multiplies every entry by s.
func (m Mat4) Scale(s float64) Mat4 {
	for i := range 4 {
		for j := range 4 {
			m[i][j] *= s
		}
	}
	return m
}

// Add returns the entry-wise sum.
func (m Mat4) Add(n Mat4) Mat4 {
	for i := range 4 {
		for j := range 4 {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns the entry-wise difference.
func (m Mat4) Sub(n Mat4) Mat4 {
	return m.Add(n.Scale(-1))
}

// Minor returns m with the given row and column removed.
func (m Mat4) Minor(row, col int) Mat3 {
	var out Mat3
	r := 0
	for i := range 4 {
		if i == row {
			continue
		}
		c := 0
		for j := range 4 {
			if j == col {
				continue
			}
			out[r][c] = m[i][j]
			c++
		}
		r++
	}
	return out
}

// Cofactor returns the signed minor determinant at (row, col).
func (m Mat4) Cofactor(row, col int) float64 {
	return cofactorSign(row, col) * m.Minor(row, col).Det()
}

// Det returns the determinant by Laplace expansion along the first row.
// The recursion is factorial in size; it is only meant for 4x4 and below.
func (m Mat4) Det() float64 {
	var det float64
	for j := range 4 {
		det += m[0][j] * m.Cofactor(0, j)
	}
	return det
}

// Cofactors returns the matrix of cofactors.
func (m Mat4) Cofactors() Mat4 {
	var out Mat4
	for i := range 4 {
		for j := range 4 {
			out[i][j] = m.Cofactor(i, j)
		}
	}
	return out
}

// Adjugate returns the transposed matrix of cofactors, so that
// m.Adjugate().Mul(m) equals det(m) times the identity.
func (m Mat4) Adjugate() Mat4 {
	return m.Cofactors().Transpose()
}

// InvertTranspose returns the transpose of the inverse. This is the matrix
// that carries surface normals through m.
//
// The determinant is recovered as the dot of the first cofactor row with
// the first row of m. A singular matrix yields non-finite entries.
func (m Mat4) InvertTranspose() Mat4 {
	c := m.Cofactors()
	return c.Scale(1 / c.Row(0).Dot(m.Row(0)))
}

// Invert returns the inverse of m. A singular matrix yields non-finite
// entries.
func (m Mat4) Invert() Mat4 {
	return m.InvertTranspose().Transpose()
}

// Equal reports whether every entry of m is within eps of n.
func (m Mat4) Equal(n Mat4, eps float64) bool {
	for i := range 4 {
		for j := range 4 {
			if math.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
