package math3d

// Mat1 is a 1x1 matrix, the base case of the determinant recursion.
type Mat1 [1][1]float64

// Det returns the only entry.
func (m Mat1) Det() float64 {
	return m[0][0]
}

// cofactorSign is (-1)^(row+col).
func cofactorSign(row, col int) float64 {
	if (row+col)%2 == 1 {
		return -1
	}
	return 1
}

// Mat2 is a 2x2 matrix stored as two rows.
type Mat2 [2][2]float64

// Identity2 returns the 2x2 identity matrix.
func Identity2() Mat2 {
	return Mat2{{1, 0}, {0, 1}}
}

// Row returns row i.
func (m Mat2) Row(i int) Vec2 {
	return Vec2{m[i][0], m[i][1]}
}

// SetRow replaces row i.
func (m *Mat2) SetRow(i int, v Vec2) {
	m[i] = [2]float64{v.X, v.Y}
}

// Col returns column j.
func (m Mat2) Col(j int) Vec2 {
	return Vec2{m[0][j], m[1][j]}
}

// SetCol replaces column j.
func (m *Mat2) SetCol(j int, v Vec2) {
	m[0][j], m[1][j] = v.X, v.Y
}

// Transpose returns the transposed matrix.
func (m Mat2) Transpose() Mat2 {
	return Mat2{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}}
}

// Mul returns the matrix product m * n.
func (m Mat2) Mul(n Mat2) Mat2 {
	var out Mat2
	for i := range 2 {
		for j := range 2 {
			out[i][j] = m.Row(i).Dot(n.Col(j))
		}
	}
	return out
}

// MulVec returns m * v with v as a column vector.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{m.Row(0).Dot(v), m.Row(1).Dot(v)}
}

// Scale multiplies every entry by s.
func (m Mat2) Scale(s float64) Mat2 {
	for i := range 2 {
		for j := range 2 {
			m[i][j] *= s
		}
	}
	return m
}

// Add returns the entry-wise sum.
func (m Mat2) Add(n Mat2) Mat2 {
	for i := range 2 {
		for j := range 2 {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns the entry-wise difference.
func (m Mat2) Sub(n Mat2) Mat2 {
	return m.Add(n.Scale(-1))
}

// Minor returns m with the given row and column removed.
func (m Mat2) Minor(row, col int) Mat1 {
	return Mat1{{m[1-row][1-col]}}
}

// Cofactor returns the signed minor determinant at (row, col).
func (m Mat2) Cofactor(row, col int) float64 {
	return cofactorSign(row, col) * m.Minor(row, col).Det()
}

// Det expands along the first row.
func (m Mat2) Det() float64 {
	var det float64
	for j := range 2 {
		det += m[0][j] * m.Cofactor(0, j)
	}
	return det
}

// Cofactors returns the matrix of cofactors.
func (m Mat2) Cofactors() Mat2 {
	var out Mat2
	for i := range 2 {
		for j := range 2 {
			out[i][j] = m.Cofactor(i, j)
		}
	}
	return out
}

// Adjugate returns the transposed matrix of cofactors.
func (m Mat2) Adjugate() Mat2 {
	return m.Cofactors().Transpose()
}

// InvertTranspose returns the transpose of the inverse. A singular matrix
// yields non-finite entries.
func (m Mat2) InvertTranspose() Mat2 {
	c := m.Cofactors()
	return c.Scale(1 / c.Row(0).Dot(m.Row(0)))
}

// Invert returns the inverse of m. A singular matrix yields non-finite
// entries.
func (m Mat2) Invert() Mat2 {
	return m.InvertTranspose().Transpose()
}
