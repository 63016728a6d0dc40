package math3d

// Mat3 is a 3x3 matrix stored as three rows.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mat3FromRows builds a matrix whose rows are a, b and c.
func Mat3FromRows(a, b, c Vec3) Mat3 {
	return Mat3{{a.X, a.Y, a.Z}, {b.X, b.Y, b.Z}, {c.X, c.Y, c.Z}}
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i][0], m[i][1], m[i][2]}
}

// SetRow replaces row i.
func (m *Mat3) SetRow(i int, v Vec3) {
	m[i] = [3]float64{v.X, v.Y, v.Z}
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// SetCol replaces column j.
func (m *Mat3) SetCol(j int, v Vec3) {
	m[0][j], m[1][j], m[2][j] = v.X, v.Y, v.Z
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Mul returns the matrix product m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m.Row(i).Dot(n.Col(j))
		}
	}
	return out
}

// MulVec returns m * v with v as a column vector.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Scale multiplies every entry by s.
func (m Mat3) Scale(s float64) Mat3 {
	for i := range 3 {
		for j := range 3 {
			m[i][j] *= s
		}
	}
	return m
}

// Add returns the entry-wise sum.
func (m Mat3) Add(n Mat3) Mat3 {
	for i := range 3 {
		for j := range 3 {
			m[i][j] += n[i][j]
		}
	}
	return m
}

// Sub returns the entry-wise difference.
func (m Mat3) Sub(n Mat3) Mat3 {
	return m.Add(n.Scale(-1))
}

// Minor returns m with the given row and column removed.
func (m Mat3) Minor(row, col int) Mat2 {
	var out Mat2
	r := 0
	for i := range 3 {
		if i == row {
			continue
		}
		c := 0
		for j := range 3 {
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
func (m Mat3) Cofactor(row, col int) float64 {
	return cofactorSign(row, col) * m.Minor(row, col).Det()
}

// Det expands along the first row.
func (m Mat3) Det() float64 {
	var det float64
	for j := range 3 {
		det += m[0][j] * m.Cofactor(0, j)
	}
	return det
}

// Cofactors returns the matrix of cofactors.
func (m Mat3) Cofactors() Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m.Cofactor(i, j)
		}
	}
	return out
}

// Adjugate returns the transposed matrix of cofactors.
func (m Mat3) Adjugate() Mat3 {
	return m.Cofactors().Transpose()
}

// InvertTranspose returns the transpose of the inverse. The determinant is
// recovered as the dot of the first cofactor row with the first row of m.
func (m Mat3) InvertTranspose() Mat3 {
	c := m.Cofactors()
	return c.Scale(1 / c.Row(0).Dot(m.Row(0)))
}

// Invert returns the inverse of m. A singular matrix yields non-finite
// entries.
func (m Mat3) Invert() Mat3 {
	return m.InvertTranspose().Transpose()
}
