package math3d

// Mat3x2 is a 3x2 matrix: three rows of two components. The shaders keep
// one texture coordinate per triangle corner in it.
type Mat3x2 [3][2]float64

// Row returns row i.
func (m Mat3x2) Row(i int) Vec2 {
	return Vec2{m[i][0], m[i][1]}
}

// SetRow replaces row i.
func (m *Mat3x2) SetRow(i int, v Vec2) {
	m[i] = [2]float64{v.X, v.Y}
}

// Col returns column j.
func (m Mat3x2) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// Transpose returns the 2x3 transpose.
func (m Mat3x2) Transpose() Mat2x3 {
	return Mat2x3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
	}
}

// MulVec returns m * v with v as a column vector.
func (m Mat3x2) MulVec(v Vec2) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Mat2x3 is a 2x3 matrix: two rows of three components.
type Mat2x3 [2][3]float64

// Row returns row i.
func (m Mat2x3) Row(i int) Vec3 {
	return Vec3{m[i][0], m[i][1], m[i][2]}
}

// Col returns column j.
func (m Mat2x3) Col(j int) Vec2 {
	return Vec2{m[0][j], m[1][j]}
}

// Transpose returns the 3x2 transpose.
func (m Mat2x3) Transpose() Mat3x2 {
	return Mat3x2{
		{m[0][0], m[1][0]},
		{m[0][1], m[1][1]},
		{m[0][2], m[1][2]},
	}
}

// MulVec returns m * v. Interpolating per-corner rows with barycentric
// weights is Transpose().MulVec(bar).
func (m Mat2x3) MulVec(v Vec3) Vec2 {
	return Vec2{m.Row(0).Dot(v), m.Row(1).Dot(v)}
}

// Mul returns the 2x2 product m * n.
func (m Mat2x3) Mul(n Mat3x2) Mat2 {
	var out Mat2
	for i := range 2 {
		for j := range 2 {
			out[i][j] = m.Row(i).Dot(n.Col(j))
		}
	}
	return out
}
