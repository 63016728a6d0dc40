package math3d

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want float64
	}{
		{"identity", Identity(), 1},
		{"scale", Scale(V3(2, 3, 4)), 24},
		{"rotation", RotateY(0.7).Mul(RotateX(-1.3)), 1},
		{"singular", Mat4{{1, 2, 3, 4}, {2, 4, 6, 8}, {0, 1, 0, 1}, {5, 5, 5, 5}}, 0},
		{"general", Mat4{{2, 0, 1, 3}, {1, 1, 0, 2}, {0, 3, 1, 1}, {4, 1, 2, 0}}, -32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Det(); math.Abs(got-tt.want) > eps {
				t.Errorf("Det() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (Mat2{{3, 8}, {4, 6}}).Det(); got != -14 {
		t.Errorf("Mat2.Det() = %v, want -14", got)
	}
	if got := (Mat3{{6, 1, 1}, {4, -2, 5}, {2, 8, 7}}).Det(); got != -306 {
		t.Errorf("Mat3.Det() = %v, want -306", got)
	}
}

func TestMinorAndCofactor(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}}
	if got := m.Minor(1, 1); got != (Mat2{{1, 3}, {7, 10}}) {
		t.Errorf("Minor(1,1) = %v", got)
	}
	// Minor(0,1) = |4 6; 7 10| = -2, sign negative.
	if got := m.Cofactor(0, 1); got != 2 {
		t.Errorf("Cofactor(0,1) = %v, want 2", got)
	}
	adj := m.Adjugate()
	prod := adj.Mul(m)
	det := m.Det()
	for i := range 3 {
		for j := range 3 {
			want := 0.0
			if i == j {
				want = det
			}
			if math.Abs(prod[i][j]-want) > eps {
				t.Fatalf("adj(m)*m = %v, want det*I with det %v", prod, det)
			}
		}
	}
}

func TestInvertIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"translate", Translate(V3(1, -2, 3))},
		{"trs", Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))},
		{"lookat", LookAt(V3(1, 0.4, 1), V3(0, 0, 0), Up())},
		{"camera chain", Viewport(0, 0, 800, 600, 255).Mul(Projection(3)).Mul(LookAt(V3(1, 0.4, 1), V3(0, 0, 0), Up()))},
		{"general", Mat4{{2, 0, 1, 3}, {1, 1, 0, 2}, {0, 3, 1, 1}, {4, 1, 2, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Invert().Mul(tt.m)
			if !got.Equal(Identity(), 1e-9) {
				t.Errorf("Invert()*M = %v, want identity", got)
			}
		})
	}
}

func TestInvertMatchesGonum(t *testing.T) {
	m := Mat4{{2, 0, 1, 3}, {1, 1, 0, 2}, {0, 3, 1, 1}, {4, 1, 2, 0}}
	data := make([]float64, 0, 16)
	for i := range 4 {
		data = append(data, m[i][:]...)
	}

	var want mat.Dense
	if err := want.Inverse(mat.NewDense(4, 4, data)); err != nil {
		t.Fatalf("gonum inverse: %v", err)
	}

	got := m.Invert()
	it := m.InvertTranspose()
	for i := range 4 {
		for j := range 4 {
			if math.Abs(got[i][j]-want.At(i, j)) > 1e-9 {
				t.Errorf("Invert()[%d][%d] = %v, gonum %v", i, j, got[i][j], want.At(i, j))
			}
			if math.Abs(it[j][i]-want.At(i, j)) > 1e-9 {
				t.Errorf("InvertTranspose()[%d][%d] = %v, gonum %v", j, i, it[j][i], want.At(i, j))
			}
		}
	}
}

func TestInvertSmallMatrices(t *testing.T) {
	m2 := Mat2{{4, 7}, {2, 6}}
	p2 := m2.Invert().Mul(m2)
	if math.Abs(p2[0][0]-1) > eps || math.Abs(p2[0][1]) > eps || math.Abs(p2[1][0]) > eps || math.Abs(p2[1][1]-1) > eps {
		t.Errorf("Mat2 inverse product = %v", p2)
	}

	m3 := Mat3FromRows(V3(1, 2, 0), V3(0, 1, 4), V3(5, 6, 0))
	p3 := m3.Invert().Mul(m3)
	for i := range 3 {
		if !vec3Near(p3.Row(i), Identity3().Row(i), eps) {
			t.Fatalf("Mat3 inverse product = %v", p3)
		}
	}
}

func TestInvertSingularIsNonFinite(t *testing.T) {
	m := Mat3{{1, 2, 3}, {2, 4, 6}, {1, 1, 1}}
	inv := m.Invert()
	finite := true
	for i := range 3 {
		for j := range 3 {
			if math.IsInf(inv[i][j], 0) || math.IsNaN(inv[i][j]) {
				finite = false
			}
		}
	}
	if finite {
		t.Errorf("inverse of a singular matrix should be non-finite, got %v", inv)
	}
}

func TestRowsAndColumns(t *testing.T) {
	var m Mat3
	m.SetCol(0, V3(1, 2, 3))
	m.SetRow(2, V3(7, 8, 9))
	if got := m.Col(0); got != V3(1, 2, 7) {
		t.Errorf("Col(0) = %v", got)
	}
	if got := m.Transpose().Row(2); got != m.Col(2) {
		t.Errorf("Transpose().Row(2) = %v, want %v", got, m.Col(2))
	}

	var uvs Mat3x2
	uvs.SetRow(0, V2(0, 0))
	uvs.SetRow(1, V2(1, 0))
	uvs.SetRow(2, V2(0, 1))
	got := uvs.Transpose().MulVec(V3(0.2, 0.3, 0.5))
	if math.Abs(got.X-0.3) > eps || math.Abs(got.Y-0.5) > eps {
		t.Errorf("interpolated uv = %v, want (0.3, 0.5)", got)
	}
	if uvs.Transpose().Transpose() != uvs {
		t.Errorf("double transpose changed the matrix")
	}
}

func TestMatrixArithmetic(t *testing.T) {
	a := Identity().Scale(2)
	b := Identity()
	if got := a.Sub(b); got != Identity() {
		t.Errorf("2I - I = %v", got)
	}
	if got := a.Add(b).MulVec(V4(1, 1, 1, 1)); got != V4(3, 3, 3, 3) {
		t.Errorf("3I * 1 = %v", got)
	}
	if got := Translate(V3(1, 2, 3)).MulPoint(V3(1, 1, 1)); got != V3(2, 3, 4) {
		t.Errorf("MulPoint = %v", got)
	}
}
