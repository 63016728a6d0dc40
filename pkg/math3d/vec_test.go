package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vec3Near(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestEmbedProjRoundTrip(t *testing.T) {
	tests := []Vec3{
		V3(0, 0, 0),
		V3(1, -2, 3.5),
		V3(1e-12, 1e12, -7),
	}

	for _, v := range tests {
		h := v.Embed4(1)
		if h.W != 1 {
			t.Errorf("Embed4(%v).W = %v, want 1", v, h.W)
		}
		if got := h.Proj3(); got != v {
			t.Errorf("Embed4(%v).Proj3() = %v, want exact round trip", v, got)
		}
	}

	uv := V2(0.25, 0.75)
	e := uv.Embed3(9)
	if e.Z != 9 || e.Proj2() != uv {
		t.Errorf("Vec2 embed/proj round trip failed: %v", e)
	}
	if got := uv.Embed4(0).Proj2(); got != uv {
		t.Errorf("Vec2.Embed4.Proj2 = %v, want %v", got, uv)
	}
}

func TestWNormalize(t *testing.T) {
	v := V4(2, 4, -6, 2).WNormalize()
	want := V4(1, 2, -3, 1)
	if v != want {
		t.Errorf("WNormalize = %v, want %v", v, want)
	}

	inf := V4(1, 1, 1, 0).WNormalize()
	if !math.IsInf(inf.X, 1) {
		t.Errorf("WNormalize with w=0 should be non-finite, got %v", inf)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"x axis", V3(5, 0, 0), V3(1, 0, 0)},
		{"diagonal", V3(1, 1, 1), V3(1/math.Sqrt(3), 1/math.Sqrt(3), 1/math.Sqrt(3))},
		{"negative", V3(0, -3, 4), V3(0, -0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !vec3Near(got, tt.want, eps) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if math.Abs(got.Len()-1) > eps {
				t.Errorf("length = %v, want 1", got.Len())
			}
		})
	}

	zero := Vec3{}.Normalize()
	if !math.IsNaN(zero.X) {
		t.Errorf("zero vector should normalize to NaN, got %v", zero)
	}
}

func TestCross(t *testing.T) {
	x, y, z := V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)
	if got := x.Cross(y); got != z {
		t.Errorf("x × y = %v, want %v", got, z)
	}
	if got := y.Cross(x); got != z.Negate() {
		t.Errorf("y × x = %v, want %v", got, z.Negate())
	}
	a, b := V3(1, 2, 3), V3(-4, 5, 0.5)
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > eps || math.Abs(c.Dot(b)) > eps {
		t.Errorf("cross product %v is not orthogonal to its inputs", c)
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := V4(1, 2, 3, 4)
	b := V4(4, 3, 2, 1)
	if got := a.Add(b); got != V4(5, 5, 5, 5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b).Scale(2); got != V4(-6, -2, 2, 6) {
		t.Errorf("Sub.Scale = %v", got)
	}
	if got := a.Dot(b); got != 20 {
		t.Errorf("Dot = %v, want 20", got)
	}
	if got := V2(3, 4).Len(); got != 5 {
		t.Errorf("Vec2.Len = %v, want 5", got)
	}
	if got := V3(2, 4, 6).Div(2); got != V3(1, 2, 3) {
		t.Errorf("Div = %v", got)
	}
	for i, want := range []float64{1, 2, 3, 4} {
		if a.At(i) != want {
			t.Errorf("At(%d) = %v, want %v", i, a.At(i), want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want Vec4
	}{
		{"start", 0, V4(1, 2, 3, 4)},
		{"middle", 0.5, V4(2, 3, 4, 5)},
		{"end", 1, V4(3, 4, 5, 6)},
		{"beyond", 2, V4(5, 6, 7, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := V4(1, 2, 3, 4), V4(3, 4, 5, 6)
			if got := a.Lerp(b, tt.t); got != tt.want {
				t.Errorf("Vec4.Lerp = %v, want %v", got, tt.want)
			}
			w := tt.want
			if got := V3(a.X, a.Y, a.Z).Lerp(V3(b.X, b.Y, b.Z), tt.t); got != V3(w.X, w.Y, w.Z) {
				t.Errorf("Vec3.Lerp = %v", got)
			}
			if got := V2(a.X, a.Y).Lerp(V2(b.X, b.Y), tt.t); got != V2(w.X, w.Y) {
				t.Errorf("Vec2.Lerp = %v", got)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	l := V3(1, 1, 0).Normalize()
	n := V3(0, 1, 0)
	// 2(n·l)n - l mirrors l across n.
	r := l.Reflect(n).Negate()
	want := V3(-l.X, l.Y, 0)
	if !vec3Near(r, want, eps) {
		t.Errorf("mirror = %v, want %v", r, want)
	}
}
