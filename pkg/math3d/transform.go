package math3d

// LookAt builds the world-to-camera transform for a camera at eye looking at
// center. The basis is k = eye-center, i = up × k, j = k × i, all
// normalized.
//
// The translation column is the negated projection of center, not eye, on
// each basis vector. The camera distance is applied later by Projection.
func LookAt(eye, center, up Vec3) Mat4 {
	k := eye.Sub(center).Normalize()
	i := up.Cross(k).Normalize()
	j := k.Cross(i).Normalize()

	return Mat4{
		{i.X, i.Y, i.Z, -center.Dot(i)},
		{j.X, j.Y, j.Z, -center.Dot(j)},
		{k.X, k.Y, k.Z, -center.Dot(k)},
		{0, 0, 0, 1},
	}
}

// Projection returns the perspective matrix for a camera at distance c on
// the +z axis: after multiplication w becomes 1 - z/c.
func Projection(c float64) Mat4 {
	m := Identity()
	m[3][2] = -1 / c
	return m
}

// Viewport maps the [-1,1]³ cube to the pixel rectangle (x, y, w, h) and
// the depth range [0, d]. The y row is negated because raster row 0 is the
// top of the image.
func Viewport(x, y, w, h, d float64) Mat4 {
	return Mat4{
		{w / 2, 0, 0, x + w/2},
		{0, -h / 2, 0, y + h/2},
		{0, 0, d / 2, d / 2},
		{0, 0, 0, 1},
	}
}
