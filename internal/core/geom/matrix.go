package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clip planes used by Projection.
const (
	NearPlane = 0.001
	FarPlane  = 1000.0
)

// Matrix is a 4x4 homogeneous transform applied to row vectors: a point p
// maps to p*M, and A.Mul(B) applies A first and then B.
//
// The backing mgl64.Mat4 holds the same sixteen numbers, which mgl reads
// as the transpose; Map and Mul account for that.
type Matrix struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{m: mgl64.Ident4()}
}

// FromArray builds a matrix from row-major row-vector data.
func FromArray(data [16]float64) Matrix {
	return Matrix{m: mgl64.Mat4(data)}
}

// Array returns the row-major row-vector data.
func (m Matrix) Array() [16]float64 { return [16]float64(m.m) }

// At returns element i of the row-major data.
func (m Matrix) At(i int) float64 { return m.m[i] }

// Mul returns the transform that applies m and then o.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{m: o.m.Mul4(m.m)}
}

// Map transforms a point and returns its homogeneous coordinates.
func (m Matrix) Map(x, y, z float64) mgl64.Vec4 {
	return m.m.Mul4x1(mgl64.Vec4{x, y, z, 1})
}

// Project transforms a point and divides by w. The returned w is the
// divisor; points behind the eye have w <= 0.
func (m Matrix) Project(x, y, z float64) (mgl64.Vec3, float64) {
	v := m.Map(x, y, z)
	w := v.W()
	if w == 0 {
		return mgl64.Vec3{}, 0
	}
	return mgl64.Vec3{v.X() / w, v.Y() / w, v.Z() / w}, w
}

// RotationX rotates about the X axis by deg degrees.
func RotationX(deg float64) Matrix {
	s, c := math.Sincos(Radians(deg))
	return FromArray([16]float64{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	})
}

// RotationY rotates about the vertical axis by deg degrees. A positive
// angle turns +X toward +Z, which is map +Y.
func RotationY(deg float64) Matrix {
	s, c := math.Sincos(Radians(deg))
	return FromArray([16]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

// Translation moves points by (dx, dy, dz).
func Translation(dx, dy, dz float64) Matrix {
	return FromArray([16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		dx, dy, dz, 1,
	})
}

// Scale scales each axis independently.
func Scale(sx, sy, sz float64) Matrix {
	return FromArray([16]float64{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	})
}

// FocalLength returns the projection scale for a horizontal field of view.
func FocalLength(fovDegrees float64) float64 {
	half := Radians(fovDegrees) / 2
	return math.Cos(half) / math.Sin(half)
}

// Projection returns a perspective projection with the given focal length.
// The eye looks down -Z, so w equals the distance in front of it.
func Projection(focal float64) Matrix {
	n, f := NearPlane, FarPlane
	m33 := (n + f) / (n - f)
	m34 := 2 * n * f / (n - f)
	return FromArray([16]float64{
		focal, 0, 0, 0,
		0, focal, 0, 0,
		0, 0, m33, -1,
		0, 0, m34, 0,
	})
}

// Transform2D extracts the plane homography that the 4x4 transform
// induces on the local z=0 plane.
func (m Matrix) Transform2D() Transform2D {
	a := m.m
	return Transform2D{m: mgl64.Mat3{
		a[0], a[1], a[3],
		a[4], a[5], a[7],
		a[12], a[13], a[15],
	}}
}

// Transform2D is a projective 2D transform in row-vector order, the kind a
// painter uses to place a flat quad on screen.
type Transform2D struct {
	m mgl64.Mat3
}

// Identity2D returns the identity homography.
func Identity2D() Transform2D {
	return Transform2D{m: mgl64.Ident3()}
}

// Array returns the nine coefficients in row-major row-vector order.
func (t Transform2D) Array() [9]float64 { return [9]float64(t.m) }

// MapW maps a local point and returns the homogeneous result.
func (t Transform2D) MapW(p Point) mgl64.Vec3 {
	return t.m.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
}

// Map maps a local point to the plane. ok is false when the point falls
// on or behind the eye.
func (t Transform2D) Map(p Point) (Point, bool) {
	v := t.MapW(p)
	if v.Z() <= 0 {
		return Point{}, false
	}
	return Point{v.X() / v.Z(), v.Y() / v.Z()}, true
}
