package common

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Epsilon is the default tolerance for AlmostEqual.
const Epsilon = 1e-6

// Vec3 represents a 3D vector. Road geometry lives in the xy plane with Z kept at 0.
type Vec3 struct {
	X, Y, Z float64
}

// V2 returns the in-plane vector (x, y, 0).
func V2(x, y float64) Vec3 {
	return Vec3{X: x, Y: y}
}

func (v Vec3) r3() r3.Vector {
	return r3.Vector(v)
}

func (v Vec3) String() string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}

// Add adds two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(v.r3().Add(other.r3()))
}

// Sub subtracts other from v.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3(v.r3().Sub(other.r3()))
}

// Scale multiplies the vector by a scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(v.r3().Mul(s))
}

// Len returns the length (magnitude) of the vector.
func (v Vec3) Len() float64 {
	return v.r3().Norm()
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	return Vec3(v.r3().Normalize())
}

// Dot returns the scalar product of v and other.
func (v Vec3) Dot(other Vec3) float64 {
	return v.r3().Dot(other.r3())
}

// Cross returns the cross product v × other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(v.r3().Cross(other.r3()))
}

// Distance returns the Euclidean distance between two points.
func (v Vec3) Distance(other Vec3) float64 {
	return v.r3().Distance(other.r3())
}

// Angle returns the unsigned angle in radians between v and other.
func (v Vec3) Angle(other Vec3) float64 {
	return float64(v.r3().Angle(other.r3()))
}

// AlmostEqual reports whether every coordinate differs by at most eps.
func (v Vec3) AlmostEqual(other Vec3, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps &&
		math.Abs(v.Y-other.Y) <= eps &&
		math.Abs(v.Z-other.Z) <= eps
}

// IsZero reports whether all coordinates are 0.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Lerp linearly interpolates between v and other.
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Scale(1 - t).Add(other.Scale(t))
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// RotateX rotates the vector by angle radians around the x axis.
func (v Vec3) RotateX(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{v.X, cos*v.Y - sin*v.Z, sin*v.Y + cos*v.Z}
}

// RotateY rotates the vector by angle radians around the y axis.
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{cos*v.X - sin*v.Z, v.Y, sin*v.X + cos*v.Z}
}

// RotateZ rotates the vector by angle radians around the z axis
// (counter-clockwise in the xy plane).
func (v Vec3) RotateZ(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y, v.Z}
}

// Perp returns v rotated by 90 degrees counter-clockwise in the xy plane.
func (v Vec3) Perp() Vec3 {
	return Vec3{-v.Y, v.X, v.Z}
}

// SignedSine returns the sine of the angle from a to b in the xy plane.
// Positive means b turns left (counter-clockwise) from a. The boolean is
// false when either vector has zero length.
func SignedSine(a, b Vec3) (float64, bool) {
	la, lb := a.Len(), b.Len()
	if la*lb == 0 {
		return 0, false
	}
	s := math.Sin(a.Angle(b))
	if a.X*b.Y-a.Y*b.X < 0 {
		s = -s
	}
	return s, true
}
