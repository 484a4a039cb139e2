package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 0.5}

	assert.Equal(t, Vec3{5, 1, 3.5}, a.Add(b))
	assert.Equal(t, Vec3{-3, 3, 2.5}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.InDelta(t, 3.5, a.Dot(b), 1e-12)
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
	assert.InDelta(t, 5, V2(3, 4).Len(), 1e-12)
	assert.InDelta(t, 5, V2(0, 0).Distance(V2(3, 4)), 1e-12)
}

func TestNormalize(t *testing.T) {
	n := V2(3, 4).Normalize()
	assert.True(t, n.AlmostEqual(V2(0.6, 0.8), Epsilon))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestRotations(t *testing.T) {
	v := V2(1, 0).RotateZ(math.Pi / 2)
	assert.True(t, v.AlmostEqual(V2(0, 1), Epsilon), "got %v", v)

	v = Vec3{0, 1, 0}.RotateX(math.Pi / 2)
	assert.True(t, v.AlmostEqual(Vec3{0, 0, 1}, Epsilon), "got %v", v)

	v = Vec3{1, 0, 0}.RotateY(math.Pi / 2)
	assert.True(t, v.AlmostEqual(Vec3{0, 0, 1}, Epsilon), "got %v", v)

	assert.Equal(t, V2(-2, 1), V2(1, 2).Perp())
}

func TestSignedSine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
		ok   bool
	}{
		{"left turn", V2(10, 0), V2(10, 10), math.Sqrt2 / 2, true},
		{"right turn", V2(10, 0), V2(10, -10), -math.Sqrt2 / 2, true},
		{"straight", V2(1, 1), V2(2, 2), 0, true},
		{"degenerate", V2(0, 0), V2(1, 0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SignedSine(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPlanePredicates(t *testing.T) {
	p1, p2, p3 := V2(0, 0), V2(4, 0), V2(0, 4)
	assert.True(t, V2(1, 1).InsideTriangle(p1, p2, p3))
	assert.False(t, V2(3, 3).InsideTriangle(p1, p2, p3))
	assert.True(t, V2(1, 1).SameSide(V2(0, 0), V2(1, 0), V2(5, 2)))
	assert.False(t, V2(1, 1).SameSide(V2(0, 0), V2(1, 0), V2(5, -2)))
}

func TestIntersect(t *testing.T) {
	// x axis from the origin meets the vertical line x=2 at u=2.
	u := V2(0, 0).Intersect(V2(1, 0), V2(2, -1), V2(0, 1))
	assert.InDelta(t, 2, u, 1e-9)

	assert.Equal(t, -1.0, V2(0, 0).Intersect(V2(1, 0), V2(0, 1), V2(1, 0)))
	assert.Equal(t, 1.0, V2(0, 0).Intersect(V2(1, 0), V2(3, 0), V2(2, 0)))
	assert.Equal(t, 0.0, V2(0, 0).Intersect(V2(1, 0), V2(3, 0), V2(-2, 0)))
}
