package track

import (
	"math"

	"racing-line-visualizer/internal/common"
)

// RoadPoint is a single sample of the road.
type RoadPoint struct {
	Distance  float64     // cumulative distance from the first point
	Position  common.Vec3 // centerline position, Z unused
	Normal    common.Vec3 // unit vector left of the direction of travel
	Curvature float64     // signed sine of the turn, positive to the left
	Offset    float64     // lateral trajectory offset in [-MaxOffset, MaxOffset]
	Resolved  common.Vec3 // Position moved by Offset; valid after ComputeResolved
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// LinearInterpolate returns the point at alpha between a (alpha=0) and b (alpha=1).
func LinearInterpolate(a, b RoadPoint, alpha float64) RoadPoint {
	return RoadPoint{
		Distance:  lerp(a.Distance, b.Distance, alpha),
		Position:  a.Position.Lerp(b.Position, alpha),
		Normal:    a.Normal.Lerp(b.Normal, alpha),
		Curvature: lerp(a.Curvature, b.Curvature, alpha),
		Offset:    lerp(a.Offset, b.Offset, alpha),
	}
}

// QuadraticSession interpolates one road segment with a parabola whose end
// tangents follow the normals of both end points. Seed it once per segment,
// then evaluate any number of alphas.
type QuadraticSession struct {
	from, to RoadPoint
	a1, a2   common.Vec3
	linear   bool
}

// Seed computes the parabola for the segment from -> to. When the tangents are
// parallel or the solution would run backwards, the session falls back to
// linear interpolation.
func (q *QuadraticSession) Seed(from, to RoadPoint) {
	q.from, q.to = from, to
	q.linear = true

	t1 := common.V2(from.Normal.Y, -from.Normal.X)
	t2 := common.V2(to.Normal.Y, -to.Normal.X)
	d := to.Position.Sub(from.Position)
	d.Z = 0

	if det := t1.X*t2.Y - t1.Y*t2.X; math.Abs(det) <= common.Epsilon {
		return
	}
	// The tangent lines meet at from + lambda/2*t1 = to - mu/2*t2.
	lambda := 2 * from.Position.Intersect(t1, to.Position, t2.Scale(-1))
	mu := 2 * to.Position.Intersect(t2.Scale(-1), from.Position, t1)
	if lambda <= 0 || mu <= 0 {
		return
	}
	q.a1 = t1.Scale(lambda)
	q.a2 = d.Sub(q.a1)
	q.linear = false
}

// Linear reports whether the seeded segment fell back to linear interpolation.
func (q *QuadraticSession) Linear() bool {
	return q.linear
}

// At evaluates the seeded segment at alpha in [0, 1].
func (q *QuadraticSession) At(alpha float64) RoadPoint {
	if q.linear {
		return LinearInterpolate(q.from, q.to, alpha)
	}
	pos := q.from.Position.Add(q.a1.Scale(alpha)).Add(q.a2.Scale(alpha * alpha))
	pos.Z = 0
	tangent := q.a1.Add(q.a2.Scale(2 * alpha))
	return RoadPoint{
		Distance:  lerp(q.from.Distance, q.to.Distance, alpha),
		Position:  pos,
		Normal:    tangent.Perp().Normalize(),
		Curvature: lerp(q.from.Curvature, q.to.Curvature, alpha),
		Offset:    lerp(q.from.Offset, q.to.Offset, alpha),
	}
}
