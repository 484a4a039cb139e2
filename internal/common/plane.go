package common

import "math"

// Predicates in the xy plane. Z is ignored.

// Intersect solves v + u*d = q + w*d1 for u. When the lines are parallel it
// returns 1 if they coincide and point the same way, 0 if they coincide in
// opposite directions and -1 if they never meet.
func (v Vec3) Intersect(d, q, d1 Vec3) float64 {
	p := q.Sub(v)
	den := d1.X*d.Y - d1.Y*d.X
	if math.Abs(den) <= Epsilon {
		if math.Abs(p.X*d.Y-p.Y*d.X) > Epsilon {
			return -1
		}
		if d.X*d1.X+d.Y*d1.Y >= 0 {
			return 1
		}
		return 0
	}
	w := (p.Y*d.X - p.X*d.Y) / den
	if math.Abs(d.X) <= Epsilon {
		return (w*d1.Y + p.Y) / d.Y
	}
	return (w*d1.X + p.X) / d.X
}

// SameSide reports whether v and other are on the same side of the line
// through l1 and l2. Points on the line count as both sides.
func (v Vec3) SameSide(l1, l2, other Vec3) bool {
	side := func(p Vec3) float64 {
		return (p.X-l1.X)*(l2.Y-l1.Y) - (l2.X-l1.X)*(p.Y-l1.Y)
	}
	return side(v)*side(other) >= 0
}

// InsideTriangle reports whether v is inside (or on the border of) the
// triangle p1 p2 p3.
func (v Vec3) InsideTriangle(p1, p2, p3 Vec3) bool {
	return v.SameSide(p1, p2, p3) &&
		v.SameSide(p2, p3, p1) &&
		v.SameSide(p3, p1, p2)
}
