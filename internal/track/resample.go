package track

import (
	"fmt"

	"github.com/cnkei/gospline"

	"racing-line-visualizer/internal/common"
)

// Interpolation selects how ResampleCenterline fills in new points.
type Interpolation int

const (
	InterpNone Interpolation = iota
	InterpLinear
	InterpQuadratic
	InterpCubic
)

// ParseInterpolation maps a configuration name to an Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	switch name {
	case "", "none":
		return InterpNone, nil
	case "linear":
		return InterpLinear, nil
	case "quadratic":
		return InterpQuadratic, nil
	case "cubic":
		return InterpCubic, nil
	}
	return InterpNone, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) String() string {
	switch i {
	case InterpLinear:
		return "linear"
	case InterpQuadratic:
		return "quadratic"
	case InterpCubic:
		return "cubic"
	}
	return "none"
}

// ResampleCenterline replaces the points with points spaced step apart along
// the current distances, then derives normals and curvature again from the new
// positions. Offsets are reset.
func (r *Road) ResampleCenterline(step float64, interp Interpolation) {
	n := len(r.Points)
	if interp == InterpNone || step <= 0 || n < 2 {
		return
	}
	hint := r.DistanceHint
	total := r.Points[n-1].Distance

	var positions []common.Vec3
	switch {
	case interp == InterpCubic && n >= 3:
		positions = r.cubicPositions(step, total)
	default:
		positions = r.segmentPositions(step, total, interp)
	}
	r.setCenterline(positions)
	r.DistanceHint = hint
}

// segmentPositions walks the segments and evaluates one interpolation per
// segment, seeding a new quadratic session whenever the segment changes.
func (r *Road) segmentPositions(step, total float64, interp Interpolation) []common.Vec3 {
	var (
		positions []common.Vec3
		session   QuadraticSession
		seg       = -1
	)
	last := len(r.Points) - 1
	for s := 0.0; s <= total; s += step {
		j := max(seg, 0)
		for j < last-1 && r.Points[j+1].Distance < s {
			j++
		}
		from, to := r.Points[j], r.Points[j+1]
		alpha := 0.0
		if span := to.Distance - from.Distance; span > 0 {
			alpha = (s - from.Distance) / span
		}
		if interp == InterpQuadratic {
			if j != seg {
				session.Seed(from, to)
			}
			positions = append(positions, session.At(alpha).Position)
		} else {
			positions = append(positions, LinearInterpolate(from, to, alpha).Position)
		}
		seg = j
	}
	if end := r.Points[last].Position; len(positions) == 0 || !positions[len(positions)-1].AlmostEqual(end, common.Epsilon) {
		positions = append(positions, end)
	}
	return positions
}

// cubicPositions fits natural cubic splines x(d) and y(d) through the points.
// Points repeating the previous distance are dropped since the spline needs
// strictly increasing knots.
func (r *Road) cubicPositions(step, total float64) []common.Vec3 {
	var ds, xs, ys []float64
	for i, p := range r.Points {
		if i > 0 && p.Distance <= ds[len(ds)-1] {
			continue
		}
		ds = append(ds, p.Distance)
		xs = append(xs, p.Position.X)
		ys = append(ys, p.Position.Y)
	}
	if len(ds) < 3 {
		return r.segmentPositions(step, total, InterpLinear)
	}
	sx := gospline.NewCubicSpline(ds, xs)
	sy := gospline.NewCubicSpline(ds, ys)

	var positions []common.Vec3
	for s := 0.0; s < total; s += step {
		positions = append(positions, common.V2(sx.At(s), sy.At(s)))
	}
	return append(positions, r.Points[len(r.Points)-1].Position)
}
