package track

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/monitoring"
)

// span clamps [start, end) to the road.
func (r *Road) span(start, end int) (int, int) {
	start = max(start, 0)
	end = min(end, len(r.Points))
	return start, max(start, end)
}

// SumDistance is the length of the resolved trajectory from start to end-1.
func (r *Road) SumDistance(start, end int) float64 {
	start, end = r.span(start, end)
	if end-start < 2 {
		return 0
	}
	steps := make([]float64, 0, end-start-1)
	for i := start + 1; i < end; i++ {
		steps = append(steps, r.Points[i].Resolved.Distance(r.Points[i-1].Resolved))
	}
	return floats.Sum(steps)
}

func (r *Road) absRealCurvatures(start, end int) []float64 {
	start, end = r.span(start, end)
	out := make([]float64, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, math.Abs(r.RealTrajectoryCurvature(i)))
	}
	return out
}

// MaxTrajectoryCurvature is the largest |real curvature| in [start, end).
func (r *Road) MaxTrajectoryCurvature(start, end int) float64 {
	c := r.absRealCurvatures(start, end)
	if len(c) == 0 {
		return 0
	}
	return floats.Max(c)
}

// SumTrajectoryCurvature adds |real curvature| over [start, end).
func (r *Road) SumTrajectoryCurvature(start, end int) float64 {
	c := r.absRealCurvatures(start, end)
	sum := floats.Sum(c)
	if math.IsNaN(sum) {
		for i, v := range c {
			if math.IsNaN(v) {
				monitoring.Logf("numeric anomaly: nan real curvature at point %d", start+i)
				break
			}
		}
	}
	return sum
}

// Scale multiplies positions, resolved positions, distances and the bounding
// box by f. Normals, curvature and offsets are unchanged.
func (r *Road) Scale(f float64) {
	for i := range r.Points {
		p := &r.Points[i]
		p.Position = p.Position.Scale(f)
		p.Resolved = p.Resolved.Scale(f)
		p.Distance *= f
	}
	lo, hi := r.Min.Scale(f), r.Max.Scale(f)
	r.Min, r.Max = lo.Min(hi), lo.Max(hi)
	r.TotalDistance *= f
	r.Settings.RoadWidth *= f
}

// Translate moves the whole road by v.
func (r *Road) Translate(v common.Vec3) {
	for i := range r.Points {
		p := &r.Points[i]
		p.Position = p.Position.Add(v)
		p.Resolved = p.Resolved.Add(v)
	}
	r.Min = r.Min.Add(v)
	r.Max = r.Max.Add(v)
}

// SetStartingX moves the first point along x to x and the last point by the
// same amount, pulling the distances of all other points back by it. Only the
// two end points move.
func (r *Road) SetStartingX(x float64) {
	n := len(r.Points)
	if n == 0 {
		return
	}
	d := x - r.Points[0].Position.X
	r.Points[0].Position.X = x
	if n > 1 {
		r.Points[n-1].Position.X += d
	}
	for i := 0; i < n-1; i++ {
		r.Points[i].Distance -= d
	}
	for _, i := range []int{0, n - 1} {
		r.ComputeResolved(i)
		r.Min = r.Min.Min(r.Points[i].Position)
		r.Max = r.Max.Max(r.Points[i].Position)
	}
}
