package track

import (
	"math"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/monitoring"
)

// ComputeResolved moves point i off the centerline by its offset.
func (r *Road) ComputeResolved(i int) {
	p := &r.Points[i]
	p.Resolved = p.Position.Add(p.Normal.Scale(r.Settings.RoadWidth * p.Offset))
}

// ComputeResolvedRange recomputes the resolved positions of points [start, end).
func (r *Road) ComputeResolvedRange(start, end int) {
	for i := max(start, 0); i < end && i < len(r.Points); i++ {
		r.ComputeResolved(i)
	}
}

// RealTrajectoryCurvature is the signed sine of the turn the resolved trajectory
// makes at point i. It is 0 at both ends of the road and where an adjacent
// segment has zero length.
func (r *Road) RealTrajectoryCurvature(i int) float64 {
	if i <= 0 || i >= len(r.Points)-1 {
		return 0
	}
	prev := r.Points[i].Resolved.Sub(r.Points[i-1].Resolved)
	next := r.Points[i+1].Resolved.Sub(r.Points[i].Resolved)
	c, _ := common.SignedSine(prev, next)
	if math.IsNaN(c) {
		monitoring.Logf("numeric anomaly: nan real curvature at point %d", i)
	}
	return c
}

// Optimize makes one greedy pass that pushes every interior offset toward the
// side the trajectory turns to, by at most Increment. Points already at the
// bound stay there unless the trajectory turns against the road. Curvatures are
// read from the resolved positions as they were before the pass. Returns the
// number of points moved.
func (r *Road) Optimize() int {
	s := r.Settings
	n := len(r.Points)
	if n < 3 {
		return 0
	}
	curv := make([]float64, n)
	for i := 1; i < n-1; i++ {
		curv[i] = r.RealTrajectoryCurvature(i)
	}

	moved := 0
	for i := 1; i < n-1; i++ {
		c := curv[i]
		p := &r.Points[i]
		if math.Abs(c) <= s.AlmostFlat {
			continue
		}
		if math.Abs(p.Offset) >= MaxOffset && c*p.Curvature >= 0 {
			continue
		}
		step := math.Min(s.Increment, s.CurvatureScale*math.Sqrt(math.Abs(c)))
		if c < 0 {
			step = -step
		}
		next := clampOffset(p.Offset + step)
		if next != p.Offset {
			p.Offset = next
			moved++
		}
	}
	r.ComputeResolvedRange(1, n)
	return moved
}

func clampOffset(v float64) float64 {
	return math.Max(-MaxOffset, math.Min(MaxOffset, v))
}

// Smooth replaces each offset in [radius, N-1-radius) with a triangular weighted
// average of its neighbors within radius. Offsets near both ends are untouched.
func (r *Road) Smooth(radius int) {
	n := len(r.Points)
	if radius <= 0 || n == 0 {
		return
	}
	prev := r.Offsets()
	weight := float64(radius)
	for i := radius; i < n-1-radius; i++ {
		value := prev[i]
		for j := 1; j < radius; j++ {
			w := float64(radius-j) / weight
			value += w*prev[i-j] + w*prev[i+j]
		}
		r.Points[i].Offset = value / weight
	}
	r.ComputeResolvedRange(0, n)
}

// SetConstant assigns v to every offset.
func (r *Road) SetConstant(v float64) {
	for i := range r.Points {
		r.Points[i].Offset = v
	}
	r.ComputeResolvedRange(0, len(r.Points))
}

// Offsets returns a copy of the trajectory offsets.
func (r *Road) Offsets() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Offset
	}
	return out
}

// Resample spreads a sparse offset vector over points [start, end): every step
// points advance one sparse entry, interpolating linearly in between. Past the
// last entry its value is held.
func (r *Road) Resample(sparse []float64, start, end, step int) {
	size := len(sparse)
	if size == 0 {
		return
	}
	step = max(step, 1)
	for i := start; i < end; i++ {
		k := i - start
		j, frac := k/step, k%step
		if j >= size-1 {
			r.Points[i].Offset = sparse[size-1]
			continue
		}
		t := float64(frac) / float64(step)
		r.Points[i].Offset = (1-t)*sparse[j] + t*sparse[j+1]
	}
	r.ComputeResolvedRange(start, end)
}

// ResampleKF spreads a sparse offset vector over the keyframe spans
// [startKF, endKF). Each span between two keyframes receives interm sparse
// entries: the cursor advances one entry every ceil(span/interm) points and the
// interpolation restarts at every keyframe. The last keyframe spans to the last
// point.
func (r *Road) ResampleKF(sparse []float64, startKF, endKF, interm int) {
	size := len(sparse)
	nkf := len(r.KeyFrames)
	if size == 0 || nkf == 0 {
		return
	}
	interm = max(interm, 1)
	first, last := -1, 0

	cursor := 0
	for k := max(startKF, 0); k < endKF && k < nkf; k++ {
		p1 := r.KeyFrames[k].Index
		p3 := len(r.Points) - 1
		if k < nkf-1 {
			p3 = r.KeyFrames[k+1].Index
		}
		if first < 0 {
			first = p1
		}
		step := int(math.Ceil(float64(p3-p1) / float64(interm)))
		for cursor < size && p1 < p3 {
			t1 := sparse[cursor]
			t2 := sparse[size-1]
			if cursor < size-1 {
				t2 = sparse[cursor+1]
			}
			p2 := min(p1+step, p3)
			for j := 0; j < p2-p1; j++ {
				t := float64(j) / float64(step)
				r.Points[p1+j].Offset = (1-t)*t1 + t*t2
			}
			cursor++
			p1 = p2
		}
		last = p3
	}
	if first >= 0 {
		r.ComputeResolvedRange(first, last+1)
	}
}
