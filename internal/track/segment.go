package track

import (
	"math"

	"racing-line-visualizer/internal/monitoring"
)

// IsFlat reports whether the road is almost straight at point i.
func (r *Road) IsFlat(i int) bool {
	return math.Abs(r.Points[i].Curvature) <= r.Settings.AlmostFlat
}

func sign(c float64) int {
	switch {
	case c > 0:
		return 1
	case c < 0:
		return -1
	}
	return 0
}

// curvatureClass is 0 for flat points and the curvature sign otherwise.
func (r *Road) curvatureClass(i int) int {
	if r.IsFlat(i) {
		return 0
	}
	return sign(r.Points[i].Curvature)
}

// CurvatureChangeKeyFrames rebuilds KeyFrames with a keyframe at the first
// point, the last point and every point where the curvature changes sign or
// touches zero. Length is the index gap from the previous keyframe.
func (r *Road) CurvatureChangeKeyFrames() []KeyFrame {
	r.KeyFrames = nil
	n := len(r.Points)
	for i := 0; i < n; i++ {
		if i != 0 && i != n-1 && r.Points[i-1].Curvature*r.Points[i].Curvature > 0 {
			continue
		}
		kf := KeyFrame{Index: i, Sign: sign(r.Points[i].Curvature)}
		if i > 0 {
			kf.Length = i - r.KeyFrames[len(r.KeyFrames)-1].Index
		}
		r.KeyFrames = append(r.KeyFrames, kf)
	}
	return r.KeyFrames
}

// FindKeyFrames rebuilds KeyFrames from stretches of consecutive points in the
// same class (flat, left or right). Each stretch is represented by its middle
// point. Keyframe 0 always sits on point 0; a stretch whose middle is point 0
// lends its length to it instead of adding a second keyframe there.
func (r *Road) FindKeyFrames() []KeyFrame {
	r.KeyFrames = nil
	n := len(r.Points)
	if n < 3 {
		return r.KeyFrames
	}
	r.KeyFrames = append(r.KeyFrames, KeyFrame{Index: 0, Length: 1, Sign: r.curvatureClass(0)})

	start := 0
	class := r.curvatureClass(0)
	for i := 1; i <= n; i++ {
		if i < n && r.curvatureClass(i) == class {
			continue
		}
		kf := KeyFrame{Index: (start + i - 1) / 2, Length: i - start, Sign: class}
		if kf.Index > 0 {
			r.KeyFrames = append(r.KeyFrames, kf)
		} else {
			r.KeyFrames[0].Length = kf.Length
		}
		if i < n {
			start = i
			class = r.curvatureClass(i)
		}
	}
	monitoring.Logf("total key frames: %d", len(r.KeyFrames))
	return r.KeyFrames
}

// ControlPoints returns point 0, the interior points where the centerline
// curvature has a strict local extremum and the middle of every run of equal
// curvature values.
func (r *Road) ControlPoints() []int {
	values := make([]float64, len(r.Points))
	for i, p := range r.Points {
		values[i] = p.Curvature
	}
	return controlPoints(values)
}

// TrajectoryControlPoints is ControlPoints over the real trajectory curvature.
func (r *Road) TrajectoryControlPoints() []int {
	values := make([]float64, len(r.Points))
	for i := range r.Points {
		values[i] = r.RealTrajectoryCurvature(i)
	}
	return controlPoints(values)
}

func controlPoints(v []float64) []int {
	if len(v) == 0 {
		return nil
	}
	data := []int{0}
	if len(v) < 3 {
		return data
	}
	runStart := 0
	for i := 1; i < len(v)-1; i++ {
		prev, cur, next := v[i-1], v[i], v[i+1]
		switch {
		case (cur-prev)*(cur-next) > 0:
			data = append(data, i)
		case prev == cur && cur != next:
			data = append(data, (runStart+i)/2)
		case prev != cur && cur == next:
			runStart = i
		}
	}
	return data
}

// FindNextAnchor looks past the flat stretch start may be in for the next flat
// stretch of at least FlatLength points and returns its middle, or the last
// point when there is none. flat is false if a non-flat point was crossed.
func (r *Road) FindNextAnchor(start int) (anchor int, flat bool) {
	n := len(r.Points)
	minLength := max(r.Settings.FlatLength, 1)
	flat = true

	for start < n && r.IsFlat(start) {
		start++
	}
	for start < n {
		for start < n && !r.IsFlat(start) {
			start++
			flat = false
		}
		end := start
		for end < n && r.IsFlat(end) {
			end++
		}
		if end-start >= minLength {
			return (start + end - 1) / 2, flat
		}
		start = end
	}
	return n - 1, flat
}

// FindNextAnchorKF moves to the span that starts at the previous end keyframe
// and ends at the next keyframe long enough for its class: FlatLength for flat
// stretches, CurveLength for curves. The end is clamped to the last keyframe.
func (r *Road) FindNextAnchorKF(kfEnd int) (start, end int) {
	start, end = kfEnd, kfEnd
	last := len(r.KeyFrames) - 1
	if end >= last {
		return start, end
	}
	end++
	for end < last && r.shortKeyFrame(r.KeyFrames[end]) {
		end++
	}
	return start, end
}

func (r *Road) shortKeyFrame(kf KeyFrame) bool {
	if kf.Sign == 0 {
		return kf.Length < r.Settings.FlatLength
	}
	return kf.Length < r.Settings.CurveLength
}
