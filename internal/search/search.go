// Package search tunes the trajectory span by span: sparse offset vectors are
// spread over keyframe spans with ResampleKF and kept when they lower the
// summed trajectory curvature.
package search

import (
	"fmt"
	"math"
	"math/rand"

	"racing-line-visualizer/internal/monitoring"
	"racing-line-visualizer/internal/track"
)

// Hyperparameters
const (
	MinEpsilon = 0.01 // exploration floor
	Step       = 0.05 // greedy perturbation of one sparse entry
)

// Params configure a Searcher.
type Params struct {
	Iterations int     // candidates evaluated per span
	Epsilon    float64 // initial exploration rate
	Decay      float64 // epsilon multiplier per candidate
	Seed       int64
	Interm     int // sparse entries per keyframe stretch
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Iterations: 200,
		Epsilon:    0.3,
		Decay:      0.99,
		Seed:       1,
		Interm:     track.DefaultSettings().TrajectoryStep,
	}
}

// Result summarizes a search run.
type Result struct {
	Spans       int
	Evaluations int
	Improved    int // spans whose trajectory changed
	Before      float64
	After       float64
}

// Searcher runs an epsilon-greedy search over sparse offset vectors.
type Searcher struct {
	Road    *track.Road
	Params  Params
	rng     *rand.Rand
	epsilon float64
	evals   int
}

// New creates a searcher for r.
func New(r *track.Road, p Params) *Searcher {
	p.Interm = max(p.Interm, 1)
	return &Searcher{
		Road:    r,
		Params:  p,
		rng:     rand.New(rand.NewSource(p.Seed)),
		epsilon: p.Epsilon,
	}
}

// Run walks the road from keyframe span to keyframe span, as found by
// FindNextAnchorKF, and optimizes each of them. Keyframes are computed first
// when the road has none.
func (s *Searcher) Run() Result {
	r := s.Road
	if len(r.KeyFrames) == 0 {
		r.FindKeyFrames()
	}
	n := r.Len()
	res := Result{Before: r.SumTrajectoryCurvature(0, n)}
	last := len(r.KeyFrames) - 1
	if last < 0 {
		res.After = res.Before
		return res
	}

	kfEnd := 0
	for {
		start, end := r.FindNextAnchorKF(kfEnd)
		if end == start {
			break
		}
		if s.OptimizeSpan(start, end) {
			res.Improved++
		}
		res.Spans++
		kfEnd = end
	}
	// The last keyframe stretches to the last point.
	if s.OptimizeSpan(last, last+1) {
		res.Improved++
	}
	res.Spans++

	res.Evaluations = s.evals
	res.After = r.SumTrajectoryCurvature(0, n)
	monitoring.Logf("search: %d spans, %d evaluations, curvature %g -> %g",
		res.Spans, res.Evaluations, res.Before, res.After)
	return res
}

// layout mirrors how ResampleKF advances through [startKF, endKF): the point
// index at which every sparse entry starts and the last point of the span.
func (s *Searcher) layout(startKF, endKF int) ([]int, int) {
	r := s.Road
	nkf := len(r.KeyFrames)
	var starts []int
	end := -1
	for k := max(startKF, 0); k < endKF && k < nkf; k++ {
		p1 := r.KeyFrames[k].Index
		p3 := r.Len() - 1
		if k < nkf-1 {
			p3 = r.KeyFrames[k+1].Index
		}
		step := int(math.Ceil(float64(p3-p1) / float64(s.Params.Interm)))
		for p1 < p3 {
			starts = append(starts, p1)
			p1 = min(p1+step, p3)
		}
		end = p3
	}
	return starts, end
}

// OptimizeSpan searches the sparse vector for keyframes [startKF, endKF) and
// keeps the best one found when it lowers the curvature around the span.
// Otherwise the offsets are restored. Reports whether the trajectory changed.
func (s *Searcher) OptimizeSpan(startKF, endKF int) bool {
	r := s.Road
	starts, end := s.layout(startKF, endKF)
	if len(starts) == 0 {
		return false
	}
	first := starts[0]
	saved := r.Offsets()[first:end]

	// Curvature at first-1 and end also depends on the moved points.
	cost := func() float64 {
		return r.SumTrajectoryCurvature(first-1, end+1)
	}
	before := cost()

	best := make([]float64, len(starts)+1)
	for i, p := range starts {
		best[i] = r.Points[p].Offset
	}
	best[len(starts)] = r.Points[end].Offset
	r.ResampleKF(best, startKF, endKF, s.Params.Interm)
	bestCost := cost()
	s.evals++

	candidate := make([]float64, len(best))
	for it := 0; it < s.Params.Iterations; it++ {
		copy(candidate, best)
		s.mutate(candidate)
		r.ResampleKF(candidate, startKF, endKF, s.Params.Interm)
		s.evals++
		if c := cost(); c < bestCost {
			bestCost = c
			copy(best, candidate)
		}
	}

	if bestCost < before {
		r.ResampleKF(best, startKF, endKF, s.Params.Interm)
		return true
	}
	for i, o := range saved {
		r.Points[first+i].Offset = o
	}
	r.ComputeResolvedRange(first, end+1)
	return false
}

// mutate changes one entry. The last entry pins the span end and stays.
func (s *Searcher) mutate(v []float64) {
	s.epsilon = math.Max(s.epsilon*s.Params.Decay, MinEpsilon)
	j := s.rng.Intn(max(len(v)-1, 1))

	if s.rng.Float64() < s.epsilon {
		v[j] = (2*s.rng.Float64() - 1) * track.MaxOffset
		return
	}
	d := Step
	if s.rng.Intn(2) == 0 {
		d = -d
	}
	v[j] = math.Max(-track.MaxOffset, math.Min(track.MaxOffset, v[j]+d))
}

// DebugInfoStr describes the searcher state for the viewer HUD.
func (s *Searcher) DebugInfoStr() string {
	return fmt.Sprintf("Search: epsilon-greedy\nEpsilon: %.3f\nEvaluations: %d", s.epsilon, s.evals)
}
