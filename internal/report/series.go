// Package report writes road and trajectory profiles as PNG plots, an
// interactive HTML chart, a rasterized preview and plain text tables.
package report

import (
	"racing-line-visualizer/internal/track"
)

// Series holds the per-point values of a road, indexed like its points.
type Series struct {
	Distance      []float64
	Curvature     []float64
	RealCurvature []float64
	Offset        []float64
}

// Collect extracts the plotted values from r.
func Collect(r *track.Road) Series {
	n := r.Len()
	s := Series{
		Distance:      make([]float64, n),
		Curvature:     make([]float64, n),
		RealCurvature: make([]float64, n),
		Offset:        make([]float64, n),
	}
	for i, p := range r.Points {
		s.Distance[i] = p.Distance
		s.Curvature[i] = p.Curvature
		s.RealCurvature[i] = r.RealTrajectoryCurvature(i)
		s.Offset[i] = p.Offset
	}
	return s
}

// Summary is the one line overview printed after a batch run.
type Summary struct {
	Points           int
	KeyFrames        int
	RoadLength       float64 // centerline distance of the last point
	TrajectoryLength float64
	MaxCurvature     float64
	MaxRealCurvature float64
	SumRealCurvature float64
}

// Summarize measures the whole road.
func Summarize(r *track.Road) Summary {
	n := r.Len()
	s := Summary{
		Points:           n,
		KeyFrames:        len(r.KeyFrames),
		TrajectoryLength: r.SumDistance(0, n),
		MaxCurvature:     r.MaxCurvature,
		MaxRealCurvature: r.MaxTrajectoryCurvature(0, n),
		SumRealCurvature: r.SumTrajectoryCurvature(0, n),
	}
	if n > 0 {
		s.RoadLength = r.Points[n-1].Distance
	}
	return s
}
