package render

import (
	"image/color"
	"math"
	"slices"

	"racing-line-visualizer/internal/track"
)

// Palette
var (
	ColorRoad       = color.RGBA{255, 255, 0, 255} // Yellow
	ColorRibbon     = color.RGBA{120, 120, 0, 255} // Dark Yellow
	ColorKeyFrame   = color.RGBA{50, 155, 50, 160} // Green
	ColorTrajectory = color.RGBA{128, 0, 128, 255} // Purple
	ColorHover      = color.RGBA{255, 255, 255, 200}
)

// ColorMode selects how the trajectory is colored point by point.
type ColorMode int

const (
	// CurvatureAgreement is red where the trajectory turns the same way as the
	// road and blue where it does not.
	CurvatureAgreement ColorMode = iota
	// CurvatureIntensity mixes road curvature (blue) and trajectory curvature (red).
	CurvatureIntensity
	// ControlPoints is blue on control points, red elsewhere.
	ControlPoints
	// KeyFrameBands swaps red and blue at every keyframe.
	KeyFrameBands
	colorModeCount
)

func (m ColorMode) String() string {
	switch m {
	case CurvatureAgreement:
		return "curvature agreement"
	case CurvatureIntensity:
		return "curvature intensity"
	case ControlPoints:
		return "control points"
	case KeyFrameBands:
		return "keyframe bands"
	}
	return "unknown"
}

// Next cycles to the following mode.
func (m ColorMode) Next() ColorMode {
	return (m + 1) % colorModeCount
}

func redBlue(red, blue float64) color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
	}
	return color.RGBA{clamp(red), 0, clamp(blue), 255}
}

// TrajectoryColors returns one color per road point.
func TrajectoryColors(r *track.Road, mode ColorMode) []color.RGBA {
	n := r.Len()
	colors := make([]color.RGBA, n)
	switch mode {
	case CurvatureAgreement:
		for i, p := range r.Points {
			if p.Curvature*r.RealTrajectoryCurvature(i) >= 0 {
				colors[i] = redBlue(1, 0)
			} else {
				colors[i] = redBlue(0, 1)
			}
		}
	case CurvatureIntensity:
		maxCurv := r.MaxCurvature
		if maxCurv == 0 {
			maxCurv = 1
		}
		for i, p := range r.Points {
			colors[i] = redBlue(0.5*(r.RealTrajectoryCurvature(i)+1)/maxCurv, 0.5*(p.Curvature+1)/maxCurv)
		}
	case ControlPoints:
		ctrl := r.ControlPoints()
		for i := range r.Points {
			if slices.Contains(ctrl, i) {
				colors[i] = redBlue(0, 1)
			} else {
				colors[i] = redBlue(1, 0)
			}
		}
	case KeyFrameBands:
		red, blue := 1.0, 0.0
		kf := 1
		for i := range r.Points {
			if i > 0 && kf < len(r.KeyFrames) && r.KeyFrames[kf].Index == i {
				kf++
				red, blue = 1-red, 1-blue
			}
			colors[i] = redBlue(red, blue)
		}
	default:
		for i := range colors {
			colors[i] = ColorTrajectory
		}
	}
	return colors
}
