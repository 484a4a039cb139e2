// Package render turns a road into plain drawable data: polylines, ribbon
// edges, per-point colors and a world to screen mapping.
package render

import (
	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/track"
)

// Segment is a straight line from A to B in world space.
type Segment struct {
	A, B common.Vec3
}

// RibbonEdge is the cross section of the road at one point.
type RibbonEdge struct {
	Left, Right common.Vec3
}

// LineStrip joins consecutive points.
func LineStrip(pts []common.Vec3) []Segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, Segment{pts[i-1], pts[i]})
	}
	return segs
}

// Centerline returns the road positions.
func Centerline(r *track.Road) []common.Vec3 {
	pts := make([]common.Vec3, r.Len())
	for i, p := range r.Points {
		pts[i] = p.Position
	}
	return pts
}

// TrajectoryLine returns the resolved trajectory positions.
func TrajectoryLine(r *track.Road) []common.Vec3 {
	pts := make([]common.Vec3, r.Len())
	for i, p := range r.Points {
		pts[i] = p.Resolved
	}
	return pts
}

// Ribbon returns the road edges, RoadWidth to either side of every point.
func Ribbon(r *track.Road) []RibbonEdge {
	edges := make([]RibbonEdge, r.Len())
	w := r.Settings.RoadWidth
	for i, p := range r.Points {
		n := p.Normal.Scale(w)
		edges[i] = RibbonEdge{Left: p.Position.Add(n), Right: p.Position.Sub(n)}
	}
	return edges
}

// RibbonContains reports whether p lies on the ribbon, treating it as the
// triangle strip Left0 Right0 Left1 Right1 ...
func RibbonContains(edges []RibbonEdge, p common.Vec3) bool {
	for i := 1; i < len(edges); i++ {
		a, b := edges[i-1], edges[i]
		if p.InsideTriangle(a.Left, a.Right, b.Left) || p.InsideTriangle(a.Right, b.Left, b.Right) {
			return true
		}
	}
	return false
}

// KeyFrameMarks returns a tick across the road at every keyframe.
func KeyFrameMarks(r *track.Road) []Segment {
	marks := make([]Segment, 0, len(r.KeyFrames))
	w := r.Settings.RoadWidth
	for _, kf := range r.KeyFrames {
		if kf.Index < 0 || kf.Index >= r.Len() {
			continue
		}
		p := r.Points[kf.Index]
		n := p.Normal.Scale(w)
		marks = append(marks, Segment{p.Position.Sub(n), p.Position.Add(n)})
	}
	return marks
}
