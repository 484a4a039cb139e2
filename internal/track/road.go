package track

import (
	"errors"
	"math"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/monitoring"
)

// MaxOffset bounds the lateral trajectory offset on either side of the centerline,
// in units of the road half width.
const MaxOffset = 0.8

var (
	// ErrSourceUnavailable is returned when a road or trajectory file cannot be opened.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedRecord is returned when a numeric record cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")
)

// RoadType selects how distance/angle files are turned into points.
type RoadType int

const (
	// AllScale emits one point per sample.
	AllScale RoadType = iota
	// SkipStep emits one point per RoadStep of accumulated distance, averaging the
	// turn of the folded samples.
	SkipStep
)

// Settings are the per-road tuning parameters.
type Settings struct {
	AlmostFlat     float64 // |curvature| at or below this is flat (E-Track 5: 0.01, Alpine 2: 0.002)
	Increment      float64 // largest offset change per Optimize pass
	CurvatureScale float64 // scale of sqrt(|curvature|) in Optimize
	RoadScale      float64 // scale of right (non-negative) turn sines in angle files
	LeftScale      float64 // scale of left (negative) turn sines in angle files
	RoadWidth      float64 // half width of the road; offset 1 reaches the edge
	RoadStep       float64 // distance folded into one point by SkipStep
	TrajectoryStep int     // sparse entries per span for external searches
	FlatLength     int     // points in a flat stretch long enough to anchor
	CurveLength    int     // points in a curve long enough to anchor
	RoadType       RoadType
	StartDistance  float64 // angle files: samples before this distance are skipped
	EndDistance    float64 // angle files: samples after this distance are skipped; 0 = no limit
}

// DefaultSettings returns the settings used when no configuration is given.
func DefaultSettings() Settings {
	return Settings{
		AlmostFlat:     0.004,
		Increment:      0.1,
		CurvatureScale: 2,
		RoadScale:      0.15,
		LeftScale:      0.62,
		RoadWidth:      15,
		RoadStep:       3.8,
		TrajectoryStep: 5,
		FlatLength:     5,
		CurveLength:    10,
		RoadType:       AllScale,
	}
}

// KeyFrame marks a stretch of the road with a consistent curvature sign.
type KeyFrame struct {
	Index  int // representative point of the stretch
	Length int // number of points in the stretch
	Sign   int // -1, 0 (flat) or +1
}

// Road is an open sequence of road points plus the data derived while ingesting it.
// A Road is not safe for concurrent use.
type Road struct {
	Points        []RoadPoint
	Min, Max      common.Vec3 // bounding box of all positions
	MaxCurvature  float64     // largest |curvature| seen during ingestion
	TotalDistance float64     // length including the closing segment back to point 0
	DistanceHint  float64     // total distance announced by a centerline header
	KeyFrames     []KeyFrame
	Settings      Settings
}

// NewRoad creates an empty road with the given settings.
func NewRoad(s Settings) *Road {
	return &Road{Settings: s}
}

// Len returns the number of points.
func (r *Road) Len() int {
	return len(r.Points)
}

func (r *Road) reset() {
	r.Points = nil
	r.KeyFrames = nil
	r.Min, r.Max = common.Vec3{}, common.Vec3{}
	r.MaxCurvature = 0
	r.TotalDistance = 0
	r.DistanceHint = 0
}

// extendBounds grows the bounding box. The first point seeds it.
func (r *Road) extendBounds(p common.Vec3) {
	if len(r.Points) <= 1 {
		r.Min, r.Max = p, p
		return
	}
	r.Min = r.Min.Min(p)
	r.Max = r.Max.Max(p)
}

func (r *Road) noteCurvature(i int, c float64) {
	if math.IsNaN(c) {
		monitoring.Logf("numeric anomaly: nan curvature at point %d", i)
		return
	}
	if math.Abs(c) > r.MaxCurvature {
		r.MaxCurvature = math.Abs(c)
	}
}

func (r *Road) appendPoint(dist float64, pos, normal common.Vec3, curv float64) {
	r.Points = append(r.Points, RoadPoint{
		Distance:  dist,
		Position:  pos,
		Normal:    normal,
		Curvature: curv,
		Resolved:  pos,
	})
	r.extendBounds(pos)
	r.noteCurvature(len(r.Points)-1, curv)
}

func (r *Road) finish() {
	n := len(r.Points)
	if n == 0 {
		return
	}
	last := r.Points[n-1]
	r.TotalDistance = last.Distance + last.Position.Distance(r.Points[0].Position)
	monitoring.Logf("road: %d points min: %v max: %v maxCurv %g total dist %g",
		n, r.Min, r.Max, r.MaxCurvature, r.TotalDistance)
}

// ClosestPoint finds the point whose position is closest to pos.
// Returns -1 for an empty road.
func (r *Road) ClosestPoint(pos common.Vec3) int {
	minDistSq := math.MaxFloat64
	closest := -1
	for i, p := range r.Points {
		d := pos.Sub(p.Position)
		if distSq := d.Dot(d); distSq < minDistSq {
			minDistSq = distSq
			closest = i
		}
	}
	return closest
}

// WorldToFrenet converts a world position to (distance along the road, lateral
// offset). The offset is in the same unit as trajectory offsets, positive on the
// side the normal points to.
func (r *Road) WorldToFrenet(pos common.Vec3) (float64, float64) {
	i := r.ClosestPoint(pos)
	if i < 0 {
		return 0, 0
	}
	p := r.Points[i]
	d := pos.Sub(p.Position).Dot(p.Normal)
	if r.Settings.RoadWidth != 0 {
		d /= r.Settings.RoadWidth
	}
	return p.Distance, d
}
