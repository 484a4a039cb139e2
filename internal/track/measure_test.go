package track

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"racing-line-visualizer/internal/common"
)

func TestSumDistance(t *testing.T) {
	captureLogs(t)
	r := straightRoad(t, 6)
	assert.InDelta(t, 5, r.SumDistance(0, r.Len()), 1e-12)
	assert.InDelta(t, 2, r.SumDistance(1, 4), 1e-12)
	assert.Zero(t, r.SumDistance(3, 3))
	assert.InDelta(t, 5, r.SumDistance(-4, 100), 1e-12)

	// Moving the middle point off the line lengthens the trajectory.
	r.Points[3].Offset = 0.2
	r.ComputeResolved(3)
	assert.Greater(t, r.SumDistance(0, r.Len()), 5.0)
}

func TestTrajectoryCurvatureMeasures(t *testing.T) {
	captureLogs(t)
	r := roadFromPositions(t, DefaultSettings(), []common.Vec3{
		common.V2(0, 0), common.V2(10, 0), common.V2(20, 10), common.V2(20, 20), common.V2(10, 30),
	})
	s := math.Sqrt2 / 2
	assert.InDelta(t, s, r.MaxTrajectoryCurvature(0, r.Len()), 1e-9)
	assert.InDelta(t, 3*s, r.SumTrajectoryCurvature(0, r.Len()), 1e-9)
	assert.InDelta(t, s, r.SumTrajectoryCurvature(2, 3), 1e-9)
	assert.Zero(t, r.MaxTrajectoryCurvature(4, 2))
	assert.Zero(t, r.SumTrajectoryCurvature(0, 0))
}

func TestScaleAndTranslate(t *testing.T) {
	captureLogs(t)
	r := roadFromPositions(t, DefaultSettings(), []common.Vec3{
		common.V2(0, 0), common.V2(10, 0), common.V2(20, 10),
	})
	curv := r.Points[1].Curvature
	total := r.TotalDistance

	r.Scale(2)
	assert.Equal(t, common.V2(40, 20), r.Points[2].Position)
	assert.InDelta(t, 20, r.Points[1].Distance, 1e-12)
	assert.InDelta(t, 2*total, r.TotalDistance, 1e-9)
	assert.Equal(t, 30.0, r.Settings.RoadWidth)
	assert.Equal(t, curv, r.Points[1].Curvature)
	assert.Equal(t, common.V2(40, 20), r.Max)

	r.Scale(-1)
	assert.Equal(t, common.V2(-40, -20), r.Min)
	assert.Equal(t, common.V2(0, 0), r.Max)

	r.Translate(common.V2(5, 5))
	assert.Equal(t, common.V2(-35, -15), r.Min)
	assert.Equal(t, common.V2(-15, 5), r.Points[1].Position)
	assert.Equal(t, r.Points[1].Position, r.Points[1].Resolved)
}

func TestSetStartingX(t *testing.T) {
	captureLogs(t)
	r := roadFromPositions(t, DefaultSettings(), []common.Vec3{
		common.V2(0, 0), common.V2(10, 0), common.V2(20, 10),
	})
	r.SetStartingX(-5)

	assert.Equal(t, common.V2(-5, 0), r.Points[0].Position)
	assert.Equal(t, common.V2(10, 0), r.Points[1].Position)
	assert.Equal(t, common.V2(15, 10), r.Points[2].Position)
	assert.Equal(t, r.Points[0].Position, r.Points[0].Resolved)
	diff(t, []float64{5, 15, 10 + math.Sqrt(200)}, distances(r), cmpopts.EquateApprox(0, 1e-12))
	assert.Equal(t, -5.0, r.Min.X)

	empty := NewRoad(DefaultSettings())
	empty.SetStartingX(3)
	assert.Zero(t, empty.Len())
}

func TestClosestPointAndFrenet(t *testing.T) {
	captureLogs(t)
	r := straightRoad(t, 10)
	assert.Equal(t, 4, r.ClosestPoint(common.V2(4.2, 3)))

	dist, offset := r.WorldToFrenet(common.V2(6.1, -7.5))
	assert.Equal(t, 6.0, dist)
	assert.InDelta(t, -0.5, offset, 1e-12)

	empty := NewRoad(DefaultSettings())
	assert.Equal(t, -1, empty.ClosestPoint(common.V2(0, 0)))
	dist, offset = empty.WorldToFrenet(common.V2(1, 1))
	assert.Zero(t, dist)
	assert.Zero(t, offset)
}
