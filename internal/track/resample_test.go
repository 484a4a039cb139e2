package track

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racing-line-visualizer/internal/common"
)

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"none", "linear", "quadratic", "cubic"} {
		interp, err := ParseInterpolation(name)
		require.NoError(t, err)
		assert.Equal(t, name, interp.String())
	}
	interp, err := ParseInterpolation("")
	require.NoError(t, err)
	assert.Equal(t, InterpNone, interp)

	_, err = ParseInterpolation("bezier")
	assert.Error(t, err)
}

func TestResampleCenterlineLinear(t *testing.T) {
	captureLogs(t)
	r := NewRoad(DefaultSettings())
	require.NoError(t, r.ReadCenterline(strings.NewReader("3 99\n0 0\n2 0\n4 0\n")))

	r.ResampleCenterline(0.5, InterpLinear)
	require.Equal(t, 9, r.Len())
	want := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}
	if d := cmp.Diff(want, distances(r), cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("distances (-want +got):\n%s", d)
	}
	for i, p := range r.Points {
		assert.InDelta(t, want[i], p.Position.X, 1e-12)
		assert.Equal(t, 0.0, p.Curvature)
	}
	assert.Equal(t, 99.0, r.DistanceHint)
}

func TestResampleCenterlineKeepsEndPoint(t *testing.T) {
	captureLogs(t)
	r := straightRoad(t, 4)
	r.ResampleCenterline(0.7, InterpLinear)
	last := r.Points[r.Len()-1]
	assert.True(t, last.Position.AlmostEqual(common.V2(3, 0), 1e-9), "got %v", last.Position)
	assert.InDelta(t, 3, last.Distance, 1e-9)
}

func TestResampleCenterlineNone(t *testing.T) {
	captureLogs(t)
	r := straightRoad(t, 4)
	before := r.Points
	r.ResampleCenterline(0.5, InterpNone)
	assert.Equal(t, before, r.Points)
	r.ResampleCenterline(0, InterpLinear)
	assert.Equal(t, before, r.Points)
}

func TestResampleCenterlineCurvedStaysOnArc(t *testing.T) {
	captureLogs(t)
	const radius = 50
	for _, interp := range []Interpolation{InterpLinear, InterpQuadratic, InterpCubic} {
		t.Run(interp.String(), func(t *testing.T) {
			r := arcRoad(t, 20, radius, math.Pi/2)
			r.ResampleCenterline(1, interp)

			require.Greater(t, r.Len(), 60)
			assert.True(t, r.Points[0].Position.AlmostEqual(common.V2(radius, 0), 1e-6))
			assert.True(t, r.Points[r.Len()-1].Position.AlmostEqual(common.V2(0, radius), 1e-6))
			for i, p := range r.Points {
				assert.InDelta(t, radius, p.Position.Len(), 0.5, "point %d", i)
				if i > 0 {
					assert.GreaterOrEqual(t, p.Distance, r.Points[i-1].Distance)
				}
			}
		})
	}
}

func TestResampleCenterlineCubicCurvature(t *testing.T) {
	captureLogs(t)
	r := arcRoad(t, 20, 50, math.Pi/2)
	r.ResampleCenterline(1, InterpCubic)
	for i := 1; i < r.Len()-1; i++ {
		assert.Greater(t, r.Points[i].Curvature, 0.0, "point %d turns left", i)
	}
}
