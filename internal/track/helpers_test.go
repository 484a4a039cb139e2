package track

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/monitoring"
)

// captureLogs redirects the diagnostic logger for the duration of the test.
func captureLogs(t *testing.T) *[]string {
	t.Helper()
	original := monitoring.Logf
	t.Cleanup(func() { monitoring.Logf = original })
	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	return &lines
}

func centerlineText(pts []common.Vec3) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d 0\n", len(pts))
	for _, p := range pts {
		fmt.Fprintf(&b, "%g %g\n", p.X, p.Y)
	}
	return b.String()
}

func roadFromPositions(t *testing.T, s Settings, pts []common.Vec3) *Road {
	t.Helper()
	r := NewRoad(s)
	require.NoError(t, r.ReadCenterline(strings.NewReader(centerlineText(pts))))
	require.Equal(t, len(pts), r.Len())
	return r
}

// straightRoad runs along the x axis with unit spacing.
func straightRoad(t *testing.T, n int) *Road {
	t.Helper()
	pts := make([]common.Vec3, n)
	for i := range pts {
		pts[i] = common.V2(float64(i), 0)
	}
	return roadFromPositions(t, DefaultSettings(), pts)
}

// arcRoad follows a counter-clockwise arc of the given radius.
func arcRoad(t *testing.T, n int, radius, sweep float64) *Road {
	t.Helper()
	pts := make([]common.Vec3, n)
	for i := range pts {
		a := sweep * float64(i) / float64(n-1)
		pts[i] = common.V2(radius*math.Cos(a), radius*math.Sin(a))
	}
	return roadFromPositions(t, DefaultSettings(), pts)
}

// wavyRoad alternates left and right turns.
func wavyRoad(t *testing.T, n int) *Road {
	t.Helper()
	pts := make([]common.Vec3, n)
	for i := range pts {
		x := float64(i) * 2
		pts[i] = common.V2(x, 20*math.Sin(x/15))
	}
	return roadFromPositions(t, DefaultSettings(), pts)
}

// roadWithCurvature builds points along the x axis carrying the given curvature.
func roadWithCurvature(s Settings, curv []float64) *Road {
	r := NewRoad(s)
	for i, c := range curv {
		r.Points = append(r.Points, RoadPoint{
			Distance:  float64(i),
			Position:  common.V2(float64(i), 0),
			Normal:    common.V2(0, 1),
			Curvature: c,
			Resolved:  common.V2(float64(i), 0),
		})
	}
	return r
}
