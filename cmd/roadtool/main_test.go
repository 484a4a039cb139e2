package main

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racing-line-visualizer/internal/monitoring"
	"racing-line-visualizer/internal/track"
)

func wavyRoad(t *testing.T) *track.Road {
	t.Helper()
	original := monitoring.Logf
	t.Cleanup(func() { monitoring.Logf = original })
	monitoring.SetLogger(nil)

	var b strings.Builder
	fmt.Fprintf(&b, "%d 0\n", 100)
	for i := 0; i < 100; i++ {
		x := float64(i) * 2
		fmt.Fprintf(&b, "%g %g\n", x, 20*math.Sin(x/15))
	}
	r := track.NewRoad(track.DefaultSettings())
	require.NoError(t, r.ReadCenterline(strings.NewReader(b.String())))
	r.FindKeyFrames()
	return r
}

func TestWriteTablesKeepsStretchKeyFrames(t *testing.T) {
	r := wavyRoad(t)
	stretches := append([]track.KeyFrame(nil), r.KeyFrames...)
	changes := len(r.CurvatureChangeKeyFrames())
	r.FindKeyFrames()

	var buf bytes.Buffer
	require.NoError(t, writeTables(&buf, r, tables{KeyFrames: true, Changes: true}))
	assert.Equal(t, stretches, r.KeyFrames)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Two headed keyframe tables, then the summary.
	assert.Len(t, lines, len(stretches)+1+changes+1+7)
	summary := lines[len(lines)-7:]
	assert.Equal(t, []string{"keyframes", fmt.Sprint(len(stretches))}, strings.Fields(summary[1]))
}

func TestWriteTablesSummaryOnly(t *testing.T) {
	r := wavyRoad(t)
	var buf bytes.Buffer
	require.NoError(t, writeTables(&buf, r, tables{}))
	assert.Equal(t, 7, strings.Count(buf.String(), "\n"))
	assert.True(t, strings.HasPrefix(buf.String(), "points"))
}
