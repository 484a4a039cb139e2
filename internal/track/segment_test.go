package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func diff(t *testing.T, want, got interface{}, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestIsFlat(t *testing.T) {
	s := DefaultSettings()
	s.AlmostFlat = 0.01
	r := roadWithCurvature(s, []float64{0.005, -0.005, 0.01, 0.02, -0.5})
	got := make([]bool, r.Len())
	for i := range got {
		got[i] = r.IsFlat(i)
	}
	diff(t, []bool{true, true, true, false, false}, got)
}

func TestCurvatureChangeKeyFrames(t *testing.T) {
	r := roadWithCurvature(DefaultSettings(), []float64{0.1, 0.2, -0.1, -0.3, 0, 0.2, 0.1})
	want := []KeyFrame{
		{Index: 0, Length: 0, Sign: 1},
		{Index: 2, Length: 2, Sign: -1},
		{Index: 4, Length: 2, Sign: 0},
		{Index: 5, Length: 1, Sign: 1},
		{Index: 6, Length: 1, Sign: 1},
	}
	diff(t, want, r.CurvatureChangeKeyFrames())
	diff(t, want, r.KeyFrames)
}

func TestCurvatureChangeKeyFramesPartition(t *testing.T) {
	captureLogs(t)
	r := wavyRoad(t, 150)
	kfs := r.CurvatureChangeKeyFrames()
	assert.Equal(t, 0, kfs[0].Index)
	assert.Equal(t, r.Len()-1, kfs[len(kfs)-1].Index)
	for k := 1; k < len(kfs); k++ {
		assert.Greater(t, kfs[k].Index, kfs[k-1].Index)
		assert.Equal(t, kfs[k].Index-kfs[k-1].Index, kfs[k].Length)
	}
	assert.Greater(t, len(kfs), 3, "the road changes direction")
}

func TestRebuildingKeyFramesKeepsReturnedSlices(t *testing.T) {
	captureLogs(t)
	r := roadWithCurvature(DefaultSettings(), []float64{0, 0.1, 0.1, -0.1, -0.1, -0.1, 0, 0})

	stretches := r.FindKeyFrames()
	want := append([]KeyFrame(nil), stretches...)
	changes := r.CurvatureChangeKeyFrames()
	diff(t, want, stretches)

	wantChanges := append([]KeyFrame(nil), changes...)
	r.FindKeyFrames()
	diff(t, wantChanges, changes)
}

func TestFindKeyFrames(t *testing.T) {
	captureLogs(t)
	s := DefaultSettings()
	s.AlmostFlat = 0.05

	tests := []struct {
		name string
		curv []float64
		want []KeyFrame
	}{
		{
			name: "stretches",
			curv: []float64{0.1, 0.1, 0.1, 0, 0, 0.01, -0.2, -0.2, -0.2, -0.2, 0.3},
			want: []KeyFrame{
				{Index: 0, Length: 1, Sign: 1},
				{Index: 1, Length: 3, Sign: 1},
				{Index: 4, Length: 3, Sign: 0},
				{Index: 7, Length: 4, Sign: -1},
				{Index: 10, Length: 1, Sign: 1},
			},
		},
		{
			name: "first stretch merges into keyframe zero",
			curv: []float64{0.1, 0.1, 0, 0, 0, -0.1},
			want: []KeyFrame{
				{Index: 0, Length: 2, Sign: 1},
				{Index: 3, Length: 3, Sign: 0},
				{Index: 5, Length: 1, Sign: -1},
			},
		},
		{
			name: "single stretch",
			curv: []float64{0, 0, 0, 0, 0},
			want: []KeyFrame{
				{Index: 0, Length: 1, Sign: 0},
				{Index: 2, Length: 5, Sign: 0},
			},
		},
		{
			name: "too short",
			curv: []float64{0.1, 0.2},
			want: []KeyFrame{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := roadWithCurvature(s, tt.curv)
			got := r.FindKeyFrames()
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			diff(t, tt.want, got)
		})
	}
}

func TestFindKeyFramesCoversRoad(t *testing.T) {
	captureLogs(t)
	r := wavyRoad(t, 150)
	kfs := r.FindKeyFrames()
	total := 0
	for k, kf := range kfs {
		if k > 0 {
			assert.Greater(t, kf.Index, kfs[k-1].Index)
		}
		total += kf.Length
	}
	// Keyframe 0 counts one extra point unless the first stretch merged into it.
	assert.Contains(t, []int{r.Len(), r.Len() + 1}, total)
}

func TestControlPoints(t *testing.T) {
	r := roadWithCurvature(DefaultSettings(), []float64{0, 1, 0, 2, 2, 2, 1, 1})
	diff(t, []int{0, 1, 2, 4}, r.ControlPoints())

	diff(t, []int{0}, roadWithCurvature(DefaultSettings(), []float64{1, 2}).ControlPoints())
	assert.Empty(t, roadWithCurvature(DefaultSettings(), nil).ControlPoints())
}

func TestTrajectoryControlPoints(t *testing.T) {
	captureLogs(t)
	r := straightRoad(t, 6)
	// One run of zeros that never ends: nothing past point 0.
	diff(t, []int{0}, r.TrajectoryControlPoints())
}

func TestFindNextAnchor(t *testing.T) {
	s := DefaultSettings()
	s.AlmostFlat = 0.01
	s.FlatLength = 3
	r := roadWithCurvature(s, []float64{0, 0, 0.5, 0.5, 0, 0, 0.5, 0, 0, 0, 0, 0.5})

	anchor, flat := r.FindNextAnchor(0)
	assert.Equal(t, 8, anchor)
	assert.False(t, flat)

	anchor, flat = r.FindNextAnchor(7)
	assert.Equal(t, 11, anchor)
	assert.False(t, flat)

	curvy := roadWithCurvature(s, []float64{0.5, 0.5, 0.5, 0.5})
	anchor, _ = curvy.FindNextAnchor(0)
	assert.Equal(t, 3, anchor)

	straight := roadWithCurvature(s, []float64{0, 0, 0, 0})
	anchor, flat = straight.FindNextAnchor(0)
	assert.Equal(t, 3, anchor)
	assert.True(t, flat)
}

func TestFindNextAnchorKF(t *testing.T) {
	s := DefaultSettings()
	s.FlatLength = 3
	s.CurveLength = 4
	r := NewRoad(s)
	r.KeyFrames = []KeyFrame{
		{Index: 0, Length: 1, Sign: 1},
		{Index: 5, Length: 2, Sign: 0},
		{Index: 8, Length: 3, Sign: 1},
		{Index: 12, Length: 6, Sign: 1},
		{Index: 20, Length: 3, Sign: 0},
		{Index: 25, Length: 5, Sign: -1},
	}

	tests := []struct {
		from, start, end int
	}{
		{from: 0, start: 0, end: 3},
		{from: 3, start: 3, end: 4},
		{from: 4, start: 4, end: 5},
		{from: 5, start: 5, end: 5},
	}
	for _, tt := range tests {
		start, end := r.FindNextAnchorKF(tt.from)
		assert.Equal(t, tt.start, start, "from %d", tt.from)
		assert.Equal(t, tt.end, end, "from %d", tt.from)
	}
}
