package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"racing-line-visualizer/internal/track"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// WriteKeyFrames prints one row per keyframe.
func WriteKeyFrames(w io.Writer, r *track.Road, kfs []track.KeyFrame) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tINDEX\tDISTANCE\tLENGTH\tSIGN")
	for k, kf := range kfs {
		dist := 0.0
		if kf.Index >= 0 && kf.Index < r.Len() {
			dist = r.Points[kf.Index].Distance
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%d\t%+d\n", k, kf.Index, dist, kf.Length, kf.Sign)
	}
	return tw.Flush()
}

// WritePoints prints one row per point.
func WritePoints(w io.Writer, r *track.Road) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "I\tDISTANCE\tX\tY\tCURV\tREAL\tOFFSET")
	for i, p := range r.Points {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.4f\t%.4f\t%.3f\n",
			i, p.Distance, p.Position.X, p.Position.Y, p.Curvature, r.RealTrajectoryCurvature(i), p.Offset)
	}
	return tw.Flush()
}

// WriteSummary prints the summary as aligned name/value pairs.
func WriteSummary(w io.Writer, s Summary) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "points\t%d\n", s.Points)
	fmt.Fprintf(tw, "keyframes\t%d\n", s.KeyFrames)
	fmt.Fprintf(tw, "road length\t%.2f\n", s.RoadLength)
	fmt.Fprintf(tw, "trajectory length\t%.2f\n", s.TrajectoryLength)
	fmt.Fprintf(tw, "max curvature\t%.4f\n", s.MaxCurvature)
	fmt.Fprintf(tw, "max real curvature\t%.4f\n", s.MaxRealCurvature)
	fmt.Fprintf(tw, "sum real curvature\t%.4f\n", s.SumRealCurvature)
	return tw.Flush()
}
