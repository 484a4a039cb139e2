package track

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"racing-line-visualizer/internal/monitoring"
)

// LoadTrajectory reads a trajectory file. When it cannot be opened the offsets
// are left as they are.
func (r *Road) LoadTrajectory(path string) error {
	f, err := openSource(path, "trajectory")
	if err != nil {
		return err
	}
	defer f.Close()
	return r.ReadTrajectory(f)
}

// ReadTrajectory reads "distance offset" records and interpolates the offset of
// every point by its distance between the surrounding records. Points past the
// last record take its offset. A malformed record ends the input early; the
// offsets read until then are kept and the error is returned.
func (r *Road) ReadTrajectory(in io.Reader) error {
	n := len(r.Points)
	var dist1, traj1 float64
	scan := 0

	nr := newNumberReader(in)
	var readErr error
	for {
		dist2, err := nr.next()
		if err == nil {
			var traj2 float64
			traj2, err = nr.next()
			if err == nil {
				for scan < n && r.Points[scan].Distance <= dist2 {
					r.setInterpolatedOffset(scan, dist1, traj1, dist2, traj2)
					scan++
				}
				dist1, traj1 = dist2, traj2
				continue
			}
		}
		if err != io.EOF {
			readErr = fmt.Errorf("trajectory: %w", err)
		}
		break
	}

	for ; scan < n; scan++ {
		r.Points[scan].Offset = traj1
		r.ComputeResolved(scan)
	}
	return readErr
}

func (r *Road) setInterpolatedOffset(i int, dist1, traj1, dist2, traj2 float64) {
	p := &r.Points[i]
	if dist1 == dist2 {
		p.Offset = traj2
	} else {
		alpha := (p.Distance - dist1) / (dist2 - dist1)
		p.Offset = (1-alpha)*traj1 + alpha*traj2
	}
	if math.IsNaN(p.Offset) {
		monitoring.Logf("numeric anomaly: nan offset at %d dist %g", i, p.Distance)
	}
	r.ComputeResolved(i)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func createSink(path, what string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		monitoring.Logf("could not open the file %s to write the %s: %v", path, what, err)
		return nil, fmt.Errorf("create %s file %q: %w: %w", what, path, ErrSourceUnavailable, err)
	}
	return f, nil
}

// SaveTrajectory writes "distance<TAB>offset" for every point.
func (r *Road) SaveTrajectory(path string) error {
	f, err := createSink(path, "trajectory")
	if err != nil {
		return err
	}
	if err := r.WriteTrajectory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTrajectory writes "distance<TAB>offset" for every point.
func (r *Road) WriteTrajectory(out io.Writer) error {
	w := bufio.NewWriter(out)
	for _, p := range r.Points {
		fmt.Fprintf(w, "%s\t%s\n", formatFloat(p.Distance), formatFloat(p.Offset))
	}
	return w.Flush()
}

// SaveResolvedWithCurvature writes the resolved trajectory points with their
// real curvature.
func (r *Road) SaveResolvedWithCurvature(path string) error {
	f, err := createSink(path, "real points")
	if err != nil {
		return err
	}
	if err := r.WriteResolvedWithCurvature(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteResolvedWithCurvature writes "distance<TAB>x y z<TAB>realCurvature" for
// every point.
func (r *Road) WriteResolvedWithCurvature(out io.Writer) error {
	w := bufio.NewWriter(out)
	for i, p := range r.Points {
		fmt.Fprintf(w, "%s\t%s %s %s\t%s\n",
			formatFloat(p.Distance),
			formatFloat(p.Resolved.X), formatFloat(p.Resolved.Y), formatFloat(p.Resolved.Z),
			formatFloat(r.RealTrajectoryCurvature(i)))
	}
	return w.Flush()
}
