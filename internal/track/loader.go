package track

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/monitoring"
)

// numberReader yields whitespace separated numbers from a text stream.
type numberReader struct {
	sc    *bufio.Scanner
	count int
}

func newNumberReader(in io.Reader) *numberReader {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &numberReader{sc: sc}
}

// next returns io.EOF once the stream is exhausted.
func (nr *numberReader) next() (float64, error) {
	if !nr.sc.Scan() {
		if err := nr.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	nr.count++
	v, err := strconv.ParseFloat(nr.sc.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d %q", ErrMalformedRecord, nr.count, nr.sc.Text())
	}
	return v, nil
}

func openSource(path, what string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		monitoring.Logf("could not open the %s file %s: %v", what, path, err)
		return nil, fmt.Errorf("open %s file %q: %w: %w", what, path, ErrSourceUnavailable, err)
	}
	return f, nil
}

// LoadCenterline reads a centerline file. On failure the road is left empty.
func (r *Road) LoadCenterline(path string) error {
	r.reset()
	f, err := openSource(path, "road centerline")
	if err != nil {
		return err
	}
	defer f.Close()
	return r.ReadCenterline(f)
}

// maxPrealloc bounds the capacity reserved from a centerline header count.
const maxPrealloc = 1 << 16

// ReadCenterline reads "count distanceHint" followed by count "x y" records and
// derives distances, normals and curvature. A stream shorter than announced
// keeps the points read so far.
func (r *Road) ReadCenterline(in io.Reader) error {
	r.reset()
	nr := newNumberReader(in)
	count, err := nr.next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("centerline header: %w", err)
	}
	hint, err := nr.next()
	if err != nil && err != io.EOF {
		return fmt.Errorf("centerline header: %w", err)
	}

	// The header is only a hint; a corrupt count must not drive the allocation.
	n := int(count)
	positions := make([]common.Vec3, 0, min(max(n, 0), maxPrealloc))
	for i := 0; i < n; i++ {
		x, err := nr.next()
		if err == io.EOF {
			monitoring.Logf("centerline ends after %d of %d points", i, n)
			break
		}
		if err != nil {
			return fmt.Errorf("centerline point %d: %w", i, err)
		}
		y, err := nr.next()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("centerline point %d: %w", i, err)
		}
		positions = append(positions, common.V2(x, y))
	}

	r.setCenterline(positions)
	r.DistanceHint = hint
	return nil
}

// setCenterline replaces the points with the given positions and derives
// distance, normal and curvature for each of them.
func (r *Road) setCenterline(positions []common.Vec3) {
	r.reset()
	up := common.V2(0, 1)
	for i, p := range positions {
		dist := 0.0
		if i > 0 {
			dist = r.Points[i-1].Distance + p.Distance(r.Points[i-1].Position)
		}
		r.appendPoint(dist, p, up, 0)
		if i > 1 {
			r.deriveAt(i - 1)
		}
	}

	n := len(r.Points)
	if n > 1 {
		if last := r.Points[n-1].Position.Sub(r.Points[n-2].Position).Perp().Normalize(); !last.IsZero() {
			r.Points[n-1].Normal = last
		}
		r.Points[0].Normal = r.Points[1].Normal
	}
	r.finish()
}

// deriveAt computes normal and curvature of the interior point i from its two
// adjacent segments.
func (r *Road) deriveAt(i int) {
	pt := &r.Points[i]
	d1 := pt.Position.Sub(r.Points[i-1].Position).Perp()
	d2 := r.Points[i+1].Position.Sub(pt.Position).Perp()

	if n := d1.Add(d2).Normalize(); !n.IsZero() {
		pt.Normal = n
	} else if n := d2.Normalize(); !n.IsZero() {
		pt.Normal = n
	}

	// A zero length segment leaves the curvature undefined; keep it flat.
	c, _ := common.SignedSine(d1, d2)
	pt.Curvature = c
	r.noteCurvature(i, c)
}

// LoadAngles reads a distance/turn-sine file. On failure the road is left empty.
func (r *Road) LoadAngles(path string) error {
	r.reset()
	f, err := openSource(path, "road")
	if err != nil {
		return err
	}
	defer f.Close()
	return r.ReadAngles(f)
}

// scaleSine applies the asymmetric turn sensitivity of angle files.
func (r *Road) scaleSine(s float64) float64 {
	if s >= 0 {
		return s * r.Settings.RoadScale
	}
	return s * r.Settings.LeftScale
}

// ReadAngles rebuilds the road from a stream of "distance turnSine" pairs. A
// positive sine turns the direction of travel clockwise. With SkipStep, samples
// are folded together until RoadStep distance has accumulated and the folded
// turn is their average.
func (r *Road) ReadAngles(in io.Reader) error {
	r.reset()
	s := r.Settings
	inWindow := func(d float64) bool {
		return d >= s.StartDistance && (s.EndDistance <= 0 || d <= s.EndDistance)
	}

	nr := newNumberReader(in)
	oldDist, err := nr.next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("angle record 0: %w", err)
	}
	sine, err := nr.next()
	if err != nil && err != io.EOF {
		return fmt.Errorf("angle record 0: %w", err)
	}

	pos, dir := common.Vec3{}, common.V2(1, 0)
	if inWindow(oldDist) {
		r.appendPoint(oldDist, pos, dir.Perp(), -r.scaleSine(sine))
	}

	var acc, sum float64
	folded := 0
	for record := 1; err == nil; record++ {
		var dist float64
		dist, err = nr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("angle record %d: %w", record, err)
		}

		if inWindow(dist) {
			sum += r.scaleSine(sine)
			folded++
			acc += dist - oldDist
			if s.RoadType != SkipStep || acc >= s.RoadStep {
				r.advance(&pos, &dir, acc, sum/float64(folded), dist)
				acc, sum, folded = 0, 0, 0
			}
		}

		oldDist = dist
		sine, err = nr.next()
		if err != nil && err != io.EOF {
			return fmt.Errorf("angle record %d: %w", record, err)
		}
	}
	if folded > 0 {
		r.advance(&pos, &dir, acc, sum/float64(folded), oldDist)
	}

	r.finish()
	return nil
}

// advance turns dir by asin(sine) and, for a non-zero step, moves pos forward
// and records a point at dist. The step is damped by cos so sharp turns do not
// overshoot.
func (r *Road) advance(pos, dir *common.Vec3, delta, sine, dist float64) {
	cos := math.Sqrt(1 - sine*sine)
	if math.IsNaN(cos) {
		monitoring.Logf("numeric anomaly: turn sine %g at point %d is outside [-1, 1]", sine, len(r.Points))
	}
	*dir = common.V2(dir.X*cos+dir.Y*sine, -dir.X*sine+dir.Y*cos).Normalize()
	if delta == 0 {
		return
	}
	*pos = pos.Add(dir.Scale(delta * (0.0001 + cos)))
	r.appendPoint(dist, *pos, dir.Perp(), -sine)
}
