// Command gen-track writes a synthetic oval road as a centerline file, as the
// matching distance/angle file and as a PNG preview.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/report"
	"racing-line-visualizer/internal/track"
)

func main() {
	outDir := flag.String("out", "roads", "output directory")
	name := flag.String("name", "oval", "base name of the generated files")
	n := flag.Int("points", 400, "number of centerline points")
	radiusX := flag.Float64("rx", 300, "oval radius along x")
	radiusY := flag.Float64("ry", 200, "oval radius along y")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	pts := ovalCenterline(*n, *radiusX, *radiusY)
	base := filepath.Join(*outDir, *name)

	if err := writeFile(base+".txt", func(w io.Writer) error { return writeCenterline(w, pts) }); err != nil {
		log.Fatal(err)
	}
	s := track.DefaultSettings()
	if err := writeFile(base+"_angles.txt", func(w io.Writer) error { return writeAngles(w, pts, s) }); err != nil {
		log.Fatal(err)
	}

	road := track.NewRoad(s)
	if err := road.LoadCenterline(base + ".txt"); err != nil {
		log.Fatal(err)
	}
	if err := report.WritePreview(road, base+".png", 800, 600); err != nil {
		log.Fatal(err)
	}
}

// ovalCenterline samples an ellipse counter-clockwise, starting at its bottom
// heading +x. The closing segment back to the start is left implicit.
func ovalCenterline(n int, rx, ry float64) []common.Vec3 {
	pts := make([]common.Vec3, n)
	for i := range pts {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pts[i] = common.V2(rx*math.Cos(a), ry*math.Sin(a))
	}
	return pts
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeCenterline writes the "count hint" header and one "x y" record per point.
func writeCenterline(w io.Writer, pts []common.Vec3) error {
	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += pts[i].Distance(pts[i-1])
	}
	if _, err := fmt.Fprintf(w, "%d %g\n", len(pts), length); err != nil {
		return err
	}
	for _, p := range pts {
		if _, err := fmt.Fprintf(w, "%g %g\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

// writeAngles writes "distance turnSine" records that the angle loader, with
// settings s, turns back into pts (translated so the first point is the origin).
// Sines are unscaled by RoadScale/LeftScale and distances stretched by the
// loader's cos damping.
func writeAngles(w io.Writer, pts []common.Vec3, s track.Settings) error {
	dir := common.V2(1, 0)
	dist := 0.0
	for i := 0; i < len(pts); i++ {
		sine := 0.0
		step := 0.0
		if i+1 < len(pts) {
			d := pts[i+1].Sub(pts[i])
			left, _ := common.SignedSine(dir, d)
			sine = -left
			step = d.Len() / (math.Sqrt(1-sine*sine) + 0.0001)
			dir = d
		}
		raw := sine / s.RoadScale
		if sine < 0 {
			raw = sine / s.LeftScale
		}
		if _, err := fmt.Fprintf(w, "%g %g\n", dist, raw); err != nil {
			return err
		}
		dist += step
	}
	return nil
}
