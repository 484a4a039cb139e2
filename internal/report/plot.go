package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"racing-line-visualizer/internal/track"
)

// Plot colors
var (
	ColorCurvature     = color.RGBA{0, 0, 255, 255}   // Blue
	ColorRealCurvature = color.RGBA{255, 0, 0, 255}   // Red
	ColorOffset        = color.RGBA{128, 0, 128, 255} // Purple
	ColorCenterline    = color.RGBA{160, 160, 0, 255} // Dark Yellow
)

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, c color.Color) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s line: %w", label, err)
	}
	line.Width = vg.Points(1)
	line.Color = c
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func placeLegend(p *plot.Plot) {
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
}

// WriteProfilePlot saves road curvature, trajectory curvature and offsets
// against distance. The image format follows the file extension.
func WriteProfilePlot(r *track.Road, path string) error {
	if r.Len() < 2 {
		return fmt.Errorf("profile plot: road has %d points", r.Len())
	}
	s := Collect(r)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Road profile - %d points", r.Len())
	p.X.Label.Text = "Distance"
	p.Y.Label.Text = "Curvature / offset"

	if err := addLine(p, "curvature", xys(s.Distance, s.Curvature), ColorCurvature); err != nil {
		return err
	}
	if err := addLine(p, "real curvature", xys(s.Distance, s.RealCurvature), ColorRealCurvature); err != nil {
		return err
	}
	if err := addLine(p, "offset", xys(s.Distance, s.Offset), ColorOffset); err != nil {
		return err
	}
	placeLegend(p)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save profile plot %s: %w", path, err)
	}
	return nil
}

// WritePathPlot saves the centerline and the resolved trajectory in world
// coordinates.
func WritePathPlot(r *track.Road, path string) error {
	n := r.Len()
	if n < 2 {
		return fmt.Errorf("path plot: road has %d points", n)
	}
	center := make(plotter.XYs, n)
	traj := make(plotter.XYs, n)
	for i, pt := range r.Points {
		center[i] = plotter.XY{X: pt.Position.X, Y: pt.Position.Y}
		traj[i] = plotter.XY{X: pt.Resolved.X, Y: pt.Resolved.Y}
	}

	p := plot.New()
	p.Title.Text = "Road and trajectory"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	if err := addLine(p, "centerline", center, ColorCenterline); err != nil {
		return err
	}
	if err := addLine(p, "trajectory", traj, ColorOffset); err != nil {
		return err
	}
	placeLegend(p)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("save path plot %s: %w", path, err)
	}
	return nil
}
