package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"racing-line-visualizer/internal/track"
)

func lineData(vs []float64) []opts.LineData {
	data := make([]opts.LineData, len(vs))
	for i, v := range vs {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func profileChart(r *track.Road) *charts.Line {
	s := Collect(r)
	x := make([]string, len(s.Distance))
	for i, d := range s.Distance {
		x[i] = strconv.FormatFloat(d, 'f', 1, 64)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Road profile", Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Curvature and offset", Subtitle: fmt.Sprintf("points=%d keyframes=%d", r.Len(), len(r.KeyFrames))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance", NameLocation: "middle", NameGap: 25}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(x).
		AddSeries("curvature", lineData(s.Curvature)).
		AddSeries("real curvature", lineData(s.RealCurvature)).
		AddSeries("offset", lineData(s.Offset))
	return line
}

func pathChart(r *track.Road) *charts.Scatter {
	center := make([]opts.ScatterData, 0, r.Len())
	traj := make([]opts.ScatterData, 0, r.Len())
	for _, p := range r.Points {
		center = append(center, opts.ScatterData{Value: []interface{}{p.Position.X, p.Position.Y}})
		traj = append(traj, opts.ScatterData{Value: []interface{}{p.Resolved.X, p.Resolved.Y}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Road and trajectory"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("centerline", center, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#a0a000"}))
	scatter.AddSeries("trajectory", traj, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#800080"}))
	return scatter
}

func keyFrameChart(r *track.Road) *charts.Bar {
	x := make([]string, len(r.KeyFrames))
	y := make([]opts.BarData, len(r.KeyFrames))
	for i, kf := range r.KeyFrames {
		length := kf.Length
		if kf.Sign < 0 {
			length = -length
		}
		x[i] = strconv.Itoa(kf.Index)
		y[i] = opts.BarData{Value: length}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Keyframes", Subtitle: "stretch length, negative for right turns"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("length", y)
	return bar
}

// WriteChart renders an HTML page with the curvature profile, the road and
// trajectory paths and the keyframes of r.
func WriteChart(r *track.Road, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "Racing line"
	page.AddCharts(profileChart(r), pathChart(r), keyFrameChart(r))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteChartFile writes the chart page to path.
func WriteChartFile(r *track.Road, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file %s: %w", path, err)
	}
	if err := WriteChart(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
