// Command roadtool loads a road, runs trajectory passes without a window and
// writes tables, plots and trajectory files.
package main

import (
	"flag"
	"io"
	"log"
	"math"
	"os"

	"racing-line-visualizer/internal/config"
	"racing-line-visualizer/internal/monitoring"
	"racing-line-visualizer/internal/report"
	"racing-line-visualizer/internal/search"
	"racing-line-visualizer/internal/track"
)

// Preview image size
const (
	PreviewWidth  = 1200
	PreviewHeight = 800
)

func main() {
	roadPath := flag.String("road", "", "road file (required)")
	form := flag.String("form", config.FormCenter, "road file form: center or angle")
	configPath := flag.String("config", "", "road tuning config (JSON)")
	trajPath := flag.String("traj", "", "trajectory file to start from")
	startX := flag.Float64("startx", math.NaN(), "move the first point along x to this value")
	optimize := flag.Int("optimize", 0, "Optimize passes (stops early when nothing moves)")
	smooth := flag.Int("smooth", 0, "Smooth radius applied after optimizing")
	runSearch := flag.Bool("search", false, "run the anchored search")
	keyFrames := flag.Bool("keyframes", false, "print stretch keyframes")
	changes := flag.Bool("changes", false, "print curvature change keyframes")
	points := flag.Bool("points", false, "print every road point")
	plotPrefix := flag.String("plot", "", "write <prefix>_profile.png and <prefix>_path.png")
	chartPath := flag.String("chart", "", "write an HTML chart")
	previewPath := flag.String("preview", "", "write a PNG preview of road and trajectory")
	outPath := flag.String("out", "", "write the trajectory")
	realPath := flag.String("real", "", "write resolved positions with real curvature")
	quiet := flag.Bool("quiet", false, "silence diagnostics")
	flag.Parse()

	if *roadPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	road, err := cfg.OpenRoad(*roadPath, *form)
	if err != nil {
		log.Fatal(err)
	}
	if !math.IsNaN(*startX) {
		road.SetStartingX(*startX)
	}
	if *trajPath != "" {
		if err := road.LoadTrajectory(*trajPath); err != nil {
			monitoring.Logf("trajectory: %v", err)
		}
	}

	for i := 0; i < *optimize; i++ {
		if road.Optimize() == 0 {
			monitoring.Logf("optimize: converged after %d passes", i+1)
			break
		}
	}
	if *smooth > 0 {
		road.Smooth(*smooth)
	}
	if *runSearch {
		search.New(road, cfg.SearchParams()).Run()
	}

	if err := writeTables(os.Stdout, road, tables{KeyFrames: *keyFrames, Changes: *changes, Points: *points}); err != nil {
		log.Fatal(err)
	}

	if *plotPrefix != "" {
		if err := report.WriteProfilePlot(road, *plotPrefix+"_profile.png"); err != nil {
			log.Fatal(err)
		}
		if err := report.WritePathPlot(road, *plotPrefix+"_path.png"); err != nil {
			log.Fatal(err)
		}
	}
	if *chartPath != "" {
		if err := report.WriteChartFile(road, *chartPath); err != nil {
			log.Fatal(err)
		}
	}
	if *previewPath != "" {
		if err := report.WritePreview(road, *previewPath, PreviewWidth, PreviewHeight); err != nil {
			log.Fatal(err)
		}
	}
	if *outPath != "" {
		if err := road.SaveTrajectory(*outPath); err != nil {
			log.Fatal(err)
		}
	}
	if *realPath != "" {
		if err := road.SaveResolvedWithCurvature(*realPath); err != nil {
			log.Fatal(err)
		}
	}
}

// tables selects the tables printed before the summary.
type tables struct {
	KeyFrames bool
	Changes   bool // curvature change keyframes
	Points    bool
}

// writeTables prints the selected tables and the summary. The road keeps its
// stretch keyframes.
func writeTables(w io.Writer, road *track.Road, t tables) error {
	summary := report.Summarize(road)
	if t.KeyFrames {
		if err := report.WriteKeyFrames(w, road, road.KeyFrames); err != nil {
			return err
		}
	}
	if t.Changes {
		stretches := road.KeyFrames
		changes := road.CurvatureChangeKeyFrames()
		road.KeyFrames = stretches
		if err := report.WriteKeyFrames(w, road, changes); err != nil {
			return err
		}
	}
	if t.Points {
		if err := report.WritePoints(w, road); err != nil {
			return err
		}
	}
	return report.WriteSummary(w, summary)
}
