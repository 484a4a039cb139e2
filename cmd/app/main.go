package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/config"
	"racing-line-visualizer/internal/monitoring"
	"racing-line-visualizer/internal/render"
	"racing-line-visualizer/internal/search"
	"racing-line-visualizer/internal/track"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ============================================================================
// CONFIGURATION - Adjust these values to customize the viewer
// ============================================================================

// Default road file path
const InputRoadPath = "roads/oval.txt"

// Output files written by the W and T keys
const (
	TrajectoryOutPath = "traj.txt"
	RealTrajOutPath   = "realTraj.txt"
)

// Render window dimensions
const (
	WindowWidth  = 1200
	WindowHeight = 800
)

// Interaction settings
const (
	SmoothRadius   = 10 // S key
	AutoPassesTick = 5  // Optimize passes per frame while auto-optimizing
)

// Visualization colors
var (
	ColorRib      = color.RGBA{50, 155, 50, 40}    // Faint Green
	ColorPanel    = color.RGBA{0, 0, 0, 180}       // Translucent Black
	ColorHoverDot = color.RGBA{255, 255, 255, 255} // White
)

// ============================================================================

type Game struct {
	Road     *track.Road
	Searcher *search.Searcher
	View     render.View
	Ribbon   []render.RibbonEdge
	Marks    []render.Segment

	Mode   render.ColorMode
	Auto   bool // Optimize every frame until nothing moves
	Passes int
	Moved  int
	Status string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.optimize(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.Auto = !g.Auto
	}
	if g.Auto {
		g.optimize(AutoPassesTick)
		if g.Moved == 0 {
			g.Auto = false
			g.Status = fmt.Sprintf("converged after %d passes", g.Passes)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Road.Smooth(SmoothRadius)
		g.Status = fmt.Sprintf("smoothed, radius %d", SmoothRadius)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		res := g.Searcher.Run()
		g.Status = fmt.Sprintf("search: %d spans, %.3f -> %.3f", res.Spans, res.Before, res.After)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.Mode = g.Mode.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.save(TrajectoryOutPath, g.Road.SaveTrajectory)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.save(RealTrajOutPath, g.Road.SaveResolvedWithCurvature)
	}
	return nil
}

func (g *Game) optimize(passes int) {
	for i := 0; i < passes; i++ {
		g.Moved = g.Road.Optimize()
		g.Passes++
		if g.Moved == 0 {
			return
		}
	}
}

func (g *Game) save(path string, write func(string) error) {
	if err := write(path); err != nil {
		g.Status = err.Error()
		monitoring.Logf("save: %v", err)
		return
	}
	g.Status = "wrote " + path
}

func (g *Game) Draw(screen *ebiten.Image) {
	toScreen := g.View.ToScreen
	line := func(a, b common.Vec3, width float32, clr color.Color) {
		x1, y1 := toScreen(a)
		x2, y2 := toScreen(b)
		vector.StrokeLine(screen, x1, y1, x2, y2, width, clr, true)
	}

	// Road ribbon: ribs first, then both edges
	for _, e := range g.Ribbon {
		line(e.Left, e.Right, 1, ColorRib)
	}
	for i := 1; i < len(g.Ribbon); i++ {
		line(g.Ribbon[i-1].Left, g.Ribbon[i].Left, 1, render.ColorRibbon)
		line(g.Ribbon[i-1].Right, g.Ribbon[i].Right, 1, render.ColorRibbon)
	}

	for _, s := range render.LineStrip(render.Centerline(g.Road)) {
		line(s.A, s.B, 1, render.ColorRoad)
	}
	for _, m := range g.Marks {
		line(m.A, m.B, 2, render.ColorKeyFrame)
	}

	// Trajectory, colored by the end point of every segment
	colors := render.TrajectoryColors(g.Road, g.Mode)
	for i, s := range render.LineStrip(render.TrajectoryLine(g.Road)) {
		line(s.A, s.B, 2, colors[i+1])
	}

	hover := g.hoverInfo(screen)

	vector.DrawFilledRect(screen, 0, 0, 260, 200, ColorPanel, true)
	msg := "ROAD MONITOR\n"
	msg += "----------------\n"
	msg += fmt.Sprintf("Points:    %d\n", g.Road.Len())
	msg += fmt.Sprintf("Keyframes: %d\n", len(g.Road.KeyFrames))
	msg += fmt.Sprintf("Passes:    %d (moved %d)\n", g.Passes, g.Moved)
	msg += fmt.Sprintf("Curvature: %.4f\n", g.Road.SumTrajectoryCurvature(0, g.Road.Len()))
	msg += fmt.Sprintf("Colors:    %s\n", g.Mode)
	if g.Auto {
		msg += " [Auto-optimize]\n"
	}
	msg += hover
	msg += g.Status
	msg += "\nControls:\nSpace/A = Optimize  S = Smooth\nR = Search  C = Colors\nW/T = Save  Q = Quit"
	ebitenutil.DebugPrint(screen, msg)

	// Search panel (Top Right)
	panelW := 160.0
	panelH := 70.0
	padding := 10.0
	targetX := float32(WindowWidth) - float32(panelW) - float32(padding)
	vector.DrawFilledRect(screen, targetX, 0, float32(panelW), float32(panelH), ColorPanel, true)
	specs := "SEARCH PARAMS\n"
	specs += "-------------\n"
	specs += g.Searcher.DebugInfoStr()
	ebitenutil.DebugPrintAt(screen, specs, int(targetX)+10, int(padding))
}

// hoverInfo marks the road point under the cursor and describes it.
func (g *Game) hoverInfo(screen *ebiten.Image) string {
	cx, cy := ebiten.CursorPosition()
	pos := g.View.ToWorld(float64(cx), float64(cy))
	if !render.RibbonContains(g.Ribbon, pos) {
		return ""
	}
	i := g.Road.ClosestPoint(pos)
	if i < 0 {
		return ""
	}
	p := g.Road.Points[i]
	x, y := g.View.ToScreen(p.Position)
	vector.DrawFilledCircle(screen, x, y, 3, ColorHoverDot, true)
	rx, ry := g.View.ToScreen(p.Resolved)
	vector.DrawFilledCircle(screen, rx, ry, 3, render.ColorHover, true)

	dist, lateral := g.Road.WorldToFrenet(pos)
	return fmt.Sprintf("Point %d s=%.1f d=%.2f\n curv %.4f real %.4f\n offset %.3f\n",
		i, dist, lateral, p.Curvature, g.Road.RealTrajectoryCurvature(i), p.Offset)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return WindowWidth, WindowHeight
}

func main() {
	roadPath := flag.String("road", InputRoadPath, "road file")
	form := flag.String("form", config.FormCenter, "road file form: center or angle")
	trajPath := flag.String("traj", "", "trajectory file to load")
	configPath := flag.String("config", "", "road tuning config (JSON)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	road, err := cfg.OpenRoad(*roadPath, *form)
	if err != nil {
		log.Fatal(err)
	}
	if road.Len() < 2 {
		log.Fatalf("%s: need at least 2 points, got %d", *roadPath, road.Len())
	}
	if *trajPath != "" {
		if err := road.LoadTrajectory(*trajPath); err != nil {
			monitoring.Logf("trajectory: %v", err)
		}
	}

	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle("Racing Line Visualizer")

	game := &Game{
		Road:     road,
		Searcher: search.New(road, cfg.SearchParams()),
		View:     render.FitView(road.Min, road.Max, WindowWidth, WindowHeight),
		Ribbon:   render.Ribbon(road),
		Marks:    render.KeyFrameMarks(road),
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
