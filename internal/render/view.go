package render

import (
	"math"

	"racing-line-visualizer/internal/common"
)

// ViewScaleMargin leaves 5% of the window free around the road.
const ViewScaleMargin = 0.95

// FrameView widens a bounding box so the road does not touch the window
// border: each axis grows by a tenth of its bound farther from the origin. A
// degenerate axis becomes [0, 1].
func FrameView(lo, hi common.Vec3) (common.Vec3, common.Vec3) {
	frame := func(a, b float64) (float64, float64) {
		switch {
		case a == b:
			return 0, 1
		case math.Abs(a) < math.Abs(b):
			b *= 1.1
			a -= 0.09091 * b
		default:
			a *= 1.1
			b -= 0.09091 * a
		}
		return a, b
	}
	lo.X, hi.X = frame(lo.X, hi.X)
	lo.Y, hi.Y = frame(lo.Y, hi.Y)
	return lo, hi
}

// View maps world coordinates to a window with y pointing down.
type View struct {
	Min, Max common.Vec3 // framed world area
	Scale    float64
	OffsetX  float64
	OffsetY  float64
	Height   int
}

// FitView frames the bounding box and scales it to fit a width x height
// window, centered.
func FitView(lo, hi common.Vec3, width, height int) View {
	lo, hi = FrameView(lo, hi)
	w, h := hi.X-lo.X, hi.Y-lo.Y
	winW, winH := float64(width), float64(height)

	scale := math.Min(winW/w, winH/h) * ViewScaleMargin
	return View{
		Min:     lo,
		Max:     hi,
		Scale:   scale,
		OffsetX: (winW - w*scale) / 2,
		OffsetY: (winH - h*scale) / 2,
		Height:  height,
	}
}

// ToScreen converts a world position to window pixels.
func (v View) ToScreen(p common.Vec3) (float32, float32) {
	x := (p.X-v.Min.X)*v.Scale + v.OffsetX
	y := float64(v.Height) - ((p.Y-v.Min.Y)*v.Scale + v.OffsetY)
	return float32(x), float32(y)
}

// ToWorld converts window pixels back to a world position.
func (v View) ToWorld(x, y float64) common.Vec3 {
	return common.V2(
		(x-v.OffsetX)/v.Scale+v.Min.X,
		(float64(v.Height)-y-v.OffsetY)/v.Scale+v.Min.Y,
	)
}
