package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"racing-line-visualizer/internal/common"
	"racing-line-visualizer/internal/render"
	"racing-line-visualizer/internal/track"
)

// Preview colors
var (
	ColorBackground = color.RGBA{255, 255, 255, 255} // White
	ColorTarmac     = color.RGBA{80, 80, 80, 255}    // Gray
)

// trajectoryHalfWidth is the half width of the rasterized trajectory, in pixels.
const trajectoryHalfWidth = 1

func fillQuad(z *vector.Rasterizer, v render.View, q [4]common.Vec3) {
	x, y := v.ToScreen(q[0])
	z.MoveTo(x, y)
	for _, p := range q[1:] {
		x, y = v.ToScreen(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
}

func paint(dst *image.RGBA, z *vector.Rasterizer, c color.Color) {
	mask := image.NewAlpha(dst.Bounds())
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// RasterizePreview draws the road ribbon and the trajectory into a width x
// height image, framed like the viewer.
func RasterizePreview(r *track.Road, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorBackground), image.Point{}, draw.Src)
	if r.Len() < 2 {
		return img
	}
	v := render.FitView(r.Min, r.Max, width, height)
	z := vector.NewRasterizer(width, height)

	edges := render.Ribbon(r)
	for i := 1; i < len(edges); i++ {
		a, b := edges[i-1], edges[i]
		fillQuad(z, v, [4]common.Vec3{a.Left, b.Left, b.Right, a.Right})
	}
	paint(img, z, ColorTarmac)

	// The trajectory is a thin quad per segment, widened in world units so it
	// keeps a constant pixel width.
	z.Reset(width, height)
	half := trajectoryHalfWidth / v.Scale
	for _, seg := range render.LineStrip(render.TrajectoryLine(r)) {
		n := seg.B.Sub(seg.A).Perp().Normalize().Scale(half)
		fillQuad(z, v, [4]common.Vec3{seg.A.Add(n), seg.B.Add(n), seg.B.Sub(n), seg.A.Sub(n)})
	}
	paint(img, z, render.ColorTrajectory)
	return img
}

// WritePreview saves a PNG preview of r.
func WritePreview(r *track.Road, path string, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview %s: %w", path, err)
	}
	if err := png.Encode(f, RasterizePreview(r, width, height)); err != nil {
		f.Close()
		return fmt.Errorf("encode preview %s: %w", path, err)
	}
	return f.Close()
}
