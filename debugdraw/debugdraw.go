// Package debugdraw renders development overlays — a world-space grid, the
// world axes, and a frame statistics readout — on top of any blit.Canvas.
//
// The overlay holds the canvas by composition, so it can sit on top of any
// renderer implementation without subclassing anything:
//
//	dd := debugdraw.New(renderer)
//	dd.DrawGrid(geom.S(1))
//	dd.DrawAxes(geom.S(5))
//	dd.DrawStats(blit.Pt(10, 10))
package debugdraw

import (
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/geom"
)

// Overlay draws debug geometry through a blit.Canvas.
type Overlay struct {
	canvas blit.Canvas

	GridColor  blit.RGBA
	XAxisColor blit.RGBA
	YAxisColor blit.RGBA
	TextColor  blit.RGBA
}

// New creates an overlay drawing onto the given canvas.
func New(canvas blit.Canvas) *Overlay {
	return &Overlay{
		canvas:     canvas,
		GridColor:  blit.RGBA{R: 1, G: 1, B: 1, A: 0.15},
		XAxisColor: blit.RGBA{R: 0.9, G: 0.2, B: 0.2, A: 0.8},
		YAxisColor: blit.RGBA{R: 0.2, G: 0.9, B: 0.2, A: 0.8},
		TextColor:  blit.White,
	}
}

// DrawGrid draws grid lines at the given world-unit spacing across the
// visible region. Lines outside the view are culled, so the cost scales with
// what the camera can see rather than with the world size. A non-positive
// spacing draws nothing.
func (o *Overlay) DrawGrid(spacing geom.Scalar) {
	if spacing <= 0 {
		return
	}
	bounds := o.canvas.Coordinates().VisibleBounds()
	style := blit.LineStyle{Color: o.GridColor, Width: gridLineWidth}

	for x := ceilTo(bounds.Min.X, spacing); x <= bounds.Max.X; x += spacing {
		o.canvas.DrawLine(geom.Vec{X: x, Y: bounds.Min.Y}, geom.Vec{X: x, Y: bounds.Max.Y}, style)
	}
	for y := ceilTo(bounds.Min.Y, spacing); y <= bounds.Max.Y; y += spacing {
		o.canvas.DrawLine(geom.Vec{X: bounds.Min.X, Y: y}, geom.Vec{X: bounds.Max.X, Y: y}, style)
	}
}

// ceilTo rounds s up to the nearest multiple of step.
func ceilTo(s, step geom.Scalar) geom.Scalar {
	m := s % step
	if m < 0 {
		m += step
	}
	if m == 0 {
		return s
	}
	return s - m + step
}

// DrawAxes draws the world X and Y axes through the origin, each extending
// the given half-length in both directions.
func (o *Overlay) DrawAxes(halfLength geom.Scalar) {
	if halfLength <= 0 {
		return
	}
	w := gridLineWidth.Mul(geom.S(2))
	o.canvas.DrawLine(geom.Vec{X: halfLength.Neg()}, geom.Vec{X: halfLength},
		blit.LineStyle{Color: o.XAxisColor, Width: w})
	o.canvas.DrawLine(geom.Vec{Y: halfLength.Neg()}, geom.Vec{Y: halfLength},
		blit.LineStyle{Color: o.YAxisColor, Width: w})
}

// DrawStats renders the previous frame's statistics as a text block. The
// position names the top-left corner in screen pixels.
func (o *Overlay) DrawStats(screenPos blit.Point) {
	stats := o.canvas.Statistics()
	coords := o.canvas.Coordinates()
	lines := []string{
		fmt.Sprintf("draw calls: %d (batched %d)", stats.DrawCalls, stats.BatchedDrawCalls),
		fmt.Sprintf("style changes: %d", stats.StyleChanges),
		fmt.Sprintf("transforms: %d", stats.TransformChanges),
		fmt.Sprintf("frame: %s", stats.FrameTime),
	}

	style := blit.TextStyle{
		Color:    o.TextColor,
		FontSize: statsFontSize,
	}
	lineStep := coords.ScreenToWorldDistance(16)

	pos := coords.ScreenToWorld(screenPos)
	for _, line := range lines {
		o.canvas.DrawText(line, pos, style)
		pos.Y -= lineStep
	}
}

// Stroke widths and font sizes are raster-pixel quantities, matching the
// convention of blit.LineStyle and blit.TextStyle. Positions stay in world
// units; only the stroke thickness is fixed in screen space, so grid lines
// keep a constant on-screen weight at any zoom.
const (
	gridLineWidth = geom.One
	statsFontSize = 13 * geom.One
)
