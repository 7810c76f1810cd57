package blit

import (
	"fmt"

	"github.com/gogpu/blit/geom"
)

// Drawing entry points. Each increments the draw-call counter and
// dispatches to the batch manager when batch rendering is configured on,
// otherwise straight to the immediate implementation. Ellipse and texture
// operations are always immediate: they are not batchable in this design.

// DrawLine draws a line between two world points.
func (r *Renderer) DrawLine(start, end geom.Vec, style LineStyle) {
	r.stats.DrawCalls++
	if r.opts.batchRendering {
		r.batch.AddLine(start, end, style)
		return
	}
	r.immediateLine(start, end, style)
}

// DrawCircle draws a circle with a world-space center and radius.
func (r *Renderer) DrawCircle(center geom.Vec, radius geom.Scalar, style ShapeStyle) {
	r.stats.DrawCalls++
	if r.opts.batchRendering {
		r.batch.AddCircle(center, radius, style)
		return
	}
	r.immediateCircle(center, radius, style)
}

// DrawRect draws an axis-aligned world rectangle.
func (r *Renderer) DrawRect(rect geom.Rect, style ShapeStyle) {
	r.stats.DrawCalls++
	if r.opts.batchRendering {
		r.batch.AddRect(rect, style)
		return
	}
	r.immediateRect(rect, style)
}

// DrawPolygon draws a closed polygon from world vertices.
// Fewer than three vertices draw nothing.
func (r *Renderer) DrawPolygon(vertices []geom.Vec, style ShapeStyle) {
	r.stats.DrawCalls++
	if r.opts.batchRendering {
		r.batch.AddPolygon(vertices, style)
		return
	}
	r.immediatePolygon(vertices, style)
}

// DrawText draws a text string at a world position.
func (r *Renderer) DrawText(text string, pos geom.Vec, style TextStyle) {
	r.stats.DrawCalls++
	if r.opts.batchRendering {
		r.batch.AddText(text, pos, style)
		return
	}
	r.immediateText(text, pos, style)
}

// DrawEllipse draws an axis-aligned ellipse inscribed in a world rectangle.
// Always immediate.
func (r *Renderer) DrawEllipse(rect geom.Rect, style ShapeStyle) {
	r.stats.DrawCalls++
	r.immediateEllipse(rect, style)
}

// DrawTexture draws an entire texture into a world rectangle.
// Always immediate. Textures not produced by this package's wrapper are
// rejected with a warning.
func (r *Renderer) DrawTexture(tex Texture, dst geom.Rect) {
	r.stats.DrawCalls++
	it, ok := tex.(*ImageTexture)
	if !ok {
		Logger().Warn("DrawTexture: unknown texture type, skipping", "texture", describeTexture(tex))
		return
	}
	w, h := it.Size()
	r.drawTextureImpl(it, 0, 0, float64(w), float64(h), dst)
}

// DrawTextureRegion draws the pixel region (sx, sy, sw, sh) of a texture
// into a world rectangle. Always immediate.
func (r *Renderer) DrawTextureRegion(tex Texture, sx, sy, sw, sh float64, dst geom.Rect) {
	r.stats.DrawCalls++
	it, ok := tex.(*ImageTexture)
	if !ok {
		Logger().Warn("DrawTextureRegion: unknown texture type, skipping", "texture", describeTexture(tex))
		return
	}
	r.drawTextureImpl(it, sx, sy, sw, sh, dst)
}

func describeTexture(tex Texture) string {
	if tex == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", tex)
}

// MeasureText measures a text string under a text style, returning
// world-space width and height.
func (r *Renderer) MeasureText(text string, style TextStyle) (width, height geom.Scalar) {
	r.styles.SaveState()
	r.styles.ApplyTextStyle(style)
	w, h := r.surface.MeasureText(text)
	r.styles.RestoreState()
	return r.coords.ScreenToWorldDistance(w), r.coords.ScreenToWorldDistance(h)
}

// Immediate implementations: the canonical per-shape algorithms. Convert
// world geometry to view space, apply style, issue the minimal
// path/fill/stroke sequence.

func (r *Renderer) immediateLine(start, end geom.Vec, style LineStyle) {
	r.styles.ApplyLineStyle(style)
	v0 := r.coords.View(start)
	v1 := r.coords.View(end)
	r.surface.BeginPath()
	r.surface.MoveTo(v0.X, v0.Y)
	r.surface.LineTo(v1.X, v1.Y)
	r.surface.Stroke()
}

func (r *Renderer) immediateCircle(center geom.Vec, radius geom.Scalar, style ShapeStyle) {
	r.styles.ApplyShapeStyle(style)
	r.circleGeometry(center, radius, style)
}

func (r *Renderer) circleGeometry(center geom.Vec, radius geom.Scalar, style ShapeStyle) {
	v := r.coords.View(center)
	rad := r.coords.WorldToScreenDistance(radius)
	if rad <= 0 {
		return
	}
	r.surface.BeginPath()
	r.surface.Ellipse(v.X, v.Y, rad, rad)
	r.fillStrokeShape(style)
}

func (r *Renderer) immediateRect(rect geom.Rect, style ShapeStyle) {
	r.styles.ApplyShapeStyle(style)
	r.rectGeometry(rect, style)
}

func (r *Renderer) rectGeometry(rect geom.Rect, style ShapeStyle) {
	v0 := r.coords.View(rect.Min)
	v1 := r.coords.View(rect.Max)
	x := minf(v0.X, v1.X)
	y := minf(v0.Y, v1.Y)
	r.surface.BeginPath()
	r.surface.Rect(x, y, absf(v1.X-v0.X), absf(v1.Y-v0.Y))
	r.fillStrokeShape(style)
}

func (r *Renderer) immediatePolygon(vertices []geom.Vec, style ShapeStyle) {
	r.styles.ApplyShapeStyle(style)
	r.polygonGeometry(vertices, style)
}

func (r *Renderer) polygonGeometry(vertices []geom.Vec, style ShapeStyle) {
	if len(vertices) < 3 {
		return
	}
	r.surface.BeginPath()
	for i, vert := range vertices {
		v := r.coords.View(vert)
		if i == 0 {
			r.surface.MoveTo(v.X, v.Y)
		} else {
			r.surface.LineTo(v.X, v.Y)
		}
	}
	r.surface.ClosePath()
	r.fillStrokeShape(style)
}

func (r *Renderer) immediateText(text string, pos geom.Vec, style TextStyle) {
	r.styles.ApplyTextStyle(style)
	r.textGeometry(text, pos, style)
}

// textGeometry draws text with the Y flip locally inverted: raster text
// draws glyphs right-side-up only in a non-flipped Y axis, so the ambient
// Y-up view space is compensated by an inverse scale and a negated Y
// coordinate. Only the transform changes between save and restore, so the
// style cache stays valid.
func (r *Renderer) textGeometry(text string, pos geom.Vec, _ TextStyle) {
	v := r.coords.View(pos)
	r.surface.Save()
	r.surface.Scale(1, -1)
	r.surface.FillText(text, v.X, -v.Y)
	r.surface.Restore()
}

func (r *Renderer) immediateEllipse(rect geom.Rect, style ShapeStyle) {
	r.styles.ApplyShapeStyle(style)
	v0 := r.coords.View(rect.Min)
	v1 := r.coords.View(rect.Max)
	cx := (v0.X + v1.X) / 2
	cy := (v0.Y + v1.Y) / 2
	rx := absf(v1.X-v0.X) / 2
	ry := absf(v1.Y-v0.Y) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	r.surface.BeginPath()
	r.surface.Ellipse(cx, cy, rx, ry)
	r.fillStrokeShape(style)
}

// drawTextureImpl draws a texture region with the Y flip locally inverted,
// the same compensation text rendering needs.
func (r *Renderer) drawTextureImpl(tex *ImageTexture, sx, sy, sw, sh float64, dst geom.Rect) {
	v0 := r.coords.View(dst.Min)
	v1 := r.coords.View(dst.Max)
	x := minf(v0.X, v1.X)
	w := absf(v1.X - v0.X)
	h := absf(v1.Y - v0.Y)
	// Top edge in the unflipped local space is the larger view-space Y.
	topY := -maxf(v0.Y, v1.Y)

	r.surface.Save()
	r.surface.Scale(1, -1)
	r.surface.DrawImage(tex.Image(), sx, sy, sw, sh, x, topY, w, h)
	r.surface.Restore()

	r.stats.TextureBinds++
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (r *Renderer) fillStrokeShape(style ShapeStyle) {
	if style.FillColor != nil {
		r.surface.Fill()
	}
	if style.StrokeColor != nil {
		r.surface.Stroke()
	}
}
