package blit

import (
	"io"

	"github.com/gogpu/blit/geom"
)

// Canvas is the drawing contract consumed by external collaborators such as
// debug overlays and physics visualizers. Collaborators hold a Canvas by
// composition instead of extending a renderer type, so they work with any
// implementation of the core drawing operations.
type Canvas interface {
	BeginFrame()
	EndFrame()
	Clear(c RGBA)

	DrawLine(start, end geom.Vec, style LineStyle)
	DrawCircle(center geom.Vec, radius geom.Scalar, style ShapeStyle)
	DrawRect(rect geom.Rect, style ShapeStyle)
	DrawPolygon(vertices []geom.Vec, style ShapeStyle)
	DrawEllipse(rect geom.Rect, style ShapeStyle)
	DrawText(text string, pos geom.Vec, style TextStyle)
	MeasureText(text string, style TextStyle) (width, height geom.Scalar)
	DrawTexture(tex Texture, dst geom.Rect)
	DrawTextureRegion(tex Texture, sx, sy, sw, sh float64, dst geom.Rect)

	PushTransform(t Transform)
	PopTransform()
	ClipRect(rect geom.Rect)
	RestoreState()

	Coordinates() *CoordinateSystem
	Statistics() Statistics
	SupportsFeature(name string) bool
	RendererInfo() RendererInfo
	Screenshot(w io.Writer) error
}
