package blit

import "image"

// CompositeOp identifies a raster compositing operation.
// The identifiers follow the conventional 2D-canvas naming.
type CompositeOp string

// Composite operations supported by surfaces.
const (
	CompositeSourceOver CompositeOp = "source-over"
	CompositeLighter    CompositeOp = "lighter"
	CompositeMultiply   CompositeOp = "multiply"
	CompositeScreen     CompositeOp = "screen"
	CompositeOverlay    CompositeOp = "overlay"
	CompositeDarken     CompositeOp = "darken"
	CompositeLighten    CompositeOp = "lighten"
)

// TextAlign controls horizontal text anchoring relative to the draw position.
type TextAlign int

// Text alignment values.
const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline controls vertical text anchoring relative to the draw position.
type TextBaseline int

// Text baseline values.
const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// Surface is the raster drawing context a Renderer draws on.
//
// It models a stateful 2D raster context: an affine transform, a current
// path, paint attributes, and a save/restore stack that snapshots all of
// them. Coordinates passed to path and drawing methods are in the surface's
// current user space; the transform maps them to device pixels.
//
// A Surface is exclusively owned by one Renderer and is not safe for
// concurrent use.
type Surface interface {
	// Size returns the backing store dimensions in device pixels.
	Size() (width, height int)

	// Resize reallocates the backing store. The transform, paint state and
	// save stack are reset; the caller re-establishes them afterwards.
	Resize(width, height int)

	// Save pushes the full drawing state (transform, paint, clip) onto the
	// state stack.
	Save()

	// Restore pops the state stack. Popping an empty stack is a no-op.
	Restore()

	// SetTransform replaces the current transformation matrix.
	SetTransform(m Matrix)

	// CurrentTransform returns a copy of the current transformation matrix.
	CurrentTransform() Matrix

	// Translate, Rotate and Scale post-multiply the current transform.
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)

	// Path construction. Points are transformed by the current matrix as
	// they are appended.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Rect(x, y, w, h float64)
	Ellipse(cx, cy, rx, ry float64)

	// Fill fills the current path with the fill paint.
	Fill()

	// Stroke strokes the current path with the stroke paint and line width.
	Stroke()

	// FillRect fills an axis-aligned rectangle without touching the
	// current path.
	FillRect(x, y, w, h float64)

	// ClipRect intersects the clip region with the given rectangle
	// (transformed by the current matrix). The clip is part of the saved
	// state: callers pair it with Save/Restore.
	ClipRect(x, y, w, h float64)

	// Paint state.
	SetFillColor(c RGBA)
	SetStrokeColor(c RGBA)
	SetLineWidth(w float64)
	SetLineDash(pattern []float64)
	SetGlobalAlpha(a float64)
	SetCompositeOperation(op CompositeOp)

	// Text state and drawing. The font descriptor has the form
	// "<style> <weight> <size>px <family>", e.g. "italic bold 16px Arial".
	SetFont(descriptor string)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)
	FillText(text string, x, y float64)
	MeasureText(text string) (width, height float64)

	// DrawImage draws the sub-rectangle (sx, sy, sw, sh) of img into the
	// user-space rectangle (dx, dy, dw, dh).
	DrawImage(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64)

	// Image returns the current backing store contents.
	Image() image.Image
}
