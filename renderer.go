package blit

import (
	"fmt"
	"image/png"
	"io"
	"time"

	"github.com/gogpu/blit/geom"
)

// Transform is a nested local transform: translate to a world position,
// rotate, then scale. Pushed transforms compose with the camera and with
// any enclosing transforms.
type Transform struct {
	Position geom.Vec
	Rotation float64 // radians, counter-clockwise in world space
	// Scale components of zero are treated as one.
	Scale geom.Vec
}

// RendererInfo describes a renderer implementation.
type RendererInfo struct {
	Name    string
	Version string
	Backend string
}

// Version is the blit library version.
const Version = "0.3.0"

// Renderer orchestrates the per-frame lifecycle over a Surface: coordinate
// conversion, style application, batching and the immediate per-shape
// drawing algorithms.
//
// A Renderer exclusively owns its Surface. All operations run synchronously
// on the caller's goroutine; concurrent use must be serialized by the
// caller.
type Renderer struct {
	surface Surface
	coords  *CoordinateSystem
	styles  *StyleManager
	batch   *BatchManager
	opts    rendererOptions

	stats          Statistics
	frameStart     time.Time
	transformDepth int
}

var _ Canvas = (*Renderer)(nil)

// NewRenderer creates a renderer drawing on the given surface.
// It fails if no surface is supplied; a nil surface is the moral equivalent
// of failing to acquire a 2D drawing context.
func NewRenderer(surface Surface, opts ...Option) (*Renderer, error) {
	if surface == nil {
		return nil, fmt.Errorf("blit: %w", ErrNilSurface)
	}

	options := defaultRendererOptions()
	for _, opt := range opts {
		opt(&options)
	}

	w, h := surface.Size()
	coords := NewCoordinateSystem(w, h, options.pixelsPerUnit)
	if options.highDPI {
		coords.SetDevicePixelRatio(options.devicePixelRatio)
		coords.ApplyHighDPIScaling(surface)
	}

	if ss, ok := surface.(*SoftwareSurface); ok {
		ss.SetAntialiasing(options.antialiasing)
	}

	styles := NewStyleManager(surface, options.styleCaching)

	r := &Renderer{
		surface: surface,
		coords:  coords,
		styles:  styles,
		opts:    options,
	}
	r.batch = NewBatchManager(surface, coords, styles, ImmediateDrawers{
		Line:            r.immediateLine,
		Circle:          r.immediateCircle,
		Rect:            r.immediateRect,
		Polygon:         r.immediatePolygon,
		Text:            r.immediateText,
		CircleGeometry:  r.circleGeometry,
		RectGeometry:    r.rectGeometry,
		PolygonGeometry: r.polygonGeometry,
		TextGeometry:    r.textGeometry,
	}, options.maxBatchSize)

	r.setupBaseTransform()
	return r, nil
}

// Coordinates returns the renderer's coordinate system. Camera movement,
// zoom and visibility queries go through it.
func (r *Renderer) Coordinates() *CoordinateSystem {
	return r.coords
}

// Surface returns the surface the renderer draws on.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// setupBaseTransform installs the base coordinate transform: high-DPI
// context scale, origin at canvas center, Y axis up. Immediate drawers
// issue geometry in view space underneath it.
func (r *Renderer) setupBaseTransform() {
	w, h := r.coords.CanvasSize()
	m := Identity()
	if r.opts.highDPI {
		ratio := r.coords.DevicePixelRatio()
		m = m.Multiply(Scale(ratio, ratio))
	}
	m = m.Multiply(Translate(float64(w)/2, float64(h)/2))
	m = m.Multiply(Scale(1, -1))
	r.surface.SetTransform(m)
}

// BeginFrame starts a frame: it saves the raster state, resets the
// transform-stack depth and the per-frame statistics, clears to the
// configured background color if one is set, and opens a batch when batch
// rendering is enabled.
func (r *Renderer) BeginFrame() {
	r.frameStart = time.Now()
	r.stats = Statistics{}
	r.styles.ResetStatistics()
	r.batch.ResetStatistics()
	r.transformDepth = 0

	r.styles.SaveState()

	if r.opts.background != nil {
		r.Clear(*r.opts.background)
	}
	if r.opts.batchRendering {
		r.batch.BeginBatch()
	}
}

// EndFrame finishes a frame: it flushes any pending batch, unwinds any
// unbalanced pushed transforms, restores the raster state saved by
// BeginFrame, and finalizes the frame statistics.
func (r *Renderer) EndFrame() {
	if r.opts.batchRendering {
		r.batch.EndBatch()
	}

	for r.transformDepth > 0 {
		Logger().Warn("unbalanced transform push at frame end, unwinding", "depth", r.transformDepth)
		r.styles.RestoreState()
		r.transformDepth--
	}

	r.styles.RestoreState()

	w, h := r.coords.CanvasSize()
	r.stats.PixelsDrawn = w * h
	r.stats.StyleChanges = r.styles.StyleChanges()
	r.stats.BatchedDrawCalls = r.batch.BatchedDrawCalls()
	r.stats.FrameTime = time.Since(r.frameStart)
}

// Clear fills the entire backing surface with the given color, unaffected
// by the camera or any nested transforms. Pending batched commands are
// flushed first so the fill cannot cover draws issued before it.
func (r *Renderer) Clear(c RGBA) {
	r.batch.FlushBatch()
	r.styles.SaveState()
	r.surface.SetTransform(Identity())
	r.surface.SetGlobalAlpha(1)
	r.surface.SetCompositeOperation(CompositeSourceOver)
	r.surface.SetFillColor(c)
	bw, bh := r.surface.Size()
	r.surface.FillRect(0, 0, float64(bw), float64(bh))
	r.styles.RestoreState()
}

// PushTransform saves the raster state and applies a nested local
// transform: translate to the view-space projection of the transform
// position, rotate, then scale.
//
// Buffered commands capture geometry, not raster state, so any pending
// batch is flushed before the transform changes. The same rule applies to
// PopTransform, ClipRect, Clear and RestoreState: commands issued under a
// given state must execute under that state.
func (r *Renderer) PushTransform(t Transform) {
	r.batch.FlushBatch()
	r.styles.SaveState()

	v := r.coords.View(t.Position)
	r.surface.Translate(v.X, v.Y)
	if t.Rotation != 0 {
		r.surface.Rotate(t.Rotation)
	}
	sx, sy := 1.0, 1.0
	if t.Scale.X != 0 {
		sx = t.Scale.X.Float()
	}
	if t.Scale.Y != 0 {
		sy = t.Scale.Y.Float()
	}
	if sx != 1 || sy != 1 {
		r.surface.Scale(sx, sy)
	}

	r.transformDepth++
	r.stats.TransformChanges++
}

// PopTransform restores the raster state saved by the matching
// PushTransform. Surplus pops are no-ops: the depth never goes negative.
func (r *Renderer) PopTransform() {
	if r.transformDepth == 0 {
		Logger().Warn("PopTransform without matching PushTransform, ignoring")
		return
	}
	r.batch.FlushBatch()
	r.styles.RestoreState()
	r.transformDepth--
	r.stats.TransformChanges++
}

// TransformDepth returns the current nested transform depth.
func (r *Renderer) TransformDepth() int {
	return r.transformDepth
}

// ClipRect converts a world rectangle to screen space, saves the raster
// state and applies the rectangle as a clip. The caller is responsible for
// eventually calling RestoreState: the symmetric save/restore discipline is
// part of the render-state contract, not handled automatically here.
func (r *Renderer) ClipRect(rect geom.Rect) {
	r.batch.FlushBatch()
	r.styles.SaveState()
	v0 := r.coords.View(rect.Min)
	v1 := r.coords.View(rect.Max)
	x := minf(v0.X, v1.X)
	y := minf(v0.Y, v1.Y)
	r.surface.ClipRect(x, y, absf(v1.X-v0.X), absf(v1.Y-v0.Y))
}

// SaveState saves the full raster state.
func (r *Renderer) SaveState() {
	r.styles.SaveState()
}

// RestoreState restores the most recently saved raster state and
// invalidates the style cache. Pending batched commands are flushed first.
func (r *Renderer) RestoreState() {
	r.batch.FlushBatch()
	r.styles.RestoreState()
}

// Resize changes the logical canvas size. If the dimensions differ from the
// current ones it resizes the backing surface, updates the coordinate
// system, reapplies high-DPI scaling when enabled, and re-establishes the
// base coordinate transform. All steps are required together: without the
// transform reset, drawing would come out upside down after a resize.
func (r *Renderer) Resize(width, height int) {
	cw, ch := r.coords.CanvasSize()
	if width == cw && height == ch {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}
	r.batch.FlushBatch()

	r.coords.SetCanvasSize(width, height)
	if r.opts.highDPI {
		r.coords.ApplyHighDPIScaling(r.surface)
	} else {
		r.surface.Resize(width, height)
	}

	// Surface resize resets its state wholesale.
	r.styles.ResetCache()
	if ss, ok := r.surface.(*SoftwareSurface); ok {
		ss.SetAntialiasing(r.opts.antialiasing)
	}
	r.setupBaseTransform()
}

// SetRenderTarget logs a warning and does nothing: the renderer owns
// exactly one surface for its lifetime.
func (r *Renderer) SetRenderTarget(Surface) {
	Logger().Warn("render target switching is not supported")
}

// BeginBatch enters batch mode explicitly, independent of the frame
// lifecycle.
func (r *Renderer) BeginBatch() {
	r.batch.BeginBatch()
}

// EndBatch executes and clears all pending batched commands and leaves
// batch mode.
func (r *Renderer) EndBatch() {
	r.batch.EndBatch()
}

// FlushBatch executes and clears pending batched commands without leaving
// batch mode.
func (r *Renderer) FlushBatch() {
	r.batch.FlushBatch()
}

// Statistics returns the rendering statistics for the current (or, after
// EndFrame, the finished) frame.
func (r *Renderer) Statistics() Statistics {
	s := r.stats
	s.StyleChanges = r.styles.StyleChanges()
	s.BatchedDrawCalls = r.batch.BatchedDrawCalls()
	return s
}

// SupportsFeature reports whether the renderer supports a named capability.
func (r *Renderer) SupportsFeature(name string) bool {
	switch name {
	case "batching":
		return r.opts.batchRendering
	case "style-caching":
		return r.opts.styleCaching
	case "high-dpi":
		return r.opts.highDPI
	case "antialiasing":
		return r.opts.antialiasing
	case "textures", "clipping", "blend-modes", "screenshots", "text":
		return true
	case "render-targets":
		return false
	default:
		return false
	}
}

// RendererInfo returns a description of this renderer.
func (r *Renderer) RendererInfo() RendererInfo {
	return RendererInfo{
		Name:    "blit",
		Version: Version,
		Backend: "software",
	}
}

// Screenshot writes the current surface contents as PNG.
func (r *Renderer) Screenshot(w io.Writer) error {
	return png.Encode(w, r.surface.Image())
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absf(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
