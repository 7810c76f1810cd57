package blit

import (
	"math"

	"github.com/gogpu/blit/geom"
)

// CoordinateSystem converts between the fixed-point world space (origin
// centered, Y-up) and screen space (origin top-left, Y-down), accounting for
// camera position and zoom, the pixels-per-unit scale, and the device pixel
// ratio.
//
// World-space arithmetic (camera subtraction, zoom scaling) is exact
// fixed-point; floating point enters only for the final pixel projection.
// Conversions are pure functions of the current state: setters take effect
// on the next conversion call, never retroactively.
type CoordinateSystem struct {
	canvasW, canvasH int // logical display size, pixels
	camera           geom.Vec
	zoom             geom.Scalar
	pixelsPerUnit    float64
	devicePixelRatio float64
}

// NewCoordinateSystem creates a coordinate system for a canvas of the given
// logical size, with the camera at the origin and zoom 1.
func NewCoordinateSystem(width, height int, pixelsPerUnit float64) *CoordinateSystem {
	return &CoordinateSystem{
		canvasW:          width,
		canvasH:          height,
		zoom:             geom.One,
		pixelsPerUnit:    pixelsPerUnit,
		devicePixelRatio: 1,
	}
}

// SetCanvasSize updates the logical canvas size.
func (c *CoordinateSystem) SetCanvasSize(width, height int) {
	c.canvasW = width
	c.canvasH = height
}

// CanvasSize returns the logical canvas size in pixels.
func (c *CoordinateSystem) CanvasSize() (int, int) {
	return c.canvasW, c.canvasH
}

// SetCameraPosition moves the camera to the given world position.
func (c *CoordinateSystem) SetCameraPosition(pos geom.Vec) {
	c.camera = pos
}

// CameraPosition returns the camera's world position.
func (c *CoordinateSystem) CameraPosition() geom.Vec {
	return c.camera
}

// SetZoom sets the camera zoom. Non-positive values are ignored.
func (c *CoordinateSystem) SetZoom(zoom geom.Scalar) {
	if zoom <= 0 {
		return
	}
	c.zoom = zoom
}

// Zoom returns the camera zoom.
func (c *CoordinateSystem) Zoom() geom.Scalar {
	return c.zoom
}

// SetPixelsPerUnit sets the world-to-pixel scale at zoom 1.
func (c *CoordinateSystem) SetPixelsPerUnit(ppu float64) {
	if ppu <= 0 {
		return
	}
	c.pixelsPerUnit = ppu
}

// PixelsPerUnit returns the world-to-pixel scale at zoom 1.
func (c *CoordinateSystem) PixelsPerUnit() float64 {
	return c.pixelsPerUnit
}

// SetDevicePixelRatio sets the backing-store to display-pixel ratio.
func (c *CoordinateSystem) SetDevicePixelRatio(ratio float64) {
	if ratio <= 0 {
		return
	}
	c.devicePixelRatio = ratio
}

// DevicePixelRatio returns the backing-store to display-pixel ratio.
func (c *CoordinateSystem) DevicePixelRatio() float64 {
	return c.devicePixelRatio
}

// View returns the view-space projection of a world point: camera-relative,
// zoom- and pixels-per-unit-scaled, origin at canvas center, Y still up.
// Immediate drawers issue geometry in view space underneath the renderer's
// center-and-flip base transform.
func (c *CoordinateSystem) View(p geom.Vec) Point {
	d := p.Sub(c.camera)
	return Point{
		X: d.X.Mul(c.zoom).Float() * c.pixelsPerUnit,
		Y: d.Y.Mul(c.zoom).Float() * c.pixelsPerUnit,
	}
}

// WorldToScreen converts a world position to screen pixels
// (origin top-left, Y-down).
func (c *CoordinateSystem) WorldToScreen(p geom.Vec) Point {
	v := c.View(p)
	return Point{
		X: float64(c.canvasW)/2 + v.X,
		Y: float64(c.canvasH)/2 - v.Y,
	}
}

// ScreenToWorld converts screen pixels back to a world position. It is the
// inverse of WorldToScreen within fixed-point rounding tolerance.
func (c *CoordinateSystem) ScreenToWorld(p Point) geom.Vec {
	vx := p.X - float64(c.canvasW)/2
	vy := float64(c.canvasH)/2 - p.Y
	d := geom.Vec{
		X: geom.FromFloat(vx / c.pixelsPerUnit).Div(c.zoom),
		Y: geom.FromFloat(vy / c.pixelsPerUnit).Div(c.zoom),
	}
	return c.camera.Add(d)
}

// WorldToScreenDistance converts a world distance to pixels. Distances have
// no translation component, so the camera position does not participate.
func (c *CoordinateSystem) WorldToScreenDistance(d geom.Scalar) float64 {
	return d.Mul(c.zoom).Float() * c.pixelsPerUnit
}

// ScreenToWorldDistance converts a pixel distance to world units.
func (c *CoordinateSystem) ScreenToWorldDistance(px float64) geom.Scalar {
	return geom.FromFloat(px / c.pixelsPerUnit).Div(c.zoom)
}

// ScreenRect is a screen-space rectangle: top-left position plus size.
type ScreenRect struct {
	Pos  Point
	Size Size
}

// WorldToScreenRect converts a world rectangle by converting its two
// opposite corners independently and deriving width/height from their
// difference, which stays correct when the Y flip inverts the height sign.
func (c *CoordinateSystem) WorldToScreenRect(r geom.Rect) ScreenRect {
	a := c.WorldToScreen(r.Min)
	b := c.WorldToScreen(r.Max)
	return ScreenRect{
		Pos: Point{
			X: math.Min(a.X, b.X),
			Y: math.Min(a.Y, b.Y),
		},
		Size: Size{
			W: math.Abs(b.X - a.X),
			H: math.Abs(b.Y - a.Y),
		},
	}
}

// VisibleBounds maps the four canvas corners back to world space and returns
// the currently visible world rectangle. Used for culling.
func (c *CoordinateSystem) VisibleBounds() geom.Rect {
	w := float64(c.canvasW)
	h := float64(c.canvasH)
	corners := [4]geom.Vec{
		c.ScreenToWorld(Pt(0, 0)),
		c.ScreenToWorld(Pt(w, 0)),
		c.ScreenToWorld(Pt(0, h)),
		c.ScreenToWorld(Pt(w, h)),
	}
	minV := corners[0]
	maxV := corners[0]
	for _, v := range corners[1:] {
		if v.X < minV.X {
			minV.X = v.X
		}
		if v.Y < minV.Y {
			minV.Y = v.Y
		}
		if v.X > maxV.X {
			maxV.X = v.X
		}
		if v.Y > maxV.Y {
			maxV.Y = v.Y
		}
	}
	return geom.Rect{Min: minV, Max: maxV}
}

// IsPointVisible reports whether a world point falls inside the canvas
// bounds expanded by a world-space margin.
func (c *CoordinateSystem) IsPointVisible(p geom.Vec, margin geom.Scalar) bool {
	sp := c.WorldToScreen(p)
	m := c.WorldToScreenDistance(margin)
	return sp.X >= -m && sp.X <= float64(c.canvasW)+m &&
		sp.Y >= -m && sp.Y <= float64(c.canvasH)+m
}

// IsRectVisible reports whether any part of a world rectangle falls inside
// the canvas bounds expanded by a world-space margin.
func (c *CoordinateSystem) IsRectVisible(r geom.Rect, margin geom.Scalar) bool {
	sr := c.WorldToScreenRect(r)
	m := c.WorldToScreenDistance(margin)
	return sr.Pos.X+sr.Size.W >= -m && sr.Pos.X <= float64(c.canvasW)+m &&
		sr.Pos.Y+sr.Size.H >= -m && sr.Pos.Y <= float64(c.canvasH)+m
}

// ApplyHighDPIScaling resizes the backing raster surface to
// displaySize x devicePixelRatio while the logical display size stays
// unchanged. The renderer's base transform applies the matching context
// scale so unit-for-unit drawing remains correct. Must be re-invoked
// whenever the canvas size changes.
func (c *CoordinateSystem) ApplyHighDPIScaling(s Surface) {
	bw := int(math.Round(float64(c.canvasW) * c.devicePixelRatio))
	bh := int(math.Round(float64(c.canvasH) * c.devicePixelRatio))
	if w, h := s.Size(); w != bw || h != bh {
		s.Resize(bw, bh)
	}
}
