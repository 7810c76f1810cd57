package blit

import (
	"fmt"
	"image"
)

// recordingSurface is a Surface mock that logs every call it receives.
// Tests assert on the call sequence to verify caching and batching behavior.
type recordingSurface struct {
	w, h  int
	calls []string
	m     Matrix
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h, m: Identity()}
}

func (s *recordingSurface) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

// count returns how many recorded calls start with prefix.
func (s *recordingSurface) count(prefix string) int {
	n := 0
	for _, c := range s.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (s *recordingSurface) reset() {
	s.calls = s.calls[:0]
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.record("Resize %d %d", w, h)
}

func (s *recordingSurface) Save()    { s.record("Save") }
func (s *recordingSurface) Restore() { s.record("Restore") }

func (s *recordingSurface) SetTransform(m Matrix) {
	s.m = m
	s.record("SetTransform")
}

func (s *recordingSurface) CurrentTransform() Matrix { return s.m }

func (s *recordingSurface) Translate(x, y float64) { s.record("Translate %g %g", x, y) }
func (s *recordingSurface) Rotate(angle float64)   { s.record("Rotate %g", angle) }
func (s *recordingSurface) Scale(x, y float64)     { s.record("Scale %g %g", x, y) }

func (s *recordingSurface) BeginPath()             { s.record("BeginPath") }
func (s *recordingSurface) MoveTo(x, y float64)    { s.record("MoveTo %g %g", x, y) }
func (s *recordingSurface) LineTo(x, y float64)    { s.record("LineTo %g %g", x, y) }
func (s *recordingSurface) ClosePath()             { s.record("ClosePath") }
func (s *recordingSurface) Rect(x, y, w, h float64) {
	s.record("Rect %g %g %g %g", x, y, w, h)
}
func (s *recordingSurface) Ellipse(cx, cy, rx, ry float64) {
	s.record("Ellipse %g %g %g %g", cx, cy, rx, ry)
}

func (s *recordingSurface) Fill()   { s.record("Fill") }
func (s *recordingSurface) Stroke() { s.record("Stroke") }
func (s *recordingSurface) FillRect(x, y, w, h float64) {
	s.record("FillRect %g %g %g %g", x, y, w, h)
}
func (s *recordingSurface) ClipRect(x, y, w, h float64) {
	s.record("ClipRect %g %g %g %g", x, y, w, h)
}

func (s *recordingSurface) SetFillColor(c RGBA)   { s.record("SetFillColor %v", c) }
func (s *recordingSurface) SetStrokeColor(c RGBA) { s.record("SetStrokeColor %v", c) }
func (s *recordingSurface) SetLineWidth(w float64) {
	s.record("SetLineWidth %g", w)
}
func (s *recordingSurface) SetLineDash(pattern []float64) {
	s.record("SetLineDash %v", pattern)
}
func (s *recordingSurface) SetGlobalAlpha(a float64) { s.record("SetGlobalAlpha %g", a) }
func (s *recordingSurface) SetCompositeOperation(op CompositeOp) {
	s.record("SetCompositeOperation %s", op)
}

func (s *recordingSurface) SetFont(descriptor string) { s.record("SetFont %s", descriptor) }
func (s *recordingSurface) SetTextAlign(a TextAlign)  { s.record("SetTextAlign %d", a) }
func (s *recordingSurface) SetTextBaseline(b TextBaseline) {
	s.record("SetTextBaseline %d", b)
}
func (s *recordingSurface) FillText(text string, x, y float64) {
	s.record("FillText %q %g %g", text, x, y)
}

func (s *recordingSurface) MeasureText(text string) (float64, float64) {
	s.record("MeasureText %q", text)
	return float64(len(text)) * 8, 16
}

func (s *recordingSurface) DrawImage(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	s.record("DrawImage %g %g %g %g", dx, dy, dw, dh)
}

func (s *recordingSurface) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, s.w, s.h))
}
