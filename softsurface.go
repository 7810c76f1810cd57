package blit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// surfaceState is the full drawing state snapshotted by Save/Restore.
type surfaceState struct {
	matrix    Matrix
	fill      RGBA
	stroke    RGBA
	lineWidth float64
	dash      []float64
	font      fontDesc
	align     TextAlign
	baseline  TextBaseline
	alpha     float64
	composite CompositeOp
	clip      image.Rectangle
}

// subpath is a flattened polyline in device space.
type subpath struct {
	pts    []Point
	closed bool
}

// SoftwareSurface is a CPU-backed Surface implementation drawing into a
// Pixmap. Paths are flattened to device-space polylines as they are built
// and rasterised with the x/image/vector scanline rasteriser.
type SoftwareSurface struct {
	pixmap    *Pixmap
	ras       *vector.Rasterizer
	antialias bool

	state surfaceState
	stack []surfaceState
	path  []subpath

	faceMu    sync.Mutex
	faceCache map[string]*opentype.Font
}

var _ Surface = (*SoftwareSurface)(nil)

// ellipseSegments is the flattening resolution for ellipse and circle paths.
const ellipseSegments = 64

// NewSoftwareSurface creates a software surface with the given backing store
// dimensions. It fails if either dimension is not positive, which is the
// software analogue of failing to acquire a drawing context.
func NewSoftwareSurface(width, height int) (*SoftwareSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("blit: cannot create %dx%d surface: %w", width, height, ErrNoContext)
	}
	s := &SoftwareSurface{
		pixmap:    NewPixmap(width, height),
		ras:       vector.NewRasterizer(width, height),
		antialias: true,
		faceCache: make(map[string]*opentype.Font),
	}
	s.state = defaultSurfaceState(width, height)
	return s, nil
}

func defaultSurfaceState(width, height int) surfaceState {
	return surfaceState{
		matrix:    Identity(),
		fill:      Black,
		stroke:    Black,
		lineWidth: 1,
		font:      defaultFontDesc(),
		alpha:     1,
		composite: CompositeSourceOver,
		clip:      image.Rect(0, 0, width, height),
	}
}

// SetAntialiasing toggles anti-aliased rasterisation. When disabled,
// coverage is thresholded to fully opaque or fully transparent.
func (s *SoftwareSurface) SetAntialiasing(enabled bool) {
	s.antialias = enabled
}

// Pixmap returns the backing pixel buffer.
func (s *SoftwareSurface) Pixmap() *Pixmap {
	return s.pixmap
}

// Size implements Surface.
func (s *SoftwareSurface) Size() (int, int) {
	return s.pixmap.width, s.pixmap.height
}

// Resize implements Surface. All drawing state is reset to defaults.
func (s *SoftwareSurface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.pixmap = NewPixmap(width, height)
	s.ras = vector.NewRasterizer(width, height)
	s.state = defaultSurfaceState(width, height)
	s.stack = s.stack[:0]
	s.path = nil
}

// Save implements Surface.
func (s *SoftwareSurface) Save() {
	st := s.state
	st.dash = append([]float64(nil), s.state.dash...)
	s.stack = append(s.stack, st)
}

// Restore implements Surface.
func (s *SoftwareSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// SetTransform implements Surface.
func (s *SoftwareSurface) SetTransform(m Matrix) {
	s.state.matrix = m
}

// CurrentTransform implements Surface.
func (s *SoftwareSurface) CurrentTransform() Matrix {
	return s.state.matrix
}

// Translate implements Surface.
func (s *SoftwareSurface) Translate(x, y float64) {
	s.state.matrix = s.state.matrix.Multiply(Translate(x, y))
}

// Rotate implements Surface.
func (s *SoftwareSurface) Rotate(angle float64) {
	s.state.matrix = s.state.matrix.Multiply(Rotate(angle))
}

// Scale implements Surface.
func (s *SoftwareSurface) Scale(x, y float64) {
	s.state.matrix = s.state.matrix.Multiply(Scale(x, y))
}

// BeginPath implements Surface.
func (s *SoftwareSurface) BeginPath() {
	s.path = s.path[:0]
}

// MoveTo implements Surface.
func (s *SoftwareSurface) MoveTo(x, y float64) {
	p := s.state.matrix.TransformPoint(Pt(x, y))
	s.path = append(s.path, subpath{pts: []Point{p}})
}

// LineTo implements Surface.
func (s *SoftwareSurface) LineTo(x, y float64) {
	p := s.state.matrix.TransformPoint(Pt(x, y))
	if len(s.path) == 0 {
		s.path = append(s.path, subpath{pts: []Point{p}})
		return
	}
	last := &s.path[len(s.path)-1]
	last.pts = append(last.pts, p)
}

// ClosePath implements Surface.
func (s *SoftwareSurface) ClosePath() {
	if len(s.path) == 0 {
		return
	}
	s.path[len(s.path)-1].closed = true
}

// Rect implements Surface.
func (s *SoftwareSurface) Rect(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

// Ellipse implements Surface. The ellipse is flattened to a fixed number of
// segments; at typical on-screen sizes the error is below a device pixel.
func (s *SoftwareSurface) Ellipse(cx, cy, rx, ry float64) {
	for i := 0; i <= ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		x := cx + rx*math.Cos(a)
		y := cy + ry*math.Sin(a)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.ClosePath()
}

// Fill implements Surface.
func (s *SoftwareSurface) Fill() {
	polys := make([][]Point, 0, len(s.path))
	for _, sp := range s.path {
		if len(sp.pts) >= 3 {
			polys = append(polys, sp.pts)
		}
	}
	s.fillPolygons(polys, s.state.fill)
}

// FillRect implements Surface.
func (s *SoftwareSurface) FillRect(x, y, w, h float64) {
	m := s.state.matrix
	quad := []Point{
		m.TransformPoint(Pt(x, y)),
		m.TransformPoint(Pt(x+w, y)),
		m.TransformPoint(Pt(x+w, y+h)),
		m.TransformPoint(Pt(x, y+h)),
	}
	s.fillPolygons([][]Point{quad}, s.state.fill)
}

// Stroke implements Surface.
func (s *SoftwareSurface) Stroke() {
	lw := s.state.lineWidth * s.state.matrix.ScaleFactor()
	if lw <= 0 {
		return
	}
	hw := lw / 2

	var polys [][]Point
	for _, sp := range s.path {
		pts := sp.pts
		if sp.closed && len(pts) >= 2 {
			pts = append(append([]Point(nil), pts...), pts[0])
		}
		for _, run := range applyDash(pts, s.deviceDash()) {
			polys = append(polys, strokePolygons(run, hw)...)
		}
	}
	s.fillPolygons(polys, s.state.stroke)
}

// deviceDash returns the dash pattern scaled to device pixels, or nil for a
// solid line.
func (s *SoftwareSurface) deviceDash() []float64 {
	if len(s.state.dash) == 0 {
		return nil
	}
	sf := s.state.matrix.ScaleFactor()
	out := make([]float64, len(s.state.dash))
	total := 0.0
	for i, d := range s.state.dash {
		out[i] = math.Abs(d) * sf
		total += out[i]
	}
	if total == 0 {
		return nil
	}
	return out
}

// applyDash splits a polyline into dash runs. A nil pattern returns the
// polyline unchanged. Odd-length patterns are treated as duplicated, matching
// canvas dash semantics.
func applyDash(pts []Point, pattern []float64) [][]Point {
	if len(pts) < 2 {
		return nil
	}
	if len(pattern) == 0 {
		return [][]Point{pts}
	}
	if len(pattern)%2 != 0 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}

	var runs [][]Point
	var cur []Point
	idx := 0          // index into pattern
	rem := pattern[0] // remaining length of current pattern entry
	on := true

	emit := func() {
		if on && len(cur) >= 2 {
			runs = append(runs, cur)
		}
		cur = nil
	}

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := a.Distance(b)
		if segLen == 0 {
			continue
		}
		t := 0.0
		if on && len(cur) == 0 {
			cur = []Point{a}
		}
		for segLen-t > rem {
			t += rem
			f := t / segLen
			p := Pt(a.X+(b.X-a.X)*f, a.Y+(b.Y-a.Y)*f)
			if on {
				cur = append(cur, p)
			}
			emit()
			on = !on
			idx = (idx + 1) % len(pattern)
			rem = pattern[idx]
			if on {
				cur = []Point{p}
			}
		}
		rem -= segLen - t
		if on {
			cur = append(cur, b)
		}
	}
	emit()
	return runs
}

// strokePolygons expands a polyline into fill polygons approximating a
// stroke of half-width hw: one quad per segment plus a disc at interior
// joints. All polygons share the same winding so overlaps accumulate rather
// than cancel in the rasteriser.
func strokePolygons(pts []Point, hw float64) [][]Point {
	var polys [][]Point
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		polys = append(polys, []Point{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		})
		if i > 0 {
			polys = append(polys, jointDisc(a, hw))
		}
	}
	return polys
}

// jointDisc returns a clockwise disc polygon, winding-matched to the
// segment quads produced by strokePolygons.
func jointDisc(c Point, r float64) []Point {
	const n = 16
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := -2 * math.Pi * float64(i) / n
		pts[i] = Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return pts
}

// fillPolygons rasterises device-space polygons into a coverage mask and
// composites them onto the pixmap with the given color, honouring the
// current clip, global alpha and composite operation.
func (s *SoftwareSurface) fillPolygons(polys [][]Point, col RGBA) {
	if len(polys) == 0 {
		return
	}
	w, h := s.pixmap.width, s.pixmap.height
	clip := s.state.clip.Intersect(image.Rect(0, 0, w, h))
	if clip.Empty() {
		return
	}

	s.ras.Reset(w, h)
	s.ras.DrawOp = draw.Src
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		s.ras.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, p := range poly[1:] {
			s.ras.LineTo(float32(p.X), float32(p.Y))
		}
		s.ras.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	s.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	s.compositeMask(mask, clip, col)
}

// compositeMask blends col onto the pixmap wherever the mask has coverage.
func (s *SoftwareSurface) compositeMask(mask *image.Alpha, clip image.Rectangle, col RGBA) {
	srcAlpha := clamp01(col.A * s.state.alpha)
	if srcAlpha == 0 {
		return
	}
	op := s.state.composite

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		row := mask.Pix[(y-mask.Rect.Min.Y)*mask.Stride:]
		for x := clip.Min.X; x < clip.Max.X; x++ {
			cov := float64(row[x-mask.Rect.Min.X]) / 255
			if cov == 0 {
				continue
			}
			if !s.antialias {
				if cov < 0.5 {
					continue
				}
				cov = 1
			}
			s.blendPixel(x, y, col, srcAlpha*cov, op)
		}
	}
}

// blendPixel composites a single source sample over the destination pixel.
func (s *SoftwareSurface) blendPixel(x, y int, src RGBA, sa float64, op CompositeOp) {
	dst := s.pixmap.GetPixel(x, y)

	if op == CompositeLighter {
		// Additive: component-wise sum of premultiplied values.
		outA := clamp01(sa + dst.A)
		out := RGBA{
			R: clamp01(src.R*sa + dst.R*dst.A),
			G: clamp01(src.G*sa + dst.G*dst.A),
			B: clamp01(src.B*sa + dst.B*dst.A),
			A: outA,
		}
		if outA > 0 {
			out.R = clamp01(out.R / outA)
			out.G = clamp01(out.G / outA)
			out.B = clamp01(out.B / outA)
		}
		s.pixmap.SetPixel(x, y, out)
		return
	}

	// Separable blend modes mix source and destination color first, then
	// composite source-over.
	cs := src
	if op != CompositeSourceOver && dst.A > 0 {
		cs = RGBA{
			R: blendChannel(op, src.R, dst.R),
			G: blendChannel(op, src.G, dst.G),
			B: blendChannel(op, src.B, dst.B),
			A: src.A,
		}
		// Interpolate toward the pure source by the inverse destination
		// alpha, per the W3C compositing model.
		cs.R = src.R*(1-dst.A) + cs.R*dst.A
		cs.G = src.G*(1-dst.A) + cs.G*dst.A
		cs.B = src.B*(1-dst.A) + cs.B*dst.A
	}

	outA := sa + dst.A*(1-sa)
	if outA <= 0 {
		s.pixmap.SetPixel(x, y, Transparent)
		return
	}
	out := RGBA{
		R: (cs.R*sa + dst.R*dst.A*(1-sa)) / outA,
		G: (cs.G*sa + dst.G*dst.A*(1-sa)) / outA,
		B: (cs.B*sa + dst.B*dst.A*(1-sa)) / outA,
		A: outA,
	}
	s.pixmap.SetPixel(x, y, out)
}

// blendChannel applies a separable blend function to one channel pair.
func blendChannel(op CompositeOp, s, d float64) float64 {
	switch op {
	case CompositeMultiply:
		return s * d
	case CompositeScreen:
		return s + d - s*d
	case CompositeOverlay:
		if d <= 0.5 {
			return 2 * s * d
		}
		return 1 - 2*(1-s)*(1-d)
	case CompositeDarken:
		return math.Min(s, d)
	case CompositeLighten:
		return math.Max(s, d)
	default:
		return s
	}
}

// ClipRect implements Surface. The clip region is the device-space bounding
// box of the transformed rectangle, intersected with the current clip.
func (s *SoftwareSurface) ClipRect(x, y, w, h float64) {
	m := s.state.matrix
	if m.IsIdentity() {
		r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
		s.state.clip = s.state.clip.Intersect(r)
		return
	}
	corners := []Point{
		m.TransformPoint(Pt(x, y)),
		m.TransformPoint(Pt(x+w, y)),
		m.TransformPoint(Pt(x+w, y+h)),
		m.TransformPoint(Pt(x, y+h)),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	s.state.clip = s.state.clip.Intersect(r)
}

// SetFillColor implements Surface.
func (s *SoftwareSurface) SetFillColor(c RGBA) {
	s.state.fill = c
}

// SetStrokeColor implements Surface.
func (s *SoftwareSurface) SetStrokeColor(c RGBA) {
	s.state.stroke = c
}

// SetLineWidth implements Surface.
func (s *SoftwareSurface) SetLineWidth(w float64) {
	s.state.lineWidth = w
}

// SetLineDash implements Surface.
func (s *SoftwareSurface) SetLineDash(pattern []float64) {
	s.state.dash = append(s.state.dash[:0], pattern...)
}

// SetGlobalAlpha implements Surface.
func (s *SoftwareSurface) SetGlobalAlpha(a float64) {
	s.state.alpha = clamp01(a)
}

// SetCompositeOperation implements Surface. Unknown operations fall back to
// source-over.
func (s *SoftwareSurface) SetCompositeOperation(op CompositeOp) {
	switch op {
	case CompositeSourceOver, CompositeLighter, CompositeMultiply,
		CompositeScreen, CompositeOverlay, CompositeDarken, CompositeLighten:
		s.state.composite = op
	default:
		s.state.composite = CompositeSourceOver
	}
}

// SetFont implements Surface.
func (s *SoftwareSurface) SetFont(descriptor string) {
	s.state.font = parseFontDesc(descriptor)
}

// SetTextAlign implements Surface.
func (s *SoftwareSurface) SetTextAlign(a TextAlign) {
	s.state.align = a
}

// SetTextBaseline implements Surface.
func (s *SoftwareSurface) SetTextBaseline(b TextBaseline) {
	s.state.baseline = b
}

// fontFor returns the parsed opentype font for the current descriptor's
// weight/style variant, parsing the embedded TTF on first use.
func (s *SoftwareSurface) fontFor(d fontDesc) (*opentype.Font, error) {
	key := d.variant()

	s.faceMu.Lock()
	defer s.faceMu.Unlock()

	if f, ok := s.faceCache[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(d.ttf())
	if err != nil {
		return nil, err
	}
	s.faceCache[key] = f
	return f, nil
}

// FillText implements Surface.
//
// Glyphs are drawn axis-aligned: the current transform positions the text
// and scales its size, but does not rotate or shear the glyph outlines.
func (s *SoftwareSurface) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	d := s.state.font
	sf := s.state.matrix.ScaleFactor()
	if sf <= 0 {
		return
	}

	parsed, err := s.fontFor(d)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    d.SizePx * sf,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return
	}
	defer func() {
		_ = face.Close()
	}()

	pos := s.state.matrix.TransformPoint(Pt(x, y))

	switch s.state.align {
	case AlignCenter:
		adv := font.MeasureString(face, text)
		pos.X -= float64(adv) / 64 / 2
	case AlignRight:
		adv := font.MeasureString(face, text)
		pos.X -= float64(adv) / 64
	}

	metrics := face.Metrics()
	switch s.state.baseline {
	case BaselineTop:
		pos.Y += float64(metrics.Ascent) / 64
	case BaselineMiddle:
		pos.Y += (float64(metrics.Ascent) - float64(metrics.Descent)) / 64 / 2
	case BaselineBottom:
		pos.Y -= float64(metrics.Descent) / 64
	}

	col := s.state.fill
	col.A = clamp01(col.A * s.state.alpha)

	drawer := &font.Drawer{
		Dst:  &clippedImage{img: s.pixmap, clip: s.state.clip},
		Src:  image.NewUniform(col.Color()),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(pos.X * 64),
			Y: fixed.Int26_6(pos.Y * 64),
		},
	}
	drawer.DrawString(text)
}

// MeasureText implements Surface. The result is in untransformed user-space
// pixels at the descriptor's size.
func (s *SoftwareSurface) MeasureText(text string) (float64, float64) {
	return sharedShaper.Measure(text, s.state.font)
}

// DrawImage implements Surface. Only the translation and scale of the
// current transform are applied; the source rectangle is resampled with
// approximate bilinear filtering.
func (s *SoftwareSurface) DrawImage(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if img == nil || sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return
	}
	m := s.state.matrix
	p0 := m.TransformPoint(Pt(dx, dy))
	p1 := m.TransformPoint(Pt(dx+dw, dy+dh))

	dstRect := image.Rect(
		int(math.Round(math.Min(p0.X, p1.X))),
		int(math.Round(math.Min(p0.Y, p1.Y))),
		int(math.Round(math.Max(p0.X, p1.X))),
		int(math.Round(math.Max(p0.Y, p1.Y))),
	)
	dstRect = dstRect.Intersect(s.state.clip)
	if dstRect.Empty() {
		return
	}

	srcRect := image.Rect(
		int(math.Floor(sx)), int(math.Floor(sy)),
		int(math.Ceil(sx+sw)), int(math.Ceil(sy+sh)),
	).Intersect(img.Bounds())
	if srcRect.Empty() {
		return
	}

	var opts *xdraw.Options
	if s.state.alpha < 1 {
		a := uint8(clamp255(s.state.alpha * 255))
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: a}),
		}
	}
	xdraw.ApproxBiLinear.Scale(s.pixmap, dstRect, img, srcRect, xdraw.Over, opts)
}

// Image implements Surface.
func (s *SoftwareSurface) Image() image.Image {
	return s.pixmap
}

// clippedImage restricts Set calls to a clip rectangle. It lets the font
// drawer honour the surface clip without modifying the drawer itself.
type clippedImage struct {
	img  draw.Image
	clip image.Rectangle
}

func (c *clippedImage) ColorModel() color.Model {
	return c.img.ColorModel()
}

func (c *clippedImage) Bounds() image.Rectangle {
	return c.img.Bounds().Intersect(c.clip)
}

func (c *clippedImage) At(x, y int) color.Color {
	return c.img.At(x, y)
}

func (c *clippedImage) Set(x, y int, col color.Color) {
	if !image.Pt(x, y).In(c.clip) {
		return
	}
	c.img.Set(x, y, col)
}
