package blit

// styleCache holds the last value written for each raster state attribute.
// A nil field means the attribute has not been written since the cache was
// last cleared, so its raster value is unknown.
type styleCache struct {
	fill      *RGBA
	stroke    *RGBA
	lineWidth *float64
	dash      *string
	font      *string
	align     *TextAlign
	baseline  *TextBaseline
	alpha     *float64
	composite *CompositeOp
}

// StyleManager translates style descriptors into raster context state.
// With caching enabled, each attribute is written only when it differs from
// the last applied value; every performed write increments the style-change
// counter.
//
// The cache must be cleared whenever the surface's saved state is restored,
// since the restored raster values are unknown to the cache and a stale
// snapshot would suppress necessary writes. RestoreState does this
// automatically.
type StyleManager struct {
	surface Surface
	caching bool
	changes int
	cache   styleCache
}

// NewStyleManager creates a style manager for the given surface.
func NewStyleManager(surface Surface, caching bool) *StyleManager {
	return &StyleManager{surface: surface, caching: caching}
}

// CachingEnabled reports whether style caching is active.
func (m *StyleManager) CachingEnabled() bool {
	return m.caching
}

// StyleChanges returns the number of raster state writes performed since the
// counter was last reset.
func (m *StyleManager) StyleChanges() int {
	return m.changes
}

// ResetStatistics resets the style-change counter. Called once per frame.
func (m *StyleManager) ResetStatistics() {
	m.changes = 0
}

// ResetCache clears the cached snapshot without touching the surface.
// Call it when external code mutates surface state directly.
func (m *StyleManager) ResetCache() {
	m.cache = styleCache{}
}

// SaveState delegates to the surface's save.
func (m *StyleManager) SaveState() {
	m.surface.Save()
}

// RestoreState delegates to the surface's restore and clears the cache,
// because the restored raster state is unknown.
func (m *StyleManager) RestoreState() {
	m.surface.Restore()
	m.ResetCache()
}

// ApplyLineStyle applies stroke paint, stroke width and dash pattern.
func (m *StyleManager) ApplyLineStyle(s LineStyle) {
	m.setStroke(s.Color)
	m.setLineWidth(s.Width.Float())
	m.setDash(dashNumbers(s))
}

// ApplyShapeStyle applies fill and/or stroke state. Fields absent from the
// style are left untouched, not reset.
func (m *StyleManager) ApplyShapeStyle(s ShapeStyle) {
	if s.FillColor != nil {
		m.setFill(*s.FillColor)
	}
	if s.StrokeColor != nil {
		m.setStroke(*s.StrokeColor)
		m.setLineWidth(s.StrokeWidth.Float())
		m.setDash(shapeDashNumbers(s))
	}
}

// ApplyTextStyle applies fill paint and the composed font descriptor, plus
// alignment and baseline when specified.
func (m *StyleManager) ApplyTextStyle(s TextStyle) {
	m.setFill(s.Color)
	m.setFont(composeFontDesc(s.FontStyle, s.FontWeight, s.FontSize.Float(), s.FontFamily))
	if s.Align != nil {
		m.setAlign(*s.Align)
	}
	if s.Baseline != nil {
		m.setBaseline(*s.Baseline)
	}
}

// ApplyBlendMode applies the composite operation for the given blend mode.
func (m *StyleManager) ApplyBlendMode(mode BlendMode) {
	m.setComposite(mode.compositeOp())
}

// ApplyOpacity sets the global alpha directly (not multiplicative).
func (m *StyleManager) ApplyOpacity(v float64) {
	m.setAlpha(v)
}

func dashNumbers(s LineStyle) (pattern []float64, key string) {
	if len(s.Dash) == 0 {
		return nil, ""
	}
	pattern = make([]float64, len(s.Dash))
	for i, d := range s.Dash {
		pattern[i] = d.Float()
	}
	return pattern, string(appendDash(nil, s.Dash))
}

func shapeDashNumbers(s ShapeStyle) (pattern []float64, key string) {
	if len(s.Dash) == 0 {
		return nil, ""
	}
	pattern = make([]float64, len(s.Dash))
	for i, d := range s.Dash {
		pattern[i] = d.Float()
	}
	return pattern, string(appendDash(nil, s.Dash))
}

func (m *StyleManager) setFill(c RGBA) {
	if m.caching && m.cache.fill != nil && *m.cache.fill == c {
		return
	}
	m.surface.SetFillColor(c)
	m.cache.fill = &c
	m.changes++
}

func (m *StyleManager) setStroke(c RGBA) {
	if m.caching && m.cache.stroke != nil && *m.cache.stroke == c {
		return
	}
	m.surface.SetStrokeColor(c)
	m.cache.stroke = &c
	m.changes++
}

func (m *StyleManager) setLineWidth(w float64) {
	if m.caching && m.cache.lineWidth != nil && *m.cache.lineWidth == w {
		return
	}
	m.surface.SetLineWidth(w)
	m.cache.lineWidth = &w
	m.changes++
}

func (m *StyleManager) setDash(pattern []float64, key string) {
	if m.caching && m.cache.dash != nil && *m.cache.dash == key {
		return
	}
	m.surface.SetLineDash(pattern)
	m.cache.dash = &key
	m.changes++
}

func (m *StyleManager) setFont(desc string) {
	if m.caching && m.cache.font != nil && *m.cache.font == desc {
		return
	}
	m.surface.SetFont(desc)
	m.cache.font = &desc
	m.changes++
}

func (m *StyleManager) setAlign(a TextAlign) {
	if m.caching && m.cache.align != nil && *m.cache.align == a {
		return
	}
	m.surface.SetTextAlign(a)
	m.cache.align = &a
	m.changes++
}

func (m *StyleManager) setBaseline(b TextBaseline) {
	if m.caching && m.cache.baseline != nil && *m.cache.baseline == b {
		return
	}
	m.surface.SetTextBaseline(b)
	m.cache.baseline = &b
	m.changes++
}

func (m *StyleManager) setAlpha(a float64) {
	if m.caching && m.cache.alpha != nil && *m.cache.alpha == a {
		return
	}
	m.surface.SetGlobalAlpha(a)
	m.cache.alpha = &a
	m.changes++
}

func (m *StyleManager) setComposite(op CompositeOp) {
	if m.caching && m.cache.composite != nil && *m.cache.composite == op {
		return
	}
	m.surface.SetCompositeOperation(op)
	m.cache.composite = &op
	m.changes++
}
