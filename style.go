package blit

import (
	"strconv"
	"strings"

	"github.com/gogpu/blit/geom"
)

// LineStyle describes how lines are stroked.
// Width and dash lengths are fixed-point pixel quantities so that style data,
// like world geometry, is deterministic across platforms.
type LineStyle struct {
	Color RGBA
	Width geom.Scalar
	// Dash is an optional pattern of alternating dash/gap lengths.
	// Empty means a solid line.
	Dash []geom.Scalar
}

// ShapeStyle describes how closed shapes are filled and/or stroked.
// Nil color fields mean "leave the corresponding raster state untouched":
// a shape with only FillColor set is filled and not stroked, and does not
// reset any previously applied stroke state.
type ShapeStyle struct {
	FillColor   *RGBA
	StrokeColor *RGBA
	StrokeWidth geom.Scalar
	Dash        []geom.Scalar
}

// TextStyle describes how text is rendered.
// FontSize is a fixed-point pixel quantity. Alignment and baseline are
// optional; nil leaves the surface's current values in place.
type TextStyle struct {
	Color      RGBA
	FontSize   geom.Scalar
	FontFamily string // default "Arial"
	FontWeight string // "normal" (default) or "bold"
	FontStyle  string // "normal" (default) or "italic"
	Align      *TextAlign
	Baseline   *TextBaseline
}

// BlendMode is the enumerated blend mode surface of the drawing API.
type BlendMode int

// Blend modes.
const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
)

// compositeOp maps a blend mode to the raster composite operation.
// Unknown values map to source-over.
func (m BlendMode) compositeOp() CompositeOp {
	switch m {
	case BlendAdd:
		return CompositeLighter
	case BlendMultiply:
		return CompositeMultiply
	case BlendScreen:
		return CompositeScreen
	case BlendOverlay:
		return CompositeOverlay
	case BlendDarken:
		return CompositeDarken
	case BlendLighten:
		return CompositeLighten
	default:
		return CompositeSourceOver
	}
}

// Style serialisation for batch grouping. Keys are structural: two styles
// with equal content produce equal keys regardless of identity, so commands
// carrying them land in the same batch group.

func appendColor(b []byte, c RGBA) []byte {
	b = strconv.AppendFloat(b, c.R, 'b', -1, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, c.G, 'b', -1, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, c.B, 'b', -1, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, c.A, 'b', -1, 64)
	return b
}

func appendOptColor(b []byte, c *RGBA) []byte {
	if c == nil {
		return append(b, '-')
	}
	return appendColor(b, *c)
}

func appendDash(b []byte, dash []geom.Scalar) []byte {
	for _, d := range dash {
		b = strconv.AppendInt(b, int64(d), 10)
		b = append(b, ':')
	}
	return b
}

// key returns the structural grouping key of the style.
func (s LineStyle) key() string {
	b := make([]byte, 0, 64)
	b = append(b, 'l', '|')
	b = appendColor(b, s.Color)
	b = append(b, '|')
	b = strconv.AppendInt(b, int64(s.Width), 10)
	b = append(b, '|')
	b = appendDash(b, s.Dash)
	return string(b)
}

// key returns the structural grouping key of the style.
func (s ShapeStyle) key() string {
	b := make([]byte, 0, 96)
	b = append(b, 's', '|')
	b = appendOptColor(b, s.FillColor)
	b = append(b, '|')
	b = appendOptColor(b, s.StrokeColor)
	b = append(b, '|')
	b = strconv.AppendInt(b, int64(s.StrokeWidth), 10)
	b = append(b, '|')
	b = appendDash(b, s.Dash)
	return string(b)
}

// key returns the structural grouping key of the style.
func (s TextStyle) key() string {
	var b strings.Builder
	b.WriteString("t|")
	b.Write(appendColor(nil, s.Color))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(int64(s.FontSize), 10))
	b.WriteByte('|')
	b.WriteString(s.FontFamily)
	b.WriteByte('|')
	b.WriteString(s.FontWeight)
	b.WriteByte('|')
	b.WriteString(s.FontStyle)
	b.WriteByte('|')
	if s.Align != nil {
		b.WriteString(strconv.Itoa(int(*s.Align)))
	}
	b.WriteByte('|')
	if s.Baseline != nil {
		b.WriteString(strconv.Itoa(int(*s.Baseline)))
	}
	return b.String()
}
