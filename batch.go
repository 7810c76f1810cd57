package blit

import (
	"github.com/gogpu/blit/geom"
)

// commandKind identifies the type of a buffered draw command.
type commandKind uint8

const (
	cmdLine commandKind = iota
	cmdCircle
	cmdRect
	cmdPolygon
	cmdText
)

// commandKindNames maps commandKind values to their string representation.
var commandKindNames = [...]string{
	cmdLine:    "Line",
	cmdCircle:  "Circle",
	cmdRect:    "Rect",
	cmdPolygon: "Polygon",
	cmdText:    "Text",
}

func (k commandKind) String() string {
	if int(k) < len(commandKindNames) {
		return commandKindNames[k]
	}
	return "Unknown"
}

// drawCommand is one buffered draw request: a kind tag, the kind-specific
// payload, and the style as given by the caller. Commands live only inside
// the pending batch buffer and are discarded once their group executes.
type drawCommand struct {
	kind     commandKind
	groupKey string

	lineStyle  LineStyle  // kind == cmdLine
	shapeStyle ShapeStyle // kind == cmdCircle, cmdRect, cmdPolygon
	textStyle  TextStyle  // kind == cmdText

	start, end geom.Vec    // line
	center     geom.Vec    // circle
	radius     geom.Scalar // circle
	rect       geom.Rect   // rect
	vertices   []geom.Vec  // polygon
	text       string      // text
	pos        geom.Vec    // text
}

// ImmediateDrawers are the per-shape drawing callbacks supplied by the
// renderer. The plain callbacks are the canonical immediate implementations
// (style application plus geometry); the Geometry variants replay only a
// command's geometry, for use after a batch group's style has been applied
// once.
type ImmediateDrawers struct {
	Line    func(start, end geom.Vec, style LineStyle)
	Circle  func(center geom.Vec, radius geom.Scalar, style ShapeStyle)
	Rect    func(rect geom.Rect, style ShapeStyle)
	Polygon func(vertices []geom.Vec, style ShapeStyle)
	Text    func(text string, pos geom.Vec, style TextStyle)

	CircleGeometry  func(center geom.Vec, radius geom.Scalar, style ShapeStyle)
	RectGeometry    func(rect geom.Rect, style ShapeStyle)
	PolygonGeometry func(vertices []geom.Vec, style ShapeStyle)
	TextGeometry    func(text string, pos geom.Vec, style TextStyle)
}

// BatchManager buffers draw requests and executes them as fewer,
// style-grouped operations.
//
// It is a two-state machine: Idle (every Add call draws immediately through
// the renderer's callbacks) and Batching (Add calls buffer commands).
// BeginBatch enters Batching; EndBatch executes all buffered commands
// grouped by (kind, style) and returns to Idle. FlushBatch executes and
// clears the buffer without leaving Batching. The buffer auto-flushes when
// it reaches the configured maximum size, bounding memory and latency.
type BatchManager struct {
	surface Surface
	coords  *CoordinateSystem
	styles  *StyleManager
	drawers ImmediateDrawers

	active  bool
	buf     []drawCommand
	maxSize int

	batchedCalls int
}

// NewBatchManager creates a batch manager. maxSize bounds the pending
// buffer; non-positive values fall back to the default of 1000.
func NewBatchManager(surface Surface, coords *CoordinateSystem, styles *StyleManager, drawers ImmediateDrawers, maxSize int) *BatchManager {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &BatchManager{
		surface: surface,
		coords:  coords,
		styles:  styles,
		drawers: drawers,
		maxSize: maxSize,
	}
}

// Batching reports whether the manager is currently buffering commands.
func (b *BatchManager) Batching() bool {
	return b.active
}

// PendingCommands returns the number of buffered commands.
func (b *BatchManager) PendingCommands() int {
	return len(b.buf)
}

// BatchedDrawCalls returns the number of executed batch groups since the
// counter was last reset.
func (b *BatchManager) BatchedDrawCalls() int {
	return b.batchedCalls
}

// ResetStatistics resets the batched-draw-call counter. Called once per frame.
func (b *BatchManager) ResetStatistics() {
	b.batchedCalls = 0
}

// BeginBatch enters the Batching state. Subsequent Add calls buffer their
// commands instead of drawing immediately.
func (b *BatchManager) BeginBatch() {
	b.active = true
}

// EndBatch executes all buffered commands grouped by (kind, style) and
// returns to the Idle state.
func (b *BatchManager) EndBatch() {
	b.flush()
	b.active = false
}

// FlushBatch executes and clears the buffer without changing the
// batching state. Flushing an empty buffer is a no-op.
func (b *BatchManager) FlushBatch() {
	b.flush()
}

// AddLine buffers or immediately draws a line.
func (b *BatchManager) AddLine(start, end geom.Vec, style LineStyle) {
	if !b.active {
		b.drawers.Line(start, end, style)
		return
	}
	style.Dash = cloneScalars(style.Dash)
	b.push(drawCommand{
		kind:      cmdLine,
		groupKey:  style.key(),
		lineStyle: style,
		start:     start,
		end:       end,
	})
}

// AddCircle buffers or immediately draws a circle.
func (b *BatchManager) AddCircle(center geom.Vec, radius geom.Scalar, style ShapeStyle) {
	if !b.active {
		b.drawers.Circle(center, radius, style)
		return
	}
	style.Dash = cloneScalars(style.Dash)
	b.push(drawCommand{
		kind:       cmdCircle,
		groupKey:   style.key(),
		shapeStyle: style,
		center:     center,
		radius:     radius,
	})
}

// AddRect buffers or immediately draws a rectangle.
func (b *BatchManager) AddRect(rect geom.Rect, style ShapeStyle) {
	if !b.active {
		b.drawers.Rect(rect, style)
		return
	}
	style.Dash = cloneScalars(style.Dash)
	b.push(drawCommand{
		kind:       cmdRect,
		groupKey:   style.key(),
		shapeStyle: style,
		rect:       rect,
	})
}

// AddPolygon buffers or immediately draws a polygon. The vertex slice is
// copied when buffering, so the caller may reuse it for the next draw.
func (b *BatchManager) AddPolygon(vertices []geom.Vec, style ShapeStyle) {
	if !b.active {
		b.drawers.Polygon(vertices, style)
		return
	}
	style.Dash = cloneScalars(style.Dash)
	b.push(drawCommand{
		kind:       cmdPolygon,
		groupKey:   style.key(),
		shapeStyle: style,
		vertices:   append([]geom.Vec(nil), vertices...),
	})
}

// AddText buffers or immediately draws a text string.
func (b *BatchManager) AddText(text string, pos geom.Vec, style TextStyle) {
	if !b.active {
		b.drawers.Text(text, pos, style)
		return
	}
	b.push(drawCommand{
		kind:      cmdText,
		groupKey:  style.key(),
		textStyle: style,
		text:      text,
		pos:       pos,
	})
}

// cloneScalars copies a dash pattern so a buffered style cannot alias a
// caller-owned slice. Buffered commands outlive the Add call that created
// them, and callers are free to reuse scratch slices in between.
func cloneScalars(s []geom.Scalar) []geom.Scalar {
	if len(s) == 0 {
		return nil
	}
	return append([]geom.Scalar(nil), s...)
}

func (b *BatchManager) push(cmd drawCommand) {
	b.buf = append(b.buf, cmd)
	if len(b.buf) >= b.maxSize {
		Logger().Debug("batch buffer full, auto-flushing", "size", len(b.buf))
		b.flush()
	}
}

// batchGroup is a transient grouping of buffered commands sharing the same
// (kind, style) pair, rebuilt on every flush.
type batchGroup struct {
	kind commandKind
	cmds []int // indices into the buffer, in arrival order
}

// flush groups the buffered commands by (kind, style value) and executes
// each group: style applied once, geometry replayed per command. Grouping
// is stable: groups run in order of first appearance, and commands within a
// group run in original arrival order.
func (b *BatchManager) flush() {
	if len(b.buf) == 0 {
		return
	}

	groupIdx := make(map[string]int)
	var groups []batchGroup
	for i, cmd := range b.buf {
		key := cmd.kind.String() + "\x00" + cmd.groupKey
		gi, ok := groupIdx[key]
		if !ok {
			gi = len(groups)
			groupIdx[key] = gi
			groups = append(groups, batchGroup{kind: cmd.kind})
		}
		groups[gi].cmds = append(groups[gi].cmds, i)
	}

	Logger().Debug("executing batch", "commands", len(b.buf), "groups", len(groups))

	for _, g := range groups {
		b.executeGroup(g)
		b.batchedCalls++
	}
	b.buf = b.buf[:0]
}

// executeGroup applies the group's style once, then replays each command's
// geometry. Line segments of a group share one path: begin-path once,
// MoveTo/LineTo per segment, a single stroke call. Other kinds still issue
// one draw per command; the group-level style application is the
// optimization for them.
func (b *BatchManager) executeGroup(g batchGroup) {
	first := b.buf[g.cmds[0]]
	switch g.kind {
	case cmdLine:
		b.styles.ApplyLineStyle(first.lineStyle)
		b.surface.BeginPath()
		for _, i := range g.cmds {
			cmd := b.buf[i]
			v0 := b.coords.View(cmd.start)
			v1 := b.coords.View(cmd.end)
			b.surface.MoveTo(v0.X, v0.Y)
			b.surface.LineTo(v1.X, v1.Y)
		}
		b.surface.Stroke()
	case cmdCircle:
		b.styles.ApplyShapeStyle(first.shapeStyle)
		for _, i := range g.cmds {
			cmd := b.buf[i]
			b.drawers.CircleGeometry(cmd.center, cmd.radius, cmd.shapeStyle)
		}
	case cmdRect:
		b.styles.ApplyShapeStyle(first.shapeStyle)
		for _, i := range g.cmds {
			b.drawers.RectGeometry(b.buf[i].rect, b.buf[i].shapeStyle)
		}
	case cmdPolygon:
		b.styles.ApplyShapeStyle(first.shapeStyle)
		for _, i := range g.cmds {
			b.drawers.PolygonGeometry(b.buf[i].vertices, b.buf[i].shapeStyle)
		}
	case cmdText:
		b.styles.ApplyTextStyle(first.textStyle)
		for _, i := range g.cmds {
			b.drawers.TextGeometry(b.buf[i].text, b.buf[i].pos, b.buf[i].textStyle)
		}
	}
}
