package blit

import (
	"math"
	"testing"
)

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() is not identity")
	}
	p := m.TransformPoint(Pt(3, -7))
	if p.X != 3 || p.Y != -7 {
		t.Errorf("identity moved point: %v", p)
	}
}

func TestMatrixTranslate(t *testing.T) {
	p := Translate(10, -5).TransformPoint(Pt(1, 2))
	if p.X != 11 || p.Y != -3 {
		t.Errorf("translate = %v", p)
	}
}

func TestMatrixScale(t *testing.T) {
	p := Scale(2, 3).TransformPoint(Pt(4, 5))
	if p.X != 8 || p.Y != 15 {
		t.Errorf("scale = %v", p)
	}
}

func TestMatrixRotate(t *testing.T) {
	p := Rotate(math.Pi / 2).TransformPoint(Pt(1, 0))
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Errorf("rotate 90 = %v", p)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate-then-scale differs from scale-then-translate.
	ts := Translate(10, 0).Multiply(Scale(2, 2))
	st := Scale(2, 2).Multiply(Translate(10, 0))

	p1 := ts.TransformPoint(Pt(1, 0))
	p2 := st.TransformPoint(Pt(1, 0))
	if p1.X != 12 {
		t.Errorf("translate*scale = %v", p1)
	}
	if p2.X != 22 {
		t.Errorf("scale*translate = %v", p2)
	}
}

func TestMatrixScaleFactor(t *testing.T) {
	if got := Scale(2, 2).ScaleFactor(); math.Abs(got-2) > 1e-12 {
		t.Errorf("ScaleFactor(2,2) = %v", got)
	}
	// Rotation does not change the scale factor.
	if got := Rotate(0.5).Multiply(Scale(3, 3)).ScaleFactor(); math.Abs(got-3) > 1e-12 {
		t.Errorf("rotated ScaleFactor = %v", got)
	}
	// The Y flip in the base transform has unit scale.
	if got := Scale(1, -1).ScaleFactor(); math.Abs(got-1) > 1e-12 {
		t.Errorf("flip ScaleFactor = %v", got)
	}
}
