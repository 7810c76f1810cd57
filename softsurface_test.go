package blit

import (
	"image"
	"image/color"
	"testing"
)

func newTestSurface(t *testing.T, w, h int) *SoftwareSurface {
	t.Helper()
	s, err := NewSoftwareSurface(w, h)
	if err != nil {
		t.Fatalf("NewSoftwareSurface: %v", err)
	}
	return s
}

// probe returns the RGBA of a backing-store pixel.
func probe(t *testing.T, s *SoftwareSurface, x, y int) color.RGBA {
	t.Helper()
	c := s.Image().At(x, y)
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestNewSoftwareSurfaceInvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 10}} {
		if _, err := NewSoftwareSurface(dims[0], dims[1]); err == nil {
			t.Errorf("no error for %dx%d", dims[0], dims[1])
		}
	}
}

func TestFillRectPixels(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetFillColor(Red)
	s.FillRect(10, 10, 30, 20)

	if got := probe(t, s, 20, 15); got.R != 255 || got.G != 0 {
		t.Errorf("inside pixel = %v", got)
	}
	if got := probe(t, s, 50, 50); got.A != 0 {
		t.Errorf("outside pixel = %v", got)
	}
	// Edge just outside the rect.
	if got := probe(t, s, 45, 15); got.A != 0 {
		t.Errorf("pixel right of rect = %v", got)
	}
}

func TestFillPathPixels(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetFillColor(Blue)
	s.BeginPath()
	s.MoveTo(10, 10)
	s.LineTo(90, 10)
	s.LineTo(50, 80)
	s.ClosePath()
	s.Fill()

	if got := probe(t, s, 50, 30); got.B != 255 {
		t.Errorf("triangle interior = %v", got)
	}
	if got := probe(t, s, 10, 80); got.A != 0 {
		t.Errorf("triangle exterior = %v", got)
	}
}

func TestStrokeLinePixels(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetStrokeColor(Red)
	s.SetLineWidth(4)
	s.BeginPath()
	s.MoveTo(10, 50)
	s.LineTo(90, 50)
	s.Stroke()

	if got := probe(t, s, 50, 50); got.R != 255 {
		t.Errorf("on-line pixel = %v", got)
	}
	if got := probe(t, s, 50, 20); got.A != 0 {
		t.Errorf("off-line pixel = %v", got)
	}
}

func TestStrokeDashedLine(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetStrokeColor(Red)
	s.SetLineWidth(2)
	s.SetLineDash([]float64{10, 10})
	s.BeginPath()
	s.MoveTo(0, 50)
	s.LineTo(100, 50)
	s.Stroke()

	// First dash run covers [0,10), the gap [10,20).
	if got := probe(t, s, 5, 50); got.R != 255 {
		t.Errorf("dash pixel = %v", got)
	}
	if got := probe(t, s, 15, 50); got.A != 0 {
		t.Errorf("gap pixel = %v", got)
	}
	if got := probe(t, s, 25, 50); got.R != 255 {
		t.Errorf("second dash pixel = %v", got)
	}
}

func TestTransformAffectsDrawing(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetFillColor(Red)
	s.Translate(40, 40)
	s.FillRect(0, 0, 10, 10)

	if got := probe(t, s, 45, 45); got.R != 255 {
		t.Errorf("translated pixel = %v", got)
	}
	if got := probe(t, s, 5, 5); got.A != 0 {
		t.Errorf("origin pixel = %v", got)
	}
}

func TestSaveRestoreState(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetFillColor(Red)
	s.Save()
	s.SetFillColor(Blue)
	s.Translate(50, 0)
	s.Restore()

	// Restored fill color and transform.
	s.FillRect(0, 0, 10, 10)
	if got := probe(t, s, 5, 5); got.R != 255 || got.B != 0 {
		t.Errorf("post-restore pixel = %v", got)
	}

	// Restoring an empty stack is a no-op.
	s.Restore()
	s.Restore()
}

func TestClipRectLimitsDrawing(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.Save()
	s.ClipRect(20, 20, 30, 30)
	s.SetFillColor(Red)
	s.FillRect(0, 0, 100, 100)
	s.Restore()

	if got := probe(t, s, 30, 30); got.R != 255 {
		t.Errorf("inside clip = %v", got)
	}
	if got := probe(t, s, 70, 70); got.A != 0 {
		t.Errorf("outside clip = %v", got)
	}

	// Clip was part of the saved state: drawing after restore is unclipped.
	s.SetFillColor(Blue)
	s.FillRect(60, 60, 20, 20)
	if got := probe(t, s, 70, 70); got.B != 255 {
		t.Errorf("post-restore draw = %v", got)
	}
}

func TestClipRectUnderTransform(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.Save()
	s.Translate(40, 0)
	s.ClipRect(0, 20, 30, 30)
	s.SetFillColor(Red)
	s.FillRect(-40, 0, 140, 100)
	s.Restore()

	if got := probe(t, s, 50, 30); got.R != 255 {
		t.Errorf("inside translated clip = %v", got)
	}
	if got := probe(t, s, 20, 30); got.A != 0 {
		t.Errorf("outside translated clip = %v", got)
	}
}

func TestGlobalAlphaBlends(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	s.SetFillColor(White)
	s.FillRect(0, 0, 10, 10)

	s.SetFillColor(Black)
	s.SetGlobalAlpha(0.5)
	s.FillRect(0, 0, 10, 10)

	got := probe(t, s, 5, 5)
	if got.R < 100 || got.R > 155 {
		t.Errorf("half-black over white = %v, want mid gray", got)
	}
}

func TestCompositeLighterAdds(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	s.SetFillColor(RGBA{R: 0.5, A: 1})
	s.FillRect(0, 0, 10, 10)

	s.SetCompositeOperation(CompositeLighter)
	s.SetFillColor(RGBA{R: 0.5, A: 1})
	s.FillRect(0, 0, 10, 10)

	got := probe(t, s, 5, 5)
	if got.R < 250 {
		t.Errorf("additive red = %d, want saturated", got.R)
	}
}

func TestCompositeMultiplyDarkens(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	s.SetFillColor(RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})
	s.FillRect(0, 0, 10, 10)

	s.SetCompositeOperation(CompositeMultiply)
	s.SetFillColor(RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})
	s.FillRect(0, 0, 10, 10)

	got := probe(t, s, 5, 5)
	// 0.5 * 0.5 = 0.25.
	if got.R < 55 || got.R > 75 {
		t.Errorf("multiplied gray = %d, want ~64", got.R)
	}
}

func TestEllipseFill(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetFillColor(Red)
	s.BeginPath()
	s.Ellipse(50, 50, 30, 20)
	s.Fill()

	if got := probe(t, s, 50, 50); got.R != 255 {
		t.Errorf("ellipse center = %v", got)
	}
	// Inside the bounding box but outside the ellipse.
	if got := probe(t, s, 78, 32); got.A != 0 {
		t.Errorf("ellipse corner = %v", got)
	}
}

func TestResizeClearsAndResets(t *testing.T) {
	s := newTestSurface(t, 50, 50)
	s.SetFillColor(Red)
	s.Translate(10, 10)
	s.FillRect(0, 0, 50, 50)

	s.Resize(80, 60)
	if w, h := s.Size(); w != 80 || h != 60 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if got := probe(t, s, 20, 20); got.A != 0 {
		t.Errorf("pixel survived resize: %v", got)
	}
	// Transform was reset.
	if !s.CurrentTransform().IsIdentity() {
		t.Error("transform not reset by resize")
	}
}

func TestFillTextRendersPixels(t *testing.T) {
	s := newTestSurface(t, 200, 60)
	s.SetFillColor(Black)
	s.SetFont("normal normal 32px Arial")
	s.FillText("Hg", 10, 45)

	// Some ink must have landed inside the text box.
	inked := 0
	for y := 10; y < 55; y++ {
		for x := 10; x < 80; x++ {
			if probe(t, s, x, y).A > 0 {
				inked++
			}
		}
	}
	if inked < 20 {
		t.Errorf("inked pixels = %d, want text coverage", inked)
	}
}

func TestFillTextAlignment(t *testing.T) {
	s := newTestSurface(t, 200, 60)
	s.SetFillColor(Black)
	s.SetFont("normal normal 24px Arial")
	s.SetTextAlign(AlignRight)
	s.FillText("abc", 190, 40)

	// Right-aligned: ink ends at x=190, nothing to its right.
	for y := 10; y < 55; y++ {
		for x := 191; x < 200; x++ {
			if probe(t, s, x, y).A > 0 {
				t.Fatalf("ink right of anchor at (%d,%d)", x, y)
			}
		}
	}
}

func TestMeasureTextGrowsWithContent(t *testing.T) {
	s := newTestSurface(t, 100, 100)
	s.SetFont("normal normal 16px Arial")

	w1, h := s.MeasureText("a")
	w2, _ := s.MeasureText("aaaa")
	if w1 <= 0 || h <= 0 {
		t.Fatalf("MeasureText = %v, %v", w1, h)
	}
	if w2 <= w1 {
		t.Errorf("width did not grow: %v vs %v", w1, w2)
	}
}

func TestDrawImageScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{0, 255, 0, 255})
		}
	}

	s := newTestSurface(t, 100, 100)
	s.DrawImage(src, 0, 0, 4, 4, 20, 20, 40, 40)

	if got := probe(t, s, 40, 40); got.G < 200 {
		t.Errorf("scaled image pixel = %v", got)
	}
	if got := probe(t, s, 80, 80); got.A != 0 {
		t.Errorf("outside image = %v", got)
	}
}

func TestAntialiasingToggle(t *testing.T) {
	aliased := newTestSurface(t, 100, 100)
	aliased.SetAntialiasing(false)
	aliased.SetFillColor(Black)
	aliased.BeginPath()
	aliased.MoveTo(10, 10)
	aliased.LineTo(90, 15)
	aliased.LineTo(50, 90)
	aliased.ClosePath()
	aliased.Fill()

	// Without antialiasing every inked pixel is fully opaque.
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			a := probe(t, aliased, x, y).A
			if a != 0 && a != 255 {
				t.Fatalf("partial coverage at (%d,%d): %d", x, y, a)
			}
		}
	}
}
