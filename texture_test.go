package blit

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/blit/geom"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewTexture(t *testing.T) {
	tex := NewTexture(solidImage(8, 6, color.RGBA{255, 0, 0, 255}))
	if w, h := tex.Size(); w != 8 || h != 6 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestNewTextureFromPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(4, 4, color.RGBA{0, 255, 0, 255})); err != nil {
		t.Fatal(err)
	}

	tex, err := NewTextureFromPNG(buf.Bytes())
	if err != nil {
		t.Fatalf("NewTextureFromPNG: %v", err)
	}
	if w, h := tex.Size(); w != 4 || h != 4 {
		t.Errorf("Size = %dx%d", w, h)
	}

	if _, err := NewTextureFromPNG([]byte("not a png")); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestDrawTexturePixels(t *testing.T) {
	surface, err := NewSoftwareSurface(200, 200)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(surface, WithPixelsPerUnit(100))
	if err != nil {
		t.Fatal(err)
	}

	tex := NewTexture(solidImage(8, 8, color.RGBA{0, 0, 255, 255}))

	r.BeginFrame()
	// One world unit square centered at the origin: screen (50,50)-(150,150).
	r.DrawTexture(tex, geom.R(geom.VFloat(-0.5, -0.5), geom.VFloat(0.5, 0.5)))
	r.EndFrame()

	img := surface.Image()
	_, _, b, a := img.At(100, 100).RGBA()
	if b < 0xf000 || a < 0xf000 {
		t.Errorf("texture center pixel = %v", img.At(100, 100))
	}
	if _, _, _, a := img.At(25, 25).RGBA(); a != 0 {
		t.Errorf("pixel outside texture has alpha %d", a)
	}

	if got := r.Statistics().TextureBinds; got != 1 {
		t.Errorf("TextureBinds = %d", got)
	}
}

func TestDrawTextureRegion(t *testing.T) {
	surface, err := NewSoftwareSurface(200, 200)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(surface, WithPixelsPerUnit(100))
	if err != nil {
		t.Fatal(err)
	}

	// Left half green, right half red.
	img := solidImage(8, 8, color.RGBA{0, 255, 0, 255})
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	tex := NewTexture(img)

	r.BeginFrame()
	// Draw only the left (green) half.
	r.DrawTextureRegion(tex, 0, 0, 4, 8, geom.R(geom.VFloat(-0.5, -0.5), geom.VFloat(0.5, 0.5)))
	r.EndFrame()

	_, g, _, _ := surface.Image().At(100, 100).RGBA()
	if g < 0xf000 {
		t.Errorf("region pixel = %v", surface.Image().At(100, 100))
	}
}

func TestPixmapPixelAccess(t *testing.T) {
	p := NewPixmap(10, 10)
	p.SetPixel(3, 4, Red)
	got := p.GetPixel(3, 4)
	if got.R != 1 || got.A != 1 {
		t.Errorf("GetPixel = %+v", got)
	}

	// Out of range access is safe.
	p.SetPixel(-1, 0, Red)
	p.SetPixel(0, 100, Red)
	if c := p.GetPixel(-1, 0); c != (RGBA{}) {
		t.Errorf("out-of-range GetPixel = %+v", c)
	}
}

func TestPixmapEncodePNG(t *testing.T) {
	p := NewPixmap(6, 4)
	p.Clear(Blue)

	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("decoded size = %v", b)
	}
	_, _, b, _ := img.At(2, 2).RGBA()
	if b < 0xf000 {
		t.Errorf("decoded pixel = %v", img.At(2, 2))
	}
}
