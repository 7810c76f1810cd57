package blit

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
)

// Texture is any drawable image-like resource. Only textures produced by
// this package's constructors can actually be drawn; the renderer rejects
// (logs and no-ops) other implementations, since it cannot obtain a source
// handle from them.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)
}

// ImageTexture is the package's texture wrapper around a decoded image.
type ImageTexture struct {
	img    image.Image
	width  int
	height int
}

var _ Texture = (*ImageTexture)(nil)

// NewTexture wraps a decoded image as a drawable texture.
func NewTexture(img image.Image) *ImageTexture {
	b := img.Bounds()
	return &ImageTexture{img: img, width: b.Dx(), height: b.Dy()}
}

// NewTextureFromPNG decodes PNG data into a texture.
func NewTextureFromPNG(data []byte) (*ImageTexture, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png texture: %w", err)
	}
	return NewTexture(img), nil
}

// LoadTexture reads and decodes a PNG file into a texture.
func LoadTexture(path string) (*ImageTexture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return NewTextureFromPNG(data)
}

// Size implements Texture.
func (t *ImageTexture) Size() (int, int) {
	return t.width, t.height
}

// Image returns the wrapped source image.
func (t *ImageTexture) Image() image.Image {
	return t.img
}
