// Package render materializes engine pixel views onto canvas surfaces.
package render

import (
	"errors"
	"fmt"
	"image"

	"wavelab/internal/engine"
)

var (
	// ErrStaleView is returned for a view resolved before the last tick.
	ErrStaleView = errors.New("render: view is stale")
	// ErrViewSize is returned when a view does not match the surface.
	ErrViewSize = errors.New("render: view size does not match surface")
)

// Surface is a canvas that accepts a whole RGBA frame at once.
// *ebiten.Image satisfies it.
type Surface interface {
	WritePixels(pix []byte)
}

// Renderer blits views onto one surface of a fixed size.
type Renderer struct {
	surface       Surface
	width, height int
}

// NewRenderer binds a surface of width x height pixels.
func NewRenderer(s Surface, width, height int) *Renderer {
	return &Renderer{surface: s, width: width, height: height}
}

// Blit overwrites the entire surface with v in a single paint call.
func (r *Renderer) Blit(v engine.Pixels) error {
	pix := v.Bytes()
	if pix == nil {
		return ErrStaleView
	}
	w, h := v.Size()
	if w != r.width || h != r.height || len(pix) != engine.PixelLen(r.width, r.height) {
		return fmt.Errorf("%dx%d view on %dx%d surface: %w", w, h, r.width, r.height, ErrViewSize)
	}
	r.surface.WritePixels(pix)
	return nil
}

// ImageSurface is an in-memory Surface backed by an *image.RGBA.
type ImageSurface struct {
	*image.RGBA
}

// NewImageSurface allocates a width x height surface.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// WritePixels implements Surface.
func (s *ImageSurface) WritePixels(pix []byte) {
	copy(s.Pix, pix)
}
