package render

import "wavelab/internal/engine"

// DebugSource resolves the engine's secondary buffer.
type DebugSource interface {
	CurrentDebugImage() (engine.Pixels, error)
}

// Overlay paints the debug buffer onto its own surface, only when asked.
type Overlay struct {
	src      DebugSource
	renderer *Renderer
	shown    bool
}

// NewOverlay binds the debug source to a separate renderer.
func NewOverlay(src DebugSource, r *Renderer) *Overlay {
	return &Overlay{src: src, renderer: r}
}

// Trigger resolves a fresh debug view and blits it.
func (o *Overlay) Trigger() error {
	v, err := o.src.CurrentDebugImage()
	if err != nil {
		return err
	}
	if err := o.renderer.Blit(v); err != nil {
		return err
	}
	o.shown = true
	return nil
}

// Shown reports whether the overlay has been painted at least once.
func (o *Overlay) Shown() bool { return o.shown }
