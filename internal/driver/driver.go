// Package driver steps an engine once per frame and hands out fresh,
// epoch-stamped views over the buffers it owns.
package driver

import (
	"errors"
	"fmt"

	"wavelab/internal/engine"
)

// ErrBufferShape reports an engine buffer whose length does not match the
// grid.
var ErrBufferShape = errors.New("driver: engine buffer has wrong length")

// Driver owns the tick epoch for one engine. Views are never cached: every
// accessor asks the engine again because it may move its buffers between
// ticks.
type Driver struct {
	eng           engine.Engine
	width, height int
	epoch         engine.Epoch
}

// New wraps eng. The grid size is read once; it never changes.
func New(eng engine.Engine) *Driver {
	w, h := eng.Dimensions()
	return &Driver{eng: eng, width: w, height: h}
}

// Dimensions returns the grid size.
func (d *Driver) Dimensions() (int, int) { return d.width, d.height }

// Step runs one engine tick. Every view resolved before the call is stale
// afterwards.
func (d *Driver) Step(mode engine.ForceMode, intensityOnly bool) {
	d.epoch.Advance()
	d.eng.Step(mode, intensityOnly)
}

// Epoch reports how many ticks have run.
func (d *Driver) Epoch() uint64 { return d.epoch.Current() }

// CurrentFrameImage resolves a read-only view over the engine's pixel
// buffer.
func (d *Driver) CurrentFrameImage() (engine.Pixels, error) {
	return d.pixels("image", d.eng.Image())
}

// CurrentDebugImage resolves a read-only view over the engine's debug
// buffer.
func (d *Driver) CurrentDebugImage() (engine.Pixels, error) {
	return d.pixels("test", d.eng.Test())
}

// ForceView resolves a writable view over the engine's force buffer.
func (d *Driver) ForceView() (engine.Cells, error) {
	buf := d.eng.Force()
	if want := engine.CellLen(d.width, d.height); len(buf) != want {
		return engine.Cells{}, fmt.Errorf("force: got %d cells, want %d: %w", len(buf), want, ErrBufferShape)
	}
	return engine.NewCells(buf, &d.epoch), nil
}

// CurrentNorm returns the engine's diagnostic scalar unchecked.
func (d *Driver) CurrentNorm() float64 { return d.eng.Norm() }

func (d *Driver) pixels(name string, buf []byte) (engine.Pixels, error) {
	if want := engine.PixelLen(d.width, d.height); len(buf) != want {
		return engine.Pixels{}, fmt.Errorf("%s: got %d bytes, want %d: %w", name, len(buf), want, ErrBufferShape)
	}
	return engine.NewPixels(buf, d.width, d.height, &d.epoch), nil
}
