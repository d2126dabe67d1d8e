// Package lab is a small integer wave solver that satisfies engine.Engine.
// It exists so the driver has something to drive; the numerics are not
// part of the driver contract.
package lab

import (
	"fmt"
	"math"
	"runtime"

	"wavelab/internal/engine"
)

// MinSize is the smallest grid edge that leaves an interior cell.
const MinSize = 3

// Lab is a classical wave field with forcing, rendered to RGBA.
type Lab struct {
	arena *arena
	field *waveField
	bands []rowBand

	// images alternates between two backing slices so a pixel view
	// resolved before a Step never aliases the one written by it.
	images [2][]byte
	front  int
	test   []byte
	norm   float64
}

// Option adjusts a Lab at construction.
type Option func(*Lab)

// WithWorkers sets how many goroutines share a Step. Values below one
// run the step on the calling goroutine.
func WithWorkers(n int) Option {
	return func(l *Lab) {
		l.bands = splitRows(l.arena.height, n)
	}
}

// WithPulse seeds a centred square of full displacement with the given
// side length.
func WithPulse(side int) Option {
	return func(l *Lab) {
		l.field.seedPulse(l.arena, side)
	}
}

// New constructs a Lab of the given size.
func New(width, height int, opts ...Option) (*Lab, error) {
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("lab: grid %dx%d smaller than %dx%d", width, height, MinSize, MinSize)
	}
	l := &Lab{
		arena: newArena(width, height),
		field: newWaveField(width, height),
		test:  colorWheel(width, height),
	}
	l.images[0] = make([]byte, engine.PixelLen(width, height))
	l.images[1] = make([]byte, engine.PixelLen(width, height))
	l.bands = splitRows(height, runtime.NumCPU())
	for _, opt := range opts {
		opt(l)
	}
	l.render(false)
	return l, nil
}

// Dimensions implements engine.Engine.
func (l *Lab) Dimensions() (int, int) { return l.arena.width, l.arena.height }

// Step implements engine.Engine.
func (l *Lab) Step(mode engine.ForceMode, intensityOnly bool) {
	damping := uint8(mode)
	eachBand(l.bands, func(y0, y1 int) {
		l.field.updateVelocity(l.arena, y0, y1, damping)
	})
	eachBand(l.bands, func(y0, y1 int) {
		l.field.applyForce(l.arena, y0, y1)
	})
	l.front ^= 1
	l.render(intensityOnly)
}

// render refreshes the front image and the norm from the field.
func (l *Lab) render(intensityOnly bool) {
	img := l.images[l.front]
	var sum float64
	for i, u := range l.field.u {
		if intensityOnly {
			writeIntensity(img[4*i:4*i+4], u)
		} else {
			writeAmplitude(img[4*i:4*i+4], u)
		}
		sum += math.Abs(amplitude(u))
	}
	l.norm = sum / float64(len(l.field.u))
}

// Image implements engine.Engine.
func (l *Lab) Image() []byte { return l.images[l.front] }

// Force implements engine.Engine.
func (l *Lab) Force() []int32 { return l.field.force }

// Norm implements engine.Engine.
func (l *Lab) Norm() float64 { return l.norm }

// Test implements engine.Engine.
func (l *Lab) Test() []byte { return l.test }

var _ engine.Engine = (*Lab)(nil)
