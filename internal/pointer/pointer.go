// Package pointer maps window-relative pointer positions onto the
// simulation grid and injects force where the pointer goes down.
package pointer

import (
	"math"

	"wavelab/internal/engine"
)

// ForceMagnitude is written into the force buffer on pointer-down. The
// engine decays it on later ticks.
const ForceMagnitude int32 = 0x3fffffff

// Rect is the on-screen bounding rectangle of a canvas element, in the
// same units as pointer positions.
type Rect struct {
	Left, Top, Width, Height float64
}

// Element is a canvas placed somewhere in a window.
type Element interface {
	BoundingRect() Rect
	// CanvasSize is the canvas resolution in pixels, which equals the
	// grid size for the primary canvas.
	CanvasSize() (width, height int)
}

// clampCoord constrains v to lie within the inclusive [lo, hi] range.
func clampCoord(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToCanvas converts a window-relative position into canvas pixel
// coordinates. The offset from the element's origin is scaled by the
// ratio of canvas size to on-screen size, rounded, and clamped onto the
// canvas. A degenerate element rectangle or canvas yields ok == false.
func ToCanvas(clientX, clientY float64, el Element) (x, y int, ok bool) {
	bbox := el.BoundingRect()
	cw, ch := el.CanvasSize()
	if bbox.Width <= 0 || bbox.Height <= 0 || cw <= 0 || ch <= 0 {
		return 0, 0, false
	}
	fx := (clientX - bbox.Left) * (float64(cw) / bbox.Width)
	fy := (clientY - bbox.Top) * (float64(ch) / bbox.Height)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	x = clampCoord(roundToInt(fx), 0, cw-1)
	y = clampCoord(roundToInt(fy), 0, ch-1)
	return x, y, true
}

// roundToInt rounds half away from zero and saturates instead of
// overflowing on huge inputs.
func roundToInt(f float64) int {
	r := math.Round(f)
	if r >= math.MaxInt32 {
		return math.MaxInt32
	}
	if r <= math.MinInt32 {
		return math.MinInt32
	}
	return int(r)
}

// ToGridIndex flattens the mapped canvas position to x + y*width.
func ToGridIndex(clientX, clientY float64, el Element) (int, bool) {
	x, y, ok := ToCanvas(clientX, clientY, el)
	if !ok {
		return 0, false
	}
	w, _ := el.CanvasSize()
	return x + y*w, true
}

// ForceTarget resolves a fresh force view for each write.
type ForceTarget interface {
	ForceView() (engine.Cells, error)
}

// Injector writes ForceMagnitude under pointer-down events.
type Injector struct {
	target ForceTarget
}

// NewInjector binds the force target.
func NewInjector(t ForceTarget) *Injector {
	return &Injector{target: t}
}

// PointerDown forces the cell under the pointer and returns its index.
// ok is false when the position could not be mapped or the write was
// refused.
func (in *Injector) PointerDown(clientX, clientY float64, el Element) (index int, ok bool) {
	index, ok = ToGridIndex(clientX, clientY, el)
	if !ok {
		return 0, false
	}
	cells, err := in.target.ForceView()
	if err != nil {
		return index, false
	}
	return index, cells.Set(index, ForceMagnitude)
}
