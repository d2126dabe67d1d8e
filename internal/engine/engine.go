// Package engine defines the contract between the visualization driver and
// a step-wise field solver, plus the borrowed views the driver hands out
// over solver-owned memory.
package engine

// ForceMode is the velocity damping bit shift forwarded to the solver on
// every tick. Zero disables damping.
type ForceMode uint8

// DefaultForceMode matches what the window starts with.
const DefaultForceMode ForceMode = 0

// Engine is a fixed-shape solver. All methods are synchronous and the
// grid never changes after construction.
type Engine interface {
	// Dimensions reports the grid size.
	Dimensions() (width, height int)
	// Step advances the simulation by one tick.
	Step(mode ForceMode, intensityOnly bool)
	// Image returns the RGBA pixel buffer, 4*width*height bytes, valid
	// until the next Step.
	Image() []byte
	// Force returns the writable forcing buffer, width*height cells.
	Force() []int32
	// Norm returns a diagnostic scalar for display.
	Norm() float64
	// Test returns the secondary debug buffer, shaped like Image.
	Test() []byte
}

// PixelLen is the byte length of an RGBA buffer for the grid.
func PixelLen(width, height int) int { return 4 * width * height }

// CellLen is the number of grid cells.
func CellLen(width, height int) int { return width * height }
