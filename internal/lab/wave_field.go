package lab

import "math"

const (
	// capMax and capMin bound every displacement and velocity value.
	capMax int64 = math.MaxInt32 >> 1
	capMin int64 = math.MinInt32 >> 1

	// forceDecayShift is how fast injected force bleeds away per tick.
	forceDecayShift = 4
)

// waveField stores the integer state of the classical wave solver.
type waveField struct {
	width, height int
	u             []int32 // displacement
	v             []int32 // velocity
	force         []int32
}

// newWaveField allocates a waveField with properly sized buffers.
func newWaveField(width, height int) *waveField {
	return &waveField{
		width:  width,
		height: height,
		u:      make([]int32, width*height),
		v:      make([]int32, width*height),
		force:  make([]int32, width*height),
	}
}

// seedPulse raises a square of cells centred on the grid to full
// displacement, skipping walls.
func (f *waveField) seedPulse(a *arena, side int) {
	if side < 1 {
		return
	}
	x0 := (f.width - side) / 2
	y0 := (f.height - side) / 2
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			if a.isWall(x, y) {
				continue
			}
			f.u[a.index(x, y)] = int32(capMax)
		}
	}
}

// saturate clamps v into the representable field range.
func saturate(v int64) int64 {
	if v < capMin {
		return capMin
	}
	if v > capMax {
		return capMax
	}
	return v
}

// updateVelocity integrates the discrete Laplacian into the velocity of
// open cells in rows [y0, y1).
func (f *waveField) updateVelocity(a *arena, y0, y1 int, damping uint8) {
	w := f.width
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if a.status[i] != cellOpen {
				continue
			}
			c := int64(f.u[i])
			uxx := ((int64(f.u[i-1]) + int64(f.u[i+1])) >> 1) - c
			uyy := ((int64(f.u[i-w]) + int64(f.u[i+w])) >> 1) - c
			vel := int64(f.v[i]) + (uxx >> 1) + (uyy >> 1)
			if damping > 0 {
				vel -= vel >> damping
			}
			f.v[i] = int32(saturate(vel))
		}
	}
}

// applyForce moves open cells by their velocity plus the pending force and
// decays the force in rows [y0, y1).
func (f *waveField) applyForce(a *arena, y0, y1 int) {
	w := f.width
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if a.status[i] != cellOpen {
				continue
			}
			fi := int64(f.force[i])
			f.u[i] = int32(saturate(fi + saturate(int64(f.u[i])+int64(f.v[i]))))
			f.force[i] = int32(fi - fi>>forceDecayShift)
		}
	}
}

// amplitude maps a field value onto roughly [-1, 1].
func amplitude(x int32) float64 {
	return (float64(x) + 0.5) / (float64(capMax) - 0.5)
}
