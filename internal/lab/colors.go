package lab

import (
	"math"
	"math/cmplx"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// fieldShift scales a field value down to a byte channel.
const fieldShift = 22

// writeAmplitude encodes a displacement as RGBA: positive values go to
// green and blue, negative values to red.
func writeAmplitude(dst []byte, u int32) {
	val := u >> fieldShift
	if val > 0 {
		c := byte(min(val, 255))
		dst[0], dst[1], dst[2], dst[3] = 0, c, c, 255
		return
	}
	c := byte(min(-val, 255))
	dst[0], dst[1], dst[2], dst[3] = c, 0, 0, 255
}

// writeIntensity encodes the displacement magnitude as gray.
func writeIntensity(dst []byte, u int32) {
	m := int64(u)
	if m < 0 {
		m = -m
	}
	c := byte(min(m>>fieldShift, 255))
	dst[0], dst[1], dst[2], dst[3] = c, c, c, 255
}

// phaseColor maps a complex amplitude to RGBA with phase as hue and
// magnitude as value.
func phaseColor(z complex128) (r, g, b uint8) {
	hue := cmplx.Phase(z) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	val := math.Min(cmplx.Abs(z), 1)
	return colorful.Hsv(hue, 1, val).Clamped().RGB255()
}

// colorWheel renders the unit disk of the complex plane through
// phaseColor; cells outside the disk are opaque black.
func colorWheel(width, height int) []byte {
	out := make([]byte, 4*width*height)
	sample := func(n, size int) int32 {
		return int32(float64(capMax-capMin)*float64(n)/float64(size)) + int32(capMin)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 4 * (y*width + x)
			re := amplitude(sample(x, width))
			im := amplitude(sample(y, height))
			arc := math.Sqrt(math.Max(0, 1-re*re))
			if -im < -arc || -im >= arc {
				out[i+3] = 255
				continue
			}
			out[i], out[i+1], out[i+2] = phaseColor(complex(re, im))
			out[i+3] = 255
		}
	}
	return out
}
