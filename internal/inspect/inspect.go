// Package inspect reads the color under the pointer and reports its hue.
package inspect

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"wavelab/internal/pointer"
)

// HueSample is one pointer-move reading.
type HueSample struct {
	R, G, B, A uint8
	Hue        int
}

// CSS renders the sample as an rgba() color with alpha in [0, 1].
func (s HueSample) CSS() string {
	alpha := strconv.FormatFloat(float64(s.A)/255, 'g', -1, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", s.R, s.G, s.B, alpha)
}

// Label is the text shown next to the swatch.
func (s HueSample) Label() string {
	return strconv.Itoa(s.Hue) + " degrees"
}

// RGBA returns the sampled color.
func (s HueSample) RGBA() color.RGBA {
	return color.RGBA{R: s.R, G: s.G, B: s.B, A: s.A}
}

// Hue returns the HSL hue of an 8-bit color in whole degrees, [0, 360).
// Gray has hue 0.
func Hue(r, g, b uint8) int {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, _, _ := c.Hsl()
	deg := int(math.Round(h))
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Sampler is a rendered canvas that can be read back one pixel at a time.
// *ebiten.Image and *image.RGBA both qualify.
type Sampler interface {
	At(x, y int) color.Color
}

// Display is the swatch element updated on every reading.
type Display interface {
	SetBackground(css string)
	SetText(text string)
}

// Inspector turns pointer moves into hue readings.
type Inspector struct {
	display Display
}

// NewInspector binds the display. A nil display only computes samples.
func NewInspector(d Display) *Inspector {
	return &Inspector{display: d}
}

// PointerMove samples canvas under the pointer, mapping the position with
// the same rule used for force injection.
func (in *Inspector) PointerMove(clientX, clientY float64, el pointer.Element, canvas Sampler) (HueSample, bool) {
	x, y, ok := pointer.ToCanvas(clientX, clientY, el)
	if !ok {
		return HueSample{}, false
	}
	s := Sample(canvas, x, y)
	if in.display != nil {
		in.display.SetBackground(s.CSS())
		in.display.SetText(s.Label())
	}
	return s, true
}

// Sample reads canvas at (x, y). Premultiplied colors are converted back
// to straight alpha before the hue is taken.
func Sample(canvas Sampler, x, y int) HueSample {
	c := color.NRGBAModel.Convert(canvas.At(x, y)).(color.NRGBA)
	return HueSample{R: c.R, G: c.G, B: c.B, A: c.A, Hue: Hue(c.R, c.G, c.B)}
}

// ParseCSS reads back a color produced by HueSample.CSS.
func ParseCSS(css string) (color.NRGBA, error) {
	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(css, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
		return color.NRGBA{}, fmt.Errorf("inspect: parse %q: %w", css, err)
	}
	clamp := func(v int) uint8 { return uint8(max(0, min(v, 255))) }
	return color.NRGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: uint8(math.Round(math.Max(0, math.Min(a, 1)) * 255))}, nil
}
