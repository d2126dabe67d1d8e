package inspect

import (
	"image"
	"image/color"
	"testing"

	"wavelab/internal/pointer"
)

func TestHue(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    int
	}{
		{"red", 255, 0, 0, 0},
		{"green", 0, 255, 0, 120},
		{"blue", 0, 0, 255, 240},
		{"gray", 128, 128, 128, 0},
		{"black", 0, 0, 0, 0},
		{"yellow", 255, 255, 0, 60},
		{"cyan", 0, 255, 255, 180},
		{"magenta", 255, 0, 255, 300},
		{"rose", 255, 0, 1, 0},
		{"orange", 255, 128, 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hue(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Hue(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestHueRange(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				h := Hue(uint8(r), uint8(g), uint8(b))
				if h < 0 || h >= 360 {
					t.Fatalf("Hue(%d,%d,%d) = %d out of range", r, g, b, h)
				}
			}
		}
	}
}

func TestSampleText(t *testing.T) {
	s := HueSample{R: 0, G: 255, B: 0, A: 255, Hue: 120}
	if got := s.CSS(); got != "rgba(0,255,0,1)" {
		t.Errorf("CSS = %q", got)
	}
	if got := s.Label(); got != "120 degrees" {
		t.Errorf("Label = %q", got)
	}
	half := HueSample{R: 1, G: 2, B: 3, A: 128}
	if got := half.CSS(); got != "rgba(1,2,3,0.5019607843137255)" {
		t.Errorf("CSS = %q", got)
	}
}

func TestParseCSSRoundTrip(t *testing.T) {
	for _, s := range []HueSample{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 255, G: 0, B: 128, A: 128},
		{A: 0},
	} {
		c, err := ParseCSS(s.CSS())
		if err != nil {
			t.Fatal(err)
		}
		if c.R != s.R || c.G != s.G || c.B != s.B || c.A != s.A {
			t.Errorf("%s parsed to %+v", s.CSS(), c)
		}
	}
	if _, err := ParseCSS("hsl(1,2,3)"); err == nil {
		t.Error("expected parse error")
	}
}

type element struct {
	rect pointer.Rect
	w, h int
}

func (e element) BoundingRect() pointer.Rect { return e.rect }
func (e element) CanvasSize() (int, int)    { return e.w, e.h }

type swatch struct {
	bg, text string
}

func (s *swatch) SetBackground(css string) { s.bg = css }
func (s *swatch) SetText(text string)      { s.text = text }

func TestPointerMoveUsesScaledMapping(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 8, 8))
	canvas.SetRGBA(6, 2, color.RGBA{B: 255, A: 255})
	// Canvas shown at 4x, offset by (100, 50).
	el := element{rect: pointer.Rect{Left: 100, Top: 50, Width: 32, Height: 32}, w: 8, h: 8}

	sw := &swatch{}
	in := NewInspector(sw)
	s, ok := in.PointerMove(100+6*4, 50+2*4, el, canvas)
	if !ok {
		t.Fatal("move rejected")
	}
	if s.B != 255 || s.Hue != 240 {
		t.Fatalf("sample = %+v", s)
	}
	if sw.bg != "rgba(0,0,255,1)" || sw.text != "240 degrees" {
		t.Fatalf("display = %+v", sw)
	}
}

func TestPointerMoveDegenerateElement(t *testing.T) {
	sw := &swatch{}
	in := NewInspector(sw)
	canvas := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, ok := in.PointerMove(1, 1, element{w: 2, h: 2}, canvas); ok {
		t.Fatal("zero-size element should be rejected")
	}
	if sw.bg != "" || sw.text != "" {
		t.Fatal("display updated on rejected move")
	}
}
