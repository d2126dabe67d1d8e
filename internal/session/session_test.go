package session

import (
	"bytes"
	"image/color"
	"testing"

	"wavelab/internal/frame"
	"wavelab/internal/lab"
	"wavelab/internal/pointer"
	"wavelab/internal/render"
)

type panel struct {
	fps        []int
	frames     uint64
	background string
	text       string
	label      string
	labelColor color.RGBA
}

func (p *panel) SetFPS(fps int)           { p.fps = append(p.fps, fps) }
func (p *panel) SetFrameCount(n uint64)   { p.frames = n }
func (p *panel) SetBackground(css string) { p.background = css }
func (p *panel) SetText(text string)      { p.text = text }
func (p *panel) SetRunLabel(label string, c color.RGBA) {
	p.label, p.labelColor = label, c
}

type canvasElement struct {
	rect pointer.Rect
	w, h int
}

func (e canvasElement) BoundingRect() pointer.Rect { return e.rect }
func (e canvasElement) CanvasSize() (int, int)    { return e.w, e.h }

type fixture struct {
	lab    *lab.Lab
	queue  *frame.Queue
	canvas *render.ImageSurface
	debug  *render.ImageSurface
	panel  *panel
	s      *Session
}

func newFixture(t *testing.T, size int) *fixture {
	t.Helper()
	l, err := lab.New(size, size, lab.WithWorkers(1), lab.WithPulse(size/8))
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		lab:    l,
		queue:  frame.NewQueue(),
		canvas: render.NewImageSurface(size, size),
		debug:  render.NewImageSurface(size, size),
		panel:  &panel{},
	}
	f.s = New(l, f.queue, f.canvas, f.debug, f.panel, Options{})
	return f
}

func TestRunLabelFollowsToggle(t *testing.T) {
	f := newFixture(t, 16)
	if f.panel.label != LabelStart {
		t.Fatalf("initial label %q", f.panel.label)
	}
	if !f.s.ToggleRun() || f.panel.label != LabelStop || f.panel.labelColor != ColorStop {
		t.Fatalf("after start: %q %v", f.panel.label, f.panel.labelColor)
	}
	if f.s.ToggleRun() || f.panel.label != LabelStart || f.panel.labelColor != ColorStart {
		t.Fatalf("after stop: %q %v", f.panel.label, f.panel.labelColor)
	}
	if f.queue.Pending() != 0 {
		t.Fatal("stopped session left a frame pending")
	}
}

func TestFramesPaintCanvas(t *testing.T) {
	f := newFixture(t, 16)
	f.s.ToggleRun()
	for i := 0; i < 3; i++ {
		f.queue.Fire()
	}
	if st := f.s.State(); st.FrameCount != 3 || f.panel.frames != 3 {
		t.Fatalf("frame count %d / %d", st.FrameCount, f.panel.frames)
	}
	if !bytes.Equal(f.canvas.Pix, f.lab.Image()) {
		t.Fatal("canvas does not hold the latest engine image")
	}
}

func TestSingleStepOnlyWhileStopped(t *testing.T) {
	f := newFixture(t, 16)
	if !f.s.SingleStep() {
		t.Fatal("single step refused while stopped")
	}
	if !bytes.Equal(f.canvas.Pix, f.lab.Image()) {
		t.Fatal("single step did not paint")
	}
	f.s.ToggleRun()
	if f.s.SingleStep() {
		t.Fatal("single step ran while running")
	}
}

func TestPointerDownForcesEngine(t *testing.T) {
	f := newFixture(t, 64)
	el := canvasElement{rect: pointer.Rect{Width: 64, Height: 64}, w: 64, h: 64}
	idx, ok := f.s.PointerDown(32, 32, el)
	if !ok || idx != 2080 {
		t.Fatalf("PointerDown = %d, %v", idx, ok)
	}
	if got := f.lab.Force()[2080]; got != pointer.ForceMagnitude {
		t.Fatalf("force[2080] = %#x", got)
	}
}

func TestPointerMoveReadsCanvas(t *testing.T) {
	f := newFixture(t, 8)
	f.canvas.SetRGBA(3, 4, color.RGBA{G: 255, A: 255})
	el := canvasElement{rect: pointer.Rect{Left: 10, Top: 10, Width: 16, Height: 16}, w: 8, h: 8}
	s, ok := f.s.PointerMove(10+3*2, 10+4*2, el, f.canvas)
	if !ok || s.Hue != 120 {
		t.Fatalf("sample %+v, %v", s, ok)
	}
	if f.panel.text != "120 degrees" || f.panel.background != "rgba(0,255,0,1)" {
		t.Fatalf("panel %+v", f.panel)
	}
}

func TestTriggerDebugPaintsTestBuffer(t *testing.T) {
	f := newFixture(t, 16)
	if err := f.s.TriggerDebug(); err != nil {
		t.Fatal(err)
	}
	if !f.s.DebugShown() || !bytes.Equal(f.debug.Pix, f.lab.Test()) {
		t.Fatal("debug surface does not match engine test buffer")
	}
	if bytes.Equal(f.canvas.Pix, f.lab.Test()) {
		t.Fatal("debug buffer leaked onto the primary canvas")
	}
}

func TestIntensityToggleReachesEngine(t *testing.T) {
	f := newFixture(t, 16)
	if !f.s.ToggleIntensity() {
		t.Fatal("toggle should enable intensity-only")
	}
	f.s.SingleStep()
	pix := f.canvas.Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != pix[i+1] || pix[i] != pix[i+2] {
			t.Fatalf("pixel %d not gray in intensity mode: %v", i/4, pix[i:i+4])
		}
	}
}
