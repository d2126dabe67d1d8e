// Package session wires the frame loop, driver, renderer, overlay and
// pointer handlers into the control surface the window (or a headless
// run) talks to.
package session

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"wavelab/internal/driver"
	"wavelab/internal/engine"
	"wavelab/internal/frame"
	"wavelab/internal/inspect"
	"wavelab/internal/logging"
	"wavelab/internal/pointer"
	"wavelab/internal/render"
)

// Run button captions and colors.
const (
	LabelStart = "Start"
	LabelStop  = "Stop"
)

var (
	ColorStart = color.RGBA{R: 40, G: 150, B: 70, A: 255}
	ColorStop  = color.RGBA{R: 180, G: 50, B: 50, A: 255}
)

// Readouts receives everything the session displays.
type Readouts interface {
	frame.Sink
	inspect.Display
	SetRunLabel(label string, c color.RGBA)
}

// Options tunes a Session.
type Options struct {
	ForceMode     engine.ForceMode
	IntensityOnly bool
	Logger        *slog.Logger
	// Clock replaces time.Now for frame timing.
	Clock func() time.Time
}

// Session is single-threaded like everything it owns.
type Session struct {
	drv       *driver.Driver
	sched     *frame.Scheduler
	canvas    *render.Renderer
	overlay   *render.Overlay
	injector  *pointer.Injector
	inspector *inspect.Inspector
	readouts  Readouts
	log       *slog.Logger

	mode          engine.ForceMode
	intensityOnly bool
}

// New builds a stopped session. canvas and debug are surfaces sized to the
// engine grid; readouts may be nil.
func New(eng engine.Engine, p frame.Platform, canvas, debug render.Surface, readouts Readouts, opts Options) *Session {
	if readouts == nil {
		readouts = discardReadouts{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	drv := driver.New(eng)
	w, h := drv.Dimensions()
	s := &Session{
		drv:           drv,
		canvas:        render.NewRenderer(canvas, w, h),
		overlay:       render.NewOverlay(drv, render.NewRenderer(debug, w, h)),
		injector:      pointer.NewInjector(drv),
		inspector:     inspect.NewInspector(readouts),
		readouts:      readouts,
		log:           log,
		mode:          opts.ForceMode,
		intensityOnly: opts.IntensityOnly,
	}
	schedOpts := []frame.Option{frame.WithLogger(log)}
	if opts.Clock != nil {
		schedOpts = append(schedOpts, frame.WithClock(opts.Clock))
	}
	s.sched = frame.NewScheduler(p, s.frame, readouts, schedOpts...)
	readouts.SetRunLabel(LabelStart, ColorStart)
	return s
}

// frame is one tick: step the engine, then paint the fresh image.
func (s *Session) frame() error {
	s.drv.Step(s.mode, s.intensityOnly)
	v, err := s.drv.CurrentFrameImage()
	if err != nil {
		return err
	}
	return s.canvas.Blit(v)
}

// Paint blits the current engine image without stepping, for the first
// frame before the loop starts.
func (s *Session) Paint() error {
	v, err := s.drv.CurrentFrameImage()
	if err != nil {
		return err
	}
	return s.canvas.Blit(v)
}

// ToggleRun starts or stops the loop and updates the run button.
func (s *Session) ToggleRun() bool {
	running := s.sched.Toggle()
	s.updateRunLabel(running)
	s.log.Debug("run toggled", slog.Bool("running", running))
	return running
}

// Stop halts the loop if it is running.
func (s *Session) Stop() {
	s.sched.Stop()
	s.updateRunLabel(false)
}

func (s *Session) updateRunLabel(running bool) {
	if running {
		s.readouts.SetRunLabel(LabelStop, ColorStop)
		return
	}
	s.readouts.SetRunLabel(LabelStart, ColorStart)
}

// SingleStep runs one tick while stopped.
func (s *Session) SingleStep() bool { return s.sched.StepOnce() }

// TriggerDebug paints the engine debug buffer onto the debug surface.
// Failures are logged and returned; they never touch the frame loop.
func (s *Session) TriggerDebug() error {
	if err := s.overlay.Trigger(); err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "debug overlay failed", slog.Any("err", err))
		return fmt.Errorf("debug overlay: %w", err)
	}
	return nil
}

// DebugShown reports whether the debug surface holds a painted frame.
func (s *Session) DebugShown() bool { return s.overlay.Shown() }

// ToggleIntensity flips the flag forwarded to the engine on each tick.
func (s *Session) ToggleIntensity() bool {
	s.intensityOnly = !s.intensityOnly
	return s.intensityOnly
}

// IntensityOnly reports the flag forwarded to the engine.
func (s *Session) IntensityOnly() bool { return s.intensityOnly }

// SetForceMode changes the damping shift forwarded to the engine.
func (s *Session) SetForceMode(m engine.ForceMode) { s.mode = m }

// ForceMode returns the damping shift forwarded to the engine.
func (s *Session) ForceMode() engine.ForceMode { return s.mode }

// PointerDown injects force under the pointer.
func (s *Session) PointerDown(clientX, clientY float64, el pointer.Element) (int, bool) {
	idx, ok := s.injector.PointerDown(clientX, clientY, el)
	if ok {
		s.log.Debug("force injected", slog.Int("index", idx))
	}
	return idx, ok
}

// PointerMove updates the hue swatch from the rendered canvas.
func (s *Session) PointerMove(clientX, clientY float64, el pointer.Element, canvas inspect.Sampler) (inspect.HueSample, bool) {
	return s.inspector.PointerMove(clientX, clientY, el, canvas)
}

// Norm is the engine diagnostic for display.
func (s *Session) Norm() float64 { return s.drv.CurrentNorm() }

// State exposes the frame loop bookkeeping.
func (s *Session) State() frame.FrameState { return s.sched.State() }

// Dimensions returns the grid size.
func (s *Session) Dimensions() (int, int) { return s.drv.Dimensions() }

type discardReadouts struct{}

func (discardReadouts) SetFPS(int)                     {}
func (discardReadouts) SetFrameCount(uint64)           {}
func (discardReadouts) SetBackground(string)           {}
func (discardReadouts) SetText(string)                 {}
func (discardReadouts) SetRunLabel(string, color.RGBA) {}
