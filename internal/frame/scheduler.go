// Package frame runs a cooperative, single-threaded frame loop on top of an
// animation-frame style platform callback.
package frame

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"wavelab/internal/logging"
)

// fpsEvery is how many frames pass between FPS updates.
const fpsEvery = 10

// FrameState is all mutable loop bookkeeping. Pending is non-zero only
// while a callback is outstanding.
type FrameState struct {
	Running       bool
	FrameCount    uint64
	LastTickStart time.Time
	LastTickEnd   time.Time
	Pending       Handle
}

// Sink receives loop readouts.
type Sink interface {
	SetFPS(fps int)
	SetFrameCount(n uint64)
}

// Body is the work done inside one frame.
type Body func() error

// Scheduler toggles a frame loop between Stopped and Running. It is not
// safe for concurrent use.
type Scheduler struct {
	platform Platform
	body     Body
	sink     Sink
	now      func() time.Time
	log      *slog.Logger
	state    FrameState
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithLogger sets the logger for frame failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScheduler builds a stopped scheduler. sink may be nil.
func NewScheduler(p Platform, body Body, sink Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		platform: p,
		body:     body,
		sink:     sink,
		now:      time.Now,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the loop bookkeeping.
func (s *Scheduler) State() FrameState { return s.state }

// Running reports whether the loop is on.
func (s *Scheduler) Running() bool { return s.state.Running }

// Toggle flips between Stopped and Running and returns the new state.
func (s *Scheduler) Toggle() bool {
	if s.state.Running {
		s.Stop()
	} else {
		s.Start()
	}
	return s.state.Running
}

// Start enters Running and schedules a frame unless one is pending.
func (s *Scheduler) Start() {
	s.state.Running = true
	s.schedule()
}

// Stop enters Stopped and cancels any pending frame. Stopping a stopped
// scheduler does nothing.
func (s *Scheduler) Stop() {
	s.state.Running = false
	if s.state.Pending != NoHandle {
		s.platform.CancelFrame(s.state.Pending)
		s.state.Pending = NoHandle
	}
}

// StepOnce runs a single frame body while stopped. It reports whether a
// frame ran.
func (s *Scheduler) StepOnce() bool {
	if s.state.Running {
		return false
	}
	s.runFrame()
	return true
}

func (s *Scheduler) schedule() {
	if s.state.Pending != NoHandle {
		return
	}
	s.state.Pending = s.platform.RequestFrame(s.fire)
}

// fire is the platform callback.
func (s *Scheduler) fire() {
	s.state.Pending = NoHandle
	s.runFrame()
	if s.state.Running {
		s.schedule()
	}
}

func (s *Scheduler) runFrame() {
	t0 := s.now()
	s.state.LastTickStart = t0
	if err := s.safeBody(); err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "frame failed",
			slog.Uint64("frame", s.state.FrameCount+1), slog.Any("err", err))
	}
	t1 := s.now()
	s.state.LastTickEnd = t1
	s.state.FrameCount++
	if s.sink != nil {
		s.sink.SetFrameCount(s.state.FrameCount)
	}
	if s.state.FrameCount%fpsEvery != 0 {
		return
	}
	if fps, ok := FPS(t1.Sub(t0)); ok && s.sink != nil {
		s.sink.SetFPS(fps)
	}
}

// safeBody runs the body, turning a panic into an error so the loop
// bookkeeping survives it.
func (s *Scheduler) safeBody() (err error) {
	if s.body == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame body panicked: %v", r)
		}
	}()
	return s.body()
}

// FPS converts one frame's duration into frames per second, floored.
// Non-positive durations yield ok == false.
func FPS(d time.Duration) (int, bool) {
	if d <= 0 {
		return 0, false
	}
	return int(math.Floor(float64(time.Second) / float64(d))), true
}
