package frame

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingSink struct {
	fps    []int
	counts []uint64
}

func (r *recordingSink) SetFPS(fps int)         { r.fps = append(r.fps, fps) }
func (r *recordingSink) SetFrameCount(n uint64) { r.counts = append(r.counts, n) }

// steppingClock advances by step on every other call so each frame sees a
// duration of exactly step.
type steppingClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppingClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestStopWhenStoppedIsNoop(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q, nil, nil)
	s.Stop()
	s.Stop()
	if st := s.State(); st.Running || st.Pending != NoHandle {
		t.Fatalf("unexpected state after double stop: %+v", st)
	}
	if q.Pending() != 0 {
		t.Fatalf("queue has %d pending", q.Pending())
	}
}

func TestToggleTwiceReturnsToStopped(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q, nil, nil)
	if !s.Toggle() {
		t.Fatal("first toggle should start")
	}
	if q.Pending() != 1 {
		t.Fatalf("want 1 pending after start, got %d", q.Pending())
	}
	if s.Toggle() {
		t.Fatal("second toggle should stop")
	}
	if st := s.State(); st.Running || st.Pending != NoHandle {
		t.Fatalf("state after double toggle: %+v", st)
	}
	if q.Pending() != 0 {
		t.Fatalf("queue has %d pending", q.Pending())
	}
	if q.Fire() != 0 {
		t.Fatal("cancelled callback fired")
	}
}

func TestStartStopStartLeavesOnePending(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q, nil, nil)
	s.Start()
	s.Stop()
	s.Start()
	if q.Pending() != 1 {
		t.Fatalf("want exactly one pending callback, got %d", q.Pending())
	}
	s.Start()
	if q.Pending() != 1 {
		t.Fatalf("repeated Start scheduled a second callback: %d", q.Pending())
	}
	if ran := q.Fire(); ran != 1 {
		t.Fatalf("fired %d callbacks", ran)
	}
}

func TestRunningReschedules(t *testing.T) {
	q := NewQueue()
	frames := 0
	s := NewScheduler(q, func() error { frames++; return nil }, nil)
	s.Start()
	for i := 0; i < 5; i++ {
		q.Fire()
		if q.Pending() != 1 {
			t.Fatalf("frame %d: pending = %d", i, q.Pending())
		}
	}
	if frames != 5 || s.State().FrameCount != 5 {
		t.Fatalf("frames=%d count=%d", frames, s.State().FrameCount)
	}
	s.Stop()
	q.Fire()
	if frames != 5 {
		t.Fatal("frame ran after Stop")
	}
}

func TestFPSCadence(t *testing.T) {
	q := NewQueue()
	sink := &recordingSink{}
	clock := &steppingClock{t: time.Unix(0, 0), step: 16 * time.Millisecond}
	s := NewScheduler(q, nil, sink, WithClock(clock.now))
	s.Start()
	for i := 0; i < 25; i++ {
		q.Fire()
	}
	if len(sink.fps) != 2 {
		t.Fatalf("want FPS published at frames 10 and 20, got %v", sink.fps)
	}
	for _, fps := range sink.fps {
		if fps != 62 {
			t.Errorf("fps = %d, want floor(1000/16) = 62", fps)
		}
	}
	if len(sink.counts) != 25 || sink.counts[24] != 25 {
		t.Errorf("frame counts not published every frame: %v", sink.counts)
	}
}

func TestFPSSkippedOnZeroDuration(t *testing.T) {
	q := NewQueue()
	sink := &recordingSink{}
	fixed := time.Unix(100, 0)
	s := NewScheduler(q, nil, sink, WithClock(func() time.Time { return fixed }))
	s.Start()
	for i := 0; i < 10; i++ {
		q.Fire()
	}
	if len(sink.fps) != 0 {
		t.Fatalf("zero-duration frame published fps %v", sink.fps)
	}
}

func TestFPS(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
		ok   bool
	}{
		{16 * time.Millisecond, 62, true},
		{time.Millisecond, 1000, true},
		{3 * time.Second, 0, true},
		{0, 0, false},
		{-time.Millisecond, 0, false},
	}
	for _, tt := range tests {
		got, ok := FPS(tt.d)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FPS(%v) = %d, %v; want %d, %v", tt.d, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFailingBodyKeepsBookkeeping(t *testing.T) {
	q := NewQueue()
	calls := 0
	s := NewScheduler(q, func() error {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return errors.New("render failed")
	}, nil)
	s.Start()
	q.Fire()
	if st := s.State(); !st.Running || st.Pending == NoHandle || st.FrameCount != 1 {
		t.Fatalf("after panicking frame: %+v", st)
	}
	q.Fire()
	s.Stop()
	if st := s.State(); st.Pending != NoHandle || q.Pending() != 0 {
		t.Fatalf("stop after failures left pending work: %+v", st)
	}
}

func TestStopInsideFrameDoesNotReschedule(t *testing.T) {
	q := NewQueue()
	var s *Scheduler
	s = NewScheduler(q, func() error {
		s.Stop()
		return nil
	}, nil)
	s.Start()
	q.Fire()
	if s.Running() || q.Pending() != 0 {
		t.Fatalf("running=%v pending=%d", s.Running(), q.Pending())
	}
}

func TestStepOnce(t *testing.T) {
	q := NewQueue()
	frames := 0
	s := NewScheduler(q, func() error { frames++; return nil }, nil)
	if !s.StepOnce() || frames != 1 {
		t.Fatal("StepOnce should run while stopped")
	}
	if q.Pending() != 0 {
		t.Fatal("StepOnce must not schedule")
	}
	s.Start()
	if s.StepOnce() {
		t.Fatal("StepOnce should refuse while running")
	}
}

func TestPumpStopsWithLoop(t *testing.T) {
	q := NewQueue()
	s := NewScheduler(q, nil, nil)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if fired := Pump(ctx, q, time.Millisecond, 12); fired != 12 {
		t.Fatalf("Pump fired %d, want 12", fired)
	}
	s.Stop()
	if fired := Pump(ctx, q, time.Millisecond, 0); fired != 0 {
		t.Fatalf("Pump on stopped loop fired %d", fired)
	}
}
