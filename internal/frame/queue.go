package frame

import (
	"context"
	"time"
)

// Handle identifies a requested frame callback. NoHandle means none.
type Handle uint64

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// Platform is the animation-frame primitive the scheduler runs on.
type Platform interface {
	// RequestFrame arranges for cb to run once on the next frame.
	RequestFrame(cb func()) Handle
	// CancelFrame drops a callback that has not fired yet. Unknown or
	// already fired handles are ignored.
	CancelFrame(h Handle)
}

// Queue is an in-process Platform. Whoever owns the display loop calls
// Fire once per frame; nothing runs until then.
type Queue struct {
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[Handle]func())}
}

// RequestFrame implements Platform.
func (q *Queue) RequestFrame(cb func()) Handle {
	q.next++
	h := q.next
	q.pending[h] = cb
	q.order = append(q.order, h)
	return h
}

// CancelFrame implements Platform.
func (q *Queue) CancelFrame(h Handle) {
	delete(q.pending, h)
}

// Pending reports how many callbacks are waiting for the next frame.
func (q *Queue) Pending() int { return len(q.pending) }

// Fire runs every callback requested before this call. Callbacks
// requested while firing wait for the next Fire. It returns how many ran.
func (q *Queue) Fire() int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, h := range batch {
		cb, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		cb()
		ran++
	}
	return ran
}

// Pump fires q on every tick of interval until ctx is done or maxFrames
// callbacks have run. A maxFrames of zero means no limit. It returns the
// number of callbacks fired.
func Pump(ctx context.Context, q *Queue, interval time.Duration, maxFrames int) int {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	fired := 0
	for {
		select {
		case <-ctx.Done():
			return fired
		case <-ticker.C:
			fired += q.Fire()
			if maxFrames > 0 && fired >= maxFrames {
				return fired
			}
			if q.Pending() == 0 {
				return fired
			}
		}
	}
}
