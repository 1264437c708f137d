package refresh

import (
	"sort"
	"time"
)

type queuedTimer struct {
	due       time.Time
	seq       int
	fn        func()
	cancelled bool
}

// FrameQueue is a cooperative Platform. Nothing runs on its own: the host
// loop calls Pump once per frame and every callback runs on that goroutine.
type FrameQueue struct {
	now    func() time.Time
	timers []*queuedTimer
	frames []func()
	seq    int
}

var _ Platform = (*FrameQueue)(nil)

// NewFrameQueue makes a queue reading time from now; nil means time.Now.
func NewFrameQueue(now func() time.Time) *FrameQueue {
	if now == nil {
		now = time.Now
	}
	return &FrameQueue{now: now}
}

func (q *FrameQueue) Now() time.Time {
	return q.now()
}

func (q *FrameQueue) AfterFunc(d time.Duration, fn func()) func() {
	t := &queuedTimer{due: q.now().Add(d), seq: q.seq, fn: fn}
	q.seq++
	q.timers = append(q.timers, t)
	return func() { t.cancelled = true }
}

func (q *FrameQueue) NextFrame(fn func()) {
	q.frames = append(q.frames, fn)
}

// Pump runs the frame callbacks queued before the call, then every timer that
// has come due, earliest first. Anything queued while pumping waits for the
// next Pump. It returns how many callbacks ran.
func (q *FrameQueue) Pump() int {
	ran := 0

	frames := q.frames
	q.frames = nil
	for _, fn := range frames {
		fn()
		ran++
	}

	now := q.now()
	var due, waiting []*queuedTimer
	for _, t := range q.timers {
		switch {
		case t.cancelled:
		case !t.due.After(now):
			due = append(due, t)
		default:
			waiting = append(waiting, t)
		}
	}
	q.timers = waiting
	sort.Slice(due, func(i, j int) bool {
		if !due[i].due.Equal(due[j].due) {
			return due[i].due.Before(due[j].due)
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Idle reports whether nothing is waiting to run.
func (q *FrameQueue) Idle() bool {
	if len(q.frames) > 0 {
		return false
	}
	for _, t := range q.timers {
		if !t.cancelled {
			return false
		}
	}
	return true
}

// Purge drops every queued callback without running it.
func (q *FrameQueue) Purge() {
	q.frames = nil
	q.timers = nil
}
