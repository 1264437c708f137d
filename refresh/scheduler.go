// Package refresh batches redraws of edited cells so a fast drag never
// repaints more than a bounded number of tiles per frame.
package refresh

import (
	"fmt"
	"time"

	"github.com/MobRulesGames/GoLLRB/llrb"
	"github.com/MobRulesGames/tabletop/config"
	"github.com/MobRulesGames/tabletop/logging"
	"github.com/MobRulesGames/tabletop/terrain"
)

// RedrawFunc repaints one cell. It is handed only the coordinates and must
// read the cell's height itself, so several edits to a cell between drains
// collapse into one up-to-date redraw.
type RedrawFunc func(x, y int)

// Platform provides the only suspension points the scheduler uses. Every
// callback must run on the same goroutine as the rest of the editor.
type Platform interface {
	Now() time.Time
	// AfterFunc runs fn once after d has elapsed, unless the returned cancel
	// func is called first.
	AfterFunc(d time.Duration, fn func()) (cancel func())
	// NextFrame runs fn once at the start of the next frame.
	NextFrame(fn func())
}

type State int

const (
	Idle State = iota
	Scheduled
	Draining
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	case Draining:
		return "draining"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	DefaultBatchSize = 10
	DefaultThrottle  = 32 * time.Millisecond
)

// Pending cells drain farthest-first in isometric order: lower x+y first,
// then lower x.
func cellLess(a, b interface{}) bool {
	ca := a.(terrain.Cell)
	cb := b.(terrain.Cell)
	if da, db := ca.X+ca.Y, cb.X+cb.Y; da != db {
		return da < db
	}
	return ca.X < cb.X
}

type Scheduler struct {
	platform  Platform
	redraw    RedrawFunc
	batchSize int
	throttle  time.Duration

	pending *llrb.Tree

	draining     bool
	lastDrain    time.Time
	cancelRetry  func()
	framePending bool
}

func NewScheduler(platform Platform, redraw RedrawFunc, batchSize int, throttle time.Duration) *Scheduler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if throttle < 0 {
		throttle = 0
	}
	return &Scheduler{
		platform:  platform,
		redraw:    redraw,
		batchSize: batchSize,
		throttle:  throttle,
		pending:   llrb.New(cellLess),
	}
}

func NewSchedulerFromSettings(platform Platform, redraw RedrawFunc, s *config.Settings) *Scheduler {
	return NewScheduler(platform, redraw, s.BatchSize, s.Throttle.Std())
}

func (s *Scheduler) State() State {
	switch {
	case s.draining:
		return Draining
	case s.cancelRetry != nil || s.framePending:
		return Scheduled
	}
	return Idle
}

// Pending reports how many distinct cells are waiting for a redraw.
func (s *Scheduler) Pending() int {
	return s.pending.Len()
}

func (s *Scheduler) IsPending(c terrain.Cell) bool {
	return s.pending.Has(c)
}

// Enqueue adds cells to the pending set and tries to drain. Adding a cell that
// is already pending has no further effect.
func (s *Scheduler) Enqueue(cells ...terrain.Cell) {
	for _, c := range cells {
		s.pending.ReplaceOrInsert(c)
	}
	s.Drain()
}

// Drain redraws up to one batch of pending cells. Calls made while a drain is
// running return immediately. Calls that arrive inside the throttle interval
// are never dropped; they arm a single retry timer instead.
func (s *Scheduler) Drain() {
	if s.draining || s.pending.Len() == 0 {
		return
	}
	if !s.lastDrain.IsZero() {
		elapsed := s.platform.Now().Sub(s.lastDrain)
		if elapsed < s.throttle {
			s.scheduleRetry(s.throttle - elapsed)
			return
		}
	}
	s.drainBatch()
}

// FlushNow cancels any pending retry and synchronously redraws every pending
// cell, ignoring batch size and throttle. If a drain is already running this
// defers to it. Call it when a drag ends, the pointer leaves the board or the
// board loses focus.
func (s *Scheduler) FlushNow() {
	s.stopRetry()
	if s.draining || s.pending.Len() == 0 {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()

	s.lastDrain = s.platform.Now()
	n := 0
	for s.pending.Len() > 0 {
		s.redrawOne(s.pending.DeleteMin().(terrain.Cell))
		n++
	}
	logging.Trace("flushed redraw queue", "cells", n)
}

func (s *Scheduler) scheduleRetry(wait time.Duration) {
	if s.cancelRetry != nil {
		return
	}
	s.cancelRetry = s.platform.AfterFunc(wait, func() {
		s.cancelRetry = nil
		s.Drain()
	})
}

func (s *Scheduler) stopRetry() {
	if s.cancelRetry == nil {
		return
	}
	s.cancelRetry()
	s.cancelRetry = nil
}

func (s *Scheduler) drainBatch() {
	s.draining = true
	defer func() { s.draining = false }()

	s.lastDrain = s.platform.Now()
	for n := 0; n < s.batchSize && s.pending.Len() > 0; n++ {
		s.redrawOne(s.pending.DeleteMin().(terrain.Cell))
	}
	if s.pending.Len() > 0 && !s.framePending {
		s.framePending = true
		s.platform.NextFrame(s.continueDrain)
	}
}

// continueDrain picks up the remainder of a drain on the following frame. It
// belongs to the drain already in flight, so it is not throttled again.
func (s *Scheduler) continueDrain() {
	s.framePending = false
	if s.draining || s.pending.Len() == 0 {
		return
	}
	s.drainBatch()
}

func (s *Scheduler) redrawOne(c terrain.Cell) {
	defer func() {
		if e := recover(); e != nil {
			logging.Error("redraw failed", "x", c.X, "y", c.Y, "err", e)
		}
	}()
	s.redraw(c.X, c.Y)
}
