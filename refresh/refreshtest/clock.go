package refreshtest

import (
	"time"

	"github.com/MobRulesGames/tabletop/refresh"
	"github.com/MobRulesGames/tabletop/terrain"
)

// Clock is a hand-advanced time source for driving a refresh.FrameQueue in
// tests.
type Clock struct {
	t time.Time
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	return c.t
}

func (c *Clock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// GivenAFrameQueue returns a FrameQueue running on a fresh Clock.
func GivenAFrameQueue() (*refresh.FrameQueue, *Clock) {
	clock := NewClock()
	return refresh.NewFrameQueue(clock.Now), clock
}

type Redraw struct {
	X, Y, Height int
}

// Recorder is a refresh.RedrawFunc target that remembers what it drew and the
// height each cell had at the time.
type Recorder struct {
	Field   *terrain.Field
	Redraws []Redraw
}

func (r *Recorder) Redraw(x, y int) {
	h := 0
	if r.Field != nil {
		h = r.Field.Get(x, y)
	}
	r.Redraws = append(r.Redraws, Redraw{X: x, Y: y, Height: h})
}

func (r *Recorder) Count(x, y int) int {
	n := 0
	for _, rd := range r.Redraws {
		if rd.X == x && rd.Y == y {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Redraws = nil
}
