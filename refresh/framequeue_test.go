package refresh_test

import (
	"testing"
	"time"

	"github.com/MobRulesGames/tabletop/refresh/refreshtest"
	"github.com/stretchr/testify/assert"
)

func TestFrameQueueRunsFramesOncePerPump(t *testing.T) {
	queue, _ := refreshtest.GivenAFrameQueue()
	var order []string
	queue.NextFrame(func() {
		order = append(order, "a")
		queue.NextFrame(func() { order = append(order, "c") })
	})
	queue.NextFrame(func() { order = append(order, "b") })

	assert.Equal(t, 2, queue.Pump())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.False(t, queue.Idle())

	assert.Equal(t, 1, queue.Pump())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.True(t, queue.Idle())
}

func TestFrameQueueTimers(t *testing.T) {
	queue, clock := refreshtest.GivenAFrameQueue()
	var fired []int
	queue.AfterFunc(20*time.Millisecond, func() { fired = append(fired, 20) })
	queue.AfterFunc(10*time.Millisecond, func() { fired = append(fired, 10) })
	cancel := queue.AfterFunc(15*time.Millisecond, func() { fired = append(fired, 15) })
	cancel()

	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, 0, queue.Pump())

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, 2, queue.Pump())
	assert.Equal(t, []int{10, 20}, fired)
	assert.True(t, queue.Idle())
}

func TestFrameQueuePurge(t *testing.T) {
	queue, clock := refreshtest.GivenAFrameQueue()
	ran := false
	queue.NextFrame(func() { ran = true })
	queue.AfterFunc(time.Millisecond, func() { ran = true })
	queue.Purge()
	clock.Advance(time.Second)
	assert.Equal(t, 0, queue.Pump())
	assert.False(t, ran)
}
