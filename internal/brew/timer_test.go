package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerStartPauseReset(t *testing.T) {
	var timer Timer

	// Ticks before start must not move the counter.
	timer.Tick()
	timer.Tick()
	assert.Equal(t, 0, timer.Elapsed())
	assert.False(t, timer.Running())

	timer.Start()
	timer.Tick()
	timer.Tick()
	timer.Tick()
	assert.Equal(t, 3, timer.Elapsed())
	assert.True(t, timer.Running())

	// Start is idempotent while running.
	timer.Start()
	timer.Tick()
	assert.Equal(t, 4, timer.Elapsed())

	timer.Pause()
	timer.Tick()
	timer.Tick()
	assert.Equal(t, 4, timer.Elapsed(), "paused timer must retain its value")
	assert.False(t, timer.Running())

	timer.Start()
	timer.Tick()
	assert.Equal(t, 5, timer.Elapsed())

	timer.Reset()
	assert.Equal(t, 0, timer.Elapsed())
	assert.False(t, timer.Running())
}

// Elapsed must never go negative and only increase while running, for any
// sequence of operations.
func TestTimerElapsedNeverNegative(t *testing.T) {
	ops := []string{
		"tick", "reset", "tick", "start", "tick", "pause", "tick",
		"reset", "reset", "tick", "start", "tick", "tick", "reset", "tick",
	}

	var timer Timer
	for i, op := range ops {
		before := timer.Elapsed()
		wasRunning := timer.Running()

		switch op {
		case "start":
			timer.Start()
		case "pause":
			timer.Pause()
		case "reset":
			timer.Reset()
		case "tick":
			timer.Tick()
		}

		assert.GreaterOrEqual(t, timer.Elapsed(), 0, "op %d (%s)", i, op)
		if op == "tick" && !wasRunning {
			assert.Equal(t, before, timer.Elapsed(), "op %d: tick while stopped moved the counter", i)
		}
	}
}
