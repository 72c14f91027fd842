package brew

// Timer counts whole elapsed seconds with start/pause/reset semantics. It
// owns no clock: the driver calls Tick roughly once per second while the
// session is on screen, which also lets tests advance time synchronously.
// Accuracy is cooking-timer grade, not drift-free.
type Timer struct {
	elapsed int
	running bool
}

// Start begins counting. Calling it while already running is a no-op.
func (t *Timer) Start() {
	t.running = true
}

// Pause stops counting and retains the current value.
func (t *Timer) Pause() {
	t.running = false
}

// Reset returns the counter to zero and stops it.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.running = false
}

// Tick advances the counter by one second iff the timer is running.
func (t *Timer) Tick() {
	if t.running {
		t.elapsed++
	}
}

func (t *Timer) Elapsed() int {
	return t.elapsed
}

func (t *Timer) Running() bool {
	return t.running
}
