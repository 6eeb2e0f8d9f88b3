package drift

import "time"

// tickSlack absorbs the rounding of integer-nanosecond frame durations, so
// sixty frames of time.Second/60 still count as one full second.
const tickSlack = time.Millisecond

// Countdown is a whole-second timer driven by accumulated frame time.
type Countdown struct {
	remaining int
	interval  time.Duration
	acc       time.Duration
}

// NewCountdown creates a countdown starting at seconds.
func NewCountdown(seconds int, interval time.Duration) Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return Countdown{remaining: seconds, interval: interval}
}

// Reset restarts the countdown at seconds and drops any partial interval.
func (c *Countdown) Reset(seconds int) {
	c.remaining = seconds
	c.acc = 0
}

// Tick advances the countdown by dt and reports whether it has reached zero.
// A long frame may consume several intervals at once.
func (c *Countdown) Tick(dt time.Duration) bool {
	if c.remaining <= 0 {
		return true
	}
	c.acc += dt
	for c.remaining > 0 && c.acc+tickSlack >= c.interval {
		c.acc -= c.interval
		c.remaining--
	}
	return c.remaining <= 0
}

// Add grants extra seconds.
func (c *Countdown) Add(seconds int) {
	c.remaining += seconds
}

// Remaining returns the whole seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}
