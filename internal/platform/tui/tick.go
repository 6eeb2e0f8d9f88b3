// Package tui runs Downhill Drift in a terminal with Bubble Tea.
// It owns the frame clock, maps keys to actions, and records finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock measures the real time between ticks.
// Gaps longer than maxLag frames are clamped so a stalled terminal does not
// fast-forward the countdown.
type frameClock struct {
	frame time.Duration
	last  time.Time
}

const maxLag = 4

func newFrameClock(tickRate int) frameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return frameClock{frame: time.Second / time.Duration(tickRate)}
}

// Elapsed returns the time since the previous tick, or one frame for the first.
func (c *frameClock) Elapsed(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return c.frame
	}
	dt := now.Sub(c.last)
	c.last = now
	switch {
	case dt <= 0:
		return 0
	case dt > maxLag*c.frame:
		return maxLag * c.frame
	}
	return dt
}
