package session

import (
	"fmt"
	"time"
)

type ClockState string

const (
	ClockIdle    ClockState = "idle"
	ClockRunning ClockState = "running"
	ClockPaused  ClockState = "paused"
)

// Clock measures offense time. While running, elapsed is always derived from the
// start mark so a late or skipped tick never accumulates drift.
type Clock struct {
	now       func() time.Time
	state     ClockState
	elapsed   time.Duration
	startMark time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, state: ClockIdle}
}

func (c *Clock) State() ClockState {
	return c.state
}

func (c *Clock) Running() bool {
	return c.state == ClockRunning
}

func (c *Clock) Start() error {
	if c.state == ClockRunning {
		return ErrClockRunning
	}
	c.startMark = c.now().Add(-c.elapsed)
	c.state = ClockRunning
	return nil
}

func (c *Clock) Pause() error {
	if c.state != ClockRunning {
		return ErrClockNotRunning
	}
	c.elapsed = c.since()
	c.state = ClockPaused
	return nil
}

// Adjust shifts elapsed time by whole seconds, clamped at zero.
func (c *Clock) Adjust(deltaSeconds int) error {
	if c.state == ClockRunning {
		return ErrClockRunning
	}
	c.elapsed = max(0, c.elapsed+time.Duration(deltaSeconds)*time.Second)
	if c.elapsed == 0 {
		c.state = ClockIdle
	} else {
		c.state = ClockPaused
	}
	return nil
}

// restore stops the clock at a previously observed elapsed time.
func (c *Clock) restore(elapsed time.Duration) {
	c.elapsed = max(0, elapsed)
	c.startMark = time.Time{}
	if c.elapsed == 0 {
		c.state = ClockIdle
	} else {
		c.state = ClockPaused
	}
}

func (c *Clock) Reset() {
	c.state = ClockIdle
	c.elapsed = 0
	c.startMark = time.Time{}
}

// Tick recomputes elapsed from the start mark. It does nothing unless running.
func (c *Clock) Tick() {
	if c.state == ClockRunning {
		c.elapsed = c.since()
	}
}

func (c *Clock) Elapsed() time.Duration {
	if c.state == ClockRunning {
		return c.since()
	}
	return c.elapsed
}

// Seconds is the persisted resolution: whole seconds, floored.
func (c *Clock) Seconds() int {
	return int(c.Elapsed() / time.Second)
}

// Display renders elapsed time as seconds and centiseconds, e.g. "12.07".
func (c *Clock) Display() string {
	return FormatClock(c.Elapsed())
}

func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%d.%02d", ms/1000, (ms%1000)/10)
}

func (c *Clock) since() time.Duration {
	d := c.now().Sub(c.startMark)
	if d < 0 {
		return 0
	}
	return d
}
