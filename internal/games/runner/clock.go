package runner

import "time"

// Clock is the session's simulation clock. It advances by one fixed frame
// duration per simulated frame and never while the session is paused, so
// every deadline measured against it keeps its remaining duration across a
// pause and resumes exactly where it stopped.
type Clock struct {
	now   time.Duration
	frame time.Duration
}

// NewClock creates a clock that advances by frame on every Tick.
func NewClock(frame time.Duration) *Clock {
	if frame <= 0 {
		frame = time.Second / 60
	}
	return &Clock{frame: frame}
}

// Tick advances the clock by one frame and returns the new time.
func (c *Clock) Tick() time.Duration {
	c.now += c.frame
	return c.now
}

// Now returns the elapsed simulation time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Millis returns the elapsed simulation time in milliseconds, the unit
// used by the periodic animations.
func (c *Clock) Millis() float64 {
	return float64(c.now) / float64(time.Millisecond)
}

// Frame returns the duration of one tick.
func (c *Clock) Frame() time.Duration {
	return c.frame
}

// Deadline is a cancellable one-shot timer polled against a Clock.
type Deadline struct {
	at    time.Duration
	armed bool
}

// Arm schedules the deadline at now+after, replacing any pending schedule.
func (d *Deadline) Arm(now, after time.Duration) {
	d.at = now + after
	d.armed = true
}

// Due reports whether the deadline is armed and has been reached.
func (d *Deadline) Due(now time.Duration) bool {
	return d.armed && now >= d.at
}

// Cancel disarms the deadline.
func (d *Deadline) Cancel() {
	d.armed = false
}

// Armed reports whether the deadline is pending.
func (d *Deadline) Armed() bool {
	return d.armed
}

// Remaining returns the time left before the deadline, or 0 when disarmed or due.
func (d *Deadline) Remaining(now time.Duration) time.Duration {
	if !d.armed || now >= d.at {
		return 0
	}
	return d.at - now
}
