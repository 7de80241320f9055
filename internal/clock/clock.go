// Package clock supplies the time source used to stamp runs.
package clock

import "time"

// Clock returns the current time. Runs read it once when they start and
// once when they finish.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// StepClock is a deterministic Clock for tests: every call to Now returns
// the previous value advanced by Step.
type StepClock struct {
	next time.Time
	Step time.Duration
}

// NewStepClock returns a StepClock whose first reading is start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, Step: step}
}

// Now returns the current reading and advances the clock.
func (c *StepClock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(c.Step)
	return now
}
