// Package clock tracks shader time for the render loop. Time is continuous
// across pauses: a paused interval never shows up in Elapsed.
package clock

import (
	"sync"
	"time"
)

// Clock is a Running/Paused state machine with a frame counter.
type Clock struct {
	mu       sync.Mutex
	now      func() time.Time
	origin   time.Time
	pausedAt time.Time
	paused   bool
	frame    int
}

// New returns a running clock backed by the wall clock.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource returns a running clock that reads time from now.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now, origin: now()}
}

func (c *Clock) elapsedLocked() float64 {
	end := c.now()
	if c.paused {
		end = c.pausedAt
	}
	return end.Sub(c.origin).Seconds()
}

// Elapsed returns seconds since start, excluding paused intervals.
func (c *Clock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

// Frame returns the number of frames ticked while running.
func (c *Clock) Frame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Paused reports the current state.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Pause freezes time. It is a no-op when already paused.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.now()
}

// Resume shifts the origin forward by the paused duration.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.origin = c.origin.Add(c.now().Sub(c.pausedAt))
	c.paused = false
}

// Toggle flips the state and returns true if the clock is now paused.
func (c *Clock) Toggle() bool {
	if c.Paused() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// Tick is called once per scheduled frame. It returns the time and frame
// index to render with; the frame counter only advances while running.
func (c *Clock) Tick() (float64, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		c.frame++
	}
	return c.elapsedLocked(), c.frame
}

// Reset restarts time and the frame counter, keeping the pause state.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = c.now()
	c.pausedAt = c.origin
	c.frame = 0
}
