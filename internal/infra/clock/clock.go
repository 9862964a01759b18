package clock

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads so countdown behavior can be driven
// by a manual clock in tests.
type Clock interface {
	Now() time.Time
}

// System implements Clock using the system clock.
type System struct{}

// Now returns the current time.
func (c *System) Now() time.Time {
	return time.Now()
}

// Manual is a hand-advanced Clock for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock frozen at the given instant.
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now returns the clock's current instant.
func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to the given instant.
func (c *Manual) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
