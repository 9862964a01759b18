package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewManual(base)
	assert.Equal(t, base, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, base.Add(90*time.Second), c.Now())

	c.Set(base)
	assert.Equal(t, base, c.Now())
}

func TestSystemClockMovesForward(t *testing.T) {
	c := &System{}
	first := c.Now()
	second := c.Now()
	assert.False(t, second.Before(first))
}
