// internal/domain/drop/window.go
package drop

import (
	"time"
)

// Window is the time box of a drop. Both boundaries are optional: a nil
// StartAt means the drop is live from the beginning, a nil EndAt means it
// never ends. When both are set the caller is expected to keep
// StartAt < EndAt; the window does not enforce it.
type Window struct {
	StartAt *time.Time
	EndAt   *time.Time
}

// ParseResult reports which raw timestamp strings could not be parsed and
// were degraded to an absent boundary.
type ParseResult struct {
	BadStart string
	BadEnd   string
}

// ParseWindow builds a Window from two optional RFC 3339 timestamp
// strings. An empty string means the boundary is absent. An unparseable
// value also degrades to absent; the raw value is returned in the
// ParseResult so the caller can surface it.
func ParseWindow(start, end string) (Window, ParseResult) {
	var w Window
	var res ParseResult
	if start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			w.StartAt = &t
		} else {
			res.BadStart = start
		}
	}
	if end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			w.EndAt = &t
		} else {
			res.BadEnd = end
		}
	}
	return w, res
}

// StatusOf derives the drop status at the given instant. It is a pure
// function of (now, window): upcoming while before a configured start,
// live while before a configured end, ended otherwise. A window with no
// end never ends; a window with no boundaries at all is permanently live.
func (w Window) StatusOf(now time.Time) Status {
	if w.StartAt != nil && now.Before(*w.StartAt) {
		return StatusUpcoming
	}
	if w.EndAt != nil && now.Before(*w.EndAt) {
		return StatusLive
	}
	if w.EndAt == nil {
		return StatusLive
	}
	return StatusEnded
}

// Target returns the instant the countdown runs toward for the given
// status: the start while upcoming, the end while live. There is no
// target once the drop has ended, or while live with no end configured.
func (w Window) Target(s Status) *time.Time {
	switch s {
	case StatusUpcoming:
		return w.StartAt
	case StatusLive:
		return w.EndAt
	default:
		return nil
	}
}
