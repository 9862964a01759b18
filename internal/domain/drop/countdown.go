// internal/domain/drop/countdown.go
package drop

import (
	"strconv"
	"time"
)

// Remaining is a countdown duration decomposed into calendar-style
// fields: whole days, hours within the day, minutes within the hour and
// seconds within the minute. Sub-second remainder is floored away.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// RemainingIn decomposes a duration by floor division. Negative or zero
// durations decompose to all zeroes; the countdown never shows negative
// digits.
func RemainingIn(d time.Duration) Remaining {
	if d <= 0 {
		return Remaining{}
	}
	total := int(d / time.Second)
	return Remaining{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// IsZero reports whether every field is zero.
func (r Remaining) IsZero() bool {
	return r == Remaining{}
}

// Pad2 renders a countdown field as text, zero-padding single digits.
// Values of ten and above render as-is, so day counts past 99 are not
// truncated.
func Pad2(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
