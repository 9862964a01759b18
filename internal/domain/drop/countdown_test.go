package drop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingIn(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want Remaining
	}{
		{"zero", 0, Remaining{}},
		{"negative floors to zero", -5 * time.Second, Remaining{}},
		{"sub-second floors to zero", 999 * time.Millisecond, Remaining{}},
		{"one second", time.Second, Remaining{Seconds: 1}},
		{"one of each with sub-second remainder", 90061001 * time.Millisecond, Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}},
		{"just under a day", 24*time.Hour - time.Second, Remaining{Hours: 23, Minutes: 59, Seconds: 59}},
		{"many days", 100*24*time.Hour + 5*time.Second, Remaining{Days: 100, Seconds: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RemainingIn(tc.d))
		})
	}
}

func TestPad2(t *testing.T) {
	assert.Equal(t, "00", Pad2(0))
	assert.Equal(t, "05", Pad2(5))
	assert.Equal(t, "09", Pad2(9))
	assert.Equal(t, "10", Pad2(10))
	assert.Equal(t, "42", Pad2(42))
	assert.Equal(t, "100", Pad2(100))
}

func TestRemainingIsZero(t *testing.T) {
	assert.True(t, Remaining{}.IsZero())
	assert.False(t, Remaining{Seconds: 1}.IsZero())
}
