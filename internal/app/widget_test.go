package app

import (
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"drop_notification_bot/internal/domain/drop"
	"drop_notification_bot/internal/infra/bus"
	"drop_notification_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// eventRecorder collects published events. The widget's own ticker
// goroutine may publish concurrently with the test's explicit ticks.
type eventRecorder struct {
	mu     sync.Mutex
	events []drop.StatusChange
}

func (r *eventRecorder) record(ev drop.StatusChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) Events() []drop.StatusChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]drop.StatusChange(nil), r.events...)
}

type WidgetTestSuite struct {
	suite.Suite

	baseTime  time.Time
	clock     *clock.Manual
	statusBus *bus.StatusBus
	recorder  *eventRecorder
}

func (s *WidgetTestSuite) SetupTest() {
	s.baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewManual(s.baseTime)
	s.statusBus = bus.New()
	s.recorder = &eventRecorder{}
	s.statusBus.Subscribe(s.recorder.record)
}

func (s *WidgetTestSuite) events() []drop.StatusChange {
	return s.recorder.Events()
}

func (s *WidgetTestSuite) newDrop(start, end *time.Time) *drop.Drop {
	d := &drop.Drop{ID: 7, Slug: "spring", Name: "Spring Drop", IsActive: true}
	if start != nil {
		d.StartAt = sql.NullTime{Time: *start, Valid: true}
	}
	if end != nil {
		d.EndAt = sql.NullTime{Time: *end, Valid: true}
	}
	return d
}

func (s *WidgetTestSuite) newWidget(start, end *time.Time) *Widget {
	return NewWidget(s.newDrop(start, end), s.clock, s.statusBus, testLogger())
}

func (s *WidgetTestSuite) TestAttachUpcomingRendersCountdown() {
	start := s.baseTime.Add(5 * time.Second)
	w := s.newWidget(&start, nil)
	w.Attach()
	defer w.Detach()

	state := w.View().Snapshot()
	s.Equal(drop.StatusUpcoming, state.Status)
	s.Equal("Coming Soon", state.BadgeLabel)
	s.False(state.ActionEnabled)
	s.True(state.NotifyVisible)
	s.Equal("00:00:00:05", state.Countdown())
	s.Empty(s.events())
}

func (s *WidgetTestSuite) TestCrossingStartEmitsLiveExactlyOnce() {
	start := s.baseTime.Add(5 * time.Second)
	w := s.newWidget(&start, nil)
	w.Attach()
	defer w.Detach()

	// Ticks before the boundary emit nothing.
	s.clock.Advance(3 * time.Second)
	w.Tick()
	s.Empty(s.events())
	s.Equal("00:00:00:02", w.View().Snapshot().Countdown())

	// The tick after the boundary emits exactly one Live event and does
	// not render a negative remaining time.
	s.clock.Advance(3 * time.Second)
	w.Tick()
	s.Require().Len(s.events(), 1)
	s.Equal(drop.StatusChange{DropID: 7, Slug: "spring", Status: drop.StatusLive}, s.events()[0])

	// Further ticks never repeat the event.
	s.clock.Advance(time.Second)
	w.Tick()
	w.Tick()
	s.Len(s.events(), 1)
}

func (s *WidgetTestSuite) TestCrossingEndEmitsEndedAndZeroes() {
	start := s.baseTime.Add(-time.Hour)
	end := s.baseTime.Add(2 * time.Second)
	w := s.newWidget(&start, &end)
	w.Attach()

	state := w.View().Snapshot()
	s.Equal(drop.StatusLive, state.Status)
	s.True(state.ActionEnabled)
	s.Equal("00:00:00:02", state.Countdown())

	s.clock.Advance(3 * time.Second)
	w.Tick()
	s.Require().Len(s.events(), 1)
	s.Equal(drop.StatusEnded, s.events()[0].Status)
	s.Equal("00:00:00:00", w.View().Snapshot().Countdown())

	// The countdown halted permanently; later ticks change nothing.
	s.clock.Advance(time.Hour)
	w.Tick()
	s.Len(s.events(), 1)
	s.Equal("00:00:00:00", w.View().Snapshot().Countdown())
}

func (s *WidgetTestSuite) TestAttachEndedIsInert() {
	end := s.baseTime.Add(-time.Minute)
	w := s.newWidget(nil, &end)
	w.Attach()

	state := w.View().Snapshot()
	s.Equal(drop.StatusEnded, state.Status)
	s.Equal("Drop Ended", state.BadgeLabel)
	s.Equal("Sold Out", state.ActionLabel)
	s.Equal("00:00:00:00", state.Countdown())
	s.Empty(s.events())

	// Repeating the ended handling changes nothing and a second detach
	// of the already-cancelled timer must be safe.
	w.Tick()
	s.Equal("00:00:00:00", w.View().Snapshot().Countdown())
	w.Detach()
	w.Detach()
}

func (s *WidgetTestSuite) TestAttachLiveWithoutEndNeverTicks() {
	w := s.newWidget(nil, nil)
	w.Attach()
	defer w.Detach()

	state := w.View().Snapshot()
	s.Equal(drop.StatusLive, state.Status)
	s.True(state.ActionEnabled)
	s.False(state.NotifyVisible)
	s.Equal("00:00:00:00", state.Countdown())
}

func (s *WidgetTestSuite) TestGoingLiveWithoutEndHaltsCountdown() {
	start := s.baseTime.Add(2 * time.Second)
	w := s.newWidget(&start, nil)
	w.Attach()
	defer w.Detach()

	s.clock.Advance(3 * time.Second)
	w.Tick()
	s.Require().Len(s.events(), 1)
	s.Equal(drop.StatusLive, s.events()[0].Status)

	// Live with nothing left to count toward: the digits zero and the
	// countdown stops for good.
	s.Equal("00:00:00:00", w.View().Snapshot().Countdown())
	w.Tick()
	s.Len(s.events(), 1)
	s.Equal("00:00:00:00", w.View().Snapshot().Countdown())
}

func (s *WidgetTestSuite) TestUnchangedDigitsAreNotRewritten() {
	start := s.baseTime.Add(90 * time.Second)
	w := s.newWidget(&start, nil)
	w.Attach()
	defer w.Detach()

	before := w.View().WriteCount()
	// No time passed; every rendered field is identical.
	w.Tick()
	s.Equal(before, w.View().WriteCount())

	// One second later only the seconds field is rewritten.
	s.clock.Advance(time.Second)
	w.Tick()
	s.Equal(before+1, w.View().WriteCount())
}

func (s *WidgetTestSuite) TestRefreshFollowsWallClock() {
	start := s.baseTime.Add(5 * time.Second)
	end := s.baseTime.Add(10 * time.Second)
	w := s.newWidget(&start, &end)
	w.Attach()
	defer w.Detach()

	s.Equal(drop.StatusUpcoming, w.View().Snapshot().Status)

	// Refresh recomputes from the clock regardless of any tick.
	s.clock.Advance(6 * time.Second)
	w.Refresh()
	s.Equal(drop.StatusLive, w.View().Snapshot().Status)

	s.clock.Advance(10 * time.Second)
	w.Refresh()
	state := w.View().Snapshot()
	s.Equal(drop.StatusEnded, state.Status)
	s.Equal("Drop Ended", state.BadgeLabel)
	s.True(state.NotifyVisible)
}

func TestWidgetTestSuite(t *testing.T) {
	suite.Run(t, new(WidgetTestSuite))
}
