// internal/app/view.go
package app

import (
	"fmt"
	"sync"

	"drop_notification_bot/internal/domain/drop"
)

const defaultTriggerLabel = "Notify Me"
const busyTriggerLabel = "Submitting..."

// ViewState is a snapshot of everything a drop widget presents: the
// four countdown fields, the status badge, the primary action control
// and the notify-signup affordance.
type ViewState struct {
	Slug string
	Name string

	Status      drop.Status
	BadgeLabel  string
	ActionLabel string
	// ActionEnabled is true only while the drop is live.
	ActionEnabled bool

	// Rendered countdown fields, zero-padded per Pad2.
	Days    string
	Hours   string
	Minutes string
	Seconds string

	// Notify-signup affordance. SuccessVisible is terminal: once a signup
	// succeeds the form never comes back for this widget instance.
	NotifyVisible  bool
	NotifyBusy     bool
	SuccessVisible bool
	TriggerLabel   string
}

// View holds the mutable presentation state of one widget. All mutations
// go through it; a countdown field is only rewritten when its text
// actually changed.
type View struct {
	mu     sync.Mutex
	state  ViewState
	writes int
}

func NewView(slug, name string) *View {
	return &View{state: ViewState{
		Slug:         slug,
		Name:         name,
		Days:         "00",
		Hours:        "00",
		Minutes:      "00",
		Seconds:      "00",
		TriggerLabel: defaultTriggerLabel,
	}}
}

// Snapshot returns a copy of the current presentation state.
func (v *View) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// WriteCount reports how many individual field mutations have been
// applied, countdown digits included.
func (v *View) WriteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.writes
}

// Refresh re-applies the status-dependent presentation: badge, primary
// action and notify affordance. A terminal signup success keeps the form
// hidden whatever the status says.
func (v *View) Refresh(s drop.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Status = s
	v.state.BadgeLabel = s.BadgeLabel()
	v.state.ActionLabel = s.ActionLabel()
	v.state.ActionEnabled = s.ActionEnabled()
	v.state.NotifyVisible = s.NotifyVisible() && !v.state.SuccessVisible
	v.writes++
}

// SetRemaining renders a decomposed countdown, mutating only the fields
// whose displayed text changed.
func (v *View) SetRemaining(r drop.Remaining) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setField(&v.state.Days, drop.Pad2(r.Days))
	v.setField(&v.state.Hours, drop.Pad2(r.Hours))
	v.setField(&v.state.Minutes, drop.Pad2(r.Minutes))
	v.setField(&v.state.Seconds, drop.Pad2(r.Seconds))
}

// ZeroDigits forces all four countdown fields to "00".
func (v *View) ZeroDigits() {
	v.SetRemaining(drop.Remaining{})
}

func (v *View) setField(field *string, text string) {
	if *field != text {
		*field = text
		v.writes++
	}
}

// Countdown renders the four fields as DD:HH:MM:SS.
func (s ViewState) Countdown() string {
	return fmt.Sprintf("%s:%s:%s:%s", s.Days, s.Hours, s.Minutes, s.Seconds)
}

// BeginSubmit moves the notify form into its in-flight presentation:
// trigger disabled, busy label shown. It reports why a submission may
// not start: the form is hidden while live, gone after a success, and a
// second submission is rejected while one is in flight.
func (v *View) BeginSubmit() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.SuccessVisible {
		return ErrAlreadySubscribed
	}
	if !v.state.NotifyVisible {
		return ErrDropIsLive
	}
	if v.state.NotifyBusy {
		return ErrSubmitInFlight
	}
	v.state.NotifyBusy = true
	v.state.TriggerLabel = busyTriggerLabel
	v.writes++
	return nil
}

// RestoreTrigger re-enables the trigger with its original label after a
// failed submission. The form stays visible so the user can retry.
func (v *View) RestoreTrigger() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.state.NotifyBusy {
		return
	}
	v.state.NotifyBusy = false
	v.state.TriggerLabel = defaultTriggerLabel
	v.writes++
}

// MarkSubmitted hides the form and shows the success panel. This is
// terminal for the widget instance.
func (v *View) MarkSubmitted() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.NotifyBusy = false
	v.state.NotifyVisible = false
	v.state.SuccessVisible = true
	v.state.TriggerLabel = defaultTriggerLabel
	v.writes++
}
