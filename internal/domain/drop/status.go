// internal/domain/drop/status.go
package drop

// Status is the derived state of a drop relative to the current instant.
type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusLive     Status = "LIVE"
	StatusEnded    Status = "ENDED"
)

// BadgeLabel returns the human-facing badge text for a status.
func (s Status) BadgeLabel() string {
	switch s {
	case StatusUpcoming:
		return "Coming Soon"
	case StatusLive:
		return "Drop Live"
	case StatusEnded:
		return "Drop Ended"
	default:
		return string(s)
	}
}

// ActionEnabled reports whether the primary action (buy) is available.
func (s Status) ActionEnabled() bool {
	return s == StatusLive
}

// ActionLabel returns the primary action control text. The control is
// only clickable while the drop is live.
func (s Status) ActionLabel() string {
	switch s {
	case StatusUpcoming:
		return "Coming Soon"
	case StatusEnded:
		return "Sold Out"
	default:
		return "Buy Now"
	}
}

// NotifyVisible reports whether the notify-signup affordance should be
// offered. It is hidden while the drop is live.
func (s Status) NotifyVisible() bool {
	return s != StatusLive
}
