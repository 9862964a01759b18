// internal/app/widget.go
package app

import (
	"sync"
	"time"

	"drop_notification_bot/internal/domain/drop"
	"drop_notification_bot/internal/infra/bus"
	"drop_notification_bot/internal/infra/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Widget is the live view of a single drop: a once-per-second countdown
// toward the next boundary plus the status-dependent presentation state.
// When a tick observes that a boundary was crossed it publishes exactly
// one StatusChange on the bus carrying the status the drop transitioned
// into.
type Widget struct {
	InstanceID string
	DropID     int64
	Slug       string

	window drop.Window
	clock  clock.Clock
	bus    *bus.StatusBus
	logger *logrus.Entry
	view   *View

	mu      sync.Mutex
	status  drop.Status
	halted  bool // countdown permanently stopped (ended, or no target to run toward)
	stopped bool
	stopCh  chan struct{}
}

func NewWidget(d *drop.Drop, clk clock.Clock, statusBus *bus.StatusBus, baseLogger *logrus.Entry) *Widget {
	instanceID := uuid.New().String()
	return &Widget{
		InstanceID: instanceID,
		DropID:     d.ID,
		Slug:       d.Slug,
		window:     d.Window(),
		clock:      clk,
		bus:        statusBus,
		logger: baseLogger.WithFields(logrus.Fields{
			"widget_instance": instanceID,
			"drop_slug":       d.Slug,
		}),
		view: NewView(d.Slug, d.Name),
	}
}

// View exposes the widget's presentation state.
func (w *Widget) View() *View {
	return w.view
}

// Attach computes the initial status, renders it, and starts the
// recurring tick. A widget that is already ended, or that has no target
// instant to count toward, goes straight to the ended presentation and
// never ticks.
func (w *Widget) Attach() {
	w.mu.Lock()
	now := w.clock.Now()
	w.status = w.window.StatusOf(now)
	w.view.Refresh(w.status)

	target := w.window.Target(w.status)
	if w.status == drop.StatusEnded || target == nil {
		w.haltLocked()
		w.mu.Unlock()
		w.logger.WithField("status", w.status).Info("Widget attached without countdown")
		return
	}

	w.view.SetRemaining(drop.RemainingIn(target.Sub(now)))
	w.stopCh = make(chan struct{})
	go w.run(w.stopCh)
	w.mu.Unlock()
	w.logger.WithField("status", w.status).Info("Widget attached, countdown running")
}

func (w *Widget) run(stop <-chan struct{}) {
	// Best-effort 1-second cadence; ticks may slip under load.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}

// Tick recomputes the status and the remaining time. It is safe to call
// after the countdown halted; such calls leave the presentation as-is.
func (w *Widget) Tick() {
	w.mu.Lock()
	if w.halted {
		w.mu.Unlock()
		return
	}

	now := w.clock.Now()
	st := w.window.StatusOf(now)

	var event *drop.StatusChange
	if st != w.status {
		w.status = st
		event = &drop.StatusChange{DropID: w.DropID, Slug: w.Slug, Status: st}
	}

	if st == drop.StatusEnded {
		w.haltLocked()
		w.mu.Unlock()
		w.publish(event)
		return
	}

	target := w.window.Target(st)
	if target == nil {
		// Live with no end configured: nothing left to count toward.
		w.haltLocked()
		w.mu.Unlock()
		w.publish(event)
		return
	}

	// On the tick that crossed a boundary no remaining time is rendered;
	// the next tick re-evaluates against the new target.
	if event == nil {
		w.view.SetRemaining(drop.RemainingIn(target.Sub(now)))
	}
	w.mu.Unlock()
	w.publish(event)
}

func (w *Widget) publish(event *drop.StatusChange) {
	if event == nil {
		return
	}
	w.logger.WithField("status", event.Status).Info("Drop status boundary crossed")
	w.bus.Publish(*event)
}

// haltLocked zeroes the countdown and cancels the recurring tick.
// Callers hold w.mu.
func (w *Widget) haltLocked() {
	w.halted = true
	w.view.ZeroDigits()
	w.stopLocked()
}

func (w *Widget) stopLocked() {
	if w.stopped {
		return
	}
	w.stopped = true
	if w.stopCh != nil {
		close(w.stopCh)
	}
}

// Detach cancels the recurring tick. It is idempotent and safe to call
// on a widget whose countdown already stopped on its own.
func (w *Widget) Detach() {
	w.mu.Lock()
	w.stopLocked()
	w.mu.Unlock()
	w.logger.Info("Widget detached")
}

// Refresh recomputes the status from the current instant and re-applies
// the status-dependent presentation. It runs on every bus event, whoever
// published it; the widget does not trust the event payload for its own
// state.
func (w *Widget) Refresh() {
	w.view.Refresh(w.window.StatusOf(w.clock.Now()))
}
