// internal/app/notify_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"drop_notification_bot/internal/domain/subscription"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the notify flow
var ErrEmailRequired = fmt.Errorf("email is required")
var ErrUnknownDrop = fmt.Errorf("no widget attached for this drop")
var ErrDropIsLive = fmt.Errorf("drop is live, notify signup is not offered")
var ErrAlreadySubscribed = fmt.Errorf("signup already confirmed for this drop")
var ErrSubmitInFlight = fmt.Errorf("a signup submission is already in flight")

// NotifyService runs the notify-me signup flow for drops that are not
// yet (or no longer) live. A transport failure is recoverable: the
// trigger is restored and the user may retry. A success is terminal for
// the widget instance.
type NotifyService struct {
	widgets *WidgetService
	client  subscription.Client
	logger  *logrus.Entry
	// guard is the hard upper bound on the busy indicator. When it fires
	// the indicator is restored whether or not the submission returned;
	// the submission itself is never cancelled.
	guard time.Duration
}

func NewNotifyService(widgets *WidgetService, client subscription.Client, logger *logrus.Entry, guard time.Duration) *NotifyService {
	return &NotifyService{
		widgets: widgets,
		client:  client,
		logger:  logger,
		guard:   guard,
	}
}

// Subscribe submits an email for the given drop. The email must be
// non-empty; no format validation is applied beyond that.
func (s *NotifyService) Subscribe(ctx context.Context, slug, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}

	w := s.widgets.Get(slug)
	if w == nil {
		return ErrUnknownDrop
	}

	view := w.View()
	if err := view.BeginSubmit(); err != nil {
		return err
	}

	logCtx := s.logger.WithFields(logrus.Fields{
		"drop_slug": slug,
		"email":     email,
	})

	guardTimer := time.AfterFunc(s.guard, func() {
		view.RestoreTrigger()
		logCtx.Warn("Notify busy indicator force-cleared by safety valve")
	})
	defer guardTimer.Stop()

	if err := s.client.Subscribe(ctx, email); err != nil {
		view.RestoreTrigger()
		logCtx.WithError(err).Warn("Notify signup submission failed")
		return fmt.Errorf("notify signup failed: %w", err)
	}

	view.MarkSubmitted()
	logCtx.Info("Notify signup confirmed")
	return nil
}
