// internal/infra/telegram/announcer.go
package telegram

import (
	"fmt"

	"drop_notification_bot/internal/domain/drop"
	domainTelegram "drop_notification_bot/internal/domain/telegram"
	"drop_notification_bot/internal/infra/bus"

	"github.com/sirupsen/logrus"
)

// Announcer is a status bus listener that posts boundary crossings to a
// configured chat. It is a second, independent consumer of the same
// events the widgets refresh on.
type Announcer struct {
	client domainTelegram.Client
	chatID int64
	logger *logrus.Entry
}

func NewAnnouncer(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *Announcer {
	return &Announcer{
		client: client,
		chatID: chatID,
		logger: logger,
	}
}

// Register subscribes the announcer and returns its subscription id.
func (a *Announcer) Register(statusBus *bus.StatusBus) int {
	return statusBus.Subscribe(a.announce)
}

func (a *Announcer) announce(ev drop.StatusChange) {
	var text string
	switch ev.Status {
	case drop.StatusLive:
		text = fmt.Sprintf("🔥 Drop \"%s\" is now live!", ev.Slug)
	case drop.StatusEnded:
		text = fmt.Sprintf("Drop \"%s\" has ended.", ev.Slug)
	default:
		return
	}

	if err := a.client.SendMessage(a.chatID, text, nil); err != nil {
		a.logger.WithError(err).WithField("drop_slug", ev.Slug).Error("Failed to send drop announcement")
		return
	}
	a.logger.WithFields(logrus.Fields{
		"drop_slug": ev.Slug,
		"status":    ev.Status,
	}).Info("Drop announcement sent")
}
