// internal/infra/telegram/drop_handlers.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"drop_notification_bot/internal/app"
	"drop_notification_bot/internal/domain/drop"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterDropHandlers registers the user-facing drop commands.
func RegisterDropHandlers(
	ctx context.Context,
	b *telebot.Bot,
	widgetService *app.WidgetService,
	notifyService *app.NotifyService,
	baseLogger *logrus.Entry,
) {
	dropLogger := baseLogger.WithField("handler_group", "drops")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := dropLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")
		return c.Send(fmt.Sprintf("Hi, %s! I track upcoming product drops. Use /drops to see what's on the calendar, or /help for all commands.", c.Sender().FirstName))
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := dropLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /help command")
		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/drops`\n - List the drops currently on the calendar.\n\n")
		helpText.WriteString("`/status <slug>`\n - Show a drop's current status.\n\n")
		helpText.WriteString("`/countdown <slug>`\n - Show the time remaining until the drop starts or ends.\n\n")
		helpText.WriteString("`/notify <slug> <email>`\n - Get an email when a drop that isn't live yet becomes available.\n\n")
		helpText.WriteString("`/help`\n - Show this help message.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/drops", func(c telebot.Context) error {
		logCtx := dropLogger.WithField("command", "/drops").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /drops command")

		widgets := widgetService.List()
		if len(widgets) == 0 {
			return c.Send("No drops on the calendar right now.")
		}

		var sb strings.Builder
		sb.WriteString("Drops on the calendar:\n\n")
		for _, w := range widgets {
			state := w.View().Snapshot()
			sb.WriteString(fmt.Sprintf("• %s (`%s`) — %s\n", state.Name, state.Slug, state.BadgeLabel))
		}
		return c.Send(sb.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := dropLogger.WithField("command", "/status").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /status command")

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /status <slug>")
		}

		w := widgetService.Get(strings.ToLower(args[0]))
		if w == nil {
			logCtx.WithField("drop_slug", args[0]).Info("Unknown drop requested")
			return c.Send(fmt.Sprintf("Unknown drop: %s. Use /drops to see what's available.", args[0]))
		}

		state := w.View().Snapshot()
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s — %s\n", state.Name, state.BadgeLabel))
		if state.ActionEnabled {
			sb.WriteString(fmt.Sprintf("Action: %s\n", state.ActionLabel))
		} else {
			sb.WriteString(fmt.Sprintf("Action: %s (unavailable)\n", state.ActionLabel))
		}
		if state.SuccessVisible {
			sb.WriteString("You're on the list! We'll let you know.")
		} else if state.NotifyVisible {
			sb.WriteString(fmt.Sprintf("Want an email when things change? /notify %s <email>", state.Slug))
		}
		return c.Send(sb.String())
	})

	b.Handle("/countdown", func(c telebot.Context) error {
		logCtx := dropLogger.WithField("command", "/countdown").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /countdown command")

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /countdown <slug>")
		}

		w := widgetService.Get(strings.ToLower(args[0]))
		if w == nil {
			logCtx.WithField("drop_slug", args[0]).Info("Unknown drop requested")
			return c.Send(fmt.Sprintf("Unknown drop: %s. Use /drops to see what's available.", args[0]))
		}

		state := w.View().Snapshot()
		switch {
		case state.Status == drop.StatusUpcoming:
			return c.Send(fmt.Sprintf("%s starts in %s (days:hours:minutes:seconds)", state.Name, state.Countdown()))
		case state.Status == drop.StatusLive && state.Countdown() != "00:00:00:00":
			return c.Send(fmt.Sprintf("%s ends in %s (days:hours:minutes:seconds)", state.Name, state.Countdown()))
		case state.Status == drop.StatusLive:
			return c.Send(fmt.Sprintf("%s is live with no end scheduled.", state.Name))
		default:
			return c.Send(fmt.Sprintf("%s has ended.", state.Name))
		}
	})

	b.Handle("/notify", func(c telebot.Context) error {
		logCtx := dropLogger.WithField("command", "/notify").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /notify command")

		args := c.Args()
		if len(args) != 2 {
			return c.Send("Usage: /notify <slug> <email>")
		}
		slug := strings.ToLower(args[0])
		email := args[1]

		err := notifyService.Subscribe(ctx, slug, email)
		if err != nil {
			logWithError := logCtx.WithError(err).WithField("drop_slug", slug)
			switch err {
			case app.ErrEmailRequired:
				logWithError.Info("Empty email rejected")
				return c.Send("Please provide an email address.")
			case app.ErrUnknownDrop:
				logWithError.Info("Unknown drop for notify signup")
				return c.Send(fmt.Sprintf("Unknown drop: %s. Use /drops to see what's available.", slug))
			case app.ErrDropIsLive:
				logWithError.Info("Notify signup rejected, drop is live")
				return c.Send("That drop is live right now, no need for a reminder. Go get it!")
			case app.ErrAlreadySubscribed:
				logWithError.Info("Notify signup already confirmed")
				return c.Send("You're already on the list for this drop.")
			case app.ErrSubmitInFlight:
				logWithError.Info("Notify signup already in flight")
				return c.Send("Hold on, a signup for this drop is already being submitted.")
			default:
				logWithError.Warn("Notify signup failed")
				return c.Send("Signing up didn't work this time. Please try again in a moment.")
			}
		}

		logCtx.WithField("drop_slug", slug).Info("Notify signup succeeded")
		return c.Send("You're on the list! We'll email you when the drop goes live.")
	})
}
