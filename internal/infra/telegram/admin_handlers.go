package telegram

import (
	"context"
	"fmt"
	"strings"

	"drop_notification_bot/internal/app"
	idb "drop_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, the services, and the configured admin Telegram ID.
func RegisterAdminHandlers(
	ctx context.Context,
	b *telebot.Bot,
	adminService *app.AdminService,
	widgetService *app.WidgetService,
	adminTelegramID int64,
	baseLogger *logrus.Entry,
) {
	b.Handle("/add_drop", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/add_drop",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to run this command.")
		}

		args := c.Args()
		// Expected format: /add_drop <slug> <name> [start] [end]
		if len(args) < 2 || len(args) > 4 {
			handlerLogger.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send("Invalid format. Use: /add_drop <slug> <name> [start RFC3339] [end RFC3339]")
		}

		slug := args[0]
		name := args[1]
		var startRaw, endRaw string
		if len(args) >= 3 {
			startRaw = args[2]
		}
		if len(args) == 4 {
			endRaw = args[3]
		}

		handlerLogger = handlerLogger.WithFields(logrus.Fields{
			"drop_slug": slug,
			"start_raw": startRaw,
			"end_raw":   endRaw,
		})

		newDrop, parseRes, err := adminService.AddDrop(ctx, c.Sender().ID, slug, name, startRaw, endRaw)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrAdminNotAuthorized: // Redundant given the sender check, kept as a service-level safety net
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send("Error: you are not allowed to run this command.")
			case app.ErrDropAlreadyExists:
				logWithError.Warn("Drop already exists")
				return c.Send(fmt.Sprintf("Error: a drop with slug %q already exists.", slug))
			default:
				logWithError.Error("Failed to add drop")
				return c.Send(fmt.Sprintf("Something went wrong while adding the drop: %s", err.Error()))
			}
		}

		handlerLogger.WithField("new_drop_id", newDrop.ID).Info("Drop added successfully")

		// A bad timestamp silently becomes an open boundary; tell the admin
		// so a typo'd date doesn't masquerade as an always-open drop.
		var warnings []string
		if parseRes.BadStart != "" {
			handlerLogger.WithField("bad_start", parseRes.BadStart).Warn("Unparseable start timestamp degraded to absent")
			warnings = append(warnings, fmt.Sprintf("start %q could not be parsed and was ignored", parseRes.BadStart))
		}
		if parseRes.BadEnd != "" {
			handlerLogger.WithField("bad_end", parseRes.BadEnd).Warn("Unparseable end timestamp degraded to absent")
			warnings = append(warnings, fmt.Sprintf("end %q could not be parsed and was ignored", parseRes.BadEnd))
		}

		// Attach the widget right away rather than waiting for the next sync.
		widgetService.Attach(newDrop)

		successMsg := fmt.Sprintf("Drop %q (%s) added.", newDrop.Name, newDrop.Slug)
		if len(warnings) > 0 {
			successMsg += " Warning: " + strings.Join(warnings, "; ") + "."
		}
		return c.Send(successMsg)
	})

	b.Handle("/remove_drop", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/remove_drop",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to run this command.")
		}

		args := c.Args()
		// Expected format: /remove_drop <slug>
		if len(args) != 1 {
			handlerLogger.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send("Invalid format. Use: /remove_drop <slug>")
		}
		slug := args[0]
		handlerLogger = handlerLogger.WithField("drop_slug", slug)

		removedDrop, err := adminService.RemoveDrop(ctx, c.Sender().ID, slug)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrAdminNotAuthorized:
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send("Error: you are not allowed to run this command.")
			case idb.ErrDropNotFound:
				logWithError.Warn("Drop not found")
				return c.Send(fmt.Sprintf("Error: no drop with slug %q.", slug))
			case app.ErrDropAlreadyInactive:
				logWithError.Warn("Drop already inactive")
				return c.Send(fmt.Sprintf("Drop %q is already inactive.", slug))
			default:
				logWithError.Error("Failed to remove drop")
				return c.Send(fmt.Sprintf("Something went wrong while removing the drop: %s", err.Error()))
			}
		}

		// Dispose the widget right away rather than waiting for the next sync.
		widgetService.Detach(removedDrop.ID)

		handlerLogger.Info("Drop deactivated successfully")
		return c.Send(fmt.Sprintf("Drop %q (%s) deactivated.", removedDrop.Name, removedDrop.Slug))
	})

	b.Handle("/list_drops", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/list_drops",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to run this command.")
		}

		args := c.Args()
		includeInactive := false
		if len(args) == 1 && strings.EqualFold(args[0], "all") {
			includeInactive = true
		}

		drops, err := adminService.ListDrops(ctx, c.Sender().ID, includeInactive)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to list drops")
			return c.Send(fmt.Sprintf("Something went wrong while listing drops: %s", err.Error()))
		}
		if len(drops) == 0 {
			return c.Send("No drops found.")
		}

		var sb strings.Builder
		sb.WriteString("Drops:\n\n")
		for _, d := range drops {
			line := fmt.Sprintf("• %s (`%s`)", d.Name, d.Slug)
			if d.StartAt.Valid {
				line += " start " + d.StartAt.Time.Format("2006-01-02 15:04 MST")
			}
			if d.EndAt.Valid {
				line += " end " + d.EndAt.Time.Format("2006-01-02 15:04 MST")
			}
			if !d.IsActive {
				line += " [inactive]"
			}
			sb.WriteString(line + "\n")
		}
		return c.Send(sb.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})
}
