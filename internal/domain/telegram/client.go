package telegram

import "gopkg.in/telebot.v3"

// Client is the outbound messaging seam. Announcements and replies go
// through it so application code does not depend on the bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
