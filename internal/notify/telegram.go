package notify

import (
	"context"
	"fmt"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

// TelegramSender is satisfied by *tgbotapi.BotAPI.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram delivers notifications to one Telegram chat.
type Telegram struct {
	bot    TelegramSender
	chatID int64
}

// NewTelegram connects to the Bot API with token and returns a notifier for chatID.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return NewTelegramWithSender(bot, chatID), nil
}

// NewTelegramWithSender builds a notifier around an existing sender.
func NewTelegramWithSender(bot TelegramSender, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

// Notify sends the rendered notification to the configured chat.
func (t *Telegram) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, Render(n))
	msg.DisableWebPagePreview = n.Link == ""
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
