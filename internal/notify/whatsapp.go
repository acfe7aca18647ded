package notify

import (
	"context"
	"errors"
)

// WhatsAppSender is satisfied by the Twilio client.
type WhatsAppSender interface {
	SendWhatsAppMessage(to, body string) error
}

// WhatsApp delivers notifications as WhatsApp messages to a fixed recipient.
type WhatsApp struct {
	sender WhatsAppSender
	to     string
}

// NewWhatsApp creates a WhatsApp notifier for recipient to.
func NewWhatsApp(sender WhatsAppSender, to string) *WhatsApp {
	return &WhatsApp{sender: sender, to: to}
}

// Notify sends the rendered notification to the configured recipient.
func (w *WhatsApp) Notify(ctx context.Context, n Notification) error {
	if w.to == "" {
		return errors.New("whatsapp recipient not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.sender.SendWhatsAppMessage(w.to, Render(n))
}
