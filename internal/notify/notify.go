// Package notify delivers reminder notifications to the user.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Importance mirrors the urgency levels a notification channel can have.
type Importance int

const (
	ImportanceDefault Importance = iota
	ImportanceHigh
)

// Channel groups notifications of one kind under a fixed identifier.
type Channel struct {
	ID          string
	Name        string
	Description string
	Importance  Importance
}

// RemindersChannel is the only channel reminders are delivered on.
var RemindersChannel = Channel{
	ID:          "reminders_channel",
	Name:        "Reminders",
	Description: "Channel for reminders",
	Importance:  ImportanceHigh,
}

// Notification is a single message shown to the user. Link is what following the
// notification opens; it may be empty.
type Notification struct {
	Channel    Channel
	Title      string
	Message    string
	Link       string
	AutoCancel bool
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Render formats n as plain text for message-based channels.
func Render(n Notification) string {
	var sb strings.Builder
	if n.Title != "" {
		sb.WriteString(n.Title)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Message)
	if n.Link != "" && n.Link != strings.TrimSpace(n.Message) {
		sb.WriteString("\n")
		sb.WriteString(n.Link)
	}
	return sb.String()
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify writes the rendered notification to the log.
func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	l.logger.Printf("notify[%s]: %s", n.Channel.ID, strings.ReplaceAll(Render(n), "\n", " "))
	return nil
}

// Multi fans a notification out to every notifier.
type Multi []Notifier

// Notify sends n to every notifier and joins their errors.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", notifier, err))
		}
	}
	return errors.Join(errs...)
}
