package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

type fakeWhatsApp struct {
	to, body string
	err      error
}

func (f *fakeWhatsApp) SendWhatsAppMessage(to, body string) error {
	f.to, f.body = to, body
	return f.err
}

type fakeTelegram struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func sample() Notification {
	return Notification{
		Channel:    RemindersChannel,
		Title:      "Go Blog",
		Message:    "read https://go.dev/blog later",
		Link:       "https://go.dev/blog",
		AutoCancel: true,
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	if got, want := Render(sample()), "Go Blog: read https://go.dev/blog later\nhttps://go.dev/blog"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	onlyLink := Notification{Title: "Reminder", Message: "https://go.dev", Link: "https://go.dev"}
	if got := Render(onlyLink); got != "Reminder: https://go.dev" {
		t.Fatalf("link equal to message should not repeat: %q", got)
	}
}

func TestRemindersChannel(t *testing.T) {
	t.Parallel()
	if RemindersChannel.ID != "reminders_channel" || RemindersChannel.Importance != ImportanceHigh {
		t.Fatalf("unexpected channel %+v", RemindersChannel)
	}
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := NewLogNotifier(log.New(&buf, "", 0))

	if err := n.Notify(context.Background(), sample()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if !strings.Contains(buf.String(), "notify[reminders_channel]: Go Blog: read") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestWhatsAppNotifier(t *testing.T) {
	t.Parallel()
	sender := &fakeWhatsApp{}

	if err := NewWhatsApp(sender, "+15550001").Notify(context.Background(), sample()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if sender.to != "+15550001" || !strings.HasPrefix(sender.body, "Go Blog:") {
		t.Fatalf("unexpected send to=%q body=%q", sender.to, sender.body)
	}

	if err := NewWhatsApp(sender, "").Notify(context.Background(), sample()); err == nil {
		t.Fatalf("expected error without recipient")
	}
}

func TestTelegramNotifier(t *testing.T) {
	t.Parallel()
	bot := &fakeTelegram{}

	if err := NewTelegramWithSender(bot, 42).Notify(context.Background(), sample()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(bot.sent))
	}
	if bot.sent[0].ChatID != 42 || !strings.Contains(bot.sent[0].Text, "go.dev/blog") {
		t.Fatalf("unexpected message %+v", bot.sent[0])
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	ok := &fakeWhatsApp{}
	failing := &fakeWhatsApp{err: boom}

	err := Multi{NewWhatsApp(ok, "+1"), NewWhatsApp(failing, "+2")}.Notify(context.Background(), sample())
	if !errors.Is(err, boom) {
		t.Fatalf("Multi error = %v, want wrapped boom", err)
	}
	if ok.body == "" {
		t.Fatalf("a failing notifier must not stop the others")
	}
}
