// Package reminder ties the stored list, the deferred work scheduler and notifications together.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pathakanu/linkLater/internal/linkpreview"
	"github.com/pathakanu/linkLater/internal/model"
	"github.com/pathakanu/linkLater/internal/notify"
	"github.com/pathakanu/linkLater/internal/store"
	"github.com/pathakanu/linkLater/internal/worker"
)

// DefaultTitle is used when a notification carries no better title.
const DefaultTitle = "Reminder"

// Input data keys handed to the notification worker.
const (
	KeyTitle   = "title"
	KeyMessage = "message"
)

var (
	// ErrEmptyText is returned when a reminder has no text.
	ErrEmptyText = errors.New("reminder text is required")
	// ErrNoTime is returned when a reminder has no trigger time.
	ErrNoTime = errors.New("reminder time is required")
)

// ListStore is the persisted reminder list.
type ListStore interface {
	List(ctx context.Context) ([]model.Reminder, error)
	Append(ctx context.Context, r model.Reminder) error
	RemoveText(ctx context.Context, text string, policy store.RemovalPolicy) (int, error)
}

// Scheduler enqueues deferred one-shot work.
type Scheduler interface {
	Enqueue(req worker.OneTimeRequest) uuid.UUID
}

// Titler produces a notification title for reminder text.
type Titler interface {
	Title(ctx context.Context, text string) (string, error)
}

// Service creates reminders and delivers them when their time comes.
type Service struct {
	store     ListStore
	scheduler Scheduler
	notifier  notify.Notifier
	titler    Titler
	policy    store.RemovalPolicy
	logger    *log.Logger
	now       func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithTitler enriches notification titles.
func WithTitler(t Titler) Option {
	return func(s *Service) { s.titler = t }
}

// WithRemovalPolicy sets how fired reminders are removed when texts repeat.
func WithRemovalPolicy(p store.RemovalPolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service.
func New(st ListStore, scheduler Scheduler, notifier notify.Notifier, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{
		store:     st,
		scheduler: scheduler,
		notifier:  notifier,
		policy:    store.RemoveFirst,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// List returns the stored reminders.
func (s *Service) List(ctx context.Context) ([]model.Reminder, error) {
	return s.store.List(ctx)
}

// Add stores a reminder for text at the given time and schedules its notification.
// Storing and scheduling are independent; a storage failure does not cancel the notification.
func (s *Service) Add(ctx context.Context, text string, at time.Time) (model.Reminder, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Reminder{}, ErrEmptyText
	}
	if at.IsZero() {
		return model.Reminder{}, ErrNoTime
	}

	reminder := model.Reminder{Text: text, Time: at}
	storeErr := s.store.Append(ctx, reminder)
	if storeErr != nil {
		s.logger.Printf("reminder: append %q: %v", text, storeErr)
	}

	// Delay is computed in whole seconds.
	delay := at.Sub(s.now()).Truncate(time.Second)
	id := s.ScheduleNotification(delay, DefaultTitle, text)
	s.logger.Printf("reminder: %q scheduled for %s (request %s)", text, at.Format(time.RFC3339), id)

	if storeErr != nil {
		return reminder, fmt.Errorf("store reminder: %w", storeErr)
	}
	return reminder, nil
}

// ScheduleNotification enqueues a notification that is delivered after delay.
func (s *Service) ScheduleNotification(delay time.Duration, title, message string) uuid.UUID {
	input := worker.Data{KeyTitle: title, KeyMessage: message}
	return s.scheduler.Enqueue(worker.NewOneTimeRequest(worker.WorkerFunc(s.deliver), delay, input))
}

// SendDirect shows a notification now, without scheduling or touching the stored list.
func (s *Service) SendDirect(ctx context.Context, title, message string) error {
	return s.notifier.Notify(ctx, notify.Notification{
		Channel: notify.RemindersChannel,
		Title:   fallback(title, DefaultTitle),
		Message: message,
	})
}

// deliver is the notification worker: notify, then drop the reminder from the stored list.
func (s *Service) deliver(ctx context.Context, input worker.Data) worker.Result {
	message, ok := input.Get(KeyMessage)
	if !ok {
		s.logger.Printf("reminder: work input has no %q, giving up", KeyMessage)
		return worker.Failure
	}
	title, _ := input.Get(KeyTitle)
	title = fallback(title, DefaultTitle)

	link := linkpreview.LinkFor(message)
	n := notify.Notification{
		Channel:    notify.RemindersChannel,
		Title:      s.enrichTitle(ctx, title, message),
		Message:    message,
		Link:       link,
		AutoCancel: true,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Printf("reminder: notify %q: %v", message, err)
	}

	removed, err := s.store.RemoveText(ctx, message, s.policy)
	if err != nil {
		s.logger.Printf("reminder: remove %q: %v", message, err)
		return worker.Success
	}
	if removed == 0 {
		s.logger.Printf("reminder: %q was no longer in the stored list", message)
	}
	return worker.Success
}

func (s *Service) enrichTitle(ctx context.Context, title, message string) string {
	if s.titler == nil || title != DefaultTitle {
		return title
	}
	enriched, err := s.titler.Title(ctx, message)
	if err != nil {
		s.logger.Printf("reminder: title for %q: %v", message, err)
		return title
	}
	return fallback(enriched, title)
}

func fallback(primary, secondary string) string {
	if strings.TrimSpace(primary) == "" {
		return secondary
	}
	return primary
}
