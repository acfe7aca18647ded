// Package store persists the reminder list as a single JSON blob in the preference store.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/pathakanu/linkLater/internal/model"
	"github.com/pathakanu/linkLater/internal/prefs"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ListKey is the preference key holding the serialized reminder list.
const ListKey = "saved_list"

// RemovalPolicy decides what happens when several stored reminders share the fired text.
type RemovalPolicy int

const (
	// RemoveFirst deletes only the earliest matching entry.
	RemoveFirst RemovalPolicy = iota
	// RemoveAll deletes every matching entry.
	RemoveAll
)

// ParseRemovalPolicy maps "first" and "all" to a policy. Anything else is RemoveFirst.
func ParseRemovalPolicy(value string) RemovalPolicy {
	if value == "all" {
		return RemoveAll
	}
	return RemoveFirst
}

// ListStore reads and rewrites the whole reminder list on every operation.
// Read-modify-write cycles are not serialized; the last writer wins.
type ListStore struct {
	prefs  prefs.Store
	logger *log.Logger

	mu          sync.Mutex
	subscribers map[int]chan struct{}
	nextSub     int
}

// New creates a ListStore on top of p.
func New(p prefs.Store, logger *log.Logger) *ListStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ListStore{
		prefs:       p,
		logger:      logger,
		subscribers: make(map[int]chan struct{}),
	}
}

// List returns the stored reminders. Missing or unreadable data is an empty list.
func (s *ListStore) List(ctx context.Context) ([]model.Reminder, error) {
	blob, err := s.blob(ctx)
	if err != nil {
		return nil, err
	}
	return decode(blob), nil
}

// Save replaces the stored list with reminders.
func (s *ListStore) Save(ctx context.Context, reminders []model.Reminder) error {
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	data, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("encode reminder list: %w", err)
	}
	return s.write(ctx, string(data))
}

// Append adds reminder to the end of the stored list.
func (s *ListStore) Append(ctx context.Context, reminder model.Reminder) error {
	blob, err := s.blob(ctx)
	if err != nil {
		return err
	}
	updated, err := sjson.Set(blob, "-1", reminder)
	if err != nil {
		return fmt.Errorf("append reminder: %w", err)
	}
	return s.write(ctx, updated)
}

// RemoveText deletes entries whose text equals text exactly and reports how many were removed.
// Nothing is written when no entry matches.
func (s *ListStore) RemoveText(ctx context.Context, text string, policy RemovalPolicy) (int, error) {
	blob, err := s.blob(ctx)
	if err != nil {
		return 0, err
	}

	var matches []int
	index := 0
	gjson.Parse(blob).ForEach(func(_, value gjson.Result) bool {
		if entryText(value) == text {
			matches = append(matches, index)
			if policy == RemoveFirst {
				return false
			}
		}
		index++
		return true
	})
	if len(matches) == 0 {
		return 0, nil
	}

	// Delete back to front so earlier indices stay valid.
	for i := len(matches) - 1; i >= 0; i-- {
		blob, err = sjson.Delete(blob, strconv.Itoa(matches[i]))
		if err != nil {
			return 0, fmt.Errorf("remove reminder %d: %w", matches[i], err)
		}
	}
	if err := s.write(ctx, blob); err != nil {
		return 0, err
	}
	return len(matches), nil
}

// Subscribe returns a channel signalled after every successful write, and a function
// that stops the subscription. Signals coalesce; a slow reader sees at least one.
func (s *ListStore) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// blob returns the stored JSON array, or "[]" when there is nothing usable.
func (s *ListStore) blob(ctx context.Context) (string, error) {
	value, found, err := s.prefs.Get(ctx, ListKey)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", ListKey, err)
	}
	if !found || !gjson.Valid(value) || !gjson.Parse(value).IsArray() {
		if found && value != "" {
			s.logger.Printf("store: discarding unreadable %s value (%d bytes)", ListKey, len(value))
		}
		return "[]", nil
	}
	return value, nil
}

func (s *ListStore) write(ctx context.Context, blob string) error {
	if err := s.prefs.Set(ctx, ListKey, blob); err != nil {
		return fmt.Errorf("write %s: %w", ListKey, err)
	}
	s.notify()
	return nil
}

func (s *ListStore) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func decode(blob string) []model.Reminder {
	reminders := []model.Reminder{}
	gjson.Parse(blob).ForEach(func(_, value gjson.Result) bool {
		reminder := model.Reminder{Text: entryText(value)}
		if value.IsObject() {
			if at, err := time.Parse(time.RFC3339Nano, value.Get("time").String()); err == nil {
				reminder.Time = at
			}
		}
		reminders = append(reminders, reminder)
		return true
	})
	return reminders
}

// entryText supports both the legacy form (bare strings) and {"text","time"} objects.
func entryText(value gjson.Result) string {
	if value.IsObject() {
		return value.Get("text").String()
	}
	return value.String()
}
