// Package dialog holds the state behind the add-reminder dialog and its time picker.
package dialog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultDelay is how far ahead a new draft is scheduled before the user picks a time.
const DefaultDelay = time.Hour

var (
	// ErrBadTime is returned when time input cannot be understood.
	ErrBadTime = errors.New("unrecognised time")
	// ErrPastTime is returned by FutureTime for a time at or before now.
	ErrPastTime = errors.New("time has already passed")
)

// Draft is the reminder being composed. Text may come from a share action.
type Draft struct {
	Text string
	Time time.Time
}

// NewDraft starts a draft pre-filled with sharedText and scheduled delay after now.
// A non-positive delay falls back to DefaultDelay.
func NewDraft(sharedText string, now time.Time, delay time.Duration) *Draft {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Draft{Text: sharedText, Time: now.Add(delay)}
}

// CanConfirm reports whether the confirm control is enabled: the text must not be blank.
func (d *Draft) CanConfirm() bool {
	return strings.TrimSpace(d.Text) != ""
}

// Confirm returns the trimmed text and chosen time, or ok=false when confirmation is disabled.
func (d *Draft) Confirm() (text string, at time.Time, ok bool) {
	if !d.CanConfirm() || d.Time.IsZero() {
		return "", time.Time{}, false
	}
	return strings.TrimSpace(d.Text), d.Time, true
}

// TimeButtonLabel is the caption of the time selection control.
func (d *Draft) TimeButtonLabel() string {
	return fmt.Sprintf("Select time (Default: %s)", d.Time.Format("15:04"))
}

// PickTime returns the next occurrence of hour:minute after now. A time at or before
// now's clock time goes off tomorrow.
func PickTime(hour, minute int, now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if GoesOffTomorrow(hour, minute, now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// GoesOffTomorrow reports whether hour:minute has already passed today.
func GoesOffTomorrow(hour, minute int, now time.Time) bool {
	return hour < now.Hour() || (hour == now.Hour() && minute <= now.Minute())
}

var (
	clockRegex    = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
	relativeRegex = regexp.MustCompile(`^in\s+(?:(\d+)|an?)?\s*(minutes?|mins?|m|hours?|hrs?|h|days?|d)$`)
)

// ParseTime turns user input into a trigger time. Accepted forms are "" or "ok" for def,
// a clock time "HH:MM", a relative "in 30 minutes" / "in an hour" / "in 2 days", and RFC 3339.
func ParseTime(input string, now, def time.Time) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	switch value {
	case "", "ok", "okay", "default":
		return def, nil
	}

	if m := clockRegex.FindStringSubmatch(value); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return time.Time{}, fmt.Errorf("%w: %q is not a clock time", ErrBadTime, input)
		}
		return PickTime(hour, minute, now), nil
	}

	if m := relativeRegex.FindStringSubmatch(value); m != nil {
		quantity := 1
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %q is too far ahead", ErrBadTime, input)
			}
			quantity = n
		}
		if quantity <= 0 {
			return time.Time{}, fmt.Errorf("%w: %q is not in the future", ErrBadTime, input)
		}
		var unit time.Duration
		switch m[2][0] {
		case 'm':
			unit = time.Minute
		case 'h':
			unit = time.Hour
		default:
			unit = 24 * time.Hour
		}
		if int64(quantity) > math.MaxInt64/int64(unit) {
			return time.Time{}, fmt.Errorf("%w: %q is too far ahead", ErrBadTime, input)
		}
		return now.Add(time.Duration(quantity) * unit), nil
	}

	if at, err := time.Parse(time.RFC3339, strings.TrimSpace(input)); err == nil {
		return at, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, input)
}

// FutureTime parses input like ParseTime and rejects results that are not after now.
func FutureTime(input string, now, def time.Time) (time.Time, error) {
	at, err := ParseTime(input, now, def)
	if err != nil {
		return time.Time{}, err
	}
	if !at.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrPastTime, at.Format(time.RFC3339))
	}
	return at, nil
}
