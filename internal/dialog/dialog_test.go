package dialog

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func TestNewDraftDefaults(t *testing.T) {
	t.Parallel()

	d := NewDraft("", now, 0)
	if !d.Time.Equal(now.Add(time.Hour)) {
		t.Fatalf("default time = %v, want now+1h", d.Time)
	}
	if d.CanConfirm() {
		t.Fatalf("empty draft must not be confirmable")
	}
	if got := d.TimeButtonLabel(); got != "Select time (Default: 15:30)" {
		t.Fatalf("TimeButtonLabel = %q", got)
	}

	shared := NewDraft("https://go.dev", now, 15*time.Minute)
	if shared.Text != "https://go.dev" || !shared.Time.Equal(now.Add(15*time.Minute)) {
		t.Fatalf("shared draft = %+v", shared)
	}
}

func TestConfirmEnabledIffTextNonEmpty(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"":          false,
		"   ":       false,
		"buy milk":  true,
		" padded  ": true,
	}
	for text, want := range cases {
		d := NewDraft(text, now, 0)
		if got := d.CanConfirm(); got != want {
			t.Fatalf("CanConfirm(%q) = %v, want %v", text, got, want)
		}
		gotText, at, ok := d.Confirm()
		if ok != want {
			t.Fatalf("Confirm(%q) ok = %v, want %v", text, ok, want)
		}
		if ok && (at.IsZero() || gotText == "" || gotText[0] == ' ') {
			t.Fatalf("Confirm(%q) = %q, %v", text, gotText, at)
		}
	}

	noTime := &Draft{Text: "x"}
	if _, _, ok := noTime.Confirm(); ok {
		t.Fatalf("a draft without a time must not confirm")
	}
}

func TestPickTimeRollsOver(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hour, minute int
		tomorrow     bool
	}{
		{15, 0, false},
		{14, 31, false},
		{14, 30, true},
		{14, 0, true},
		{9, 45, true},
		{23, 59, false},
	}
	for _, tc := range cases {
		got := PickTime(tc.hour, tc.minute, now)
		wantDay := 15
		if tc.tomorrow {
			wantDay = 16
		}
		if got.Day() != wantDay || got.Hour() != tc.hour || got.Minute() != tc.minute {
			t.Fatalf("PickTime(%d, %d) = %v", tc.hour, tc.minute, got)
		}
		if GoesOffTomorrow(tc.hour, tc.minute, now) != tc.tomorrow {
			t.Fatalf("GoesOffTomorrow(%d, %d) mismatch", tc.hour, tc.minute)
		}
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	def := now.Add(time.Hour)

	cases := map[string]time.Time{
		"":                     def,
		"OK":                   def,
		"16:05":                time.Date(2026, 10, 15, 16, 5, 0, 0, time.UTC),
		"8.15":                 time.Date(2026, 10, 16, 8, 15, 0, 0, time.UTC),
		"in 30 minutes":        now.Add(30 * time.Minute),
		"in an hour":           now.Add(time.Hour),
		"in 2 h":               now.Add(2 * time.Hour),
		"in 3 days":            now.Add(72 * time.Hour),
		"2026-12-01T10:00:00Z": time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC),
	}
	for input, want := range cases {
		got, err := ParseTime(input, now, def)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", input, got, want)
		}
	}

	for _, bad := range []string{"25:00", "12:61", "in 0 minutes", "whenever", "in 5 weeks", "in 9999999 days", "in 99999999999999999999 minutes"} {
		if _, err := ParseTime(bad, now, def); !errors.Is(err, ErrBadTime) {
			t.Fatalf("ParseTime(%q) error = %v, want ErrBadTime", bad, err)
		}
	}
}

func TestFutureTimeRejectsPast(t *testing.T) {
	t.Parallel()
	def := now.Add(time.Hour)

	if got, err := FutureTime("in 5 minutes", now, def); err != nil || !got.Equal(now.Add(5*time.Minute)) {
		t.Fatalf("FutureTime(in 5 minutes) = %v, %v", got, err)
	}
	for _, past := range []string{"2026-10-15T14:00:00Z", "2026-10-15T14:30:00Z"} {
		if _, err := FutureTime(past, now, def); !errors.Is(err, ErrPastTime) {
			t.Fatalf("FutureTime(%q) error = %v, want ErrPastTime", past, err)
		}
	}
	if _, err := FutureTime("in 9999999 days", now, def); !errors.Is(err, ErrBadTime) {
		t.Fatalf("overflowing offset error = %v, want ErrBadTime", err)
	}
}
