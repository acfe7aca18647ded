package model

import "time"

// Reminder is a piece of text the user wants to be notified about at Time.
// Reminders carry no identifier; two entries with the same Text are indistinguishable.
type Reminder struct {
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// Label renders the scheduled time relative to now. Today's reminders show only the
// clock, the coming week adds the weekday, anything further out shows the date.
func (r Reminder) Label(now time.Time) string {
	if r.Time.IsZero() {
		return "Unknown time"
	}

	at := r.Time.In(now.Location())
	today := startOfDay(now)
	day := startOfDay(at)

	switch {
	case day.Equal(today):
		return at.Format("15:04")
	case day.After(today) && day.Before(today.AddDate(0, 0, 7)):
		return at.Format("Mon 15:04")
	default:
		return at.Format("Jan 02 15:04")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
