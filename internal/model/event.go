package model

import (
	"fmt"
	"time"
)

// Event is one dated policy announcement to analyze. Events are read-only
// inputs owned by the caller; the analyzer never mutates them.
type Event struct {
	Year    int    `yaml:"year"`
	Event   string `yaml:"event"`
	Date    string `yaml:"date"`
	Country string `yaml:"country"`
}

// AnnouncementDate parses the event's announcement date.
func (e Event) AnnouncementDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("event %q: parse date %q: %w", e.Event, e.Date, err)
	}
	return t, nil
}
