package model

import (
	"strings"
	"time"
)

type EventType string

const (
	EventExam       EventType = "Exam"
	EventAssignment EventType = "Assignment"
	EventLecture    EventType = "Lecture"
	EventMeeting    EventType = "Meeting"
	EventOther      EventType = "Other"
)

var EventTypes = []EventType{EventExam, EventAssignment, EventLecture, EventMeeting, EventOther}

// ParseEventType matches s case-insensitively against the known types.
func ParseEventType(s string) (EventType, bool) {
	for _, t := range EventTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// Event is an entry in the academic planner.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Type        EventType `json:"type"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description"`
	Time        string    `json:"time,omitempty"` // HH:MM
	Link        string    `json:"link,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// Key is the (date, title) pair older data used to tell events apart.
func (e Event) Key() string {
	return e.Date + "_" + e.Title
}

// AllDay reports whether the event has no clock time.
func (e Event) AllDay() bool {
	return e.Time == ""
}

// Start is the event's start in loc: midnight for all-day events, otherwise
// the date combined with the HH:MM time.
func (e Event) Start(loc *time.Location) (time.Time, error) {
	if e.AllDay() {
		return ParseDate(e.Date, loc)
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, e.Date+" "+e.Time, loc)
	if err != nil {
		return time.Time{}, &DateParseError{Value: e.Date + " " + e.Time, Err: err}
	}
	return t, nil
}
