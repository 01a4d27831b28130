package overdue

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

// SoonWithin is the largest days-left value still reported as due soon.
const SoonWithin = 3

type Kind int

const (
	Upcoming Kind = iota
	DueSoon
	DueToday
	Overdue
	DateError
)

// Status is derived from a due date and the current day. It is never stored.
type Status struct {
	Kind Kind
	// Days is the number of days left, or days late for Overdue.
	Days int
	Err  error
}

// Classify computes the status of a YYYY-MM-DD due date relative to today.
// An empty due date counts as today. Unreadable dates produce DateError.
func Classify(due string, today time.Time) Status {
	if due == "" {
		return Status{Kind: DueToday}
	}
	d, err := model.ParseDate(due, today.Location())
	if err != nil {
		return Status{Kind: DateError, Err: err}
	}
	return FromDaysLeft(model.DaysBetween(today, d))
}

// FromDaysLeft maps a signed day count onto a status.
func FromDaysLeft(daysLeft int) Status {
	switch {
	case daysLeft < 0:
		return Status{Kind: Overdue, Days: -daysLeft}
	case daysLeft == 0:
		return Status{Kind: DueToday}
	case daysLeft <= SoonWithin:
		return Status{Kind: DueSoon, Days: daysLeft}
	default:
		return Status{Kind: Upcoming, Days: daysLeft}
	}
}

// DaysLeft returns the signed days-left value, negative when overdue.
func (s Status) DaysLeft() int {
	if s.Kind == Overdue {
		return -s.Days
	}
	return s.Days
}

func (s Status) String() string {
	switch s.Kind {
	case Overdue:
		return fmt.Sprintf("Overdue by %d %s", s.Days, plural(s.Days))
	case DueToday:
		return "Due today"
	case DueSoon, Upcoming:
		return fmt.Sprintf("Due in %d %s", s.Days, plural(s.Days))
	default:
		return "Date error"
	}
}

func plural(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
