package dashboard

import (
	"time"

	"github.com/harrisonrobin/studydesk/pkg/quote"
)

// Greeting picks the salutation for the hour of day in the user's timezone.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 5:
		return "Good night"
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// ProductivityScore grows by ten points per pending task, capped at 100.
func ProductivityScore(pending int) int {
	return min(100, max(0, pending*10))
}

type Stats struct {
	Resources    int
	Pending      int
	Overdue      int
	Upcoming     int
	Productivity int
}

func NewStats(resources, pending, overdue, upcoming int) Stats {
	return Stats{
		Resources:    resources,
		Pending:      pending,
		Overdue:      overdue,
		Upcoming:     upcoming,
		Productivity: ProductivityScore(pending),
	}
}

// Summary is everything the home view shows.
type Summary struct {
	Greeting  string
	Name      string
	Now       time.Time
	Stats     Stats
	Quote     quote.Quote
	LiveQuote bool
}

func NewSummary(name string, now time.Time, stats Stats, q quote.Quote, live bool) Summary {
	return Summary{
		Greeting:  Greeting(now),
		Name:      name,
		Now:       now,
		Stats:     stats,
		Quote:     q,
		LiveQuote: live,
	}
}
