package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout    = "2006-01-02"
	StampLayout   = "2006-01-02 15:04"
	ClockLayout   = "15:04"
	secondsPerDay = 24 * 60 * 60
)

// ParseDate reads a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, &DateParseError{Value: s, Err: err}
	}
	return d, nil
}

// Day truncates t to its calendar day in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b. It compares civil dates
// so daylight-saving shifts never produce off-by-one results. Unix seconds
// are used because a Duration overflows past roughly 292 years.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// ShortID is the prefix shown in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
