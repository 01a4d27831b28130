package events

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/overdue"
)

type SortKey string

const (
	SortDate     SortKey = "date"
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortDate, "":
		return SortDate, true
	case SortPriority:
		return SortPriority, true
	case SortTitle:
		return SortTitle, true
	}
	return "", false
}

// DefaultFilter is the type selection the planner starts with.
var DefaultFilter = []model.EventType{model.EventExam, model.EventAssignment}

var (
	ErrNotFound  = errors.New("no event matches")
	ErrAmbiguous = errors.New("more than one event matches")
)

// Draft holds the add-event form before validation.
type Draft struct {
	Title       string
	Date        string
	Type        model.EventType
	Priority    model.Priority
	Description string
	Time        string
	Link        string
	Location    string
}

// Item is an event with its status on the day it was viewed.
type Item struct {
	model.Event
	Status overdue.Status
}

// New validates d and builds an event.
func New(d Draft, loc *time.Location) (model.Event, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Event{}, model.Invalid("title", "event title is required")
	}
	if _, err := model.ParseDate(d.Date, loc); err != nil {
		return model.Event{}, model.Invalid("date", "%q is not a YYYY-MM-DD date", d.Date)
	}
	if d.Time != "" {
		if _, err := time.Parse(model.ClockLayout, d.Time); err != nil {
			return model.Event{}, model.Invalid("time", "%q is not an HH:MM time", d.Time)
		}
	}
	if d.Link != "" {
		if u, err := url.Parse(d.Link); err != nil || u.Scheme == "" || u.Host == "" {
			return model.Event{}, model.Invalid("link", "%q is not an absolute URL", d.Link)
		}
	}
	typ := d.Type
	if typ == "" {
		typ = model.EventOther
	}
	priority := d.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	return model.Event{
		ID:          model.NewID(),
		Title:       title,
		Date:        d.Date,
		Type:        typ,
		Priority:    priority,
		Description: strings.TrimSpace(d.Description),
		Time:        d.Time,
		Link:        d.Link,
		Location:    strings.TrimSpace(d.Location),
	}, nil
}

// Normalize gives every event an id and a priority, reporting whether any id
// was generated.
func Normalize(list []model.Event) bool {
	assigned := false
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = model.NewID()
			assigned = true
		}
		if list[i].Priority == "" {
			list[i].Priority = model.PriorityMedium
		}
	}
	return assigned
}

func IndexOf(list []model.Event, id string) int {
	return slices.IndexFunc(list, func(e model.Event) bool { return e.ID == id })
}

// IndexByKey finds an event by its (date, title) pair.
func IndexByKey(list []model.Event, key string) int {
	return slices.IndexFunc(list, func(e model.Event) bool { return e.Key() == key })
}

// Resolve turns a full id or unique id prefix into a full id.
func Resolve(list []model.Event, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	match := ""
	for _, e := range list {
		if e.ID == ref {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}

func Delete(list []model.Event, id string) ([]model.Event, bool) {
	i := IndexOf(list, id)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

func SetPriority(list []model.Event, id string, p model.Priority) bool {
	i := IndexOf(list, id)
	if i < 0 {
		return false
	}
	list[i].Priority = p
	return true
}

// MatchesTypes reports whether the title mentions any of types. An empty
// selection matches everything.
func MatchesTypes(e model.Event, types []model.EventType) bool {
	if len(types) == 0 {
		return true
	}
	title := strings.ToLower(e.Title)
	for _, t := range types {
		if strings.Contains(title, strings.ToLower(string(t))) {
			return true
		}
	}
	return false
}

// Upcoming yields events dated today or later whose title matches the type
// selection. Events with unreadable dates are yielded too so the caller can
// flag them.
func Upcoming(list []model.Event, today time.Time, types []model.EventType) iter.Seq[model.Event] {
	return func(yield func(model.Event) bool) {
		for _, e := range list {
			d, err := model.ParseDate(e.Date, today.Location())
			if err == nil && model.DaysBetween(today, d) < 0 {
				continue
			}
			if !MatchesTypes(e, types) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// OnDate yields the events scheduled on day, timed events first by clock.
func OnDate(list []model.Event, day time.Time) []model.Event {
	date := day.Format(model.DateLayout)
	var out []model.Event
	for _, e := range list {
		if e.Date == date {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Event) int {
		switch {
		case a.AllDay() && b.AllDay():
			return 0
		case a.AllDay():
			return 1
		case b.AllDay():
			return -1
		}
		return strings.Compare(a.Time, b.Time)
	})
	return out
}

// Sort orders list in place. Every key is stable.
func Sort(list []model.Event, key SortKey) {
	switch key {
	case SortPriority:
		slices.SortStableFunc(list, func(a, b model.Event) int {
			return cmp.Or(a.Priority.Rank()-b.Priority.Rank(), compareDate(a.Date, b.Date))
		})
	case SortTitle:
		slices.SortStableFunc(list, func(a, b model.Event) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	default:
		slices.SortStableFunc(list, func(a, b model.Event) int {
			return cmp.Or(compareDate(a.Date, b.Date), a.Priority.Rank()-b.Priority.Rank())
		})
	}
}

// compareDate orders ISO dates with unreadable values last.
func compareDate(a, b string) int {
	da, errA := time.Parse(model.DateLayout, a)
	db, errB := time.Parse(model.DateLayout, b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return da.Compare(db)
}

// View returns upcoming events in the requested order with their status.
func View(list []model.Event, today time.Time, types []model.EventType, key SortKey) []Item {
	visible := slices.Collect(Upcoming(list, today, types))
	Sort(visible, key)

	items := make([]Item, 0, len(visible))
	for _, e := range visible {
		items = append(items, Item{Event: e, Status: overdue.Classify(e.Date, today)})
	}
	return items
}
