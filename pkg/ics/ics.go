// Package ics converts planner events to and from iCalendar files.
package ics

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

const productID = "-//studydesk//planner//EN"

// TimedLength is the span given to events that only carry a start time.
const TimedLength = time.Hour

// Export writes events as a single VCALENDAR. Events with unreadable dates
// are skipped and returned so the caller can report them.
func Export(w io.Writer, events []model.Event, loc *time.Location, stamp time.Time) (skipped []model.Event, err error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, e := range events {
		comp, err := toComponent(e, loc, stamp)
		if err != nil {
			skipped = append(skipped, e)
			continue
		}
		cal.Children = append(cal.Children, comp)
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return skipped, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return skipped, nil
}

func toComponent(e model.Event, loc *time.Location, stamp time.Time) (*ical.Component, error) {
	start, err := e.Start(loc)
	if err != nil {
		return nil, err
	}

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, e.ID)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ev.Props.SetText(ical.PropSummary, e.Title)
	if e.AllDay() {
		ev.Props.SetDate(ical.PropDateTimeStart, start)
		ev.Props.SetDate(ical.PropDateTimeEnd, start.AddDate(0, 0, 1))
	} else {
		ev.Props.SetDateTime(ical.PropDateTimeStart, start)
		ev.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(TimedLength))
	}
	if e.Description != "" {
		ev.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ev.Props.SetText(ical.PropLocation, e.Location)
	}
	if e.Link != "" {
		if u, err := url.Parse(e.Link); err == nil {
			ev.Props.SetURI(ical.PropURL, u)
		}
	}
	if e.Type != "" {
		ev.Props.SetText(ical.PropCategories, string(e.Type))
	}
	prio := ical.NewProp(ical.PropPriority)
	prio.Value = strconv.Itoa(icalPriority(e.Priority))
	ev.Props.Set(prio)

	return ev.Component, nil
}

// RFC 5545 priorities run from 1 (highest) to 9 (lowest).
func icalPriority(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 1
	case model.PriorityLow:
		return 9
	default:
		return 5
	}
}

func fromICalPriority(v string) model.Priority {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	switch {
	case err != nil || n == 0:
		return model.PriorityMedium
	case n <= 4:
		return model.PriorityHigh
	case n == 5:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// Import reads every VEVENT from r. Times are converted to loc.
func Import(r io.Reader, loc *time.Location) ([]model.Event, error) {
	dec := ical.NewDecoder(r)
	var out []model.Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}
		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			e, err := fromComponent(comp, loc)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func fromComponent(comp *ical.Component, loc *time.Location) (model.Event, error) {
	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return model.Event{}, fmt.Errorf("event without DTSTART")
	}
	start, err := startProp.DateTime(loc)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to read DTSTART %q: %w", startProp.Value, err)
	}
	start = start.In(loc)

	e := model.Event{
		Date:     start.Format(model.DateLayout),
		Type:     model.EventOther,
		Priority: model.PriorityMedium,
	}
	if startProp.ValueType() != ical.ValueDate {
		e.Time = start.Format(model.ClockLayout)
	}
	if uid, err := comp.Props.Text(ical.PropUID); err == nil {
		if _, perr := uuid.Parse(uid); perr == nil {
			e.ID = uid
		}
	}
	if e.ID == "" {
		e.ID = model.NewID()
	}
	e.Title, _ = comp.Props.Text(ical.PropSummary)
	e.Description, _ = comp.Props.Text(ical.PropDescription)
	e.Location, _ = comp.Props.Text(ical.PropLocation)
	if p := comp.Props.Get(ical.PropURL); p != nil {
		e.Link = p.Value
	}
	if cat, err := comp.Props.Text(ical.PropCategories); err == nil {
		first, _, _ := strings.Cut(cat, ",")
		if typ, ok := model.ParseEventType(first); ok {
			e.Type = typ
		}
	}
	if p := comp.Props.Get(ical.PropPriority); p != nil {
		e.Priority = fromICalPriority(p.Value)
	}
	if strings.TrimSpace(e.Title) == "" {
		e.Title = "Untitled event"
	}
	return e, nil
}
