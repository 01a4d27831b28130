package google

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/studydesk/pkg/colors"
	"github.com/harrisonrobin/studydesk/pkg/model"
)

// PropertyID is the private extended property carrying the planner event id.
const PropertyID = "studydesk_id"

// TimedLength is the calendar span of an event that only has a start time.
const TimedLength = time.Hour

// ConvertEvent builds the calendar representation of a planner event.
func ConvertEvent(e model.Event, loc *time.Location) (*calendar.Event, error) {
	start, err := e.Start(loc)
	if err != nil {
		return nil, err
	}

	summary := e.Title
	if e.Priority == model.PriorityHigh {
		summary = "! " + summary
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Type: %s\n", e.Type)
	fmt.Fprintf(&desc, "Priority: %s\n", e.Priority)
	if e.Link != "" {
		fmt.Fprintf(&desc, "Link: %s\n", e.Link)
	}
	if e.Description != "" {
		fmt.Fprintf(&desc, "\n%s\n", e.Description)
	}

	event := &calendar.Event{
		Summary:     summary,
		Description: desc.String(),
		Location:    e.Location,
		ColorId:     colors.EventColorID(e),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{PropertyID: e.ID},
		},
	}
	if e.AllDay() {
		event.Start = &calendar.EventDateTime{Date: e.Date}
		event.End = &calendar.EventDateTime{Date: start.AddDate(0, 0, 1).Format(model.DateLayout)}
	} else {
		event.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()}
		event.End = &calendar.EventDateTime{DateTime: start.Add(TimedLength).Format(time.RFC3339), TimeZone: loc.String()}
	}
	return event, nil
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil when they already match.
func EventNeedsUpdate(existing, target *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.Location != target.Location {
		patch.Location = target.Location
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}

	sameStart, err := sameTime(existing.Start, target.Start)
	if err != nil {
		return nil, err
	}
	sameEnd, err := sameTime(existing.End, target.End)
	if err != nil {
		return nil, err
	}
	if !sameStart || !sameEnd {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

func sameTime(a, b *calendar.EventDateTime) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	if a.Date != "" || b.Date != "" {
		return a.Date == b.Date, nil
	}
	ta, err := time.Parse(time.RFC3339, a.DateTime)
	if err != nil {
		return false, err
	}
	tb, err := time.Parse(time.RFC3339, b.DateTime)
	if err != nil {
		return false, err
	}
	return ta.Equal(tb), nil
}
