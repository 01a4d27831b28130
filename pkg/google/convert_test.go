package google

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/studydesk/pkg/colors"
	"github.com/harrisonrobin/studydesk/pkg/model"
)

func TestConvertEvent(t *testing.T) {
	allDay := model.Event{ID: "id-1", Title: "Maths Exam", Date: "2024-03-31", Type: model.EventExam, Priority: model.PriorityHigh}
	ev, err := ConvertEvent(allDay, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Start.Date != "2024-03-31" || ev.End.Date != "2024-04-01" {
		t.Errorf("unexpected all-day span %+v %+v", ev.Start, ev.End)
	}
	if ev.Summary != "! Maths Exam" || ev.ColorId != colors.ExamColorID {
		t.Errorf("unexpected summary or colour: %q %q", ev.Summary, ev.ColorId)
	}
	if ev.ExtendedProperties.Private[PropertyID] != "id-1" {
		t.Errorf("planner id not attached: %v", ev.ExtendedProperties.Private)
	}

	timed := model.Event{ID: "id-2", Title: "Lecture", Date: "2024-03-12", Time: "10:15", Type: model.EventLecture, Priority: model.PriorityMedium}
	ev, err = ConvertEvent(timed, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Start.DateTime != "2024-03-12T10:15:00Z" || ev.End.DateTime != "2024-03-12T11:15:00Z" {
		t.Errorf("unexpected timed span %+v %+v", ev.Start, ev.End)
	}
	if ev.ColorId != colors.DefaultColorID {
		t.Errorf("expected default colour, got %q", ev.ColorId)
	}

	if _, err := ConvertEvent(model.Event{Date: "bad"}, time.UTC); err == nil {
		t.Error("expected an error for an unreadable date")
	}
}

func TestEventNeedsUpdate(t *testing.T) {
	e := model.Event{ID: "id-1", Title: "Lab", Date: "2024-03-12", Time: "09:00", Priority: model.PriorityLow}
	target, _ := ConvertEvent(e, time.UTC)

	same := *target
	same.Start = &calendar.EventDateTime{DateTime: "2024-03-12T10:00:00+01:00"}
	patch, err := EventNeedsUpdate(&same, target)
	if err != nil {
		t.Fatal(err)
	}
	if patch != nil {
		t.Fatalf("equal instants in different offsets should not patch: %+v", patch)
	}

	moved := *target
	moved.Summary = "Old title"
	moved.Start = &calendar.EventDateTime{DateTime: "2024-03-12T08:00:00Z"}
	patch, err = EventNeedsUpdate(&moved, target)
	if err != nil {
		t.Fatal(err)
	}
	if patch == nil || patch.Summary != "Lab" || patch.Start.DateTime != target.Start.DateTime {
		t.Fatalf("unexpected patch %+v", patch)
	}
	if patch.Description != "" {
		t.Error("unchanged fields should not be in the patch")
	}
}
