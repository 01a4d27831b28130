package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

func TestExportImport(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		{
			ID: model.NewID(), Title: "Physics Exam", Date: "2024-03-15", Time: "09:30",
			Type: model.EventExam, Priority: model.PriorityHigh, Location: "Hall B",
			Link: "https://example.edu/exam",
		},
		{ID: model.NewID(), Title: "Reading week", Date: "2024-03-20", Type: model.EventOther, Priority: model.PriorityLow},
		{ID: model.NewID(), Title: "Broken", Date: "20/03/2024"},
	}

	var buf bytes.Buffer
	skipped, err := Export(&buf, events, time.UTC, stamp)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 1 || skipped[0].Title != "Broken" {
		t.Fatalf("expected the broken event to be skipped, got %+v", skipped)
	}
	if !strings.Contains(buf.String(), "SUMMARY:Physics Exam") {
		t.Fatalf("summary missing from output:\n%s", buf.String())
	}

	got, err := Import(&buf, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}

	exam := got[0]
	if exam.ID != events[0].ID || exam.Date != "2024-03-15" || exam.Time != "09:30" {
		t.Errorf("exam identity or time lost: %+v", exam)
	}
	if exam.Type != model.EventExam || exam.Priority != model.PriorityHigh || exam.Location != "Hall B" || exam.Link != "https://example.edu/exam" {
		t.Errorf("exam details lost: %+v", exam)
	}

	week := got[1]
	if !week.AllDay() || week.Date != "2024-03-20" || week.Priority != model.PriorityLow {
		t.Errorf("all-day event not preserved: %+v", week)
	}
}

func TestImportForeignCalendar(t *testing.T) {
	src := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Example//EN",
		"BEGIN:VEVENT",
		"UID:not-a-uuid@example.com",
		"DTSTAMP:20240301T120000Z",
		"DTSTART:20240312T140000Z",
		"SUMMARY:Group meeting",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	got, err := Import(strings.NewReader(src), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	e := got[0]
	if e.ID == "not-a-uuid@example.com" || e.ID == "" {
		t.Errorf("foreign uid should be replaced, got %q", e.ID)
	}
	if e.Date != "2024-03-12" || e.Time != "14:00" || e.Priority != model.PriorityMedium || e.Type != model.EventOther {
		t.Errorf("unexpected event %+v", e)
	}
}
