package orgmode

import (
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

const sample = `#+TITLE: Semester
* Courses
** TODO [#A] Finish lab report :physics:lab:
   DEADLINE: <2024-03-14 Thu 17:00>
   :PROPERTIES:
   :ID:       0b7f1c2e-4a55-4c1f-9b39-3f3c2d0f6a11
   :END:
** DONE Read chapter 4 :maths:
   DEADLINE: <2024-03-01 Fri>
** TODO [#C] Email advisor
* Notes
Some text that is not a task.
`

func TestParse(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	entries, err := Parse(strings.NewReader(sample), now)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}

	lab := entries[0].Task
	if lab.Text != "Finish lab report" || lab.Priority != model.PriorityHigh || lab.DueDate != "2024-03-14" {
		t.Errorf("unexpected lab task %+v", lab)
	}
	if lab.ID != "0b7f1c2e-4a55-4c1f-9b39-3f3c2d0f6a11" || lab.Completed {
		t.Errorf("unexpected lab id or state %+v", lab)
	}
	if len(entries[0].Tags) != 2 || entries[0].Tags[0] != "physics" {
		t.Errorf("unexpected tags %v", entries[0].Tags)
	}

	read := entries[1].Task
	if !read.Completed || read.Priority != model.PriorityLow || read.DueDate != "2024-03-01" {
		t.Errorf("unexpected done task %+v", read)
	}

	email := entries[2].Task
	if email.DueDate != "2024-03-10" || email.Priority != model.PriorityLow {
		t.Errorf("task without deadline should be due today: %+v", email)
	}

	if got := FilterTasks(entries, "maths"); len(got) != 1 || got[0].Text != "Read chapter 4" {
		t.Errorf("unexpected tag filter result %+v", got)
	}
	if got := FilterTasks(entries, ""); len(got) != 3 {
		t.Errorf("empty filter should keep everything, got %d", len(got))
	}
}
