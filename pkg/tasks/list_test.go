package tasks

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/overdue"
)

var today = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func texts(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestSortByPriorityIsStable(t *testing.T) {
	list := []model.Task{
		{ID: "1", Text: "A", Priority: model.PriorityLow, DueDate: "2024-03-10"},
		{ID: "2", Text: "B", Priority: model.PriorityHigh, DueDate: "2024-03-10"},
		{ID: "3", Text: "C", Priority: model.PriorityLow, DueDate: "2024-03-10"},
	}
	got := texts(View(list, false, SortPriority, today))
	want := []string{"B", "A", "C"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSortByDuePutsBadDatesLast(t *testing.T) {
	list := []model.Task{
		{Text: "bad", DueDate: "someday"},
		{Text: "late", DueDate: "2024-03-20"},
		{Text: "none"},
		{Text: "early", DueDate: "2024-03-01"},
	}
	got := texts(View(list, false, SortDue, today))
	want := []string{"early", "none", "late", "bad"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	list := []model.Task{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}}
	out, removed := Delete(list, "zzz")
	if removed {
		t.Fatal("expected nothing removed")
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("list changed: %+v", out)
	}

	out, removed = Delete(out, "a")
	if !removed || len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("expected only b to remain, got %+v (removed=%v)", out, removed)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	list := []model.Task{{ID: "a", Text: "one"}}
	if !Toggle(list, "a") || !list[0].Completed {
		t.Fatal("expected task to be completed")
	}
	if !Toggle(list, "a") || list[0].Completed {
		t.Fatal("expected task to be pending again")
	}
	if Toggle(list, "nope") {
		t.Fatal("toggle of unknown id reported success")
	}
}

func TestFilterHidesCompletedAndFillsDue(t *testing.T) {
	list := []model.Task{
		{ID: "a", Text: "open"},
		{ID: "b", Text: "done", Completed: true, DueDate: "2024-03-01"},
	}
	pending := slices.Collect(Filter(list, false, today))
	if len(pending) != 1 || pending[0].DueDate != "2024-03-10" {
		t.Fatalf("unexpected pending view: %+v", pending)
	}
	if list[0].DueDate != "" {
		t.Fatal("filter must not modify the stored task")
	}
	if all := slices.Collect(Filter(list, true, today)); len(all) != 2 {
		t.Fatalf("expected 2 tasks with completed shown, got %d", len(all))
	}
}

func TestViewStatus(t *testing.T) {
	list := []model.Task{
		{Text: "past", DueDate: "2024-03-07"},
		{Text: "junk", DueDate: "31/12/2024"},
	}
	items := View(list, false, SortPriority, today)
	if items[0].Status.Kind != overdue.Overdue || items[0].Status.Days != 3 {
		t.Fatalf("unexpected status %+v", items[0].Status)
	}
	if items[1].Status.Kind != overdue.DateError {
		t.Fatalf("expected date error, got %+v", items[1].Status)
	}
}

func TestNewValidates(t *testing.T) {
	var verr *model.ValidationError
	if _, err := New("   ", model.PriorityHigh, "", today); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for blank text, got %v", err)
	}
	if _, err := New("x", model.PriorityHigh, "2024-13-01", today); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	task, err := New(" read ", "", "", today)
	if err != nil {
		t.Fatal(err)
	}
	if task.Text != "read" || task.Priority != model.PriorityMedium || task.DueDate != "2024-03-10" || task.Created != "2024-03-10 09:30" {
		t.Fatalf("unexpected task %+v", task)
	}
	if task.ID == "" || task.Completed {
		t.Fatalf("new task should be pending with an id: %+v", task)
	}
}

func TestResolvePrefix(t *testing.T) {
	list := []model.Task{{ID: "abc123"}, {ID: "abd456"}}
	if id, err := Resolve(list, "abc"); err != nil || id != "abc123" {
		t.Fatalf("expected abc123, got %q (%v)", id, err)
	}
	if _, err := Resolve(list, "ab"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ambiguous, got %v", err)
	}
	if _, err := Resolve(list, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOverdueSkipsCompleted(t *testing.T) {
	list := []model.Task{
		{Text: "late", DueDate: "2024-03-01"},
		{Text: "late but done", DueDate: "2024-03-01", Completed: true},
		{Text: "soon", DueDate: "2024-03-11"},
	}
	late := Overdue(list, today)
	if len(late) != 1 || late[0].Text != "late" {
		t.Fatalf("unexpected overdue list %+v", late)
	}
}
