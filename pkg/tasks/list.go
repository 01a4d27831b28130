package tasks

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/overdue"
)

type SortKey string

const (
	SortPriority SortKey = "priority"
	SortDue      SortKey = "due"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "priority", "":
		return SortPriority, true
	case "due", "due_date", "date":
		return SortDue, true
	}
	return "", false
}

var (
	ErrNotFound  = errors.New("no task matches")
	ErrAmbiguous = errors.New("more than one task matches")
)

// Item is a task paired with its status for the day it was viewed.
type Item struct {
	model.Task
	Status overdue.Status
}

// New validates the form fields and builds a pending task created at now.
func New(text string, priority model.Priority, due string, now time.Time) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, model.Invalid("text", "task description is required")
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if due == "" {
		due = now.Format(model.DateLayout)
	}
	if _, err := model.ParseDate(due, now.Location()); err != nil {
		return model.Task{}, model.Invalid("due_date", "%q is not a YYYY-MM-DD date", due)
	}
	return model.Task{
		ID:       model.NewID(),
		Text:     text,
		Priority: priority,
		DueDate:  due,
		Created:  now.Format(model.StampLayout),
	}, nil
}

// Normalize gives every task an id and a priority. It reports whether any
// id had to be generated.
func Normalize(list []model.Task) bool {
	assigned := false
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = model.NewID()
			assigned = true
		}
		if list[i].Priority == "" {
			list[i].Priority = model.PriorityLow
		}
	}
	return assigned
}

func IndexOf(list []model.Task, id string) int {
	return slices.IndexFunc(list, func(t model.Task) bool { return t.ID == id })
}

// IndexByCreated finds a task by its creation stamp, the lookup older data
// relied on. Two tasks created in the same minute collide; the first wins.
func IndexByCreated(list []model.Task, created string) int {
	return slices.IndexFunc(list, func(t model.Task) bool { return t.Created == created })
}

// Resolve turns a full id or a unique id prefix into a full id.
func Resolve(list []model.Task, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	match := ""
	for _, t := range list {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}

// Delete removes the task with id. When nothing matches, list is returned
// unchanged and removed is false.
func Delete(list []model.Task, id string) (out []model.Task, removed bool) {
	i := IndexOf(list, id)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

// Toggle flips the completion flag in place.
func Toggle(list []model.Task, id string) bool {
	i := IndexOf(list, id)
	if i < 0 {
		return false
	}
	list[i].Completed = !list[i].Completed
	return true
}

// FillDueDates sets missing due dates to today in place and returns how many
// were filled.
func FillDueDates(list []model.Task, today time.Time) int {
	filled := 0
	for i := range list {
		if list[i].DueDate == "" {
			list[i].DueDate = today.Format(model.DateLayout)
			filled++
		}
	}
	return filled
}

// Filter yields pending tasks, or every task when showCompleted is set.
// Yielded copies carry today's date when the stored task has none. The
// sequence can be ranged over any number of times.
func Filter(list []model.Task, showCompleted bool, today time.Time) iter.Seq[model.Task] {
	return func(yield func(model.Task) bool) {
		for _, t := range list {
			if t.Completed && !showCompleted {
				continue
			}
			if t.DueDate == "" {
				t.DueDate = today.Format(model.DateLayout)
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Sort orders list in place. Both orders are stable.
func Sort(list []model.Task, key SortKey, today time.Time) {
	switch key {
	case SortDue:
		slices.SortStableFunc(list, func(a, b model.Task) int {
			return compareDue(a.DueDate, b.DueDate, today)
		})
	default:
		slices.SortStableFunc(list, func(a, b model.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	}
}

// compareDue sorts by calendar date with unreadable dates last.
func compareDue(a, b string, today time.Time) int {
	da, errA := dueTime(a, today)
	db, errB := dueTime(b, today)
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

func dueTime(due string, today time.Time) (time.Time, error) {
	if due == "" {
		return model.Day(today), nil
	}
	return model.ParseDate(due, today.Location())
}

// View filters, sorts and classifies tasks for display.
func View(list []model.Task, showCompleted bool, key SortKey, today time.Time) []Item {
	visible := slices.Collect(Filter(list, showCompleted, today))
	Sort(visible, key, today)

	items := make([]Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, Item{Task: t, Status: overdue.Classify(t.DueDate, today)})
	}
	return items
}

// Overdue returns pending tasks whose due date has passed.
func Overdue(list []model.Task, today time.Time) []model.Task {
	var late []model.Task
	for t := range Filter(list, false, today) {
		if overdue.Classify(t.DueDate, today).Kind == overdue.Overdue {
			late = append(late, t)
		}
	}
	return late
}

// PendingCount counts tasks not yet completed.
func PendingCount(list []model.Task) int {
	n := 0
	for _, t := range list {
		if !t.Completed {
			n++
		}
	}
	return n
}
